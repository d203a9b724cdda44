package grid

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"github.com/witanlabs/gridmap/internal"
)

// DefaultRowHeight is the row height, in points, of an unstyled row.
const DefaultRowHeight = 15.0

const (
	minColWidth = 8.43
	maxColWidth = 255
)

// BorderStyle selects the line style of a border.
type BorderStyle int

const (
	BorderNone  BorderStyle = 0
	BorderThin  BorderStyle = 1
	BorderThick BorderStyle = 5
)

// Style is the cosmetic subset the CLI and mapper apply to ranges. Colors are
// RRGGBB hex strings.
type Style struct {
	Bold         bool
	Italic       bool
	FontName     string
	FontSize     float64
	FontColor    string
	Fill         string
	Border       BorderStyle
	BorderColor  string
	NumberFormat string
	WrapText     bool
	Horizontal   string
	Vertical     string
}

func (st Style) toExcelize() *excelize.Style {
	out := &excelize.Style{}
	if st.Bold || st.Italic || st.FontName != "" || st.FontSize > 0 || st.FontColor != "" {
		out.Font = &excelize.Font{
			Bold:   st.Bold,
			Italic: st.Italic,
			Family: st.FontName,
			Size:   st.FontSize,
			Color:  st.FontColor,
		}
	}
	if st.Fill != "" {
		out.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{st.Fill}}
	}
	if st.Border != BorderNone {
		for _, side := range []string{"left", "top", "right", "bottom"} {
			out.Border = append(out.Border, excelize.Border{Type: side, Color: st.BorderColor, Style: int(st.Border)})
		}
	}
	if st.NumberFormat != "" {
		format := st.NumberFormat
		out.CustomNumFmt = &format
	}
	if st.WrapText || st.Horizontal != "" || st.Vertical != "" {
		out.Alignment = &excelize.Alignment{
			WrapText:   st.WrapText,
			Horizontal: st.Horizontal,
			Vertical:   st.Vertical,
		}
	}
	return out
}

// ApplyStyle replaces the style of every cell in r.
func (s *Sheet) ApplyStyle(r Region, st Style) error {
	if err := r.check(); err != nil {
		return err
	}
	id, err := s.file.NewStyle(st.toExcelize())
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	if err := s.file.SetCellStyle(s.name, r.Start.String(), r.End.String(), id); err != nil {
		return fmt.Errorf("styling %s!%s: %w", s.name, r, err)
	}
	return nil
}

// SetBold makes the font of r bold.
func (s *Sheet) SetBold(r Region) error {
	return s.ApplyStyle(r, Style{Bold: true})
}

// AutoFit sizes each column of r to its widest displayed value within r.
func (s *Sheet) AutoFit(r Region) error {
	if err := r.check(); err != nil {
		return err
	}
	for col := r.Start.Col; col <= r.End.Col; col++ {
		widest := 0
		for row := r.Start.Row; row <= r.End.Row; row++ {
			text, err := s.Text(Cell{Row: row, Col: col})
			if err != nil {
				return err
			}
			for _, line := range strings.Split(text, "\n") {
				widest = max(widest, runewidth.StringWidth(line))
			}
		}
		width := min(max(float64(widest)*1.1+2, minColWidth), maxColWidth)
		letter := internal.ColToLetter(col)
		if err := s.file.SetColWidth(s.name, letter, letter, width); err != nil {
			return fmt.Errorf("sizing column %s of %s: %w", letter, s.name, err)
		}
	}
	return nil
}

// ColWidth reports a column's width in characters.
func (s *Sheet) ColWidth(col int) (float64, error) {
	return s.file.GetColWidth(s.name, internal.ColToLetter(col))
}

// SetRowHeight sets a row's height in points.
func (s *Sheet) SetRowHeight(row int, height float64) error {
	if err := s.file.SetRowHeight(s.name, row, height); err != nil {
		return fmt.Errorf("sizing row %d of %s: %w", row, s.name, err)
	}
	return nil
}

// RowHeight reports a row's height in points.
func (s *Sheet) RowHeight(row int) (float64, error) {
	return s.file.GetRowHeight(s.name, row)
}

// Merge merges the cells of r.
func (s *Sheet) Merge(r Region) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := s.file.MergeCell(s.name, r.Start.String(), r.End.String()); err != nil {
		return fmt.Errorf("merging %s!%s: %w", s.name, r, err)
	}
	return nil
}

// MergedRanges lists the merged ranges of the worksheet, like "A5:C5".
func (s *Sheet) MergedRanges() ([]string, error) {
	cells, err := s.file.GetMergeCells(s.name)
	if err != nil {
		return nil, fmt.Errorf("reading merged cells of %s: %w", s.name, err)
	}
	out := make([]string, 0, len(cells))
	for _, mc := range cells {
		out = append(out, mc.GetStartAxis()+":"+mc.GetEndAxis())
	}
	return out, nil
}

// AutoFilter turns on sorting and filtering for r, whose first row is the
// header, and sizes its columns.
func (s *Sheet) AutoFilter(r Region) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := s.file.AutoFilter(s.name, r.String(), nil); err != nil {
		return fmt.Errorf("adding filter to %s!%s: %w", s.name, r, err)
	}
	return s.AutoFit(r)
}

// FilterRange returns the range covered by the worksheet's filter, or ""
// when it has none.
func (s *Sheet) FilterRange() string {
	for _, dn := range s.file.GetDefinedName() {
		if dn.Name != "_xlnm._FilterDatabase" || dn.Scope != s.name {
			continue
		}
		_, ref, _ := strings.Cut(dn.RefersTo, "!")
		return strings.ReplaceAll(ref, "$", "")
	}
	return ""
}

// FreezePanes keeps the rows above and the columns left of topLeft in view.
func (s *Sheet) FreezePanes(topLeft Cell) error {
	rows, cols := topLeft.Row-1, topLeft.Col-1
	pane := "bottomRight"
	switch {
	case rows > 0 && cols == 0:
		pane = "bottomLeft"
	case rows == 0 && cols > 0:
		pane = "topRight"
	case rows == 0 && cols == 0:
		return fmt.Errorf("nothing to freeze above or left of %s", topLeft)
	}
	err := s.file.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		XSplit:      cols,
		YSplit:      rows,
		TopLeftCell: topLeft.String(),
		ActivePane:  pane,
	})
	if err != nil {
		return fmt.Errorf("freezing panes of %s: %w", s.name, err)
	}
	return nil
}

// FrozenRows is the number of rows kept in view by FreezePanes.
func (s *Sheet) FrozenRows() (int, error) {
	panes, err := s.file.GetPanes(s.name)
	if err != nil {
		return 0, fmt.Errorf("reading panes of %s: %w", s.name, err)
	}
	if !panes.Freeze {
		return 0, nil
	}
	return panes.YSplit, nil
}
