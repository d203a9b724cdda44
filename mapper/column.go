package mapper

import (
	"fmt"
	"strings"

	"github.com/witanlabs/gridmap/grid"
)

// ReadColumn reads the text of one column from start down to the sheet's
// last row. Blank and whitespace-only cells are dropped.
func ReadColumn(s SheetReader, start grid.Cell) ([]string, error) {
	if start.Row < 1 || start.Col < 1 {
		return nil, fmt.Errorf("invalid start %d,%d: rows and columns start at 1", start.Row, start.Col)
	}
	dim, err := s.Dimension()
	if err != nil {
		return nil, err
	}

	out := []string{}
	if start.Row > dim.End.Row {
		return out, nil
	}
	values, err := s.Values(grid.Region{Start: start, End: grid.Cell{Row: dim.End.Row, Col: start.Col}})
	if err != nil {
		return nil, err
	}
	for _, row := range values {
		text := Stringify(row[0])
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, text)
	}
	return out, nil
}

// ReadAll returns every cell from A1 to the sheet's last data cell as text,
// blanks included.
func ReadAll(s SheetReader) ([][]string, error) {
	dim, err := s.Dimension()
	if err != nil {
		return nil, err
	}
	if dim.End.Row == 0 {
		return [][]string{}, nil
	}
	values, err := s.Values(grid.Region{Start: grid.Cell{Row: 1, Col: 1}, End: dim.End})
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = Stringify(v)
		}
	}
	return out, nil
}

// ColumnMarker is the part of a worksheet MarkColumn uses.
type ColumnMarker interface {
	SetValue(c grid.Cell, v any) error
	ApplyStyle(r grid.Region, st grid.Style) error
	AutoFit(r grid.Region) error
	SetRowHeight(row int, height float64) error
}

// markStyle is red wrapped text.
var markStyle = grid.Style{FontColor: "FF0000", WrapText: true}

// MarkColumn writes items down one column from start. Each item is broken
// after every '.', and its row is made tall enough for the resulting lines.
// The cells are styled as red wrapped text and the column is resized.
func MarkColumn(s ColumnMarker, items []string, start grid.Cell) (grid.Region, error) {
	if start.Row < 1 || start.Col < 1 {
		return grid.Region{}, fmt.Errorf("invalid start %d,%d: rows and columns start at 1", start.Row, start.Col)
	}
	if len(items) == 0 {
		return grid.Region{}, nil
	}

	for i, item := range items {
		parts := strings.Split(item, ".")
		cell := grid.Cell{Row: start.Row + i, Col: start.Col}
		if err := s.SetValue(cell, strings.Join(parts, ".\n")); err != nil {
			return grid.Region{}, err
		}
		if err := s.SetRowHeight(cell.Row, grid.DefaultRowHeight*float64(len(parts))); err != nil {
			return grid.Region{}, err
		}
	}

	r := grid.Region{Start: start, End: grid.Cell{Row: start.Row + len(items) - 1, Col: start.Col}}
	if err := s.ApplyStyle(r, markStyle); err != nil {
		return grid.Region{}, err
	}
	if err := s.AutoFit(r); err != nil {
		return grid.Region{}, err
	}
	return r, nil
}
