package grid

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/witanlabs/gridmap/internal"
)

// Sheet is one worksheet of an open Workbook.
type Sheet struct {
	file *excelize.File
	name string
}

// Name is the worksheet's tab name.
func (s *Sheet) Name() string { return s.name }

// Dimension reports the worksheet's current data extent: the smallest region
// covering every cell that holds a value. An empty worksheet yields the zero
// Region.
func (s *Sheet) Dimension() (Region, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return Region{}, fmt.Errorf("reading rows of %s: %w", s.name, err)
	}

	var r Region
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			cell := Cell{Row: i + 1, Col: j + 1}
			if r.Start.Row == 0 {
				r = Region{Start: cell, End: cell}
				continue
			}
			r.Start.Col = min(r.Start.Col, cell.Col)
			r.End.Col = max(r.End.Col, cell.Col)
			r.End.Row = cell.Row
		}
	}
	return r, nil
}

// Value returns the raw value of one cell: nil when blank, float64 for
// numbers (including dates, which are stored as serials), bool, or string.
func (s *Sheet) Value(c Cell) (any, error) {
	ref := internal.CellName(c.Row, c.Col)
	typ, err := s.file.GetCellType(s.name, ref)
	if err != nil {
		return nil, fmt.Errorf("reading type of %s!%s: %w", s.name, ref, err)
	}
	raw, err := s.file.GetCellValue(s.name, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading %s!%s: %w", s.name, ref, err)
	}
	if raw == "" {
		return nil, nil
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true"), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, nil
		}
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t, nil
		}
	}
	return raw, nil
}

// Values reads a region row by row. Every returned row has exactly
// r.Cols() entries.
func (s *Sheet) Values(r Region) ([][]any, error) {
	if r.Empty() {
		return nil, nil
	}
	out := make([][]any, 0, r.Rows())
	for row := r.Start.Row; row <= r.End.Row; row++ {
		line := make([]any, 0, r.Cols())
		for col := r.Start.Col; col <= r.End.Col; col++ {
			v, err := s.Value(Cell{Row: row, Col: col})
			if err != nil {
				return nil, err
			}
			line = append(line, v)
		}
		out = append(out, line)
	}
	return out, nil
}

// Text returns the cell as the backend would display it, applying the cell's
// number format.
func (s *Sheet) Text(c Cell) (string, error) {
	ref := internal.CellName(c.Row, c.Col)
	v, err := s.file.GetCellValue(s.name, ref)
	if err != nil {
		return "", fmt.Errorf("reading %s!%s: %w", s.name, ref, err)
	}
	return v, nil
}

// SetValue writes one raw value. The backend picks the cell representation
// from the Go type (numbers, bool, string, time.Time, nil for blank).
func (s *Sheet) SetValue(c Cell, v any) error {
	ref := internal.CellName(c.Row, c.Col)
	if err := s.file.SetCellValue(s.name, ref, v); err != nil {
		return fmt.Errorf("writing %s!%s: %w", s.name, ref, err)
	}
	return nil
}

// SetRow writes values left to right starting at c.
func (s *Sheet) SetRow(c Cell, values []any) error {
	ref := internal.CellName(c.Row, c.Col)
	if err := s.file.SetSheetRow(s.name, ref, &values); err != nil {
		return fmt.Errorf("writing row at %s!%s: %w", s.name, ref, err)
	}
	return nil
}

// SetFormula stores a formula; the leading "=" is optional. Formulas are not
// evaluated.
func (s *Sheet) SetFormula(c Cell, formula string) error {
	ref := internal.CellName(c.Row, c.Col)
	if err := s.file.SetCellFormula(s.name, ref, strings.TrimPrefix(formula, "=")); err != nil {
		return fmt.Errorf("writing formula at %s!%s: %w", s.name, ref, err)
	}
	return nil
}
