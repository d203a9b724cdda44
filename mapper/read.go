package mapper

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
)

// SheetReader is the part of a worksheet the readers use.
type SheetReader interface {
	Dimension() (grid.Region, error)
	Values(r grid.Region) ([][]any, error)
}

// ReadRecords reads one record per row from start down to the sheet's last
// row (or the bound set with Until). Column j of the region feeds the field
// with ordinal j; columns past the last field are ignored. A cell that does
// not convert leaves its field at the zero value. Rows are never skipped,
// even when blank.
//
// With ExpectHidden the header row above start is checked first and a
// mismatch returns nil records and an error matching ErrHeaderMismatch.
func ReadRecords[T any](s SheetReader, start grid.Cell, opts ...Option) ([]T, error) {
	o := newOptions(opts)
	if start.Row < 1 || start.Col < 1 {
		return nil, fmt.Errorf("invalid start %d,%d: rows and columns start at 1", start.Row, start.Col)
	}

	fields, err := ResolveFor[T]()
	if err != nil {
		return nil, err
	}

	dim, err := s.Dimension()
	if err != nil {
		return nil, err
	}
	last := dim.End
	if o.end.Row > 0 {
		last.Row = o.end.Row
	}
	if o.end.Col > 0 {
		last.Col = o.end.Col
	}

	if o.checkHeader {
		if err := checkHeader(s, fields, start, last.Col, o.hiddenOrdinals); err != nil {
			o.logger.Debug("header rejected", zap.Error(err))
			return nil, err
		}
	}

	rows := last.Row - start.Row + 1
	if rows <= 0 {
		return []T{}, nil
	}
	width := min(last.Col-start.Col+1, len(fields))

	var values [][]any
	if width > 0 {
		values, err = s.Values(grid.Region{Start: start, End: grid.Cell{Row: last.Row, Col: start.Col + width - 1}})
		if err != nil {
			return nil, err
		}
	}

	recordType := reflect.TypeFor[T]()
	isPtr := recordType.Kind() == reflect.Pointer
	structType := recordType
	if isPtr {
		structType = recordType.Elem()
	}

	out := make([]T, 0, rows)
	skipped := 0
	for i := range rows {
		p := reflect.New(structType)
		for j := 0; j < width; j++ {
			v, err := Coerce(values[i][j], fields[j].Type)
			if err != nil {
				skipped++
				o.logger.Debug("cell left at default",
					zap.String("cell", grid.Cell{Row: start.Row + i, Col: start.Col + j}.String()),
					zap.String("field", fields[j].Name),
					zap.Error(err))
				continue
			}
			p.Elem().Field(fields[j].index).Set(v)
		}
		if isPtr {
			out = append(out, p.Interface().(T))
		} else {
			out = append(out, p.Elem().Interface().(T))
		}
	}

	o.logger.Debug("records read",
		zap.Int("rows", len(out)),
		zap.Int("columns", width),
		zap.Int("unconverted_cells", skipped))
	return out, nil
}

// checkHeader enforces: a field is hidden exactly when its label is missing
// from the header row above start.
func checkHeader(s SheetReader, fields []Field, start grid.Cell, lastCol int, hidden []int) error {
	present := make(map[string]bool)
	if start.Row > 1 && lastCol >= start.Col {
		header, err := s.Values(grid.Region{
			Start: grid.Cell{Row: start.Row - 1, Col: start.Col},
			End:   grid.Cell{Row: start.Row - 1, Col: lastCol},
		})
		if err != nil {
			return err
		}
		for _, row := range header {
			for _, v := range row {
				if v != nil {
					present[Stringify(v)] = true
				}
			}
		}
	}

	isHidden := make(map[int]bool, len(hidden))
	for _, ord := range hidden {
		isHidden[ord] = true
	}

	for _, f := range fields {
		if isHidden[f.Ordinal] == present[f.Label] {
			return &ConformanceError{Field: f.Name, Label: f.Label, Hidden: isHidden[f.Ordinal]}
		}
	}
	return nil
}
