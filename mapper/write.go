package mapper

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
)

// SheetWriter is the part of a worksheet WriteRecords uses.
type SheetWriter interface {
	SetRow(start grid.Cell, values []any) error
	SetBold(r grid.Region) error
	AutoFit(r grid.Region) error
}

// TableSheet is the extra surface a sheet needs for writes made with Table.
type TableSheet interface {
	AutoFilter(r grid.Region) error
	FreezePanes(topLeft grid.Cell) error
}

// WriteRecords writes a bold header row at origin and one row per record
// below it, then sizes the columns. It returns the region it wrote; with no
// records that is the header row alone.
func WriteRecords[T any](s SheetWriter, records []T, origin grid.Cell, opts ...Option) (grid.Region, error) {
	o := newOptions(opts)
	if origin.Row < 1 || origin.Col < 1 {
		return grid.Region{}, fmt.Errorf("invalid origin %d,%d: rows and columns start at 1", origin.Row, origin.Col)
	}

	fields, err := ResolveFor[T](o.hiddenNames...)
	if err != nil {
		return grid.Region{}, err
	}
	if len(fields) == 0 {
		return grid.Region{}, &SchemaError{Type: reflect.TypeFor[T](), Reason: "every field is hidden"}
	}

	lastCol := origin.Col + len(fields) - 1
	header := grid.Region{Start: origin, End: grid.Cell{Row: origin.Row, Col: lastCol}}
	written := grid.Region{Start: origin, End: grid.Cell{Row: origin.Row + len(records), Col: lastCol}}

	labels := make([]any, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
	}
	if err := s.SetRow(origin, labels); err != nil {
		return grid.Region{}, err
	}
	if err := s.SetBold(header); err != nil {
		return grid.Region{}, err
	}

	for i, rec := range records {
		row := rowValues(reflect.ValueOf(rec), fields)
		if err := s.SetRow(grid.Cell{Row: origin.Row + 1 + i, Col: origin.Col}, row); err != nil {
			return grid.Region{}, err
		}
	}

	if err := s.AutoFit(written); err != nil {
		return grid.Region{}, err
	}
	if o.table {
		if err := makeTable(s, written); err != nil {
			return grid.Region{}, err
		}
	}

	o.logger.Debug("records written",
		zap.String("region", written.String()),
		zap.Int("rows", len(records)),
		zap.Int("columns", len(fields)))
	return written, nil
}

func makeTable(s SheetWriter, written grid.Region) error {
	ts, ok := s.(TableSheet)
	if !ok {
		return fmt.Errorf("%T cannot filter or freeze panes", s)
	}
	if err := ts.AutoFilter(written); err != nil {
		return err
	}
	return ts.FreezePanes(grid.Cell{Row: written.Start.Row + 1, Col: 1})
}

// rowValues extracts the raw values of one record. A nil record pointer
// yields a blank row; nil field pointers yield blank cells.
func rowValues(rv reflect.Value, fields []Field) []any {
	row := make([]any, len(fields))
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return row
		}
		rv = rv.Elem()
	}
	for j, f := range fields {
		fv := rv.Field(f.index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		row[j] = fv.Interface()
	}
	return row
}
