// Package grid is the spreadsheet backend used by the mapper and the CLI.
//
// It wraps an excelize workbook and exposes what the rest of the module needs
// from a document: opening from a byte stream or file, picking worksheets by
// index, reporting a worksheet's data extent, reading and writing raw cell
// values, and a pass-through for cosmetics and data-validation rules.
//
// Rows and columns are 1-based throughout. Raw cell values are one of nil
// (blank), string, float64 or bool.
//
// A Workbook is not safe for concurrent use. Open it, work on it, and Close it
// on every path:
//
//	wb, err := grid.Open(r)
//	if err != nil {
//		return err
//	}
//	defer wb.Close()
package grid

import (
	"errors"
	"fmt"

	"github.com/witanlabs/gridmap/internal"
)

// ErrNoSheet is returned when a worksheet index or name does not exist.
var ErrNoSheet = errors.New("worksheet not found")

// Cell is a 1-based (row, column) position.
type Cell struct {
	Row int
	Col int
}

// String renders the cell as an A1 reference.
func (c Cell) String() string {
	return internal.CellName(c.Row, c.Col)
}

// Region is a rectangular, 1-based, inclusive cell range. The zero Region
// means "no data".
type Region struct {
	Start Cell
	End   Cell
}

// NewRegion returns the region spanning both corners in normalized order.
func NewRegion(a, b Cell) Region {
	if a.Row > b.Row {
		a.Row, b.Row = b.Row, a.Row
	}
	if a.Col > b.Col {
		a.Col, b.Col = b.Col, a.Col
	}
	return Region{Start: a, End: b}
}

// Empty reports whether the region holds no cells.
func (r Region) Empty() bool {
	return r.Start.Row < 1 || r.Start.Col < 1 || r.End.Row < r.Start.Row || r.End.Col < r.Start.Col
}

// Rows is the number of rows in the region.
func (r Region) Rows() int {
	if r.Empty() {
		return 0
	}
	return r.End.Row - r.Start.Row + 1
}

// Cols is the number of columns in the region.
func (r Region) Cols() int {
	if r.Empty() {
		return 0
	}
	return r.End.Col - r.Start.Col + 1
}

// String renders the region as "A1:C4" (or "A1" for a single cell).
func (r Region) String() string {
	return internal.RangeRef(r.Start.Row, r.Start.Col, r.End.Row, r.End.Col)
}

func (r Region) check() error {
	if r.Empty() {
		return fmt.Errorf("invalid region %s", r)
	}
	return nil
}
