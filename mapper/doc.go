// Package mapper moves typed records in and out of spreadsheet grids.
//
// A record is any Go struct. Its exported fields, in declaration order, are
// the grid's columns; the declaration order is the column contract with
// files written earlier, so reordering fields changes the layout. Fields
// tagged `grid:"-"` are ignored.
//
//	type Order struct {
//	    OrderID   int
//	    Customer  string
//	    OrderDate time.Time
//	    Discount  *float64 // nullable: blank cells read back as nil
//	}
//
// # Writing
//
// [WriteRecords] writes a bold header row of labels derived from the field
// names ("OrderDate" becomes "Order Date") followed by one row per record,
// then auto-sizes the written columns:
//
//	region, err := mapper.WriteRecords(sheet, orders, grid.Cell{Row: 1, Col: 1},
//	    mapper.HideFields("Discount"))
//
// # Reading
//
// [ReadRecords] reads rows starting at a data cell until the sheet's last
// row, converting each cell to the field's type. Conversion is best effort:
// a cell that cannot be converted leaves its field at the zero value and the
// row is still returned.
//
// [ExpectHidden] turns on a strict header check against the row above the
// data: each listed field ordinal must be absent from the header and every
// other field's label must be present. A mismatch returns
// [ErrHeaderMismatch] and no records. Note that the write side hides fields
// by name while the read side names them by ordinal.
//
// # Columns
//
// [ReadColumn] returns one column's non-blank values as text and
// [MarkColumn] writes a list of notes down a column in red.
package mapper
