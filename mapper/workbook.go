package mapper

import (
	"io"

	"github.com/witanlabs/gridmap/grid"
)

// GenerateWorkbook writes records to a new single-sheet workbook and returns
// it serialized as .xlsx.
func GenerateWorkbook[T any](records []T, sheetName string, origin grid.Cell, opts ...Option) ([]byte, error) {
	wb := grid.New()
	defer wb.Close()

	sheet, err := wb.AddSheet(sheetName)
	if err != nil {
		return nil, err
	}
	if _, err := WriteRecords(sheet, records, origin, opts...); err != nil {
		return nil, err
	}
	return wb.Bytes()
}

// ReadRecordsFrom opens a workbook from r and reads records from the sheet at
// sheetIndex.
func ReadRecordsFrom[T any](r io.Reader, sheetIndex int, start grid.Cell, opts ...Option) ([]T, error) {
	wb, err := grid.Open(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(sheetIndex)
	if err != nil {
		return nil, err
	}
	return ReadRecords[T](sheet, start, opts...)
}

// ReadColumnFrom opens a workbook from r and reads one column of the sheet at
// sheetIndex.
func ReadColumnFrom(r io.Reader, sheetIndex int, start grid.Cell) ([]string, error) {
	wb, err := grid.Open(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(sheetIndex)
	if err != nil {
		return nil, err
	}
	return ReadColumn(sheet, start)
}

// ReadAllFrom opens a workbook from r and returns every cell of the sheet at
// sheetIndex as text.
func ReadAllFrom(r io.Reader, sheetIndex int) ([][]string, error) {
	wb, err := grid.Open(r)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(sheetIndex)
	if err != nil {
		return nil, err
	}
	return ReadAll(sheet)
}
