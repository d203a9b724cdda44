package grid

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the worksheet excelize creates in a new file.
const defaultSheet = "Sheet1"

// Workbook is an open spreadsheet document.
type Workbook struct {
	file *excelize.File
	// fresh is true until the first AddSheet on a workbook created by New,
	// while the placeholder default sheet is still unused.
	fresh bool
}

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{file: excelize.NewFile(), fresh: true}
}

// Open reads a workbook from a byte stream.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// OpenFile reads a workbook from disk.
func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{file: f}, nil
}

// SheetNames lists the worksheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet returns the worksheet at the 0-based index.
func (w *Workbook) Sheet(index int) (*Sheet, error) {
	names := w.file.GetSheetList()
	if index < 0 || index >= len(names) {
		return nil, fmt.Errorf("%w: index %d (workbook has %d)", ErrNoSheet, index, len(names))
	}
	return &Sheet{file: w.file, name: names[index]}, nil
}

// SheetByName returns the named worksheet.
func (w *Workbook) SheetByName(name string) (*Sheet, error) {
	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("looking up worksheet %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, name)
	}
	return &Sheet{file: w.file, name: name}, nil
}

// AddSheet appends a worksheet and makes it active. On a workbook created by
// New, the placeholder default sheet is dropped the first time a differently
// named sheet is added.
func (w *Workbook) AddSheet(name string) (*Sheet, error) {
	if _, err := w.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("adding worksheet %q: %w", name, err)
	}
	if w.fresh && name != defaultSheet {
		if err := w.file.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("removing placeholder worksheet: %w", err)
		}
	}
	w.fresh = false

	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("looking up worksheet %q: %w", name, err)
	}
	w.file.SetActiveSheet(idx)
	return &Sheet{file: w.file, name: name}, nil
}

// Bytes serializes the workbook as .xlsx.
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

// SaveAs writes the workbook to disk.
func (w *Workbook) SaveAs(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
