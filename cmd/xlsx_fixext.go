package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// excelFormat is the container format found in a workbook's leading bytes.
type excelFormat int

const (
	excelFormatUnknown excelFormat = iota
	excelFormatOLE2                // legacy .xls compound document
	excelFormatOOXML               // zip package, .xlsx
)

func (f excelFormat) String() string {
	switch f {
	case excelFormatOLE2:
		return "OLE2"
	case excelFormatOOXML:
		return "OOXML"
	default:
		return "unknown"
	}
}

// ext is the file extension that matches the format.
func (f excelFormat) ext() string {
	switch f {
	case excelFormatOLE2:
		return ".xls"
	case excelFormatOOXML:
		return ".xlsx"
	default:
		return ""
	}
}

var excelSignatures = []struct {
	magic  []byte
	format excelFormat
}{
	{[]byte{0xd0, 0xcf, 0x11, 0xe0}, excelFormatOLE2},
	{[]byte("PK\x03\x04"), excelFormatOOXML},
}

// detectExcelFormat sniffs the first bytes of filePath. Files too short to
// carry a signature are reported as unknown.
func detectExcelFormat(filePath string) (excelFormat, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return excelFormatUnknown, err
	}
	defer f.Close()

	head := make([]byte, 4)
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return excelFormatUnknown, nil
		}
		return excelFormatUnknown, err
	}
	for _, sig := range excelSignatures {
		if bytes.HasPrefix(head, sig.magic) {
			return sig.format, nil
		}
	}
	return excelFormatUnknown, nil
}

// fixExcelExtension renames an .xls/.xlsx file whose extension disagrees
// with its content and returns the path to use from then on. Other files,
// and files whose content is not recognised, are returned unchanged.
func fixExcelExtension(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".xls" && ext != ".xlsx" {
		return filePath, nil
	}

	format, err := detectExcelFormat(filePath)
	if err != nil {
		return filePath, err
	}
	want := format.ext()
	if want == "" || want == ext {
		return filePath, nil
	}

	newPath := strings.TrimSuffix(filePath, filepath.Ext(filePath)) + want
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("cannot rename %s to %s: target already exists", filepath.Base(filePath), filepath.Base(newPath))
	}
	if err := os.Rename(filePath, newPath); err != nil {
		return "", fmt.Errorf("renaming %s: %w", filepath.Base(filePath), err)
	}

	logger.Debug("extension fixed",
		zap.String("from", filePath),
		zap.String("to", newPath),
		zap.Stringer("format", format))
	fmt.Fprintf(os.Stderr, "note: %s is %s format, renamed to %s\n", filepath.Base(filePath), format, filepath.Base(newPath))
	return newPath, nil
}
