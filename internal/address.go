package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRefRe matches a cell reference like A1, $B$2, AA100
var cellRefRe = regexp.MustCompile(`^\$?([A-Z]+)\$?(\d+)$`)

// columnRe matches a bare column given as letters (C) or a 1-based number (3).
var columnRe = regexp.MustCompile(`^(?:([A-Z]+)|(\d+))$`)

// ParseRange parses an address like "Sheet1!A1:Z50" and returns
// (sheet, startRow, startCol, endRow, endCol) in 1-indexed form.
func ParseRange(address string) (sheet string, startRow, startCol, endRow, endCol int, err error) {
	sheetPart, rangePart, hasSheet := strings.Cut(address, "!")
	if !hasSheet {
		return "", 0, 0, 0, 0, fmt.Errorf("address must include sheet name (e.g. Sheet1!A1:B2), got %q", address)
	}

	sheet = strings.Trim(sheetPart, "'")

	fromRef, toRef, hasColon := strings.Cut(rangePart, ":")
	if !hasColon {
		toRef = fromRef // single cell
	}

	startRow, startCol, err = ParseCell(fromRef)
	if err != nil {
		return "", 0, 0, 0, 0, fmt.Errorf("invalid start of range %q: %w", fromRef, err)
	}
	endRow, endCol, err = ParseCell(toRef)
	if err != nil {
		return "", 0, 0, 0, 0, fmt.Errorf("invalid end of range %q: %w", toRef, err)
	}

	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}

	return sheet, startRow, startCol, endRow, endCol, nil
}

// ParseCell parses a single reference like "B2" or "$B$2" into a 1-indexed
// (row, col) pair.
func ParseCell(ref string) (row, col int, err error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	m := cellRefRe.FindStringSubmatch(strings.ToUpper(ref))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 || row > excelize.TotalRows {
		return 0, 0, fmt.Errorf("invalid cell reference %q: rows run from 1 to %d", ref, excelize.TotalRows)
	}
	col, err = letterToCol(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell reference %q: %w", ref, err)
	}
	return row, col, nil
}

// ParseColumn accepts a column as letters ("C") or as a 1-based number ("3").
func ParseColumn(s string) (int, error) {
	m := columnRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("invalid column %q: expected a number (3) or letters (C)", s)
	}
	if m[1] != "" {
		col, err := letterToCol(m[1])
		if err != nil {
			return 0, fmt.Errorf("invalid column %q: %w", s, err)
		}
		return col, nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < excelize.MinColumns || n > excelize.MaxColumns {
		return 0, fmt.Errorf("invalid column %q: columns run from 1 to %d", s, excelize.MaxColumns)
	}
	return n, nil
}

// ColToLetter converts a 1-indexed column number to Excel letter(s)
func ColToLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// CellName builds a sheet-less reference like "C5".
func CellName(row, col int) string {
	return ColToLetter(col) + strconv.Itoa(row)
}

// RangeRef builds a sheet-less range like "A1:Z50", collapsing to a single
// cell when both corners match.
func RangeRef(startRow, startCol, endRow, endCol int) string {
	from := CellName(startRow, startCol)
	to := CellName(endRow, endCol)
	if from == to {
		return from
	}
	return from + ":" + to
}

// FormatAddress builds an address string like "Sheet1!A1:Z50"
func FormatAddress(sheet string, startRow, startCol, endRow, endCol int) string {
	return sheet + "!" + RangeRef(startRow, startCol, endRow, endCol)
}

// maxColumnLetters is the length of the last column name, "XFD".
const maxColumnLetters = 3

func letterToCol(letters string) (int, error) {
	if len(letters) > maxColumnLetters {
		return 0, fmt.Errorf("column %s is past XFD: %w", letters, excelize.ErrColumnNumber)
	}
	col, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", letters, err)
	}
	return col, nil
}
