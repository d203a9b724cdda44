package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/witanlabs/gridmap/grid"
	"github.com/witanlabs/gridmap/internal"
)

var jsonOutput bool

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Spreadsheet commands",
	Long: `Operate on Excel workbooks (.xlsx, .xlsm) locally.

Commands:
  read      Print every cell of a worksheet.
  column    Print the non-blank values of one column.
  edit      Update cell values, formulas, or formats and save the workbook.
  mark      Write lines of text down a column in red, one per row.
  validate  Attach a data-validation rule to a range.

Output:
  default  Human-friendly summaries
  --json   JSON for automation

Examples:
  gridmap xlsx read report.xlsx
  gridmap xlsx --json column report.xlsx --column C
  gridmap xlsx mark report.xlsx --column F --input result.txt`,
}

func init() {
	xlsxCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-formatted summaries")
	rootCmd.AddCommand(xlsxCmd)
}

// sheetFlags are the worksheet/start-row flags shared by the commands that
// read a column or region. Unset flags fall back to the config file.
type sheetFlags struct {
	sheet    int
	startRow int
}

func (f *sheetFlags) bind(fs *pflag.FlagSet) {
	fs.IntVar(&f.sheet, "sheet", 0, "Worksheet index, 0-based (default from config)")
	fs.IntVar(&f.startRow, "start-row", 2, "First data row, 1-based (default from config)")
}

func (f *sheetFlags) resolve(fs *pflag.FlagSet) (sheet, startRow int, err error) {
	sheet, startRow = cfg.Sheet, cfg.StartRow
	if fs.Changed("sheet") {
		sheet = f.sheet
	}
	if fs.Changed("start-row") {
		startRow = f.startRow
	}
	if sheet < 0 {
		return 0, 0, fmt.Errorf("--sheet must be >= 0, got %d", sheet)
	}
	if startRow < 1 {
		return 0, 0, fmt.Errorf("--start-row must be >= 1, got %d", startRow)
	}
	return sheet, startRow, nil
}

// checkWorkbook rejects files the backend cannot read before opening them.
func checkWorkbook(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	format, err := detectExcelFormat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if format == excelFormatOLE2 {
		return fmt.Errorf("%s is a legacy .xls (OLE2) workbook: save it as .xlsx first", path)
	}
	return nil
}

// openWorkbook checks and opens a workbook from disk.
func openWorkbook(path string) (*grid.Workbook, error) {
	if err := checkWorkbook(path); err != nil {
		return nil, err
	}
	return grid.OpenFile(path)
}

// columnArg parses a --column value given as a number or letters.
func columnArg(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("--column is required")
	}
	return internal.ParseColumn(s)
}

// targetRange resolves an address like "Sheet1!A1:B2" in wb. Addresses
// without a sheet name refer to the first worksheet.
func targetRange(wb *grid.Workbook, address string) (*grid.Sheet, grid.Region, string, error) {
	if !strings.Contains(address, "!") {
		names := wb.SheetNames()
		if len(names) == 0 {
			return nil, grid.Region{}, "", grid.ErrNoSheet
		}
		address = names[0] + "!" + address
	}
	sheetName, sr, sc, er, ec, err := internal.ParseRange(address)
	if err != nil {
		return nil, grid.Region{}, "", err
	}
	sheet, err := wb.SheetByName(sheetName)
	if err != nil {
		return nil, grid.Region{}, "", err
	}
	region := grid.Region{Start: grid.Cell{Row: sr, Col: sc}, End: grid.Cell{Row: er, Col: ec}}
	return sheet, region, sheetName, nil
}
