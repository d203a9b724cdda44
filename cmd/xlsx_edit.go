package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
	"github.com/witanlabs/gridmap/internal"
)

var (
	editFormat string
	editCells  string
	editMerge  bool
)

// editCell is one requested change. Value is JSON (number, bool, string or
// null); Formula, when set, takes precedence over Value. Merge joins a range
// into one cell after it is written.
type editCell struct {
	Address string          `json:"address"`
	Value   json.RawMessage `json:"value,omitempty"`
	Formula string          `json:"formula,omitempty"`
	Format  string          `json:"format,omitempty"`
	Merge   bool            `json:"merge,omitempty"`
}

var editCmd = &cobra.Command{
	Use:   "edit <file> [address=value ...] [flags]",
	Short: "Edit cell values and formulas in a workbook",
	Long: `Set cell values or formulas in a workbook and save the result.

Each edit is specified as address=value. Use a leading = for formulas (double =).
Addresses without a sheet name refer to the first worksheet. A range address
sets every cell in the range. Formulas are stored, not calculated.

Use --format/-f to apply an Excel number format to all cells. With --format,
bare addresses (no =value) perform format-only edits.

Use --merge to merge each edited range into a single cell; the value lands
in its top-left cell.

Use --cells to pass a JSON array of edits for full per-cell control (including
per-cell formats). --cells and --format are mutually exclusive, and positional
edit args are not allowed with --cells.

Examples:
  gridmap xlsx edit report.xlsx "Sheet1!A1=42"
  gridmap xlsx edit report.xlsx "Sheet1!A1=42" "Sheet1!B2=hello"
  gridmap xlsx edit report.xlsx "Sheet1!A1==SUM(B1:B10)"   # formula (double =)
  gridmap xlsx edit report.xlsx "Sheet1!C3=true"            # boolean
  gridmap xlsx edit report.xlsx "Sheet1!D4=null"            # clear cell
  gridmap xlsx edit report.xlsx "Sheet1!A1=42" -f "#,##0.00"        # value + format
  gridmap xlsx edit report.xlsx "Sheet1!A1:A9" -f "0.00%"           # format-only
  gridmap xlsx edit report.xlsx "Sheet1!A1:D1=Quarterly totals" --merge
  gridmap xlsx edit report.xlsx --cells '[{"address":"Sheet1!A1","value":42,"format":"#,##0.00"}]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVarP(&editFormat, "format", "f", "", "Excel number format to apply to all cells")
	editCmd.Flags().StringVar(&editCells, "cells", "", "JSON array of cell edits (full per-cell control)")
	editCmd.Flags().BoolVar(&editMerge, "merge", false, "Merge each edited range into one cell")
	xlsxCmd.AddCommand(editCmd)
}

// parseEditCell parses "Sheet1!A1=42" into an editCell.
// If the value starts with "=", it's treated as a formula.
// Otherwise: number → bool → null → string.
// When globalFormat is set, bare addresses (no =value) are allowed for format-only edits.
func parseEditCell(arg, globalFormat string) (editCell, error) {
	// Split on the first '=' after '!' so sheet names containing '=' are preserved.
	start := strings.IndexByte(arg, '!')
	if start < 0 {
		start = 0
	}
	idx := strings.IndexByte(arg[start:], '=')
	if idx < 0 {
		if globalFormat == "" {
			return editCell{}, fmt.Errorf("invalid edit %q: expected address=value (use --format for format-only edits)", arg)
		}
		if arg == "" {
			return editCell{}, fmt.Errorf("invalid edit %q: empty address", arg)
		}
		return editCell{Address: arg, Format: globalFormat}, nil
	}
	idx += start
	address := arg[:idx]
	remainder := arg[idx+1:]

	if address == "" {
		return editCell{}, fmt.Errorf("invalid edit %q: empty address", arg)
	}

	if strings.HasPrefix(remainder, "=") {
		return editCell{Address: address, Formula: remainder, Format: globalFormat}, nil
	}

	if _, err := strconv.ParseFloat(remainder, 64); err == nil {
		return editCell{Address: address, Value: json.RawMessage(remainder), Format: globalFormat}, nil
	}

	lower := strings.ToLower(remainder)
	if lower == "true" || lower == "false" {
		return editCell{Address: address, Value: json.RawMessage(lower), Format: globalFormat}, nil
	}

	if lower == "null" {
		return editCell{Address: address, Value: json.RawMessage("null"), Format: globalFormat}, nil
	}

	raw, _ := json.Marshal(remainder)
	return editCell{Address: address, Value: json.RawMessage(raw), Format: globalFormat}, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	var cells []editCell
	if editCells != "" {
		if editFormat != "" {
			return fmt.Errorf("--cells and --format are mutually exclusive")
		}
		if len(args) > 1 {
			return fmt.Errorf("positional edit args are not allowed with --cells")
		}
		if err := json.Unmarshal([]byte(editCells), &cells); err != nil {
			return fmt.Errorf("invalid --cells JSON: %w", err)
		}
		if len(cells) == 0 {
			return fmt.Errorf("--cells array must not be empty")
		}
	} else {
		if len(args) < 2 {
			return fmt.Errorf("at least one edit argument is required")
		}
		cells = make([]editCell, 0, len(args)-1)
		for _, arg := range args[1:] {
			cell, err := parseEditCell(arg, editFormat)
			if err != nil {
				return err
			}
			cell.Merge = editMerge
			cells = append(cells, cell)
		}
	}

	filePath, err := fixExcelExtension(args[0])
	if err != nil {
		return err
	}
	touched, err := editWorkbook(filePath, cells)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return jsonPrint(out, struct {
			File    string   `json:"file"`
			Touched []string `json:"touched"`
		}{File: filePath, Touched: touched})
	}
	fmt.Fprintf(out, "Edit applied. %d cells updated.\n", len(touched))
	return nil
}

// editWorkbook applies cells to the workbook at path, saves it in place and
// returns the addresses of the cells written.
func editWorkbook(path string, cells []editCell) ([]string, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var touched []string
	for _, c := range cells {
		addrs, err := applyEdit(wb, c)
		if err != nil {
			return nil, fmt.Errorf("edit %s: %w", c.Address, err)
		}
		touched = append(touched, addrs...)
	}

	if err := wb.SaveAs(path); err != nil {
		return nil, err
	}
	logger.Debug("workbook edited", zap.String("file", path), zap.Int("cells", len(touched)))
	return touched, nil
}

func applyEdit(wb *grid.Workbook, c editCell) ([]string, error) {
	sheet, region, sheetName, err := targetRange(wb, c.Address)
	if err != nil {
		return nil, err
	}
	sr, sc, er, ec := region.Start.Row, region.Start.Col, region.End.Row, region.End.Col

	var value any
	if c.Formula == "" && c.Value != nil {
		if err := json.Unmarshal(c.Value, &value); err != nil {
			return nil, fmt.Errorf("invalid value %s: %w", string(c.Value), err)
		}
	}

	var touched []string
	if c.Formula != "" || c.Value != nil {
		lastRow, lastCol := er, ec
		if c.Merge {
			lastRow, lastCol = sr, sc
		}
		for row := sr; row <= lastRow; row++ {
			for col := sc; col <= lastCol; col++ {
				cell := grid.Cell{Row: row, Col: col}
				if c.Formula != "" {
					err = sheet.SetFormula(cell, c.Formula)
				} else {
					err = sheet.SetValue(cell, value)
				}
				if err != nil {
					return nil, err
				}
				touched = append(touched, internal.FormatAddress(sheetName, row, col, row, col))
			}
		}
	}

	if c.Merge && (er > sr || ec > sc) {
		if err := sheet.Merge(region); err != nil {
			return nil, err
		}
		touched = append(touched[:0], internal.FormatAddress(sheetName, sr, sc, er, ec))
	}

	if c.Format != "" {
		if err := sheet.ApplyStyle(region, grid.Style{NumberFormat: c.Format}); err != nil {
			return nil, err
		}
		if len(touched) == 0 {
			touched = append(touched, internal.FormatAddress(sheetName, sr, sc, er, ec))
		}
	}
	return touched, nil
}
