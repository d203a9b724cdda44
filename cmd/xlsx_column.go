package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/witanlabs/gridmap/grid"
)

var (
	columnColumn string
	columnSheet  sheetFlags
)

var columnCmd = &cobra.Command{
	Use:   "column <file> --column N",
	Short: "Print the non-blank values of one column",
	Long: `Print the values of one column from the first data row down to the last
row of the worksheet, skipping blank cells.

Exits with status 2 when the column has no values.

Examples:
  gridmap xlsx column report.xlsx --column 3
  gridmap xlsx column report.xlsx --column C --start-row 5
  gridmap xlsx --json column report.xlsx --column A`,
	Args: cobra.ExactArgs(1),
	RunE: runColumn,
}

func init() {
	columnCmd.Flags().StringVarP(&columnColumn, "column", "c", "", "Column as a 1-based number or letters")
	columnSheet.bind(columnCmd.Flags())
	xlsxCmd.AddCommand(columnCmd)
}

func runColumn(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	filePath := args[0]

	col, err := columnArg(columnColumn)
	if err != nil {
		return err
	}
	sheet, startRow, err := columnSheet.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	values, err := readColumnFile(filePath, sheet, grid.Cell{Row: startRow, Col: col})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		if err := jsonPrint(out, values); err != nil {
			return err
		}
	} else {
		for _, v := range values {
			fmt.Fprintln(out, v)
		}
	}

	if len(values) == 0 {
		return &ExitError{Code: 2}
	}
	return nil
}
