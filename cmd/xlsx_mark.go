package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
	"github.com/witanlabs/gridmap/mapper"
)

var (
	markColumn string
	markInput  string
	markSheet  sheetFlags
)

var markCmd = &cobra.Command{
	Use:   "mark <file> --column N",
	Short: "Write lines of text down a column in red",
	Long: `Write each line of an input file into one cell of a column, starting at the
first data row, and save the workbook.

A line is broken after every '.', the row is made tall enough to show every
piece, and the text is set in red with wrapping on. Empty lines are skipped.
The input defaults to the diff output file, so a diff can be written back
next to the data it came from.

Examples:
  gridmap xlsx mark report.xlsx --column F
  gridmap xlsx mark report.xlsx --column 6 --start-row 3 --input notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runMark,
}

func init() {
	markCmd.Flags().StringVarP(&markColumn, "column", "c", "", "Column as a 1-based number or letters")
	markCmd.Flags().StringVarP(&markInput, "input", "i", "", "File with one item per line (default from config, result.txt)")
	markSheet.bind(markCmd.Flags())
	xlsxCmd.AddCommand(markCmd)
}

func runMark(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	col, err := columnArg(markColumn)
	if err != nil {
		return err
	}
	sheetIndex, startRow, err := markSheet.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	input := cfg.Output
	if markInput != "" {
		input = markInput
	}

	items, err := readLines(input)
	if err != nil {
		return err
	}

	filePath, err := fixExcelExtension(args[0])
	if err != nil {
		return err
	}
	region, err := markWorkbook(filePath, sheetIndex, grid.Cell{Row: startRow, Col: col}, items)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return jsonPrint(out, struct {
			File   string `json:"file"`
			Region string `json:"region"`
			Items  int    `json:"items"`
		}{File: filePath, Region: region.String(), Items: len(items)})
	}
	if region.Empty() {
		fmt.Fprintln(out, "Nothing to mark.")
		return nil
	}
	fmt.Fprintf(out, "Marked %d cells in %s.\n", len(items), region)
	return nil
}

func markWorkbook(path string, sheetIndex int, start grid.Cell, items []string) (grid.Region, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return grid.Region{}, err
	}
	defer wb.Close()

	sheet, err := wb.Sheet(sheetIndex)
	if err != nil {
		return grid.Region{}, err
	}
	region, err := mapper.MarkColumn(sheet, items, start)
	if err != nil {
		return grid.Region{}, err
	}
	if region.Empty() {
		return region, nil
	}
	if err := wb.SaveAs(path); err != nil {
		return grid.Region{}, err
	}
	logger.Debug("column marked", zap.String("file", path), zap.String("region", region.String()))
	return region, nil
}

// readLines returns the non-empty lines of a text file.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
