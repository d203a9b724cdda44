package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
	"github.com/witanlabs/gridmap/internal"
	"github.com/witanlabs/gridmap/mapper"
)

var (
	diffFirstColumn  string
	diffSecondColumn string
	diffOutput       string
	diffSheet        sheetFlags
)

var diffCmd = &cobra.Command{
	Use:   "diff [first.xlsx second.xlsx]",
	Short: "List values of one column that are missing from another",
	Long: `Compare one column of a workbook against one column of another and write
the values found only in the first, one per line.

Missing file paths and column numbers are asked for on stdin. Columns are
1-based numbers. Blank cells are ignored; repeated values are written once,
in the order they first appear.

Examples:
  gridmap diff
  gridmap diff old.xlsx new.xlsx --first-column 1 --second-column 3
  gridmap diff old.xlsx new.xlsx --first-column 2 --second-column 2 --output missing.txt`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffFirstColumn, "first-column", "", "Column number in the first workbook, 1-based")
	diffCmd.Flags().StringVar(&diffSecondColumn, "second-column", "", "Column number in the second workbook, 1-based")
	diffCmd.Flags().StringVarP(&diffOutput, "output", "o", "", "Result file (default from config, result.txt)")
	diffSheet.bind(diffCmd.Flags())
	rootCmd.AddCommand(diffCmd)
}

// diffOptions is a fully resolved diff request.
type diffOptions struct {
	firstPath    string
	firstColumn  int
	secondPath   string
	secondColumn int
	sheet        int
	startRow     int
	output       string
}

func runDiff(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	sheet, startRow, err := diffSheet.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	opts := diffOptions{sheet: sheet, startRow: startRow, output: cfg.Output}
	if diffOutput != "" {
		opts.output = diffOutput
	}

	var firstPath, secondPath string
	if len(args) > 0 {
		firstPath = args[0]
	}
	if len(args) > 1 {
		secondPath = args[1]
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if opts.firstPath, err = p.valueOr(firstPath, "First file path: "); err != nil {
		return err
	}
	if opts.firstColumn, err = p.columnOr(diffFirstColumn, "Column number: "); err != nil {
		return err
	}
	if opts.secondPath, err = p.valueOr(secondPath, "Second file path: "); err != nil {
		return err
	}
	if opts.secondColumn, err = p.columnOr(diffSecondColumn, "Column number: "); err != nil {
		return err
	}

	remaining, total, err := diffColumns(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Done.")
	fmt.Fprintln(out, internal.FormatDiffSummary(remaining, total))
	return nil
}

// diffColumns writes first-minus-second to opts.output and reports how many
// values were written and how many the first column held.
func diffColumns(opts diffOptions) (remaining, total int, err error) {
	first, err := readColumnFile(opts.firstPath, opts.sheet, grid.Cell{Row: opts.startRow, Col: opts.firstColumn})
	if err != nil {
		return 0, 0, err
	}
	second, err := readColumnFile(opts.secondPath, opts.sheet, grid.Cell{Row: opts.startRow, Col: opts.secondColumn})
	if err != nil {
		return 0, 0, err
	}

	result := internal.Except(first, second)
	if err := internal.WriteLines(opts.output, result); err != nil {
		return 0, 0, err
	}

	logger.Debug("diff written",
		zap.String("output", opts.output),
		zap.Int("first", len(first)),
		zap.Int("second", len(second)),
		zap.Int("remaining", len(result)))
	return len(result), len(first), nil
}

// readColumnFile reads the non-blank values of one column of a workbook on
// disk.
func readColumnFile(path string, sheet int, start grid.Cell) ([]string, error) {
	if err := checkWorkbook(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	defer f.Close()

	values, err := mapper.ReadColumnFrom(f, sheet, start)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Debug("column read",
		zap.String("file", path),
		zap.String("start", start.String()),
		zap.Int("values", len(values)))
	return values, nil
}

// prompter asks for values that were not supplied as arguments or flags.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no input for %q", strings.TrimSpace(label))
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) valueOr(given, label string) (string, error) {
	if given != "" {
		return given, nil
	}
	v, err := p.ask(label)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("%s is required", strings.TrimSuffix(strings.TrimSpace(label), ":"))
	}
	return v, nil
}

func (p *prompter) columnOr(given, label string) (int, error) {
	s, err := p.valueOr(given, label)
	if err != nil {
		return 0, err
	}
	return parseColumnNumber(s)
}

// parseColumnNumber accepts a 1-based column number.
func parseColumnNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid column number %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid column number %d: columns start at 1", n)
	}
	return n, nil
}
