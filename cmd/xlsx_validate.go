package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/witanlabs/gridmap/grid"
	"github.com/witanlabs/gridmap/internal"
)

var (
	validateRule       string
	validateMin        float64
	validateMax        float64
	validateValues     []string
	validateFormula    string
	validateAllowBlank bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file> <range> --rule kind",
	Short: "Attach a data-validation rule to a range",
	Long: `Attach a data-validation rule to every cell of a range and save the
workbook. The rule is stored in the file; the spreadsheet application
enforces it and shows the matching error message.

Rules:
  length   text length between --min and --max
  range    decimal value between --min and --max
  list     one of --values
  numbers  numbers only
  custom   --formula must evaluate to TRUE

Addresses without a sheet name refer to the first worksheet.

Examples:
  gridmap xlsx validate report.xlsx "Data!B2:B100" --rule range --min 0 --max 100
  gridmap xlsx validate report.xlsx A2:A50 --rule length --min 1 --max 12 --allow-blank
  gridmap xlsx validate report.xlsx C2:C50 --rule list --values open,closed
  gridmap xlsx validate report.xlsx D2:D50 --rule numbers`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateRule, "rule", "", "Rule kind: length, range, list, numbers or custom")
	validateCmd.Flags().Float64Var(&validateMin, "min", 0, "Lower bound for length and range rules")
	validateCmd.Flags().Float64Var(&validateMax, "max", 0, "Upper bound for length and range rules")
	validateCmd.Flags().StringSliceVar(&validateValues, "values", nil, "Allowed values for list rules")
	validateCmd.Flags().StringVar(&validateFormula, "formula", "", "Formula for custom rules")
	validateCmd.Flags().BoolVar(&validateAllowBlank, "allow-blank", false, "Accept blank cells")
	xlsxCmd.AddCommand(validateCmd)
}

type validateRequest struct {
	rule       string
	min, max   float64
	values     []string
	formula    string
	allowBlank bool
}

// buildValidation turns a rule name and its parameters into a validation
// for the range starting at topLeft.
func buildValidation(req validateRequest, topLeft grid.Cell) (grid.Validation, error) {
	v := grid.Validation{AllowBlank: req.allowBlank}
	switch req.rule {
	case "length", "range":
		if req.min > req.max {
			return v, fmt.Errorf("--min %g is greater than --max %g", req.min, req.max)
		}
		v.Min, v.Max = req.min, req.max
		v.Kind, v.Message = grid.ValidateLength, grid.MsgInvalidLength
		if req.rule == "range" {
			v.Kind, v.Message = grid.ValidateRange, grid.MsgNotInInterval
		}
	case "list":
		if len(req.values) == 0 {
			return v, fmt.Errorf("--values is required for list rules")
		}
		v.Kind, v.Values, v.Message = grid.ValidateEnumeration, req.values, grid.MsgValueNotAllowed
	case "numbers":
		v.Kind, v.Formula, v.Message = grid.ValidateCustom, "ISNUMBER("+topLeft.String()+")", grid.MsgOnlyNumbers
	case "custom":
		if req.formula == "" {
			return v, fmt.Errorf("--formula is required for custom rules")
		}
		v.Kind, v.Formula, v.Message = grid.ValidateCustom, req.formula, grid.MsgValueNotAllowed
	case "":
		return v, fmt.Errorf("--rule is required")
	default:
		return v, fmt.Errorf("unknown rule %q: expected length, range, list, numbers or custom", req.rule)
	}
	return v, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	req := validateRequest{
		rule:       validateRule,
		min:        validateMin,
		max:        validateMax,
		values:     validateValues,
		formula:    validateFormula,
		allowBlank: validateAllowBlank,
	}
	filePath, err := fixExcelExtension(args[0])
	if err != nil {
		return err
	}
	applied, err := validateWorkbook(filePath, args[1], req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return jsonPrint(out, struct {
			File  string `json:"file"`
			Range string `json:"range"`
			Rule  string `json:"rule"`
		}{File: filePath, Range: applied, Rule: req.rule})
	}
	fmt.Fprintf(out, "Added %s rule to %s.\n", req.rule, applied)
	return nil
}

// validateWorkbook attaches the rule to address in the workbook at path,
// saves it in place and returns the qualified range.
func validateWorkbook(path, address string, req validateRequest) (string, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	sheet, region, sheetName, err := targetRange(wb, address)
	if err != nil {
		return "", err
	}
	v, err := buildValidation(req, region.Start)
	if err != nil {
		return "", err
	}
	if err := sheet.AddValidation(region, v); err != nil {
		return "", err
	}
	if err := wb.SaveAs(path); err != nil {
		return "", err
	}

	applied := internal.FormatAddress(sheetName, region.Start.Row, region.Start.Col, region.End.Row, region.End.Col)
	logger.Debug("validation added", zap.String("range", applied), zap.Stringer("kind", v.Kind))
	return applied, nil
}
