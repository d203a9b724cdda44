package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ValidationKind selects the constraint a Validation describes.
type ValidationKind int

const (
	// ValidateLength bounds the text length of a cell (Min..Max).
	ValidateLength ValidationKind = iota
	// ValidateRange bounds a decimal value (Min..Max).
	ValidateRange
	// ValidateEnumeration restricts a cell to Values.
	ValidateEnumeration
	// ValidateCustom accepts a cell when Formula is true.
	ValidateCustom
)

func (k ValidationKind) String() string {
	switch k {
	case ValidateLength:
		return "length"
	case ValidateRange:
		return "range"
	case ValidateEnumeration:
		return "enumeration"
	case ValidateCustom:
		return "custom"
	default:
		return fmt.Sprintf("ValidationKind(%d)", int(k))
	}
}

// Message is the title and body shown when a cell violates a rule.
type Message struct {
	Title string
	Body  string
}

// Stock messages for the common constraints.
var (
	MsgNotInInterval   = Message{Title: "Not in interval", Body: "Value is not in wanted interval."}
	MsgInvalidLength   = Message{Title: "Invalid length", Body: "Value does not have wanted length."}
	MsgValueNotAllowed = Message{Title: "Value not allowed", Body: "Value is not allowed."}
	MsgOnlyNumbers     = Message{Title: "Only numbers", Body: "Cell should contain only numbers."}
)

// Validation describes a data-validation rule. Only the description is
// stored; the spreadsheet application enforces it.
type Validation struct {
	Kind       ValidationKind
	Min, Max   float64
	Values     []string
	Formula    string
	Message    Message
	AllowBlank bool
}

// AddValidation attaches v to every cell of r.
func (s *Sheet) AddValidation(r Region, v Validation) error {
	if err := r.check(); err != nil {
		return err
	}

	dv := excelize.NewDataValidation(v.AllowBlank)
	dv.SetSqref(r.String())

	var err error
	switch v.Kind {
	case ValidateLength:
		err = dv.SetRange(v.Min, v.Max, excelize.DataValidationTypeTextLength, excelize.DataValidationOperatorBetween)
	case ValidateRange:
		err = dv.SetRange(v.Min, v.Max, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorBetween)
	case ValidateEnumeration:
		if len(v.Values) == 0 {
			return fmt.Errorf("enumeration rule for %s!%s has no values", s.name, r)
		}
		err = dv.SetDropList(v.Values)
	case ValidateCustom:
		if v.Formula == "" {
			return fmt.Errorf("custom rule for %s!%s has no formula", s.name, r)
		}
		err = dv.SetRange(v.Formula, "", excelize.DataValidationTypeCustom, excelize.DataValidationOperatorEqual)
	default:
		return fmt.Errorf("unknown validation kind %s", v.Kind)
	}
	if err != nil {
		return fmt.Errorf("building %s rule for %s!%s: %w", v.Kind, s.name, r, err)
	}

	if v.Message != (Message{}) {
		dv.SetError(excelize.DataValidationErrorStyleStop, v.Message.Title, v.Message.Body)
		dv.SetInput(v.Message.Title, v.Message.Body)
	}

	if err := s.file.AddDataValidation(s.name, dv); err != nil {
		return fmt.Errorf("adding %s rule to %s!%s: %w", v.Kind, s.name, r, err)
	}
	return nil
}

// Validations lists the rules attached to the worksheet as (range, kind) pairs.
func (s *Sheet) Validations() (map[string]string, error) {
	dvs, err := s.file.GetDataValidations(s.name)
	if err != nil {
		return nil, fmt.Errorf("reading rules of %s: %w", s.name, err)
	}
	out := make(map[string]string, len(dvs))
	for _, dv := range dvs {
		out[dv.Sqref] = dv.Type
	}
	return out, nil
}
