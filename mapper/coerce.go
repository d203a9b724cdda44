package mapper

// coerce.go converts raw cell values into field values.
//
// Grids are messy: numbers arrive as float64 or as text, booleans as TRUE,
// "yes" or 1, dates as Excel serials or as text in one of several layouts.
// Coerce accepts all of these and fails on anything it cannot read without
// guessing; it never rounds.

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

var (
	errNotIntegral = errors.New("not a whole number")
	errOverflow    = errors.New("out of range")
	errUnsupported = errors.New("unsupported target type")
)

// dateLayouts are tried in order for text dates. Day-first layouts are not
// accepted; "02/03/2024" is February 3rd.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// Coerce converts a raw cell value to target. A blank value (nil, or
// whitespace-only text for a non-string target) yields the zero value; for
// pointer targets that is nil. Failures are *CoercionError.
func Coerce(raw any, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Pointer {
		if isBlank(raw) {
			return reflect.Zero(target), nil
		}
		v, err := Coerce(raw, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(target.Elem())
		p.Elem().Set(v)
		return p, nil
	}

	if target.Kind() == reflect.Interface {
		return passThrough(raw, target)
	}

	if raw == nil || (target.Kind() != reflect.String && isBlank(raw)) {
		return reflect.Zero(target), nil
	}

	fail := func(err error) (reflect.Value, error) {
		return reflect.Value{}, &CoercionError{Value: raw, Target: target, Err: err}
	}

	if target == timeType {
		t, err := toTime(raw)
		if err != nil {
			return fail(err)
		}
		return reflect.ValueOf(t), nil
	}

	if reflect.PointerTo(target).Implements(textUnmarshalerType) {
		p := reflect.New(target)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(strings.TrimSpace(Stringify(raw)))); err != nil {
			return fail(err)
		}
		return p.Elem(), nil
	}

	v := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		v.SetString(Stringify(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt(raw)
		if err != nil {
			return fail(err)
		}
		if v.OverflowInt(n) {
			return fail(errOverflow)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt(raw)
		if err != nil {
			return fail(err)
		}
		if n < 0 || v.OverflowUint(uint64(n)) {
			return fail(errOverflow)
		}
		v.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, err := toFloat(raw)
		if err != nil {
			return fail(err)
		}
		if v.OverflowFloat(f) {
			return fail(errOverflow)
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := toBool(raw)
		if err != nil {
			return fail(err)
		}
		v.SetBool(b)
	default:
		return fail(errUnsupported)
	}
	return v, nil
}

// passThrough stores raw unchanged in an interface-typed value. Raw values
// that do not satisfy target fail.
func passThrough(raw any, target reflect.Type) (reflect.Value, error) {
	v := reflect.New(target).Elem()
	if raw == nil {
		return v, nil
	}
	rv := reflect.ValueOf(raw)
	if !rv.Type().AssignableTo(target) {
		return reflect.Value{}, &CoercionError{Value: raw, Target: target, Err: errUnsupported}
	}
	v.Set(rv)
	return v, nil
}

// Stringify renders a raw value as text: blank is "", whole floats have no
// decimal point, booleans are TRUE/FALSE, dates at midnight drop the time.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	case interface{ String() string }:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// number extracts a float from numeric Go kinds.
func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func toInt(raw any) (int64, error) {
	switch x := raw.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return integral(f)
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(rv.Uint()), nil
	}
	if f, ok := number(raw); ok {
		return integral(f)
	}
	return 0, errUnsupported
}

func integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotIntegral
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(f), nil
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	}
	if f, ok := number(raw); ok {
		return f, nil
	}
	return 0, errUnsupported
}

func toBool(raw any) (bool, error) {
	switch x := raw.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "yes", "y", "1":
			return true, nil
		case "false", "f", "no", "n", "0":
			return false, nil
		}
		return false, strconv.ErrSyntax
	}
	if f, ok := number(raw); ok {
		return f != 0, nil
	}
	return false, errUnsupported
}

func toTime(raw any) (time.Time, error) {
	switch x := raw.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, strconv.ErrSyntax
		}
		return excelize.ExcelDateToTime(f, false)
	}
	if f, ok := number(raw); ok {
		return excelize.ExcelDateToTime(f, false)
	}
	return time.Time{}, errUnsupported
}
