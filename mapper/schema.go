package mapper

import (
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"
)

// SemanticType is the kind of value a field holds, as far as the grid is
// concerned.
type SemanticType int

const (
	String SemanticType = iota
	Integer
	Decimal
	Boolean
	DateTime
	Other
)

func (t SemanticType) String() string {
	switch t {
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Decimal:
		return "Decimal"
	case Boolean:
		return "Boolean"
	case DateTime:
		return "DateTime"
	default:
		return "Other"
	}
}

var timeType = reflect.TypeFor[time.Time]()

// Field describes one column of a record type.
type Field struct {
	Name     string
	Ordinal  int
	Kind     SemanticType
	Nullable bool
	Label    string
	Type     reflect.Type

	index int
}

// ResolveFor is Resolve for the type parameter.
func ResolveFor[T any](hidden ...string) ([]Field, error) {
	return Resolve(reflect.TypeFor[T](), hidden...)
}

// Resolve lists the usable fields of a struct type (or pointer to one) in
// declaration order. Fields named in hidden are left out; the remaining
// fields keep the ordinals they have in the full list.
func Resolve(t reflect.Type, hidden ...string) ([]Field, error) {
	st, err := structType(t)
	if err != nil {
		return nil, err
	}

	var fields []Field
	ordinal := 0
	for i := range st.NumField() {
		sf := st.Field(i)
		if !sf.IsExported() || sf.Tag.Get("grid") == "-" {
			continue
		}
		f := Field{
			Name:    sf.Name,
			Ordinal: ordinal,
			Label:   HeaderLabel(sf.Name),
			Type:    sf.Type,
			index:   i,
		}
		f.Kind, f.Nullable = kindOf(sf.Type)
		ordinal++

		if slices.Contains(hidden, sf.Name) {
			continue
		}
		fields = append(fields, f)
	}
	if ordinal == 0 {
		return nil, &SchemaError{Type: t, Reason: "no exported fields"}
	}
	return fields, nil
}

// Headers returns the labels of fields in order.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

// HeaderLabel splits a field name into words: a space goes before an
// uppercase letter that follows a lowercase letter or digit, or that ends a
// run of capitals ("XMLParser" -> "XML Parser"). Case is left alone, so
// "ID" and "Id" stay as they are.
func HeaderLabel(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && startsWord(runes, i) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func startsWord(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func structType(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, &SchemaError{Type: t, Reason: "nil type"}
	}
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Reason: "not a struct"}
	}
	return st, nil
}

func kindOf(t reflect.Type) (kind SemanticType, nullable bool) {
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}
	if t == timeType {
		return DateTime, nullable
	}
	switch t.Kind() {
	case reflect.String:
		return String, nullable
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, nullable
	case reflect.Float32, reflect.Float64:
		return Decimal, nullable
	case reflect.Bool:
		return Boolean, nullable
	default:
		return Other, nullable
	}
}
