package mapper

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	ID        uuid.UUID
	OrderDate time.Time
	Customer  string
	Quantity  int
	Price     float64
	Paid      bool
	Discount  *float64
	internal  string
	Notes     string `grid:"-"`
}

func TestHeaderLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"OrderDate", "Order Date"},
		{"ID", "ID"},
		{"Id", "Id"},
		{"OrderID", "Order ID"},
		{"XMLParser", "XML Parser"},
		{"Name", "Name"},
		{"Line2Total", "Line2 Total"},
		{"a", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeaderLabel(tt.name))
		})
	}
}

func TestResolve_DeclarationOrder(t *testing.T) {
	fields, err := ResolveFor[order]()
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ID", "Order Date", "Customer", "Quantity", "Price", "Paid", "Discount"},
		Headers(fields))

	for i, f := range fields {
		assert.Equal(t, i, f.Ordinal, f.Name)
	}

	kinds := make([]SemanticType, len(fields))
	for i, f := range fields {
		kinds[i] = f.Kind
	}
	assert.Equal(t, []SemanticType{Other, DateTime, String, Integer, Decimal, Boolean, Decimal}, kinds)
	assert.True(t, fields[6].Nullable)
	assert.False(t, fields[5].Nullable)
}

func TestResolve_HiddenKeepOrdinals(t *testing.T) {
	fields, err := ResolveFor[order]("Customer", "Paid")
	require.NoError(t, err)

	names := make([]string, len(fields))
	ordinals := make([]int, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		ordinals[i] = f.Ordinal
	}
	assert.Equal(t, []string{"ID", "OrderDate", "Quantity", "Price", "Discount"}, names)
	assert.Equal(t, []int{0, 1, 3, 4, 6}, ordinals)
}

func TestResolve_PointerType(t *testing.T) {
	fields, err := Resolve(reflect.TypeFor[*order]())
	require.NoError(t, err)
	assert.Len(t, fields, 7)
}

func TestResolve_SchemaErrors(t *testing.T) {
	type empty struct{}
	type unexported struct{ a, b int }

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"no fields", reflect.TypeFor[empty]()},
		{"only unexported", reflect.TypeFor[unexported]()},
		{"not a struct", reflect.TypeFor[int]()},
		{"slice", reflect.TypeFor[[]order]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.typ)
			var se *SchemaError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.typ, se.Type)
		})
	}
}

func TestSemanticType_String(t *testing.T) {
	assert.Equal(t, "DateTime", DateTime.String())
	assert.Equal(t, "Other", SemanticType(42).String())
}
