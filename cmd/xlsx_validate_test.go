package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witanlabs/gridmap/grid"
)

func TestBuildValidation(t *testing.T) {
	topLeft := grid.Cell{Row: 2, Col: 4}
	tests := []struct {
		name    string
		req     validateRequest
		want    grid.Validation
		wantErr string
	}{
		{
			name: "length",
			req:  validateRequest{rule: "length", min: 1, max: 12, allowBlank: true},
			want: grid.Validation{Kind: grid.ValidateLength, Min: 1, Max: 12, Message: grid.MsgInvalidLength, AllowBlank: true},
		},
		{
			name: "range",
			req:  validateRequest{rule: "range", max: 100},
			want: grid.Validation{Kind: grid.ValidateRange, Max: 100, Message: grid.MsgNotInInterval},
		},
		{
			name: "list",
			req:  validateRequest{rule: "list", values: []string{"open", "closed"}},
			want: grid.Validation{Kind: grid.ValidateEnumeration, Values: []string{"open", "closed"}, Message: grid.MsgValueNotAllowed},
		},
		{
			name: "numbers checks the top-left cell",
			req:  validateRequest{rule: "numbers"},
			want: grid.Validation{Kind: grid.ValidateCustom, Formula: "ISNUMBER(D2)", Message: grid.MsgOnlyNumbers},
		},
		{
			name: "custom",
			req:  validateRequest{rule: "custom", formula: "D2>C2"},
			want: grid.Validation{Kind: grid.ValidateCustom, Formula: "D2>C2", Message: grid.MsgValueNotAllowed},
		},
		{name: "inverted bounds", req: validateRequest{rule: "range", min: 5, max: 1}, wantErr: "greater than --max"},
		{name: "list without values", req: validateRequest{rule: "list"}, wantErr: "--values is required"},
		{name: "custom without formula", req: validateRequest{rule: "custom"}, wantErr: "--formula is required"},
		{name: "missing rule", req: validateRequest{}, wantErr: "--rule is required"},
		{name: "unknown rule", req: validateRequest{rule: "date"}, wantErr: `unknown rule "date"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildValidation(tt.req, topLeft)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "open", "closed")

	out, err := execute(t, "", "xlsx", "validate", path, "A2:A10", "--rule", "list", "--values", "open,closed")
	require.NoError(t, err)
	assert.Contains(t, out, "Added list rule to Data!A2:A10.")

	out, err = execute(t, "", "xlsx", "--json", "validate", path, "Data!B2:B10", "--rule", "numbers")
	require.NoError(t, err)
	var got struct {
		File  string `json:"file"`
		Range string `json:"range"`
		Rule  string `json:"rule"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Data!B2:B10", got.Range)
	assert.Equal(t, "numbers", got.Rule)

	wb, err := grid.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()
	s, err := wb.Sheet(0)
	require.NoError(t, err)
	rules, err := s.Validations()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"A2:A10": "list", "B2:B10": "custom"}, rules)
}

func TestValidateCommand_Errors(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "book.xlsx")
	writeColumnBook(t, path, "a")

	_, err := execute(t, "", "xlsx", "validate", path, "A2:A3")
	assert.ErrorContains(t, err, "--rule is required")

	_, err = execute(t, "", "xlsx", "validate", path, "Missing!A2", "--rule", "numbers")
	assert.ErrorIs(t, err, grid.ErrNoSheet)

	_, err = execute(t, "", "xlsx", "validate", path, "XFE2", "--rule", "numbers")
	assert.ErrorContains(t, err, "invalid")
}
