package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapView is a minimal SheetView stand-in for formula-level tests that
// don't need a full Sheet.
type mapView map[Position]CellValue

func (m mapView) GetCellValue(pos Position) (CellValue, bool) {
	v, ok := m[pos]
	return v, ok
}

func TestParseFormulaEvaluate(t *testing.T) {
	cases := map[string]struct {
		src  string
		view mapView
		want CellValue
	}{
		"literal":            {"1", nil, NumberValue(1)},
		"add":                 {"1+2", nil, NumberValue(3)},
		"precedence":          {"2+3*4", nil, NumberValue(14)},
		"parens":              {"(2+3)*4", nil, NumberValue(20)},
		"unary minus":         {"-5", nil, NumberValue(-5)},
		"unary plus":          {"+5", nil, NumberValue(5)},
		"double unary":        {"--5", nil, NumberValue(5)},
		"missing ref is zero": {"A1+1", mapView{}, NumberValue(1)},
		"ref to number":       {"A1+1", mapView{{0, 0}: NumberValue(4)}, NumberValue(5)},
		"ref to numeric string": {"A1+1", mapView{{0, 0}: StringValue("4")}, NumberValue(5)},
		"ref to bad string":     {"A1+1", mapView{{0, 0}: StringValue("abc")}, ErrorValue(ErrValue)},
		"ref to error propagates": {"A1+1", mapView{{0, 0}: ErrorValue(ErrRef)}, ErrorValue(ErrDiv0)},
		"div0":                {"1/0", nil, ErrorValue(ErrDiv0)},
		"div near zero":       {"1/1e-200", nil, ErrorValue(ErrDiv0)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFormula(tc.src)
			require.NoError(t, err)
			var view SheetView = tc.view
			if tc.view == nil {
				view = mapView{}
			}
			assert.Equal(t, tc.want, f.Evaluate(view))
		})
	}
}

func TestParseFormulaSyntaxErrors(t *testing.T) {
	cases := []string{
		"1+",
		"()",
		"1 2",
		"(1+2",
		"1+2)",
		"@",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := ParseFormula(src)
			require.Error(t, err)
			var syn *FormulaSyntaxError
			assert.ErrorAs(t, err, &syn)
		})
	}
}

func TestParseFormulaInvalidCellRef(t *testing.T) {
	_, err := ParseFormula("AAAA1+1")
	require.Error(t, err)
}

func TestGetExpressionMinimalParens(t *testing.T) {
	cases := map[string]string{
		"1+2+3":     "1+2+3",
		"1+(2+3)":   "1+2+3",
		"1-(2-3)":   "1-(2-3)",
		"1-2-3":     "1-2-3",
		"(1+2)*3":   "(1+2)*3",
		"1*(2+3)":   "1*(2+3)",
		"1*2*3":     "1*2*3",
		"1/(2/3)":   "1/(2/3)",
		"1/2/3":     "1/2/3",
		"-(1+2)":    "-(1+2)",
		"-1+2":      "-1+2",
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			f, err := ParseFormula(src)
			require.NoError(t, err)
			assert.Equal(t, want, f.GetExpression())
		})
	}
}

func TestDebugString(t *testing.T) {
	f, err := ParseFormula("1+2*3")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 (* 2 3))", f.DebugString())
}

func TestGetReferencedCellsSortedDeduped(t *testing.T) {
	f, err := ParseFormula("B2+A1+B2+A1")
	require.NoError(t, err)
	refs := f.GetReferencedCells()
	require.Len(t, refs, 2)
	assert.Equal(t, Position{Row: 0, Col: 0}, refs[0])
	assert.Equal(t, Position{Row: 1, Col: 1}, refs[1])
}

func TestGetReferencedCellsIsACopy(t *testing.T) {
	f, err := ParseFormula("A1")
	require.NoError(t, err)
	refs := f.GetReferencedCells()
	refs[0] = Position{Row: 99, Col: 99}
	assert.Equal(t, Position{Row: 0, Col: 0}, f.GetReferencedCells()[0])
}
