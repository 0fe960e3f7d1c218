package sheet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellValueString(t *testing.T) {
	cases := map[string]struct {
		v    CellValue
		want string
	}{
		"number":       {NumberValue(3), "3"},
		"number float": {NumberValue(3.5), "3.5"},
		"string":       {StringValue("hello"), "hello"},
		"error":        {ErrorValue(ErrValue), "#VALUE!"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.String())
		})
	}
}

func TestCellValueAsError(t *testing.T) {
	fe, ok := ErrorValue(ErrRef).AsError()
	assert.True(t, ok)
	assert.Equal(t, ErrRef, fe.Category)

	_, ok = NumberValue(1).AsError()
	assert.False(t, ok)
}

func TestFiniteOrDiv0(t *testing.T) {
	assert.Equal(t, NumberValue(4), finiteOrDiv0(4))
	assert.Equal(t, ErrorValue(ErrDiv0), finiteOrDiv0(math.Inf(1)))
	assert.Equal(t, ErrorValue(ErrDiv0), finiteOrDiv0(math.NaN()))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", formatNumber(3))
	assert.Equal(t, "3.5", formatNumber(3.5))
	assert.Equal(t, "-1.25", formatNumber(-1.25))
}
