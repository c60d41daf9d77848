package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		expr    string
		want    float64
		wantErr bool
	}{
		{expr: "1+2", want: 3},
		{expr: "(12+5)*3", want: 51},
		{expr: "10/4", want: 2.5},
		{expr: "2*3+4*5", want: 26},
		{expr: "-(3+2)", want: -5},
		{expr: " 7 - 2 ", want: 5},
		{expr: "1/0", wantErr: true},
		{expr: "2**3", wantErr: true},
		{expr: "(1+2", wantErr: true},
		{expr: "import os", wantErr: true},
		{expr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evalExpression(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculatorTool(t *testing.T) {
	calc := NewCalculatorTool()

	assert.Equal(t, "calculator", calc.Name())
	assert.NotEmpty(t, calc.ActionText())

	result, err := calc.Execute(context.Background(), map[string]any{"expression": "(2+3)*4"})
	require.NoError(t, err)
	assert.Equal(t, "20", result)

	// Invalid input is reported in the result text, not as an error.
	result, err = calc.Execute(context.Background(), map[string]any{"expression": "rm -rf /"})
	require.NoError(t, err)
	assert.Contains(t, result, "Calculation error")
}
