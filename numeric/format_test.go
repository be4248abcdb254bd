package numeric_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc/numeric"
)

func TestFormat(t *testing.T) {
	exact := numeric.Default
	approx := numeric.Context{Digits: 3}
	ten := numeric.Context{Digits: 10}
	quo := func(ctx numeric.Context, a, b int64) numeric.Value {
		t.Helper()
		r, err := ctx.Quo(numeric.NewInteger(a), numeric.NewInteger(b))
		require.NoError(t, err)
		return r
	}
	sqrt := func(n int64) numeric.Value {
		r, err := exact.Sqrt(numeric.NewInteger(n))
		require.NoError(t, err)
		return r
	}
	cases := []struct {
		name string
		ctx  numeric.Context
		v    numeric.Value
		want string
	}{
		{"integer", exact, numeric.NewInteger(-42), "-42"},
		{"near-integer", exact, parseReal(t, "2.0000001"), "2"},
		{"near-negative", exact, parseReal(t, "-2.99999"), "-3"},
		{"half", exact, quo(exact, 1, 2), "1/2"},
		{"third", exact, quo(exact, 1, 3), "1/3"},
		{"negative-fraction", exact, quo(exact, -5, 4), "-5/4"},
		{"pi", exact, exact.Pi(), "pi"},
		{"pi-half", exact, mustQuo(t, exact, exact.Pi(), numeric.NewInteger(2)), "pi/2"},
		{"pi-multiple", exact, exact.Mul(exact.Pi(), quo(exact, 2, 3)), "2pi/3"},
		{"root", exact, sqrt(2), "2^(1/2)"},
		{"root-multiple", exact, mustQuo(t, exact, sqrt(3), numeric.NewInteger(2)), "3^(1/2)/2"},
		{"root-scaled", exact, exact.Mul(sqrt(5), numeric.NewInteger(3)), "3*5^(1/2)"},
		{"decimal", approx, quo(approx, 1, 3), "0.333"},
		{"ten-digits", ten, quo(ten, 1, 3), "0.3333333333"},
		{"rounding", approx, parseReal(t, "12.996"), "13"},
		{"trailing", approx, parseReal(t, "1.5"), "1.5"},
		{"scientific", approx, parseReal(t, "123456.7"), "1.23E+5"},
		{"tiny", approx, parseReal(t, "0.0001234"), "0.000123"},
		{"inexact-decimal", exact, parseReal(t, "0.123456"), "0.123"},
		{"complex", exact, numeric.NewComplex(big.NewFloat(3), big.NewFloat(-4)), "3-4i"},
		{"imaginary", exact, numeric.NewComplex(big.NewFloat(0), big.NewFloat(2)), "2i"},
		{"unit", exact, numeric.Imag(exact.Prec()), "i"},
		{"negative-unit", exact, numeric.NewComplex(big.NewFloat(1), big.NewFloat(-1)), "1-i"},
		{"fraction-imaginary", exact, numeric.NewComplex(big.NewFloat(0), big.NewFloat(0.5)), "(1/2)i"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.ctx.Format(c.v))
		})
	}
}

func TestFormatLogNegative(t *testing.T) {
	ctx := numeric.Default
	r, err := ctx.Ln(numeric.NewInteger(-1))
	require.NoError(t, err)
	assert.Equal(t, "pi*i", ctx.Format(r))
}

func TestPrecisionOnlyChangesDisplay(t *testing.T) {
	a := numeric.Context{Digits: 10, Exact: true}
	b := a.WithExact(false)
	v, err := a.Quo(numeric.NewInteger(1), numeric.NewInteger(3))
	require.NoError(t, err)
	assert.Equal(t, "1/3", a.Format(v))
	assert.Equal(t, "0.3333333333", b.Format(v))
	assert.Equal(t, a.Prec(), b.Prec())
	assert.Greater(t, numeric.Default.WithDigits(20).Prec(), numeric.Default.Prec())
}

func mustQuo(t *testing.T, ctx numeric.Context, x, y numeric.Value) numeric.Value {
	t.Helper()
	r, err := ctx.Quo(x, y)
	require.NoError(t, err)
	return r
}
