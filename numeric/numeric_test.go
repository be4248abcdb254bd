package numeric_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc/numeric"
)

func parseReal(t *testing.T, s string) numeric.Real {
	t.Helper()
	r, ok := numeric.ParseReal(s, numeric.Default.Prec())
	require.True(t, ok, "parsing %q", s)
	return r
}

func cplx(re, im float64) numeric.Value {
	return numeric.NewComplex(big.NewFloat(re), big.NewFloat(im))
}

func TestPromotion(t *testing.T) {
	ctx := numeric.Default
	two, three, four := numeric.NewInteger(2), numeric.NewInteger(3), numeric.NewInteger(4)

	sum := ctx.Add(two, three)
	assert.Equal(t, numeric.KindInteger, sum.Kind())
	assert.Equal(t, "5", sum.String())

	q, err := ctx.Quo(four, two)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindInteger, q.Kind())
	assert.True(t, numeric.IsInt(q, 2))

	q, err = ctx.Quo(three, two)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindReal, q.Kind())
	assert.True(t, numeric.Equal(q, parseReal(t, "1.5")))

	m := ctx.Mul(parseReal(t, "0.5"), four)
	assert.Equal(t, numeric.KindReal, m.Kind())
	assert.True(t, numeric.Equal(m, two))

	z := ctx.Add(cplx(1, 2), two)
	assert.Equal(t, numeric.KindComplex, z.Kind())
	assert.Equal(t, complex(3, 2), numeric.Complex128(z))
}

func TestCollapse(t *testing.T) {
	ctx := numeric.Default
	i := numeric.Imag(ctx.Prec())
	sq := ctx.Mul(i, i)
	assert.Equal(t, numeric.KindReal, sq.Kind())
	assert.True(t, numeric.Equal(sq, numeric.NewInteger(-1)))

	d := ctx.Sub(cplx(1, 2), cplx(0, 2))
	assert.Equal(t, numeric.KindReal, d.Kind())

	z := ctx.Sub(cplx(1, 2), cplx(1, 2))
	assert.Equal(t, numeric.KindInteger, z.Kind())
	assert.True(t, numeric.IsZero(z))

	near := cplx(2, 1e-6)
	assert.Equal(t, numeric.KindReal, near.Kind())
	edge := cplx(2, numeric.Epsilon)
	assert.Equal(t, numeric.KindReal, edge.Kind())
	assert.Equal(t, numeric.KindComplex, cplx(2, 1e-4).Kind())
}

func TestDomainErrors(t *testing.T) {
	ctx := numeric.Default
	zero := numeric.NewInteger(0)
	huge := numeric.IntegerFromBig(new(big.Int).Exp(big.NewInt(10), big.NewInt(40), nil))
	tiny := numeric.NewReal(new(big.Float).SetMantExp(big.NewFloat(1), math.MinInt32))
	cases := []struct {
		name string
		f    func() (numeric.Value, error)
	}{
		{"quo", func() (numeric.Value, error) { return ctx.Quo(numeric.NewInteger(1), zero) }},
		{"quo-real", func() (numeric.Value, error) { return ctx.Quo(parseReal(t, "1.5"), parseReal(t, "0.0")) }},
		{"pow", func() (numeric.Value, error) { return ctx.Pow(zero, numeric.NewInteger(-1)) }},
		{"ln", func() (numeric.Value, error) { return ctx.Ln(zero) }},
		{"asin", func() (numeric.Value, error) { return ctx.Asin(numeric.NewInteger(2)) }},
		{"acosh", func() (numeric.Value, error) { return ctx.Acosh(zero) }},
		{"atanh", func() (numeric.Value, error) { return ctx.Atanh(numeric.NewInteger(1)) }},
		{"factorial", func() (numeric.Value, error) { return numeric.Factorial(numeric.NewInteger(-1)) }},
		{"factorial-real", func() (numeric.Value, error) { return numeric.Factorial(parseReal(t, "2.5")) }},
		{"pow-overflow", func() (numeric.Value, error) { return ctx.Pow(numeric.NewInteger(2), huge) }},
		{"pow-real-overflow", func() (numeric.Value, error) { return ctx.Pow(parseReal(t, "1.5"), huge) }},
		{"quo-overflow", func() (numeric.Value, error) { return ctx.Quo(numeric.NewInteger(1), tiny) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.f()
			var de *numeric.DomainError
			assert.True(t, errors.As(err, &de), "want DomainError, got %v", err)
		})
	}
}

func TestPow(t *testing.T) {
	ctx := numeric.Default
	cases := []struct {
		name string
		x, y numeric.Value
		kind numeric.Kind
		want complex128
	}{
		{"int", numeric.NewInteger(2), numeric.NewInteger(10), numeric.KindInteger, 1024},
		{"neg-int", numeric.NewInteger(2), numeric.NewInteger(-1), numeric.KindReal, 0.5},
		{"unit-neg", numeric.NewInteger(-1), numeric.NewInteger(-3), numeric.KindInteger, -1},
		{"real-base", parseReal(t, "1.5"), numeric.NewInteger(2), numeric.KindReal, 2.25},
		{"sqrt", numeric.NewInteger(4), parseReal(t, "0.5"), numeric.KindReal, 2},
		{"integral-real", numeric.NewInteger(-2), parseReal(t, "3.0"), numeric.KindReal, -8},
		{"neg-root", numeric.NewInteger(-4), parseReal(t, "0.5"), numeric.KindComplex, 2i},
		{"complex", cplx(0, 1), numeric.NewInteger(2), numeric.KindReal, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ctx.Pow(c.x, c.y)
			require.NoError(t, err)
			assert.Equal(t, c.kind, r.Kind())
			got := numeric.Complex128(r)
			assert.InDelta(t, real(c.want), real(got), 1e-12)
			assert.InDelta(t, imag(c.want), imag(got), 1e-12)
		})
	}
}

func TestElementary(t *testing.T) {
	ctx := numeric.Default
	pi := ctx.Pi()
	six := numeric.NewInteger(6)
	piSixth, err := ctx.Quo(pi, six)
	require.NoError(t, err)
	cases := []struct {
		name string
		f    func(numeric.Value) (numeric.Value, error)
		x    numeric.Value
		want float64
	}{
		{"sin", ctx.Sin, piSixth, 0.5},
		{"cos", ctx.Cos, numeric.NewInteger(0), 1},
		{"cos-big", ctx.Cos, numeric.NewInteger(1000), math.Cos(1000)},
		{"tan", ctx.Tan, numeric.NewInteger(1), math.Tan(1)},
		{"atan", ctx.Atan, numeric.NewInteger(-3), math.Atan(-3)},
		{"asin", ctx.Asin, parseReal(t, "0.5"), math.Asin(0.5)},
		{"acos", ctx.Acos, numeric.NewInteger(-1), math.Pi},
		{"sinh", ctx.Sinh, numeric.NewInteger(2), math.Sinh(2)},
		{"cosh", ctx.Cosh, numeric.NewInteger(-2), math.Cosh(-2)},
		{"tanh", ctx.Tanh, parseReal(t, "0.5"), math.Tanh(0.5)},
		{"asinh", ctx.Asinh, numeric.NewInteger(-2), math.Asinh(-2)},
		{"acosh", ctx.Acosh, numeric.NewInteger(3), math.Acosh(3)},
		{"atanh", ctx.Atanh, parseReal(t, "0.25"), math.Atanh(0.25)},
		{"exp", ctx.Exp, numeric.NewInteger(1), math.E},
		{"ln", ctx.Ln, numeric.NewInteger(10), math.Ln10},
		{"sqrt", ctx.Sqrt, numeric.NewInteger(2), math.Sqrt2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := c.f(c.x)
			require.NoError(t, err)
			assert.InDelta(t, c.want, numeric.Float64(r), 1e-13)
		})
	}
}

func TestHighPrecision(t *testing.T) {
	ctx := numeric.Context{Digits: 50}
	s, err := ctx.Sin(numeric.NewInteger(1))
	require.NoError(t, err)
	assert.Equal(t, "0.8414709848078965066525023216302989996226", s.(numeric.Real).Big().Text('f', 40))

	a, err := ctx.Atan(numeric.NewInteger(1))
	require.NoError(t, err)
	a = ctx.Mul(a, numeric.NewInteger(4))
	diff := ctx.Sub(a, ctx.Pi())
	assert.Less(t, math.Abs(numeric.Float64(diff)), 1e-90)
}

func TestSqrtExact(t *testing.T) {
	ctx := numeric.Default
	r, err := ctx.Sqrt(numeric.NewInteger(16))
	require.NoError(t, err)
	assert.Equal(t, numeric.KindInteger, r.Kind())
	assert.True(t, numeric.IsInt(r, 4))

	r, err = ctx.Sqrt(numeric.NewInteger(-4))
	require.NoError(t, err)
	assert.Equal(t, numeric.KindComplex, r.Kind())
	assert.Equal(t, complex(0, 2), numeric.Complex128(r))
}

func TestFactorial(t *testing.T) {
	r, err := numeric.Factorial(numeric.NewInteger(20))
	require.NoError(t, err)
	assert.Equal(t, "2432902008176640000", r.String())
	r, err = numeric.Factorial(numeric.NewInteger(0))
	require.NoError(t, err)
	assert.True(t, numeric.IsInt(r, 1))
}

func TestSnap(t *testing.T) {
	ctx := numeric.Default
	third, err := ctx.Quo(numeric.NewInteger(1), numeric.NewInteger(3))
	require.NoError(t, err)
	one := ctx.Mul(third, numeric.NewInteger(3))
	s := numeric.Snap(one)
	assert.Equal(t, numeric.KindInteger, s.Kind())
	assert.True(t, numeric.IsInt(s, 1))

	assert.Equal(t, numeric.KindReal, numeric.Snap(third).Kind())
	assert.Equal(t, numeric.KindReal, numeric.Snap(parseReal(t, "2.5")).Kind())
	assert.Equal(t, numeric.KindInteger, numeric.Snap(parseReal(t, "-7.0")).Kind())
	tiny, _ := numeric.FromFloat64(1e-30, ctx.Prec())
	assert.Equal(t, numeric.KindReal, numeric.Snap(tiny).Kind())
}

func TestNegligible(t *testing.T) {
	tenth, fifth, third := parseReal(t, "0.1"), parseReal(t, "0.2"), parseReal(t, "0.3")
	ctx := numeric.Default
	d := ctx.Sub(ctx.Add(tenth, fifth), third)
	assert.True(t, numeric.Negligible(d, tenth, fifth, third), "residue %v", d)
	assert.True(t, numeric.Negligible(numeric.NewInteger(0)))
	assert.False(t, numeric.Negligible(numeric.NewInteger(1), numeric.NewInteger(1<<40)))
	assert.False(t, numeric.Negligible(tenth, third))
	assert.False(t, numeric.Negligible(tenth), "no scale")
}
