package algebra_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
	"github.com/zephyrtronium/calc/numerical"
)

var (
	x   = algebra.Sym("x")
	y   = algebra.Sym("y")
	ctx = numeric.Default
)

func pow(b algebra.Expr, n int64) algebra.Expr { return algebra.PowerOf(b, algebra.Int(n)) }

func mul(k int64, e algebra.Expr) algebra.Expr { return algebra.ProductOf(algebra.Int(k), e) }

func TestCanonical(t *testing.T) {
	cases := []struct {
		name string
		e    algebra.Expr
		want string
	}{
		{"commuted-sum", algebra.SumOf(y, x), "x + y"},
		{"like-terms", algebra.SumOf(x, x), "2x"},
		{"cancel", algebra.SumOf(x, algebra.Neg(x)), "0"},
		{"degree-order", algebra.SumOf(algebra.Int(1), pow(x, 2), x), "x^2 + x + 1"},
		{"negative-terms", algebra.SumOf(pow(x, 2), mul(-3, x), algebra.Int(2)), "x^2 - 3x + 2"},
		{"merge-powers", algebra.ProductOf(x, y, pow(x, 2)), "x^3y"},
		{"inverse", algebra.ProductOf(x, pow(x, -1)), "1"},
		{"zero-absorbs", algebra.ProductOf(x, algebra.Int(0), y), "0"},
		{"coefficients", algebra.ProductOf(algebra.Int(2), x, algebra.Int(3)), "6x"},
		{"nested-power", algebra.PowerOf(pow(x, 2), algebra.Int(3)), "x^6"},
		{"product-power", algebra.PowerOf(mul(2, x), algebra.Int(2)), "4x^2"},
		{"numeric-power", algebra.PowerOf(algebra.Int(2), algebra.Int(10)), "1024"},
		{"unexpanded", algebra.ProductOf(x, algebra.SumOf(x, algebra.Int(1))), "x(x + 1)"},
		{"distribute-coefficient", mul(2, algebra.SumOf(x, algebra.Int(1))), "2x + 2"},
		{"constant", algebra.SumOf(algebra.Constant{}, algebra.Constant{}, x), "x + c"},
		{"call", algebra.ProductOf(algebra.Int(3), algebra.CallOf(algebra.Sin, x)), "3sin(x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.e.Format(ctx))
		})
	}
}

func TestCanonicalDeterminism(t *testing.T) {
	a := algebra.SumOf(mul(3, pow(x, 2)), y, algebra.ProductOf(x, y), algebra.Int(4))
	b := algebra.SumOf(algebra.Int(4), algebra.ProductOf(y, x), y, mul(3, pow(x, 2)))
	assert.True(t, algebra.Equal(a, b))
	assert.Equal(t, a.String(), b.String())
	assert.True(t, algebra.Equal(algebra.ProductOf(y, x, x), algebra.ProductOf(pow(x, 2), y)))
	assert.False(t, algebra.Equal(algebra.SumOf(x, y), algebra.ProductOf(x, y)))
}

func TestExpand(t *testing.T) {
	one := algebra.Int(1)
	cases := []struct {
		name string
		e    algebra.Expr
		want string
	}{
		{"distribute", algebra.ProductOf(x, algebra.SumOf(x, one)), "x^2 + x"},
		{"square", algebra.PowerOf(algebra.SumOf(x, one), algebra.Int(2)), "x^2 + 2x + 1"},
		{"binomials", algebra.ProductOf(algebra.SumOf(x, one), algebra.SumOf(x, algebra.Int(-1))), "x^2 - 1"},
		{"nested", algebra.ProductOf(y, algebra.SumOf(x, algebra.ProductOf(x, algebra.SumOf(y, one)))), "xy^2 + 2xy"},
		{"call-argument", algebra.CallOf(algebra.Sin, algebra.ProductOf(x, algebra.SumOf(x, one))), "sin(x^2 + x)"},
		{"unchanged", algebra.PowerOf(algebra.SumOf(x, one), y), "(x + 1)^y"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, algebra.Expand(c.e).Format(ctx))
		})
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		name string
		op   algebra.Op
		l, r algebra.Expr
		want string
	}{
		{"numbers", algebra.OpAdd, algebra.Int(2), algebra.Int(3), "5"},
		{"add-zero", algebra.OpAdd, x, algebra.Int(0), "x"},
		{"sub-self", algebra.OpSub, algebra.SumOf(x, y), algebra.SumOf(y, x), "0"},
		{"sub-from-zero", algebra.OpSub, algebra.Int(0), x, "-x"},
		{"mul-zero", algebra.OpMul, x, algebra.Int(0), "0"},
		{"mul-one", algebra.OpMul, algebra.Int(1), x, "x"},
		{"div-self", algebra.OpDiv, x, x, "1"},
		{"div-number", algebra.OpDiv, x, algebra.Int(2), "(1/2)x"},
		{"div-symbol", algebra.OpDiv, algebra.Int(1), x, "x^-1"},
		{"pow-zero", algebra.OpPow, x, algebra.Int(0), "1"},
		{"pow-one", algebra.OpPow, x, algebra.Int(1), "x"},
		{"one-pow", algebra.OpPow, algebra.Int(1), x, "1"},
		{"right-assoc", algebra.OpPow, algebra.Int(2), algebra.Int(9), "512"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := algebra.Apply(ctx, c.op, c.l, c.r)
			require.NoError(t, err)
			assert.Equal(t, c.want, r.Format(ctx))
		})
	}
	_, err := algebra.Apply(ctx, algebra.OpDiv, x, algebra.Int(0))
	var de *numeric.DomainError
	assert.True(t, errors.As(err, &de))
}

func TestSubstitute(t *testing.T) {
	r, err := algebra.Substitute(ctx, mul(4, x), x, algebra.Int(3))
	require.NoError(t, err)
	assert.Equal(t, "12", r.Format(ctx))

	r, err = algebra.Substitute(ctx, algebra.SumOf(pow(x, 2), y), x, algebra.Int(2))
	require.NoError(t, err)
	assert.Equal(t, "y + 4", r.Format(ctx))

	r, err = algebra.Substitute(ctx, algebra.CallOf(algebra.Cos, x), x, algebra.Int(0))
	require.NoError(t, err)
	assert.Equal(t, "1", r.Format(ctx))

	_, err = algebra.Substitute(ctx, pow(x, -1), x, algebra.Int(0))
	assert.Error(t, err)

	f := algebra.Func(ctx, algebra.SumOf(pow(x, 2), algebra.Int(1)), x)
	assert.InDelta(t, 5.0, f(2), 1e-12)
	assert.True(t, math.IsNaN(algebra.Func(ctx, y, x)(1)))
}

func TestDifferentiate(t *testing.T) {
	cases := []struct {
		name string
		e    algebra.Expr
		want string
	}{
		{"polynomial", algebra.SumOf(pow(x, 3), mul(2, x)), "3x^2 + 2"},
		{"constant", algebra.Int(7), "0"},
		{"foreign", y, "0"},
		{"foreign-factor", algebra.ProductOf(x, y), "y"},
		{"sin", algebra.CallOf(algebra.Sin, x), "cos(x)"},
		{"cos", algebra.CallOf(algebra.Cos, x), "-sin(x)"},
		{"ln", algebra.CallOf(algebra.Ln, x), "x^-1"},
		{"tan", algebra.CallOf(algebra.Tan, x), "cos(x)^-2"},
		{"chain", algebra.CallOf(algebra.Sin, pow(x, 2)), "2xcos(x^2)"},
		{"product-rule", algebra.ProductOf(x, algebra.CallOf(algebra.Sin, x)), "xcos(x) + sin(x)"},
		{"exponential", algebra.PowerOf(algebra.Int(2), x), "2^xln(2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := algebra.Differentiate(c.e, x)
			require.NoError(t, err)
			assert.Equal(t, c.want, d.Format(ctx))
		})
	}
	_, err := algebra.Differentiate(algebra.PowerOf(x, x), x)
	assert.ErrorIs(t, err, algebra.ErrUnsupported)
}

func TestIntegrate(t *testing.T) {
	cases := []struct {
		name string
		e    algebra.Expr
		want string
	}{
		{"square", pow(x, 2), "(1/3)x^3 + c"},
		{"polynomial", algebra.SumOf(mul(3, pow(x, 2)), mul(2, x), algebra.Int(1)), "x^3 + x^2 + x + c"},
		{"reciprocal", pow(x, -1), "ln(x) + c"},
		{"cos", algebra.CallOf(algebra.Cos, x), "sin(x) + c"},
		{"sin", algebra.CallOf(algebra.Sin, x), "-cos(x) + c"},
		{"foreign", y, "xy + c"},
		{"number", algebra.Int(5), "5x + c"},
		{"distributes", algebra.ProductOf(x, algebra.SumOf(x, algebra.Int(1))), "(1/3)x^3 + (1/2)x^2 + c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := algebra.Integrate(ctx, c.e, x)
			require.NoError(t, err)
			assert.Equal(t, c.want, r.Format(ctx))
		})
	}
	_, err := algebra.Integrate(ctx, algebra.ProductOf(algebra.CallOf(algebra.Sin, x), algebra.CallOf(algebra.Cos, x)), x)
	assert.ErrorIs(t, err, algebra.ErrUnsupported)
	_, err = algebra.Integrate(ctx, algebra.CallOf(algebra.Sin, pow(x, 2)), x)
	assert.ErrorIs(t, err, algebra.ErrUnsupported)
}

func TestDiffIntegrateRoundTrip(t *testing.T) {
	polys := []algebra.Expr{
		pow(x, 2),
		algebra.SumOf(mul(3, pow(x, 2)), mul(2, x), algebra.Int(1)),
		algebra.SumOf(pow(x, 5), mul(-4, pow(x, 3)), algebra.Int(7)),
		algebra.SumOf(mul(9, pow(x, 8)), mul(-1, x)),
		algebra.Int(4),
	}
	for _, p := range polys {
		t.Run(p.String(), func(t *testing.T) {
			f, err := algebra.Integrate(ctx, p, x)
			require.NoError(t, err)
			d, err := algebra.Differentiate(f, x)
			require.NoError(t, err)
			assert.True(t, algebra.Equal(p, d), "got %v, want %v", d, p)
		})
	}
}

func TestLimitAgreesWithQuadrature(t *testing.T) {
	cases := []struct {
		name string
		f    algebra.Expr
		a, b float64
	}{
		{"square", pow(x, 2), 0, 1},
		{"cubic", algebra.SumOf(pow(x, 3), mul(-2, x), algebra.Int(1)), -1, 2},
		{"cos", algebra.CallOf(algebra.Cos, x), 0, 1.5},
		{"reciprocal", pow(x, -1), 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			F, err := algebra.Integrate(ctx, c.f, x)
			require.NoError(t, err)
			a, err := numeric.FromFloat64(c.a, ctx.Prec())
			require.NoError(t, err)
			b, err := numeric.FromFloat64(c.b, ctx.Prec())
			require.NoError(t, err)
			r, err := algebra.Limit(ctx, F, x, algebra.Num(a), algebra.Num(b))
			require.NoError(t, err)
			n, ok := r.(algebra.Number)
			require.True(t, ok, "limit is %v", r)
			want := numeric.Float64(n.Value())
			f := algebra.Func(ctx, c.f, x)
			assert.InDelta(t, want, numerical.Trapezoid(f, c.a, c.b, 1000), 1e-4)
			assert.InDelta(t, want, numerical.Simpson(f, c.a, c.b, 100), 1e-6)
			assert.InDelta(t, want, numerical.Romberg(f, c.a, c.b, 7), 1e-9)
		})
	}
}

func TestDefiniteIntegral(t *testing.T) {
	cases := []struct {
		name string
		e    algebra.Expr
		a, b algebra.Expr
		want string
	}{
		{"sin", algebra.CallOf(algebra.Sin, x), algebra.Int(0), algebra.Num(ctx.Pi()), "2"},
		{"linear", x, algebra.Int(1), algebra.Int(2), "3/2"},
		{"square", pow(x, 2), algebra.Int(1), algebra.Int(3), "26/3"},
		{"cos", algebra.CallOf(algebra.Cos, x), algebra.Int(1), algebra.Int(1), "0"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := algebra.DefiniteIntegral(ctx, c.e, x, c.a, c.b)
			require.NoError(t, err)
			assert.Equal(t, c.want, r.Format(ctx))
		})
	}
}

func TestConstantOfIntegration(t *testing.T) {
	c := algebra.Constant{}
	assert.Equal(t, "c", algebra.SumOf(c, c).Format(ctx))
	assert.Equal(t, "x", algebra.SumOf(x, c, algebra.Neg(c)).Format(ctx))
	assert.Equal(t, "0", algebra.SumOf(algebra.Neg(algebra.SumOf(x, c)), x, c).Format(ctx))
	neg := algebra.SumOf(algebra.ProductOf(algebra.Int(-1), c))
	assert.False(t, algebra.Equal(neg, c), "negated constant is %v", neg)
	assert.Equal(t, "x - c", algebra.SumOf(x, neg).Format(ctx))
}

func TestInexactCancellation(t *testing.T) {
	real := func(s string) algebra.Expr {
		r, ok := numeric.ParseReal(s, ctx.Prec())
		require.True(t, ok)
		return algebra.Num(r)
	}
	e := algebra.SumOf(
		algebra.ProductOf(real("0.1"), x),
		algebra.ProductOf(real("0.2"), x),
		algebra.Neg(algebra.ProductOf(real("0.3"), x)),
	)
	assert.True(t, algebra.Equal(e, algebra.Int(0)), "sum is %#v", e)
	e = algebra.SumOf(real("0.1"), real("0.2"), algebra.Neg(real("0.3")), x)
	assert.True(t, algebra.Equal(e, x), "sum is %#v", e)
	e = algebra.SumOf(algebra.ProductOf(real("0.5"), x), algebra.ProductOf(real("0.25"), x))
	assert.True(t, algebra.Equal(e, algebra.ProductOf(real("0.75"), x)), "sum is %#v", e)
}

func TestRoots(t *testing.T) {
	cases := []struct {
		name string
		e    algebra.Expr
		want []complex128
	}{
		{"quadratic", algebra.SumOf(pow(x, 2), algebra.Neg(x), algebra.Int(-6)), []complex128{-2, 3}},
		{"quadratic2", algebra.SumOf(pow(x, 2), mul(-2, x), algebra.Int(-15)), []complex128{-3, 5}},
		{"linear", algebra.SumOf(mul(2, x), algebra.Int(-4)), []complex128{2}},
		{"complex", algebra.SumOf(pow(x, 2), algebra.Int(1)), []complex128{-1i, 1i}},
		{"factored", algebra.ProductOf(algebra.SumOf(x, algebra.Int(-1)), algebra.SumOf(x, algebra.Int(2)), x), []complex128{-2, 0, 1}},
		{"constant", algebra.Int(3), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rs, err := algebra.Roots(ctx, c.e, x, algebra.DefaultRootIterations)
			require.NoError(t, err)
			require.Len(t, rs, len(c.want))
			for i, w := range c.want {
				z := numeric.Complex128(rs[i])
				assert.InDelta(t, real(w), real(z), 1e-9)
				assert.InDelta(t, imag(w), imag(z), 1e-9)
			}
		})
	}
	rs, err := algebra.Roots(ctx, algebra.SumOf(mul(2, x), algebra.Int(-4)), x, 10)
	require.NoError(t, err)
	assert.Equal(t, numeric.KindInteger, rs[0].Kind())

	_, err = algebra.Roots(ctx, algebra.CallOf(algebra.Sin, x), x, 10)
	assert.ErrorIs(t, err, algebra.ErrUnsupported)
}

func TestExtrema(t *testing.T) {
	f := algebra.SumOf(pow(x, 3), mul(-3, x))
	mx, err := algebra.Maxima(ctx, f, x, 200)
	require.NoError(t, err)
	require.Len(t, mx, 1)
	assert.InDelta(t, -1, numeric.Float64(mx[0]), 1e-9)

	mn, err := algebra.Minima(ctx, f, x, 200)
	require.NoError(t, err)
	require.Len(t, mn, 1)
	assert.InDelta(t, 1, numeric.Float64(mn[0]), 1e-9)
}

func TestPoly(t *testing.T) {
	p, ok := algebra.ToPoly(algebra.ProductOf(algebra.SumOf(x, algebra.Int(1)), algebra.SumOf(x, algebra.Int(-1))), x)
	require.True(t, ok)
	require.Len(t, p, 2)
	assert.Equal(t, 2, p.Degree())
	assert.True(t, numeric.IsInt(p[0].Coef, 1))
	assert.True(t, numeric.IsInt(p[1].Coef, -1))
	assert.Equal(t, 0, p[1].Pow)
	assert.Equal(t, "x^2 - 1", p.Expr(x).String())

	z, ok := algebra.ToPoly(algebra.SumOf(x, algebra.Neg(x)), x)
	require.True(t, ok)
	require.Len(t, z, 1)
	assert.True(t, numeric.IsZero(z[0].Coef))
	assert.Equal(t, 0, z.Degree())

	_, ok = algebra.ToPoly(algebra.ProductOf(x, y), x)
	assert.False(t, ok)
}

func TestGnuplot(t *testing.T) {
	e := algebra.SumOf(mul(2, pow(x, 2)), mul(3, x))
	assert.Equal(t, "2*x**2 + 3*x", algebra.Gnuplot(e))
	half, err := algebra.Apply(ctx, algebra.OpDiv, algebra.CallOf(algebra.Ln, x), algebra.Int(2))
	require.NoError(t, err)
	assert.Equal(t, "0.5*log(x)", algebra.Gnuplot(half))
}

func TestFreeSymbols(t *testing.T) {
	e := algebra.SumOf(algebra.ProductOf(y, x), algebra.CallOf(algebra.Sin, algebra.Sym("t")))
	assert.Equal(t, []algebra.Symbol{algebra.Sym("t"), x, y}, algebra.FreeSymbols(e))
	assert.Equal(t, y, algebra.Variable(pow(y, 2)))
	assert.Equal(t, x, algebra.Variable(algebra.Int(1)))
}
