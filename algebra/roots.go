package algebra

import (
	"math"
	"sort"

	"github.com/zephyrtronium/calc/numeric"
	"github.com/zephyrtronium/calc/numerical"
)

// DefaultRootIterations is the number of Durand-Kerner iterations used when
// callers have no preference.
const DefaultRootIterations = 1000

// Roots finds all roots of the polynomial e in x. Linear polynomials are
// solved exactly; higher degrees use Durand-Kerner iteration on the
// normalized polynomial, collapsing results with negligible imaginary parts
// to reals. A constant has no roots. Non-polynomials are unsupported.
func Roots(ctx numeric.Context, e Expr, x Symbol, iterations int) ([]numeric.Value, error) {
	p, ok := ToPoly(e, x)
	if !ok {
		return nil, unsupported("find roots of", e)
	}
	switch p.Degree() {
	case 0:
		return nil, nil
	case 1:
		r, err := ctx.Quo(ctx.Neg(p.Coef(0)), p.Coef(1))
		if err != nil {
			return nil, err
		}
		return []numeric.Value{r}, nil
	}
	c := p.Monic()
	zs := numerical.DurandKerner(func(z complex128) complex128 { return Horner(c, z) }, p.Degree(), iterations)
	r := make([]numeric.Value, 0, len(zs))
	for _, z := range zs {
		// The estimates carry float64 accuracy, so they snap to integers
		// at that precision.
		v, err := numeric.FromComplex128(z, float64Bits)
		if err != nil {
			return nil, err
		}
		if v = numeric.Snap(v); v.Kind() != numeric.KindInteger {
			v, _ = numeric.FromComplex128(z, ctx.Prec())
		}
		r = append(r, v)
	}
	sortValues(r)
	return r, nil
}

const float64Bits = 53

// sortValues orders roots by real part, then imaginary part. Real parts
// within Epsilon of each other count as equal.
func sortValues(r []numeric.Value) {
	sort.SliceStable(r, func(i, j int) bool {
		a, b := numeric.Complex128(r[i]), numeric.Complex128(r[j])
		if math.Abs(real(a)-real(b)) > numeric.Epsilon {
			return real(a) < real(b)
		}
		return imag(a) < imag(b)
	})
}

// Maxima returns the values of x at which e has a local maximum: the real
// roots of the derivative at which the second derivative is negative.
func Maxima(ctx numeric.Context, e Expr, x Symbol, iterations int) ([]numeric.Value, error) {
	return extrema(ctx, e, x, iterations, -1)
}

// Minima returns the values of x at which e has a local minimum: the real
// roots of the derivative at which the second derivative is positive.
func Minima(ctx numeric.Context, e Expr, x Symbol, iterations int) ([]numeric.Value, error) {
	return extrema(ctx, e, x, iterations, 1)
}

func extrema(ctx numeric.Context, e Expr, x Symbol, iterations, sign int) ([]numeric.Value, error) {
	d1, err := Differentiate(e, x)
	if err != nil {
		return nil, err
	}
	d2, err := Differentiate(d1, x)
	if err != nil {
		return nil, err
	}
	rs, err := Roots(ctx, d1, x, iterations)
	if err != nil {
		return nil, err
	}
	var out []numeric.Value
	for _, r := range rs {
		if r.Kind() == numeric.KindComplex {
			continue
		}
		v, err := Substitute(ctx, d2, x, Num(r))
		if err != nil {
			return nil, err
		}
		n, ok := numberOf(v)
		if !ok {
			continue
		}
		if numeric.Sign(n) == sign {
			out = append(out, r)
		}
	}
	return out, nil
}
