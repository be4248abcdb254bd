package algebra

import (
	"github.com/zephyrtronium/calc/numeric"
)

// Differentiate returns the derivative of e with respect to x. Symbols other
// than x are treated as constants. Powers whose base and exponent both
// depend on x are unsupported.
func Differentiate(e Expr, x Symbol) (Expr, error) {
	switch e := e.(type) {
	case Number, Constant:
		return Int(0), nil
	case Symbol:
		if e == x {
			return Int(1), nil
		}
		return Int(0), nil
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			d, err := Differentiate(t, x)
			if err != nil {
				return nil, err
			}
			terms[i] = d
		}
		return SumOf(terms...), nil
	case *Product:
		return diffProduct(e, x)
	case *Power:
		return diffPower(e, x)
	case *Call:
		if !Contains(e.arg, x) {
			return Int(0), nil
		}
		d, err := Differentiate(e.arg, x)
		if err != nil {
			return nil, err
		}
		return ProductOf(d, e.fn.deriv(e.arg)), nil
	}
	panic("algebra: unknown expression type")
}

func diffProduct(e *Product, x Symbol) (Expr, error) {
	var dep []int
	for i, f := range e.factors {
		if Contains(f, x) {
			dep = append(dep, i)
		}
	}
	switch len(dep) {
	case 0:
		return Int(0), nil
	case 1:
		// Only one factor varies; the rest are a constant multiplier.
		k := dep[0]
		d, err := Differentiate(e.factors[k], x)
		if err != nil {
			return nil, err
		}
		fs := make([]Expr, 0, len(e.factors))
		fs = append(fs, e.factors[:k]...)
		fs = append(fs, e.factors[k+1:]...)
		return ProductOf(append(fs, d)...), nil
	}
	terms := make([]Expr, 0, len(dep))
	for _, k := range dep {
		d, err := Differentiate(e.factors[k], x)
		if err != nil {
			return nil, err
		}
		fs := make([]Expr, 0, len(e.factors))
		fs = append(fs, e.factors[:k]...)
		fs = append(fs, d)
		fs = append(fs, e.factors[k+1:]...)
		terms = append(terms, ProductOf(fs...))
	}
	return Expand(SumOf(terms...)), nil
}

func diffPower(e *Power, x Symbol) (Expr, error) {
	bx, ex := Contains(e.base, x), Contains(e.exp, x)
	switch {
	case !bx && !ex:
		return Int(0), nil
	case !ex:
		// d/dx u^n = n u^(n-1) u'
		d, err := Differentiate(e.base, x)
		if err != nil {
			return nil, err
		}
		return ProductOf(e.exp, PowerOf(e.base, SumOf(e.exp, Int(-1))), d), nil
	case !bx:
		if _, ok := numberOf(e.base); !ok {
			return nil, unsupported("differentiate", e)
		}
		// d/dx a^g = ln(a) g' a^g
		d, err := Differentiate(e.exp, x)
		if err != nil {
			return nil, err
		}
		return ProductOf(CallOf(Ln, e.base), d, e), nil
	}
	return nil, unsupported("differentiate", e)
}

// Integrate returns an antiderivative of e with respect to x, expanded, plus
// the constant of integration. Supported shapes are constants, sums,
// constant multiples, powers of x or of a linear function of x, numbers
// raised to a linear function of x, and builtin functions of a linear
// function of x.
func Integrate(ctx numeric.Context, e Expr, x Symbol) (Expr, error) {
	r, err := integrate(ctx, e, x)
	if err != nil {
		return nil, err
	}
	return SumOf(Expand(r), Constant{}), nil
}

func integrate(ctx numeric.Context, e Expr, x Symbol) (Expr, error) {
	if !Contains(e, x) {
		return ProductOf(e, x), nil
	}
	switch e := e.(type) {
	case Symbol:
		return Apply(ctx, OpDiv, PowerOf(x, Int(2)), Int(2))
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			r, err := integrate(ctx, t, x)
			if err != nil {
				return nil, err
			}
			terms[i] = r
		}
		return SumOf(terms...), nil
	case *Product:
		var coef, dep []Expr
		for _, f := range e.factors {
			if Contains(f, x) {
				dep = append(dep, f)
			} else {
				coef = append(coef, f)
			}
		}
		if len(dep) != 1 {
			if ex := Expand(e); !Equal(ex, e) {
				return integrate(ctx, ex, x)
			}
			return nil, unsupported("integrate", e)
		}
		r, err := integrate(ctx, dep[0], x)
		if err != nil {
			return nil, err
		}
		return ProductOf(append(coef, r)...), nil
	case *Power:
		return integratePower(ctx, e, x)
	case *Call:
		a, ok := linearCoef(e.arg, x)
		if !ok {
			return nil, unsupported("integrate", e)
		}
		return Apply(ctx, OpDiv, e.fn.antideriv(e.arg), Num(a))
	}
	return nil, unsupported("integrate", e)
}

func integratePower(ctx numeric.Context, e *Power, x Symbol) (Expr, error) {
	if !Contains(e.exp, x) {
		a, ok := linearCoef(e.base, x)
		if !ok {
			if ex := Expand(e); !Equal(ex, e) {
				return integrate(ctx, ex, x)
			}
			return nil, unsupported("integrate", e)
		}
		if isInt(e.exp, -1) {
			// ∫ (ax+b)^-1 dx = ln(ax+b)/a
			return Apply(ctx, OpDiv, CallOf(Ln, e.base), Num(a))
		}
		// ∫ (ax+b)^n dx = (ax+b)^(n+1) / (a(n+1))
		n1, err := Apply(ctx, OpAdd, e.exp, Int(1))
		if err != nil {
			return nil, err
		}
		den, err := Apply(ctx, OpMul, Num(a), n1)
		if err != nil {
			return nil, err
		}
		return Apply(ctx, OpDiv, PowerOf(e.base, n1), den)
	}
	if bv, ok := numberOf(e.base); ok {
		// ∫ b^(kx+m) dx = b^(kx+m) / (k ln b)
		k, ok := linearCoef(e.exp, x)
		if !ok {
			return nil, unsupported("integrate", e)
		}
		lb, err := ctx.Ln(bv)
		if err != nil {
			return nil, err
		}
		if numeric.IsZero(lb) {
			return nil, unsupported("integrate", e)
		}
		return Apply(ctx, OpDiv, e, Num(ctx.Mul(k, lb)))
	}
	return nil, unsupported("integrate", e)
}

// linearCoef returns a if e is a·x + b for numbers a ≠ 0 and b.
func linearCoef(e Expr, x Symbol) (numeric.Value, bool) {
	p, ok := ToPoly(e, x)
	if !ok || p.Degree() != 1 {
		return nil, false
	}
	return p[0].Coef, true
}

// Limit evaluates an antiderivative between bounds: F(b) - F(a). The
// constant of integration does not appear in the result.
func Limit(ctx numeric.Context, f Expr, x Symbol, a, b Expr) (Expr, error) {
	f = dropConstant(f)
	fb, err := Substitute(ctx, f, x, b)
	if err != nil {
		return nil, err
	}
	fa, err := Substitute(ctx, f, x, a)
	if err != nil {
		return nil, err
	}
	d, err := Apply(ctx, OpSub, fb, fa)
	if err != nil {
		return nil, err
	}
	return SubstituteAll(ctx, Expand(d), nil)
}

// dropConstant removes the constant of integration from a sum.
func dropConstant(f Expr) Expr {
	if isConstant(f) {
		return Int(0)
	}
	s, ok := f.(*Sum)
	if !ok {
		return f
	}
	terms := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		if !isConstant(t) {
			terms = append(terms, t)
		}
	}
	return SumOf(terms...)
}

// isConstant reports whether a term is a multiple of the constant of
// integration.
func isConstant(t Expr) bool {
	_, m := splitCoef(t)
	_, ok := m.(Constant)
	return ok
}

// DefiniteIntegral integrates e with respect to x from a to b.
func DefiniteIntegral(ctx numeric.Context, e Expr, x Symbol, a, b Expr) (Expr, error) {
	f, err := Integrate(ctx, e, x)
	if err != nil {
		return nil, err
	}
	return Limit(ctx, f, x, a, b)
}
