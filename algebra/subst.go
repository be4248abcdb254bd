package algebra

import (
	"math"

	"github.com/zephyrtronium/calc/numeric"
)

// Substitute replaces every occurrence of x in e with v and re-simplifies
// under ctx. Numeric subterms fold, including calls of builtin functions on
// numbers.
func Substitute(ctx numeric.Context, e Expr, x Symbol, v Expr) (Expr, error) {
	return SubstituteAll(ctx, e, map[Symbol]Expr{x: v})
}

// SubstituteAll replaces several symbols at once. With no bindings it
// re-simplifies e under ctx.
func SubstituteAll(ctx numeric.Context, e Expr, vals map[Symbol]Expr) (Expr, error) {
	switch e := e.(type) {
	case Number, Constant:
		return e, nil
	case Symbol:
		if v, ok := vals[e]; ok {
			return v, nil
		}
		return e, nil
	case *Sum:
		return foldList(ctx, OpAdd, e.terms, vals)
	case *Product:
		return foldList(ctx, OpMul, e.factors, vals)
	case *Power:
		b, err := SubstituteAll(ctx, e.base, vals)
		if err != nil {
			return nil, err
		}
		x, err := SubstituteAll(ctx, e.exp, vals)
		if err != nil {
			return nil, err
		}
		return Apply(ctx, OpPow, b, x)
	case *Call:
		a, err := SubstituteAll(ctx, e.arg, vals)
		if err != nil {
			return nil, err
		}
		return EvalCall(ctx, e.fn, a)
	}
	panic("algebra: unknown expression type")
}

func foldList(ctx numeric.Context, op Op, list []Expr, vals map[Symbol]Expr) (Expr, error) {
	acc, err := SubstituteAll(ctx, list[0], vals)
	if err != nil {
		return nil, err
	}
	for _, t := range list[1:] {
		u, err := SubstituteAll(ctx, t, vals)
		if err != nil {
			return nil, err
		}
		if acc, err = Apply(ctx, op, acc, u); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// EvalCall applies fn to arg, evaluating numerically if arg is a number.
func EvalCall(ctx numeric.Context, fn *Function, arg Expr) (Expr, error) {
	if v, ok := numberOf(arg); ok {
		r, err := fn.Eval(ctx, v)
		if err != nil {
			return nil, err
		}
		return Num(r), nil
	}
	return CallOf(fn, arg), nil
}

// Func converts e into a real function of x for numerical methods. Points
// where e does not evaluate to a number give NaN.
func Func(ctx numeric.Context, e Expr, x Symbol) func(float64) float64 {
	return func(t float64) float64 {
		v, err := numeric.FromFloat64(t, ctx.Prec())
		if err != nil {
			return math.NaN()
		}
		r, err := Substitute(ctx, e, x, Num(v))
		if err != nil {
			return math.NaN()
		}
		n, ok := numberOf(r)
		if !ok {
			return math.NaN()
		}
		return numeric.Float64(n)
	}
}
