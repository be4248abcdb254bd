package matrix

import (
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
)

// Vector is a list of entries.
type Vector []algebra.Expr

// Add returns v + w.
func (v Vector) Add(ctx numeric.Context, w Vector) (Vector, error) {
	return v.zip(ctx, "+", algebra.OpAdd, w)
}

// Sub returns v - w.
func (v Vector) Sub(ctx numeric.Context, w Vector) (Vector, error) {
	return v.zip(ctx, "-", algebra.OpSub, w)
}

func (v Vector) zip(ctx numeric.Context, fn string, op algebra.Op, w Vector) (Vector, error) {
	if len(v) != len(w) {
		return nil, dimError(fn, "dimension mismatch")
	}
	r := make(Vector, len(v))
	for i := range v {
		e, err := algebra.Apply(ctx, op, v[i], w[i])
		if err != nil {
			return nil, err
		}
		r[i] = e
	}
	return r, nil
}

// Scale returns k·v.
func (v Vector) Scale(ctx numeric.Context, k algebra.Expr) (Vector, error) {
	r := make(Vector, len(v))
	for i, e := range v {
		t, err := algebra.Apply(ctx, algebra.OpMul, k, e)
		if err != nil {
			return nil, err
		}
		r[i] = t
	}
	return r, nil
}

// Dot returns the sum of the products of corresponding entries.
func (v Vector) Dot(ctx numeric.Context, w Vector) (algebra.Expr, error) {
	if len(v) != len(w) {
		return nil, dimError("dot", "dimension mismatch")
	}
	var r algebra.Expr = algebra.Int(0)
	for i := range v {
		t, err := algebra.Apply(ctx, algebra.OpMul, v[i], w[i])
		if err != nil {
			return nil, err
		}
		if r, err = algebra.Apply(ctx, algebra.OpAdd, r, t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Norm returns the Euclidean length of v. Numeric entries contribute their
// squared magnitudes, so complex vectors have real norms.
func (v Vector) Norm(ctx numeric.Context) (algebra.Expr, error) {
	var sq algebra.Expr = algebra.Int(0)
	for _, e := range v {
		if n, ok := e.(algebra.Number); ok {
			a := ctx.Abs(n.Value())
			e = algebra.Num(ctx.Mul(a, a))
		} else {
			e = algebra.PowerOf(e, algebra.Int(2))
		}
		var err error
		if sq, err = algebra.Apply(ctx, algebra.OpAdd, sq, e); err != nil {
			return nil, err
		}
	}
	if n, ok := sq.(algebra.Number); ok {
		r, err := ctx.Sqrt(n.Value())
		if err != nil {
			return nil, err
		}
		return algebra.Num(r), nil
	}
	half, err := ctx.Quo(numeric.NewInteger(1), numeric.NewInteger(2))
	if err != nil {
		return nil, err
	}
	return algebra.PowerOf(sq, algebra.Num(half)), nil
}

// Matrix converts v to a single-row matrix.
func (v Vector) Matrix() *Matrix {
	return &Matrix{rows: 1, cols: len(v), data: append([]algebra.Expr(nil), v...)}
}
