package calc

import (
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

// operandError reports an operator applied to values it does not support.
func operandError(op algebra.Op, l, r Value) error {
	return &numeric.DomainError{Func: op.String(), Reason: "cannot combine " + kindOf(l) + " and " + kindOf(r)}
}

// binary applies an arithmetic operator to two values. Expressions combine
// symbolically; matrices and vectors combine with each other and with
// scalars as in linear algebra.
func binary(ctx numeric.Context, op algebra.Op, l, r Value) (Value, error) {
	switch a := l.(type) {
	case algebra.Expr:
		switch b := r.(type) {
		case algebra.Expr:
			return algebra.Apply(ctx, op, a, b)
		case *matrix.Matrix:
			if op == algebra.OpMul {
				return b.Scale(ctx, a)
			}
		case matrix.Vector:
			if op == algebra.OpMul {
				return b.Scale(ctx, a)
			}
		}
	case *matrix.Matrix:
		switch b := r.(type) {
		case algebra.Expr:
			switch op {
			case algebra.OpMul:
				return a.Scale(ctx, b)
			case algebra.OpDiv:
				k, err := algebra.Apply(ctx, algebra.OpDiv, algebra.Int(1), b)
				if err != nil {
					return nil, err
				}
				return a.Scale(ctx, k)
			case algebra.OpPow:
				n, ok := intOf(b)
				if !ok {
					return nil, &numeric.DomainError{Func: "^", Reason: "matrix power must be an integer"}
				}
				return a.Pow(ctx, int(n))
			}
		case *matrix.Matrix:
			switch op {
			case algebra.OpAdd:
				return a.Add(ctx, b)
			case algebra.OpSub:
				return a.Sub(ctx, b)
			case algebra.OpMul:
				return a.Mul(ctx, b)
			case algebra.OpDiv:
				inv, err := b.Inverse(ctx)
				if err != nil {
					return nil, err
				}
				return a.Mul(ctx, inv)
			}
		case matrix.Vector:
			if op == algebra.OpMul {
				return a.MulVec(ctx, b)
			}
		}
	case matrix.Vector:
		switch b := r.(type) {
		case algebra.Expr:
			switch op {
			case algebra.OpMul:
				return a.Scale(ctx, b)
			case algebra.OpDiv:
				k, err := algebra.Apply(ctx, algebra.OpDiv, algebra.Int(1), b)
				if err != nil {
					return nil, err
				}
				return a.Scale(ctx, k)
			}
		case matrix.Vector:
			switch op {
			case algebra.OpAdd:
				return a.Add(ctx, b)
			case algebra.OpSub:
				return a.Sub(ctx, b)
			case algebra.OpMul:
				return a.Dot(ctx, b)
			}
		}
	}
	return nil, operandError(op, l, r)
}

// negate returns -v.
func negate(ctx numeric.Context, v Value) (Value, error) {
	switch v := v.(type) {
	case algebra.Expr:
		return algebra.Apply(ctx, algebra.OpMul, algebra.Int(-1), v)
	case *matrix.Matrix:
		return v.Scale(ctx, algebra.Int(-1))
	case matrix.Vector:
		return v.Scale(ctx, algebra.Int(-1))
	}
	return nil, &numeric.DomainError{Func: "-", Reason: "cannot negate " + kindOf(v)}
}

// intOf returns the value of an expression that is an exact integer.
func intOf(e Value) (int64, bool) {
	n, ok := e.(algebra.Number)
	if !ok {
		return 0, false
	}
	z, ok := numeric.Snap(n.Value()).(numeric.Integer)
	if !ok {
		return 0, false
	}
	return z.Int64()
}
