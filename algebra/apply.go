package algebra

import (
	"github.com/zephyrtronium/calc/numeric"
)

// Op is a binary arithmetic operator.
type Op int8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return "?"
}

// Apply combines two expressions with an operator. It is the single place
// where identities and absorbing elements are recognized: two numbers fold
// under ctx, x+0, x*1, x/1, and x^1 reduce to x, x*0 and 0/x to 0, x^0 to 1,
// and x-x and x/x cancel. Everything else goes through the canonical
// constructors, with subtraction as addition of -1·r and division as
// multiplication by r^-1. Division by zero is a DomainError.
func Apply(ctx numeric.Context, op Op, l, r Expr) (Expr, error) {
	lv, lok := numberOf(l)
	rv, rok := numberOf(r)
	if lok && rok {
		v, err := applyNumbers(ctx, op, lv, rv)
		if err != nil {
			return nil, err
		}
		return Num(v), nil
	}
	switch op {
	case OpAdd:
		switch {
		case isInt(l, 0):
			return r, nil
		case isInt(r, 0):
			return l, nil
		}
		return SumOf(l, r), nil
	case OpSub:
		switch {
		case isInt(r, 0):
			return l, nil
		case Equal(l, r):
			return Int(0), nil
		case isInt(l, 0):
			return Neg(r), nil
		}
		return SumOf(l, Neg(r)), nil
	case OpMul:
		switch {
		case isInt(l, 0), isInt(r, 0):
			return Int(0), nil
		case isInt(l, 1):
			return r, nil
		case isInt(r, 1):
			return l, nil
		}
		return ProductOf(l, r), nil
	case OpDiv:
		switch {
		case rok && numeric.IsZero(rv):
			return nil, &numeric.DomainError{Func: "/", Reason: "division by zero"}
		case isInt(r, 1):
			return l, nil
		case isInt(l, 0):
			return Int(0), nil
		case Equal(l, r):
			return Int(1), nil
		case rok:
			inv, err := ctx.Quo(numeric.NewInteger(1), rv)
			if err != nil {
				return nil, err
			}
			return ProductOf(l, Num(inv)), nil
		}
		return ProductOf(l, PowerOf(r, Int(-1))), nil
	case OpPow:
		switch {
		case isInt(r, 0):
			return Int(1), nil
		case isInt(r, 1):
			return l, nil
		case isInt(l, 1):
			return Int(1), nil
		}
		return PowerOf(l, r), nil
	}
	panic("algebra: unknown operator " + op.String())
}

func applyNumbers(ctx numeric.Context, op Op, a, b numeric.Value) (numeric.Value, error) {
	switch op {
	case OpAdd:
		return ctx.Add(a, b), nil
	case OpSub:
		return ctx.Sub(a, b), nil
	case OpMul:
		return ctx.Mul(a, b), nil
	case OpDiv:
		return ctx.Quo(a, b)
	case OpPow:
		return ctx.Pow(a, b)
	}
	panic("algebra: unknown operator " + op.String())
}
