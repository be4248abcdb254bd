package calc

import (
	"strconv"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

// argError reports an argument of the wrong kind.
func argError(args []Value, i int, want string) error {
	return &numeric.DomainError{
		Reason: "argument " + strconv.Itoa(i+1) + " is " + article(kindOf(args[i])) + ", not " + article(want),
	}
}

func article(noun string) string {
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + noun
	}
	return "a " + noun
}

// number gets a numeric argument.
func number(args []Value, i int) (numeric.Value, error) {
	if n, ok := args[i].(algebra.Number); ok {
		return n.Value(), nil
	}
	return nil, argError(args, i, "number")
}

// float gets a numeric argument as a float64.
func float(args []Value, i int) (float64, error) {
	v, err := number(args, i)
	if err != nil {
		return 0, err
	}
	return numeric.Float64(v), nil
}

// integer gets an exact integer argument.
func integer(args []Value, i int) (int64, error) {
	if n, ok := intOf(args[i]); ok {
		return n, nil
	}
	return 0, argError(args, i, "integer")
}

// count gets a positive integer argument, such as a number of iterations.
func count(args []Value, i int) (int, error) {
	n, err := integer(args, i)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 1<<24 {
		return 0, &numeric.DomainError{Reason: "argument " + strconv.Itoa(i+1) + " is out of range"}
	}
	return int(n), nil
}

// expr gets a scalar argument.
func expr(args []Value, i int) (algebra.Expr, error) {
	if e, ok := args[i].(algebra.Expr); ok {
		return e, nil
	}
	return nil, argError(args, i, "expression")
}

// symbol gets an argument naming a variable.
func symbol(args []Value, i int) (algebra.Symbol, error) {
	if s, ok := args[i].(algebra.Symbol); ok {
		return s, nil
	}
	return algebra.Symbol{}, argError(args, i, "symbol")
}

// variable gets the variable for an operation on e: argument i if it is
// present, otherwise the variable e determines.
func variable(args []Value, i int, e algebra.Expr) (algebra.Symbol, error) {
	if i < len(args) {
		return symbol(args, i)
	}
	return algebra.Variable(e), nil
}

// mat gets a matrix argument. A vector is a single-row matrix.
func mat(args []Value, i int) (*matrix.Matrix, error) {
	switch m := args[i].(type) {
	case *matrix.Matrix:
		return m, nil
	case matrix.Vector:
		return m.Matrix(), nil
	}
	return nil, argError(args, i, "matrix")
}

// vector gets a vector argument.
func vector(args []Value, i int) (matrix.Vector, error) {
	if v, ok := args[i].(matrix.Vector); ok {
		return v, nil
	}
	return nil, argError(args, i, "vector")
}

// sample gets a vector of numbers as float64s.
func sample(args []Value, i int) ([]float64, error) {
	v, err := vector(args, i)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, len(v))
	for k, e := range v {
		n, ok := e.(algebra.Number)
		if !ok {
			return nil, &numeric.DomainError{Reason: "argument " + strconv.Itoa(i+1) + " has a non-numeric element"}
		}
		xs[k] = numeric.Float64(n.Value())
	}
	return xs, nil
}

// fromFloat converts the result of a float64 computation to a number,
// recognizing integers at float64 precision.
func fromFloat(f float64) (Value, error) {
	v, err := numeric.FromFloat64(f, float64Bits)
	if err != nil {
		return nil, err
	}
	return algebra.Num(numeric.Snap(v)), nil
}

const float64Bits = 53

// numbers converts a list of numeric values to a List.
func numbers(vs []numeric.Value) List {
	l := make(List, len(vs))
	for i, v := range vs {
		l[i] = algebra.Num(v)
	}
	return l
}
