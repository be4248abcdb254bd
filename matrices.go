package calc

import (
	"strconv"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

// builtinNorm is the Euclidean norm of a vector or the Frobenius norm of a
// matrix.
func builtinNorm(c *Calculator, args []Value) (Value, error) {
	switch x := args[0].(type) {
	case matrix.Vector:
		return x.Norm(c.ctx)
	case *matrix.Matrix:
		var v matrix.Vector
		for _, row := range x.Rows() {
			v = append(v, row...)
		}
		return v.Norm(c.ctx)
	case algebra.Number:
		return algebra.Num(c.ctx.Abs(x.Value())), nil
	}
	return nil, argError(args, 0, "vector")
}

func builtinTranspose(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Transpose(), nil
}

func builtinOrder(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	r, k := m.Dims()
	return Text(strconv.Itoa(r) + "×" + strconv.Itoa(k)), nil
}

func builtinIdentity(c *Calculator, args []Value) (Value, error) {
	n, err := size(args, 0)
	if err != nil {
		return nil, err
	}
	return matrix.Identity(n), nil
}

// builtinDiag makes a diagonal matrix from its arguments or from the elements
// of a single vector.
func builtinDiag(c *Calculator, args []Value) (Value, error) {
	if v, ok := args[0].(matrix.Vector); ok && len(args) == 1 {
		return matrix.Diagonal(v...), nil
	}
	xs := make([]algebra.Expr, len(args))
	for i := range args {
		e, err := expr(args, i)
		if err != nil {
			return nil, err
		}
		xs[i] = e
	}
	return matrix.Diagonal(xs...), nil
}

func builtinZero(c *Calculator, args []Value) (Value, error) {
	r, err := size(args, 0)
	if err != nil {
		return nil, err
	}
	k := r
	if len(args) > 1 {
		if k, err = size(args, 1); err != nil {
			return nil, err
		}
	}
	return matrix.Zero(r, k), nil
}

// maxDim bounds the dimensions of matrices created from a size.
const maxDim = 1 << 10

// size gets a matrix dimension.
func size(args []Value, i int) (int, error) {
	n, err := count(args, i)
	if err != nil {
		return 0, err
	}
	if n > maxDim {
		return 0, &numeric.DomainError{Reason: "matrix dimension too large"}
	}
	return n, nil
}

func builtinInverse(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Inverse(c.ctx)
}

// builtinDecompose gives the LU decomposition of a matrix as the list {L, U}.
func builtinDecompose(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	l, u, err := m.Decompose(c.ctx)
	if err != nil {
		return nil, err
	}
	return List{l, u}, nil
}

func builtinTrace(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Trace(c.ctx)
}

// builtinPoly is the characteristic polynomial of a matrix in x.
func builtinPoly(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.CharPoly(c.ctx, algebra.DefaultVariable)
}

func builtinAdjugate(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Adjugate(c.ctx)
}

// builtinMinor removes row i and column j, counting from 0.
func builtinMinor(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	i, err := integer(args, 1)
	if err != nil {
		return nil, err
	}
	j, err := integer(args, 2)
	if err != nil {
		return nil, err
	}
	r, k := m.Dims()
	if i < 0 || j < 0 || i >= int64(r) || j >= int64(k) {
		return nil, &numeric.DomainError{Func: "minor", Reason: "index out of range"}
	}
	return m.Minor(int(i), int(j))
}

func builtinDet(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	return m.Determinant(c.ctx)
}

func builtinEigenvalues(c *Calculator, args []Value) (Value, error) {
	m, err := mat(args, 0)
	if err != nil {
		return nil, err
	}
	n := algebra.DefaultRootIterations
	if len(args) > 1 {
		if n, err = count(args, 1); err != nil {
			return nil, err
		}
	}
	vs, err := m.Eigenvalues(c.ctx, n)
	if err != nil {
		return nil, err
	}
	return numbers(vs), nil
}
