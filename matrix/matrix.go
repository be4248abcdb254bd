// Package matrix implements dense matrices and vectors whose entries are
// symbolic expressions.
//
// Entries are algebra expressions so that the same routines serve numeric
// matrices and symbolic ones such as M - xI, whose determinant is the
// characteristic polynomial. All arithmetic goes through algebra.Apply under
// a numeric.Context, so numeric entries fold at the context's precision.
package matrix

import (
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
)

// Matrix is a dense rows × cols matrix stored in row-major order. Matrices
// are immutable once constructed.
type Matrix struct {
	rows, cols int
	data       []algebra.Expr
}

func dimError(fn, reason string) error {
	return &numeric.DomainError{Func: fn, Reason: reason}
}

// New creates a matrix from rows of entries. All rows must have the same
// nonzero length.
func New(rows [][]algebra.Expr) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, dimError("matrix", "matrix is empty")
	}
	m := &Matrix{rows: len(rows), cols: len(rows[0])}
	m.data = make([]algebra.Expr, 0, m.rows*m.cols)
	for _, r := range rows {
		if len(r) != m.cols {
			return nil, dimError("matrix", "rows have unequal lengths")
		}
		m.data = append(m.data, r...)
	}
	return m, nil
}

// NewInt creates a matrix of integer entries.
func NewInt(rows [][]int64) (*Matrix, error) {
	r := make([][]algebra.Expr, len(rows))
	for i, row := range rows {
		r[i] = make([]algebra.Expr, len(row))
		for j, v := range row {
			r[i][j] = algebra.Int(v)
		}
	}
	return New(r)
}

// Zero creates an r × c matrix of zeros.
func Zero(r, c int) *Matrix {
	m := &Matrix{rows: r, cols: c, data: make([]algebra.Expr, r*c)}
	for i := range m.data {
		m.data[i] = algebra.Int(0)
	}
	return m
}

// Identity creates the n × n identity matrix.
func Identity(n int) *Matrix {
	m := Zero(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = algebra.Int(1)
	}
	return m
}

// Diagonal creates a square matrix with xs on the leading diagonal.
func Diagonal(xs ...algebra.Expr) *Matrix {
	n := len(xs)
	m := Zero(n, n)
	for i, x := range xs {
		m.data[i*n+i] = x
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) { return m.rows, m.cols }

// IsSquare reports whether m has as many rows as columns.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) algebra.Expr {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("matrix: index out of range")
	}
	return m.data[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) Vector {
	return append(Vector(nil), m.data[i*m.cols:(i+1)*m.cols]...)
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) Vector {
	v := make(Vector, m.rows)
	for i := range v {
		v[i] = m.data[i*m.cols+j]
	}
	return v
}

// Rows returns the entries as a slice of rows.
func (m *Matrix) Rows() [][]algebra.Expr {
	r := make([][]algebra.Expr, m.rows)
	for i := range r {
		r[i] = m.Row(i)
	}
	return r
}

func (m *Matrix) clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: append([]algebra.Expr(nil), m.data...)}
}

func (m *Matrix) set(i, j int, e algebra.Expr) { m.data[i*m.cols+j] = e }

// Transpose returns m with rows and columns exchanged.
func (m *Matrix) Transpose() *Matrix {
	t := &Matrix{rows: m.cols, cols: m.rows, data: make([]algebra.Expr, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*t.cols+i] = m.data[i*m.cols+j]
		}
	}
	return t
}

// Map applies f to every entry.
func (m *Matrix) Map(f func(algebra.Expr) (algebra.Expr, error)) (*Matrix, error) {
	r := m.clone()
	for k, e := range r.data {
		v, err := f(e)
		if err != nil {
			return nil, err
		}
		r.data[k] = v
	}
	return r, nil
}

// Equal reports whether m and n have the same order and equal entries.
func (m *Matrix) Equal(n *Matrix) bool {
	if m.rows != n.rows || m.cols != n.cols {
		return false
	}
	for k := range m.data {
		if !algebra.Equal(m.data[k], n.data[k]) {
			return false
		}
	}
	return true
}

// Trace returns the sum of the leading diagonal of a square matrix.
func (m *Matrix) Trace(ctx numeric.Context) (algebra.Expr, error) {
	if !m.IsSquare() {
		return nil, dimError("trace", "matrix is not square")
	}
	var r algebra.Expr = algebra.Int(0)
	for i := 0; i < m.rows; i++ {
		var err error
		if r, err = algebra.Apply(ctx, algebra.OpAdd, r, m.At(i, i)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (m *Matrix) elementwise(ctx numeric.Context, fn string, op algebra.Op, n *Matrix) (*Matrix, error) {
	if m.rows != n.rows || m.cols != n.cols {
		return nil, dimError(fn, "dimension mismatch")
	}
	r := m.clone()
	for k := range r.data {
		e, err := algebra.Apply(ctx, op, m.data[k], n.data[k])
		if err != nil {
			return nil, err
		}
		r.data[k] = e
	}
	return r, nil
}

// Add returns m + n.
func (m *Matrix) Add(ctx numeric.Context, n *Matrix) (*Matrix, error) {
	return m.elementwise(ctx, "+", algebra.OpAdd, n)
}

// Sub returns m - n.
func (m *Matrix) Sub(ctx numeric.Context, n *Matrix) (*Matrix, error) {
	return m.elementwise(ctx, "-", algebra.OpSub, n)
}

// Scale returns k·m.
func (m *Matrix) Scale(ctx numeric.Context, k algebra.Expr) (*Matrix, error) {
	return m.Map(func(e algebra.Expr) (algebra.Expr, error) {
		return algebra.Apply(ctx, algebra.OpMul, k, e)
	})
}

// Mul returns the matrix product mn. The number of columns of m must equal
// the number of rows of n.
func (m *Matrix) Mul(ctx numeric.Context, n *Matrix) (*Matrix, error) {
	if m.cols != n.rows {
		return nil, dimError("*", "dimension mismatch")
	}
	r := Zero(m.rows, n.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < n.cols; j++ {
			d, err := m.Row(i).Dot(ctx, n.Col(j))
			if err != nil {
				return nil, err
			}
			r.set(i, j, d)
		}
	}
	return r, nil
}

// MulVec returns the product of m with the column vector v.
func (m *Matrix) MulVec(ctx numeric.Context, v Vector) (Vector, error) {
	if m.cols != len(v) {
		return nil, dimError("*", "dimension mismatch")
	}
	r := make(Vector, m.rows)
	for i := range r {
		d, err := m.Row(i).Dot(ctx, v)
		if err != nil {
			return nil, err
		}
		r[i] = d
	}
	return r, nil
}

// Pow raises a square matrix to an integer power. Negative powers invert
// first.
func (m *Matrix) Pow(ctx numeric.Context, n int) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, dimError("^", "matrix is not square")
	}
	b := m
	if n < 0 {
		inv, err := m.Inverse(ctx)
		if err != nil {
			return nil, err
		}
		b, n = inv, -n
	}
	r := Identity(m.rows)
	for n > 0 {
		var err error
		if n&1 != 0 {
			if r, err = r.Mul(ctx, b); err != nil {
				return nil, err
			}
		}
		n >>= 1
		if n > 0 {
			if b, err = b.Mul(ctx, b); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}
