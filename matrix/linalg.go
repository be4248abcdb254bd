package matrix

import (
	"math/cmplx"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
)

// Minor returns m with row i and column j removed.
func (m *Matrix) Minor(i, j int) (*Matrix, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return nil, dimError("minor", "index out of range")
	}
	if m.rows < 2 || m.cols < 2 {
		return nil, dimError("minor", "matrix is too small")
	}
	r := &Matrix{rows: m.rows - 1, cols: m.cols - 1}
	r.data = make([]algebra.Expr, 0, r.rows*r.cols)
	for a := 0; a < m.rows; a++ {
		if a == i {
			continue
		}
		for b := 0; b < m.cols; b++ {
			if b != j {
				r.data = append(r.data, m.At(a, b))
			}
		}
	}
	return r, nil
}

// Determinant computes det(m) by cofactor expansion along the first row.
// This takes time proportional to n! and is meant for the small matrices
// typed at a calculator, where it works equally well for symbolic entries.
func (m *Matrix) Determinant(ctx numeric.Context) (algebra.Expr, error) {
	if !m.IsSquare() {
		return nil, dimError("det", "matrix is not square")
	}
	return m.det(ctx)
}

func (m *Matrix) det(ctx numeric.Context) (algebra.Expr, error) {
	if m.rows == 1 {
		return m.data[0], nil
	}
	var r algebra.Expr = algebra.Int(0)
	for j := 0; j < m.cols; j++ {
		a := m.At(0, j)
		if isZero(a) {
			continue
		}
		c, err := m.cofactor(ctx, 0, j)
		if err != nil {
			return nil, err
		}
		t, err := algebra.Apply(ctx, algebra.OpMul, a, c)
		if err != nil {
			return nil, err
		}
		if r, err = algebra.Apply(ctx, algebra.OpAdd, r, t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// cofactor is (-1)^(i+j) times the determinant of the (i, j) minor.
func (m *Matrix) cofactor(ctx numeric.Context, i, j int) (algebra.Expr, error) {
	mm, err := m.Minor(i, j)
	if err != nil {
		return nil, err
	}
	d, err := mm.det(ctx)
	if err != nil {
		return nil, err
	}
	if (i+j)%2 == 1 {
		return algebra.Neg(d), nil
	}
	return d, nil
}

// Adjugate returns the transpose of the cofactor matrix of m.
func (m *Matrix) Adjugate(ctx numeric.Context) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, dimError("adj", "matrix is not square")
	}
	if m.rows == 1 {
		return Identity(1), nil
	}
	r := Zero(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			c, err := m.cofactor(ctx, j, i)
			if err != nil {
				return nil, err
			}
			r.set(i, j, c)
		}
	}
	return r, nil
}

// isZero reports whether e is numerically zero. Symbolic entries are never
// zero.
func isZero(e algebra.Expr) bool {
	v, ok := e.(algebra.Number)
	return ok && numeric.IsZero(v.Value())
}

// scale collects the numeric entries of m. A pivot that is negligible
// relative to them is only rounding noise left by elimination.
func (m *Matrix) scale() []numeric.Value {
	var s []numeric.Value
	for _, e := range m.data {
		if v, ok := e.(algebra.Number); ok {
			s = append(s, v.Value())
		}
	}
	return s
}

// negligible reports whether e is a number that is zero up to rounding
// relative to scale.
func negligible(e algebra.Expr, scale []numeric.Value) bool {
	v, ok := e.(algebra.Number)
	return ok && numeric.Negligible(v.Value(), scale...)
}

// Decompose factors a square matrix as LU, where L is unit lower triangular
// and U is upper triangular, by Gaussian elimination without row exchanges.
// A zero pivot is a DomainError even when a row exchange would succeed.
func (m *Matrix) Decompose(ctx numeric.Context) (l, u *Matrix, err error) {
	if !m.IsSquare() {
		return nil, nil, dimError("lu", "matrix is not square")
	}
	n := m.rows
	l, u = Identity(n), m.clone()
	sc := m.scale()
	for j := 0; j < n; j++ {
		p := u.At(j, j)
		if negligible(p, sc) {
			return nil, nil, dimError("lu", "zero pivot")
		}
		for i := j + 1; i < n; i++ {
			s, err := algebra.Apply(ctx, algebra.OpDiv, u.At(i, j), p)
			if err != nil {
				return nil, nil, err
			}
			l.set(i, j, s)
			if err := u.addRow(ctx, i, j, algebra.Neg(s)); err != nil {
				return nil, nil, err
			}
		}
	}
	return l, u, nil
}

// addRow adds k times row src to row dst.
func (m *Matrix) addRow(ctx numeric.Context, dst, src int, k algebra.Expr) error {
	if isZero(k) {
		return nil
	}
	for c := 0; c < m.cols; c++ {
		t, err := algebra.Apply(ctx, algebra.OpMul, k, m.At(src, c))
		if err != nil {
			return err
		}
		s, err := algebra.Apply(ctx, algebra.OpAdd, m.At(dst, c), t)
		if err != nil {
			return err
		}
		m.set(dst, c, s)
	}
	return nil
}

// scaleRow multiplies row r by k.
func (m *Matrix) scaleRow(ctx numeric.Context, r int, k algebra.Expr) error {
	for c := 0; c < m.cols; c++ {
		t, err := algebra.Apply(ctx, algebra.OpMul, k, m.At(r, c))
		if err != nil {
			return err
		}
		m.set(r, c, t)
	}
	return nil
}

func (m *Matrix) swapRows(a, b int) {
	if a == b {
		return
	}
	for c := 0; c < m.cols; c++ {
		i, j := a*m.cols+c, b*m.cols+c
		m.data[i], m.data[j] = m.data[j], m.data[i]
	}
}

// pivot chooses the pivot row for column j from rows j and below: the entry
// of greatest magnitude if the column is numeric, otherwise the first entry
// that is not zero. Entries negligible relative to scale count as zero. It
// returns -1 if every candidate is zero.
func (m *Matrix) pivot(j int, scale []numeric.Value) int {
	best, mag := -1, 0.0
	for i := j; i < m.rows; i++ {
		e := m.At(i, j)
		v, ok := e.(algebra.Number)
		if !ok {
			return i
		}
		if a := cmplx.Abs(numeric.Complex128(v.Value())); !numeric.Negligible(v.Value(), scale...) && (best < 0 || a > mag) {
			best, mag = i, a
		}
	}
	return best
}

// Inverse computes the inverse of a square matrix by Gauss-Jordan
// elimination on [m | I] with partial pivoting. A matrix without a nonzero
// pivot in some column is singular.
func (m *Matrix) Inverse(ctx numeric.Context) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, dimError("inverse", "matrix is not square")
	}
	n := m.rows
	a, b := m.clone(), Identity(n)
	sc := m.scale()
	for j := 0; j < n; j++ {
		p := a.pivot(j, sc)
		if p < 0 {
			return nil, dimError("inverse", "matrix is singular")
		}
		a.swapRows(p, j)
		b.swapRows(p, j)
		k, err := algebra.Apply(ctx, algebra.OpDiv, algebra.Int(1), a.At(j, j))
		if err != nil {
			return nil, err
		}
		if err := a.scaleRow(ctx, j, k); err != nil {
			return nil, err
		}
		if err := b.scaleRow(ctx, j, k); err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			f := algebra.Neg(a.At(i, j))
			if err := a.addRow(ctx, i, j, f); err != nil {
				return nil, err
			}
			if err := b.addRow(ctx, i, j, f); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// CharPoly returns the characteristic polynomial det(m - xI), expanded.
func (m *Matrix) CharPoly(ctx numeric.Context, x algebra.Symbol) (algebra.Expr, error) {
	if !m.IsSquare() {
		return nil, dimError("charpoly", "matrix is not square")
	}
	xi, err := Identity(m.rows).Scale(ctx, x)
	if err != nil {
		return nil, err
	}
	d, err := m.Sub(ctx, xi)
	if err != nil {
		return nil, err
	}
	p, err := d.Determinant(ctx)
	if err != nil {
		return nil, err
	}
	return algebra.Expand(p), nil
}

// Eigenvalues returns the roots of the characteristic polynomial of m.
func (m *Matrix) Eigenvalues(ctx numeric.Context, iterations int) ([]numeric.Value, error) {
	x := algebra.DefaultVariable
	p, err := m.CharPoly(ctx, x)
	if err != nil {
		return nil, err
	}
	return algebra.Roots(ctx, p, x, iterations)
}
