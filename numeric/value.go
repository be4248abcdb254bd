// Package numeric implements the calculator's numeric tower: exact integers,
// arbitrary precision reals, and complex numbers with real components.
//
// Values are immutable. Operations that need a working precision or a
// display policy take a Context, which is a plain value owned by the caller.
package numeric

import (
	"math"
	"math/big"
	"strings"
)

// Kind identifies the level of a Value in the tower.
type Kind int8

const (
	KindInteger Kind = iota
	KindReal
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindComplex:
		return "Complex"
	default:
		return "Kind(" + big.NewInt(int64(k)).String() + ")"
	}
}

// Value is a number in the tower. The concrete types are Integer, Real, and
// Complex.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

// Epsilon is the magnitude below which a complex component is treated as
// zero when a result is collapsed down the tower.
const Epsilon = 1e-5

// Integer is an exact integer.
type Integer struct {
	x *big.Int
}

// NewInteger creates an Integer.
func NewInteger(x int64) Integer {
	return Integer{big.NewInt(x)}
}

// IntegerFromBig creates an Integer holding a copy of x.
func IntegerFromBig(x *big.Int) Integer {
	return Integer{new(big.Int).Set(x)}
}

// ParseInteger parses a decimal integer literal.
func ParseInteger(s string) (Integer, bool) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{}, false
	}
	return Integer{x}, true
}

func (z Integer) val() *big.Int {
	if z.x == nil {
		return new(big.Int)
	}
	return z.x
}

// Big returns a copy of the integer's value.
func (z Integer) Big() *big.Int { return new(big.Int).Set(z.val()) }

// Int64 returns the value as an int64 and whether it fits.
func (z Integer) Int64() (int64, bool) {
	x := z.val()
	return x.Int64(), x.IsInt64()
}

func (Integer) Kind() Kind       { return KindInteger }
func (z Integer) String() string { return z.val().String() }
func (Integer) isValue()         {}

// Real is an arbitrary precision real number.
type Real struct {
	x *big.Float
}

// NewReal creates a Real holding a copy of x at x's precision.
func NewReal(x *big.Float) Real {
	return Real{new(big.Float).Copy(x)}
}

// ParseReal parses a decimal literal with a fractional part at the given
// precision in bits.
func ParseReal(s string, prec uint) (Real, bool) {
	x, _, err := new(big.Float).SetPrec(prec).Parse(s, 10)
	if err != nil {
		return Real{}, false
	}
	return Real{x}, true
}

func (r Real) val() *big.Float {
	if r.x == nil {
		return new(big.Float)
	}
	return r.x
}

// Big returns a copy of the real's value.
func (r Real) Big() *big.Float { return new(big.Float).Copy(r.val()) }

func (Real) Kind() Kind       { return KindReal }
func (r Real) String() string { return r.val().Text('g', 20) }
func (Real) isValue()         {}

// Complex is a complex number with Real components. Complex values produced
// by this package always have a non-negligible imaginary part.
type Complex struct {
	re, im *big.Float
}

// NewComplex creates a complex value and collapses it: if both components
// are within Epsilon of zero the result is Integer 0, and if only the
// imaginary part is, the result is the Real part.
func NewComplex(re, im *big.Float) Value {
	if negligible(im) {
		if negligible(re) {
			return NewInteger(0)
		}
		return Real{new(big.Float).Copy(re)}
	}
	return Complex{new(big.Float).Copy(re), new(big.Float).Copy(im)}
}

// Imag returns the imaginary unit.
func Imag(prec uint) Value {
	return Complex{new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec).SetInt64(1)}
}

func (c Complex) parts() (*big.Float, *big.Float) {
	re, im := c.re, c.im
	if re == nil {
		re = new(big.Float)
	}
	if im == nil {
		im = new(big.Float)
	}
	return re, im
}

// Re returns a copy of the real part.
func (c Complex) Re() *big.Float { re, _ := c.parts(); return new(big.Float).Copy(re) }

// Im returns a copy of the imaginary part.
func (c Complex) Im() *big.Float { _, im := c.parts(); return new(big.Float).Copy(im) }

func (Complex) Kind() Kind { return KindComplex }
func (Complex) isValue()   {}

func (c Complex) String() string {
	re, im := c.parts()
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(re.Text('g', 20))
	if im.Sign() >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(im.Text('g', 20))
	b.WriteString("i)")
	return b.String()
}

var epsilon = big.NewFloat(Epsilon)

func negligible(x *big.Float) bool {
	if x == nil || x.Sign() == 0 {
		return true
	}
	return new(big.Float).Abs(x).Cmp(epsilon) <= 0
}

// precOf is the precision a value carries, or 0 for exact values.
func precOf(v Value) uint {
	switch v := v.(type) {
	case Real:
		return v.val().Prec()
	case Complex:
		re, im := v.parts()
		return max(re.Prec(), im.Prec())
	}
	return 0
}

// toFloat converts a real-valued Value to a new big.Float at prec.
func toFloat(v Value, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec)
	switch v := v.(type) {
	case Integer:
		return z.SetInt(v.val())
	case Real:
		return z.Set(v.val())
	case Complex:
		re, _ := v.parts()
		return z.Set(re)
	}
	panic("numeric: unknown value type")
}

// toParts converts any Value to new real and imaginary parts at prec.
func toParts(v Value, prec uint) (re, im *big.Float) {
	if c, ok := v.(Complex); ok {
		r, i := c.parts()
		return new(big.Float).SetPrec(prec).Set(r), new(big.Float).SetPrec(prec).Set(i)
	}
	return toFloat(v, prec), new(big.Float).SetPrec(prec)
}

// Float64 converts a value to the nearest float64. Complex values convert to
// their real parts.
func Float64(v Value) float64 {
	switch v := v.(type) {
	case Integer:
		f, _ := new(big.Float).SetInt(v.val()).Float64()
		return f
	case Real:
		f, _ := v.val().Float64()
		return f
	case Complex:
		re, _ := v.parts()
		f, _ := re.Float64()
		return f
	}
	return math.NaN()
}

// Complex128 converts a value to the nearest complex128.
func Complex128(v Value) complex128 {
	if c, ok := v.(Complex); ok {
		re, im := c.parts()
		r, _ := re.Float64()
		i, _ := im.Float64()
		return complex(r, i)
	}
	return complex(Float64(v), 0)
}

// FromFloat64 converts a finite float64 to a Real at prec.
func FromFloat64(f float64, prec uint) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &DomainError{Func: "float", Reason: "result is not finite"}
	}
	return Real{new(big.Float).SetPrec(prec).SetFloat64(f)}, nil
}

// FromComplex128 converts a finite complex128 at prec, collapsing the result.
func FromComplex128(z complex128, prec uint) (Value, error) {
	r, i := real(z), imag(z)
	if math.IsNaN(r) || math.IsNaN(i) || math.IsInf(r, 0) || math.IsInf(i, 0) {
		return nil, &DomainError{Func: "complex", Reason: "result is not finite"}
	}
	return NewComplex(new(big.Float).SetPrec(prec).SetFloat64(r), new(big.Float).SetPrec(prec).SetFloat64(i)), nil
}

// Sign returns -1, 0, or +1 for real values. Complex values have sign 0.
func Sign(v Value) int {
	switch v := v.(type) {
	case Integer:
		return v.val().Sign()
	case Real:
		return v.val().Sign()
	}
	return 0
}

// IsZero reports whether v is exactly zero.
func IsZero(v Value) bool {
	switch v := v.(type) {
	case Integer:
		return v.val().Sign() == 0
	case Real:
		return v.val().Sign() == 0
	case Complex:
		re, im := v.parts()
		return re.Sign() == 0 && im.Sign() == 0
	}
	return false
}

// IsInt reports whether v is exactly the integer n.
func IsInt(v Value, n int64) bool {
	switch v := v.(type) {
	case Integer:
		return v.val().IsInt64() && v.val().Int64() == n
	case Real:
		return v.val().Cmp(new(big.Float).SetInt64(n)) == 0
	}
	return false
}

// Cmp compares two real-valued values. ok is false if either is Complex.
func Cmp(x, y Value) (c int, ok bool) {
	if x.Kind() == KindComplex || y.Kind() == KindComplex {
		return 0, false
	}
	if a, ok := x.(Integer); ok {
		if b, ok := y.(Integer); ok {
			return a.val().Cmp(b.val()), true
		}
	}
	p := max(precOf(x), precOf(y), 64)
	return toFloat(x, p).Cmp(toFloat(y, p)), true
}

// Equal reports whether x and y have the same numeric value, regardless of
// their kinds.
func Equal(x, y Value) bool {
	if x.Kind() == KindComplex || y.Kind() == KindComplex {
		p := max(precOf(x), precOf(y), 64)
		a, b := toParts(x, p)
		c, d := toParts(y, p)
		return a.Cmp(c) == 0 && b.Cmp(d) == 0
	}
	c, _ := Cmp(x, y)
	return c == 0
}

// snapBits is how many low bits of a Real's precision may differ from an
// integer for Snap to treat it as that integer.
const snapBits = 16

// Snap returns the Integer equal to v if v is a Real that differs from a
// nonzero integer only by rounding noise in its lowest bits. Other values
// are returned unchanged.
func Snap(v Value) Value {
	r, ok := v.(Real)
	if !ok || r.val().Sign() == 0 || r.val().IsInf() {
		return v
	}
	x := r.val()
	if x.IsInt() {
		n, _ := x.Int(nil)
		return Integer{n}
	}
	p := x.Prec()
	if p <= snapBits*2 {
		return v
	}
	t := new(big.Float).SetPrec(p + 8).Set(x)
	if x.Signbit() {
		t.Sub(t, big.NewFloat(0.5))
	} else {
		t.Add(t, big.NewFloat(0.5))
	}
	n, _ := t.Int(nil)
	if n.Sign() == 0 {
		return v
	}
	d := new(big.Float).SetPrec(p).SetInt(n)
	d.Sub(d, x)
	if d.Sign() == 0 {
		return Integer{n}
	}
	// |x - n| must be below |x| * 2^-(p - snapBits).
	if d.MantExp(nil) < x.MantExp(nil)-int(p)+snapBits {
		return Integer{n}
	}
	return v
}

// magExp returns the binary exponent of |v|, or false if v is zero.
func magExp(v Value) (int, bool) {
	switch v := v.(type) {
	case Integer:
		if v.val().Sign() == 0 {
			return 0, false
		}
		return v.val().BitLen(), true
	case Real:
		if v.val().Sign() == 0 {
			return 0, false
		}
		return v.val().MantExp(nil), true
	case Complex:
		re, im := v.parts()
		e, ok := 0, false
		for _, x := range []*big.Float{re, im} {
			if x.Sign() != 0 && (!ok || x.MantExp(nil) > e) {
				e, ok = x.MantExp(nil), true
			}
		}
		return e, ok
	}
	return 0, false
}

// Negligible reports whether v is zero or is an inexact value that is only
// rounding noise relative to the largest of scale, i.e. whether
// |v| < max|scale| * 2^-(p - snapBits) where p is v's precision. Exact
// nonzero values are never negligible.
func Negligible(v Value, scale ...Value) bool {
	ev, ok := magExp(v)
	if !ok {
		return true
	}
	p := precOf(v)
	if p <= snapBits*2 {
		return false
	}
	es, found := 0, false
	for _, s := range scale {
		if e, ok := magExp(s); ok && (!found || e > es) {
			es, found = e, true
		}
	}
	return found && ev < es-int(p)+snapBits
}
