package numeric

import "math"

const (
	// Guard is the number of decimal digits carried beyond the display
	// precision in every computation.
	Guard = 50
	// DefaultDigits is the default display precision in significant digits.
	DefaultDigits = 3
)

// Context holds the display precision and display policy of a session. The
// working precision of arithmetic derives from it. A Context is a value:
// changing the precision means making a new one, so nothing needs restoring
// after a computation that widened its own copy.
type Context struct {
	// Digits is the number of significant decimal digits shown. Zero means
	// DefaultDigits.
	Digits uint
	// Exact enables recognition of fractions, multiples of pi, and multiples
	// of small square roots when formatting reals.
	Exact bool
}

// Default is the context a new session starts with.
var Default = Context{Digits: DefaultDigits, Exact: true}

func (c Context) digits() uint {
	if c.Digits == 0 {
		return DefaultDigits
	}
	return c.Digits
}

// Prec returns the working precision in bits: the display digits plus Guard,
// converted to binary.
func (c Context) Prec() uint {
	return uint(math.Ceil(float64(c.digits()+Guard) * math.Log2(10)))
}

// WithDigits returns a copy of c displaying d significant digits.
func (c Context) WithDigits(d uint) Context {
	c.Digits = d
	return c
}

// WithExact returns a copy of c with the exact-form policy set.
func (c Context) WithExact(exact bool) Context {
	c.Exact = exact
	return c
}

// opPrec chooses the precision for an operation on x and y. Inexact operands
// carry their own precision; otherwise the context decides.
func (c Context) opPrec(x, y Value) uint {
	p := max(precOf(x), precOf(y))
	if p == 0 {
		p = c.Prec()
	}
	return p
}
