// Package algebra implements symbolic expressions in canonical form and the
// calculus performed on them.
//
// Expressions are immutable trees. The constructors SumOf, ProductOf,
// PowerOf, and CallOf always return canonical expressions: nested sums and
// products are flattened, elements are sorted by a fixed order, adjacent
// combinable elements are merged, and identities collapse. Two expressions
// are equal exactly when their canonical forms are, which is a structural
// property and not mathematical equivalence; expressions that only agree
// after distribution must go through Expand first.
package algebra

import (
	"github.com/zephyrtronium/calc/numeric"
)

// Expr is a symbolic expression.
type Expr interface {
	// Format renders the expression for display.
	Format(ctx numeric.Context) string
	// String renders the expression with the default context.
	String() string
	rank() int
}

// Ranks order the kinds of expressions within sums and products.
const (
	rankNumber = iota
	rankSymbol
	rankPower
	rankProduct
	rankSum
	rankCall
	rankConstant
)

// Number is a numeric leaf.
type Number struct {
	v numeric.Value
}

// Num wraps a numeric value.
func Num(v numeric.Value) Number { return Number{v} }

// Int creates an integer leaf.
func Int(n int64) Number { return Number{numeric.NewInteger(n)} }

// Value returns the wrapped number.
func (n Number) Value() numeric.Value {
	if n.v == nil {
		return numeric.NewInteger(0)
	}
	return n.v
}

func (Number) rank() int { return rankNumber }

// Symbol is a named variable.
type Symbol struct {
	Name string
}

// Sym creates a symbol.
func Sym(name string) Symbol { return Symbol{name} }

func (Symbol) rank() int { return rankSymbol }

// Sum is a canonical sum of at least two terms.
type Sum struct {
	terms []Expr
}

// Terms returns the summands in canonical order.
func (s *Sum) Terms() []Expr { return append([]Expr(nil), s.terms...) }

func (*Sum) rank() int { return rankSum }

// Product is a canonical product of at least two factors. If there is a
// numeric coefficient other than 1, it is the first factor.
type Product struct {
	factors []Expr
}

// Factors returns the factors in canonical order.
func (p *Product) Factors() []Expr { return append([]Expr(nil), p.factors...) }

func (*Product) rank() int { return rankProduct }

// Power is a canonical exponentiation.
type Power struct {
	base, exp Expr
}

// Base returns the base of the power.
func (p *Power) Base() Expr { return p.base }

// Exp returns the exponent of the power.
func (p *Power) Exp() Expr { return p.exp }

func (*Power) rank() int { return rankPower }

// Call is an application of a builtin function to an argument.
type Call struct {
	fn  *Function
	arg Expr
}

// Func returns the function being called.
func (c *Call) Func() *Function { return c.fn }

// Arg returns the argument.
func (c *Call) Arg() Expr { return c.arg }

func (*Call) rank() int { return rankCall }

// Constant is the arbitrary constant of integration. It absorbs addition of
// itself, so c + c = c, but c - c cancels.
type Constant struct{}

func (Constant) rank() int { return rankConstant }

// arith is the context used for numeric folding inside constructors. Sums
// and products of integers are exact under any context, and inexact
// operands carry their own precision.
var arith = numeric.Default

// numberOf returns the value of e if e is a Number.
func numberOf(e Expr) (numeric.Value, bool) {
	n, ok := e.(Number)
	if !ok {
		return nil, false
	}
	return n.Value(), true
}

func isInt(e Expr, k int64) bool {
	v, ok := numberOf(e)
	return ok && numeric.IsInt(v, k)
}

// Contains reports whether x occurs anywhere in e.
func Contains(e Expr, x Symbol) bool {
	switch e := e.(type) {
	case Symbol:
		return e == x
	case *Sum:
		for _, t := range e.terms {
			if Contains(t, x) {
				return true
			}
		}
	case *Product:
		for _, f := range e.factors {
			if Contains(f, x) {
				return true
			}
		}
	case *Power:
		return Contains(e.base, x) || Contains(e.exp, x)
	case *Call:
		return Contains(e.arg, x)
	}
	return false
}

// FreeSymbols returns the distinct symbols of e in sorted order.
func FreeSymbols(e Expr) []Symbol {
	seen := make(map[Symbol]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case Symbol:
			seen[e] = true
		case *Sum:
			for _, t := range e.terms {
				walk(t)
			}
		case *Product:
			for _, f := range e.factors {
				walk(f)
			}
		case *Power:
			walk(e.base)
			walk(e.exp)
		case *Call:
			walk(e.arg)
		}
	}
	walk(e)
	r := make([]Symbol, 0, len(seen))
	for s := range seen {
		r = append(r, s)
	}
	sortSymbols(r)
	return r
}

func sortSymbols(s []Symbol) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Name < s[j-1].Name; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// DefaultVariable is the variable assumed by calculus operations when none
// is given and the expression does not determine one.
var DefaultVariable = Sym("x")

// Variable chooses the variable of e: its only free symbol, or
// DefaultVariable.
func Variable(e Expr) Symbol {
	if s := FreeSymbols(e); len(s) == 1 {
		return s[0]
	}
	return DefaultVariable
}
