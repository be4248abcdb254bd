package algebra

import "github.com/zephyrtronium/calc/numeric"

// maxExpandPower bounds the integer power of a sum that Expand multiplies
// out.
const maxExpandPower = 16

// Expand distributes products over sums throughout e, one factor at a time,
// and multiplies out small positive integer powers of sums. Shapes that do
// not distribute are left alone.
func Expand(e Expr) Expr {
	switch e := e.(type) {
	case *Sum:
		terms := make([]Expr, len(e.terms))
		for i, t := range e.terms {
			terms[i] = Expand(t)
		}
		return SumOf(terms...)
	case *Product:
		acc := Expand(e.factors[0])
		for _, f := range e.factors[1:] {
			acc = distribute(acc, Expand(f))
		}
		return acc
	case *Power:
		b := Expand(e.base)
		s, ok := b.(*Sum)
		if !ok {
			return PowerOf(b, Expand(e.exp))
		}
		v, ok := numberOf(e.exp)
		if !ok {
			return PowerOf(b, e.exp)
		}
		n, ok := v.(numeric.Integer)
		if !ok {
			return PowerOf(b, e.exp)
		}
		k, ok := n.Int64()
		if !ok || k < 2 || k > maxExpandPower {
			return PowerOf(b, e.exp)
		}
		var acc Expr = s
		for i := int64(1); i < k; i++ {
			acc = distribute(acc, s)
		}
		return acc
	case *Call:
		return CallOf(e.fn, Expand(e.arg))
	}
	return e
}

// distribute multiplies two expanded expressions, distributing over either
// side that is a sum.
func distribute(a, b Expr) Expr {
	if s, ok := a.(*Sum); ok {
		terms := make([]Expr, len(s.terms))
		for i, t := range s.terms {
			terms[i] = distribute(t, b)
		}
		return SumOf(terms...)
	}
	if s, ok := b.(*Sum); ok {
		terms := make([]Expr, len(s.terms))
		for i, t := range s.terms {
			terms[i] = distribute(a, t)
		}
		return SumOf(terms...)
	}
	return ProductOf(a, b)
}
