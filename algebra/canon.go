package algebra

import (
	"sort"

	"github.com/zephyrtronium/calc/numeric"
)

// SumOf returns the canonical sum of terms. Nested sums are flattened, terms
// are sorted, terms with equal monomials merge by adding coefficients, and
// zero terms vanish. An empty sum is 0.
func SumOf(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if s, ok := t.(*Sum); ok {
			flat = append(flat, s.terms...)
			continue
		}
		flat = append(flat, t)
	}
	sort.SliceStable(flat, func(i, j int) bool { return compareTerms(flat[i], flat[j]) < 0 })

	out := make([]Expr, 0, len(flat))
	var coefs []numeric.Value
	var monos []Expr
	var parts [][]numeric.Value
	for _, t := range flat {
		c, m := splitCoef(t)
		if k := len(monos) - 1; k >= 0 && sameMonomial(monos[k], m) {
			coefs[k] = arith.Add(coefs[k], c)
			parts[k] = append(parts[k], c)
			continue
		}
		coefs = append(coefs, c)
		monos = append(monos, m)
		parts = append(parts, []numeric.Value{c})
	}
	for k, m := range monos {
		c := numeric.Snap(coefs[k])
		// Inexact coefficients that cancel leave rounding noise.
		if numeric.IsZero(c) || len(parts[k]) > 1 && numeric.Negligible(c, parts[k]...) {
			continue
		}
		switch m.(type) {
		case nil:
			out = append(out, Num(c))
		case Constant:
			// Only the sign of the constant's coefficient is kept, so that
			// c - c cancels while c + c stays c.
			if numeric.Sign(c) < 0 {
				out = append(out, &Product{[]Expr{Int(-1), Constant{}}})
				continue
			}
			out = append(out, Constant{})
		default:
			out = append(out, withCoef(c, m))
		}
	}
	switch len(out) {
	case 0:
		return Int(0)
	case 1:
		return out[0]
	}
	return &Sum{out}
}

func sameMonomial(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

// withCoef multiplies a canonical monomial by a coefficient.
func withCoef(c numeric.Value, m Expr) Expr {
	if numeric.IsInt(c, 1) {
		return m
	}
	return ProductOf(Num(c), m)
}

// ProductOf returns the canonical product of factors. Nested products are
// flattened, numbers multiply into one leading coefficient, factors are
// sorted, and adjacent factors with equal bases merge by adding exponents.
// A zero coefficient absorbs the product and a unit coefficient vanishes.
// A numeric coefficient times a single sum distributes over the sum.
func ProductOf(factors ...Expr) Expr {
	var coef numeric.Value = numeric.NewInteger(1)
	rest := make([]Expr, 0, len(factors))
	var walk func([]Expr)
	walk = func(fs []Expr) {
		for _, f := range fs {
			switch f := f.(type) {
			case Number:
				coef = arith.Mul(coef, f.Value())
			case *Product:
				walk(f.factors)
			default:
				rest = append(rest, f)
			}
		}
	}
	walk(factors)
	coef = numeric.Snap(coef)
	if numeric.IsZero(coef) {
		return Int(0)
	}
	sort.SliceStable(rest, func(i, j int) bool { return compareFactors(rest[i], rest[j]) < 0 })

	out := make([]Expr, 0, len(rest))
	refold := false
	for _, f := range rest {
		if k := len(out) - 1; k >= 0 {
			pb, pe := splitPower(out[k])
			fb, fe := splitPower(f)
			if Equal(pb, fb) {
				m := PowerOf(pb, SumOf(pe, fe))
				switch m.(type) {
				case Number, *Product:
					refold = true
				}
				out[k] = m
				continue
			}
		}
		out = append(out, f)
	}
	if refold {
		return ProductOf(append([]Expr{Num(coef)}, out...)...)
	}
	if len(out) == 1 && !numeric.IsInt(coef, 1) {
		if s, ok := out[0].(*Sum); ok {
			terms := make([]Expr, len(s.terms))
			for i, t := range s.terms {
				terms[i] = ProductOf(Num(coef), t)
			}
			return SumOf(terms...)
		}
	}
	if !numeric.IsInt(coef, 1) {
		out = append([]Expr{Num(coef)}, out...)
	}
	if len(out) == 0 {
		return Num(coef)
	}
	return productFrom(out)
}

// maxDistribute bounds the integer exponent for which a power of a product
// distributes over the factors.
const maxDistribute = 64

// PowerOf returns the canonical power base^exp. Exponents 0 and 1 collapse,
// numeric powers fold, (b^m)^n becomes b^(mn) for numeric m and integer n,
// and integer powers of products distribute over the factors.
func PowerOf(base, exp Expr) Expr {
	if ev, ok := numberOf(exp); ok {
		switch {
		case numeric.IsInt(ev, 0):
			return Int(1)
		case numeric.IsInt(ev, 1):
			return base
		}
		if bv, ok := numberOf(base); ok {
			if r, err := arith.Pow(bv, ev); err == nil {
				return Num(r)
			}
		}
		if n, ok := ev.(numeric.Integer); ok {
			switch b := base.(type) {
			case *Power:
				if bv, ok := numberOf(b.exp); ok {
					return PowerOf(b.base, Num(numeric.Snap(arith.Mul(bv, n))))
				}
			case *Product:
				if k, ok := n.Int64(); ok && -maxDistribute <= k && k <= maxDistribute {
					fs := make([]Expr, len(b.factors))
					for i, f := range b.factors {
						fs[i] = PowerOf(f, exp)
					}
					return ProductOf(fs...)
				}
			}
		}
	}
	if isInt(base, 1) {
		return Int(1)
	}
	return &Power{base, exp}
}

// CallOf returns fn applied to arg. Calls are not evaluated here; see
// Substitute.
func CallOf(fn *Function, arg Expr) Expr {
	return &Call{fn, arg}
}

// Neg returns -e.
func Neg(e Expr) Expr {
	return ProductOf(Int(-1), e)
}
