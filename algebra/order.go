package algebra

import (
	"strings"

	"github.com/zephyrtronium/calc/numeric"
)

// Compare imposes the canonical total order on expressions. Expressions of
// different kinds order by rank: numbers, symbols, powers, products, sums,
// calls, and the constant of integration. Within a kind, symbols order by
// name, powers by base then exponent, and sums and products element by
// element.
func Compare(a, b Expr) int {
	if ra, rb := a.rank(), b.rank(); ra != rb {
		return cmpInt(ra, rb)
	}
	switch a := a.(type) {
	case Number:
		return compareNumbers(a.Value(), b.(Number).Value())
	case Symbol:
		return strings.Compare(a.Name, b.(Symbol).Name)
	case *Power:
		b := b.(*Power)
		if c := Compare(a.base, b.base); c != 0 {
			return c
		}
		return Compare(a.exp, b.exp)
	case *Product:
		return compareLists(a.factors, b.(*Product).factors)
	case *Sum:
		return compareLists(a.terms, b.(*Sum).terms)
	case *Call:
		b := b.(*Call)
		if c := strings.Compare(a.fn.Name, b.fn.Name); c != 0 {
			return c
		}
		return Compare(a.arg, b.arg)
	case Constant:
		return 0
	}
	panic("algebra: unknown expression type")
}

// Equal reports whether two expressions have the same canonical form.
// Numbers compare by value, so Integer 2 equals Real 2.0.
func Equal(a, b Expr) bool {
	return Compare(a, b) == 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareNumbers(a, b numeric.Value) int {
	if c, ok := numeric.Cmp(a, b); ok {
		return c
	}
	if numeric.Equal(a, b) {
		return 0
	}
	za, zb := numeric.Complex128(a), numeric.Complex128(b)
	if c := compareFloat(real(za), real(zb)); c != 0 {
		return c
	}
	return compareFloat(imag(za), imag(zb))
}

func compareLists(a, b []Expr) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

// splitPower returns the base and exponent of a factor. Factors which are
// not powers have exponent 1.
func splitPower(e Expr) (base, exp Expr) {
	if p, ok := e.(*Power); ok {
		return p.base, p.exp
	}
	return e, Int(1)
}

// compareFactors orders factors within a product: numbers first, then by
// base, then by exponent. Ordering by base puts x, x^2, and x^-1 next to
// each other so that they merge.
func compareFactors(a, b Expr) int {
	_, an := a.(Number)
	_, bn := b.(Number)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	}
	ab, ae := splitPower(a)
	bb, be := splitPower(b)
	if c := Compare(ab, bb); c != 0 {
		return c
	}
	return Compare(ae, be)
}

// splitCoef separates a term into its numeric coefficient and the rest. The
// monomial of a pure number is nil.
func splitCoef(e Expr) (numeric.Value, Expr) {
	switch e := e.(type) {
	case Number:
		return e.Value(), nil
	case *Product:
		if v, ok := numberOf(e.factors[0]); ok {
			return v, productFrom(e.factors[1:])
		}
	}
	return numeric.NewInteger(1), e
}

// productFrom builds a product from factors which are already canonical.
func productFrom(factors []Expr) Expr {
	switch len(factors) {
	case 0:
		return Int(1)
	case 1:
		return factors[0]
	}
	return &Product{factors}
}

// termClass groups sum terms: monomials first, then numbers, then the
// constant of integration.
func termClass(mono Expr) int {
	switch mono.(type) {
	case nil:
		return 1
	case Constant:
		return 2
	}
	return 0
}

// compareTerms orders terms within a sum by class, then by descending
// degree, then by the canonical order of their monomials.
func compareTerms(a, b Expr) int {
	_, am := splitCoef(a)
	_, bm := splitCoef(b)
	if c := cmpInt(termClass(am), termClass(bm)); c != 0 {
		return c
	}
	if am == nil || termClass(am) != 0 {
		return 0
	}
	if c := compareNumbers(degree(am), degree(bm)); c != 0 {
		return -c
	}
	return Compare(am, bm)
}

// degree is the total degree of a monomial in all of its symbols.
// Non-polynomial parts have degree 0.
func degree(e Expr) numeric.Value {
	switch e := e.(type) {
	case Symbol:
		return numeric.NewInteger(1)
	case *Power:
		if _, ok := e.base.(Symbol); ok {
			if v, ok := numberOf(e.exp); ok && v.Kind() != numeric.KindComplex {
				return v
			}
		}
	case *Product:
		var d numeric.Value = numeric.NewInteger(0)
		for _, f := range e.factors {
			d = arith.Add(d, degree(f))
		}
		return d
	}
	return numeric.NewInteger(0)
}
