package algebra

import (
	"sort"

	"github.com/zephyrtronium/calc/numeric"
)

// Term is one term of a polynomial in a single variable.
type Term struct {
	Coef numeric.Value
	Pow  int
}

// Poly is a polynomial as terms in descending order of power, with no zero
// coefficients. The zero polynomial is the single term 0x^0.
type Poly []Term

// ToPoly converts e, after expansion, to a polynomial in x. ok is false if
// any term is not a numeric multiple of a non-negative integer power of x.
func ToPoly(e Expr, x Symbol) (p Poly, ok bool) {
	e = Expand(e)
	terms := []Expr{e}
	if s, ok := e.(*Sum); ok {
		terms = s.terms
	}
	acc := make(map[int]numeric.Value)
	for _, t := range terms {
		c, m := splitCoef(t)
		k, ok := monomialPower(m, x)
		if !ok {
			return nil, false
		}
		if v, ok := acc[k]; ok {
			acc[k] = arith.Add(v, c)
		} else {
			acc[k] = c
		}
	}
	for k, c := range acc {
		if !numeric.IsZero(c) {
			p = append(p, Term{Coef: c, Pow: k})
		}
	}
	if len(p) == 0 {
		return Poly{{Coef: numeric.NewInteger(0), Pow: 0}}, true
	}
	sort.Slice(p, func(i, j int) bool { return p[i].Pow > p[j].Pow })
	return p, true
}

func monomialPower(m Expr, x Symbol) (int, bool) {
	switch m := m.(type) {
	case nil:
		return 0, true
	case Symbol:
		return 1, m == x
	case *Power:
		if m.base != Expr(x) {
			return 0, false
		}
		v, ok := numberOf(m.exp)
		if !ok {
			return 0, false
		}
		n, ok := v.(numeric.Integer)
		if !ok {
			return 0, false
		}
		k, ok := n.Int64()
		return int(k), ok && k >= 0 && k <= 1<<20
	}
	return 0, false
}

// Degree returns the highest power in p.
func (p Poly) Degree() int {
	if len(p) == 0 {
		return 0
	}
	return p[0].Pow
}

// Coef returns the coefficient of x^k.
func (p Poly) Coef(k int) numeric.Value {
	for _, t := range p {
		if t.Pow == k {
			return t.Coef
		}
	}
	return numeric.NewInteger(0)
}

// Expr converts p back to a canonical expression in x.
func (p Poly) Expr(x Symbol) Expr {
	terms := make([]Expr, len(p))
	for i, t := range p {
		terms[i] = ProductOf(Num(t.Coef), PowerOf(x, Int(int64(t.Pow))))
	}
	return SumOf(terms...)
}

// Monic returns p as complex coefficients divided by the leading one, in
// descending order of power from Degree down to 0.
func (p Poly) Monic() []complex128 {
	n := p.Degree()
	c := make([]complex128, n+1)
	lead := numeric.Complex128(p[0].Coef)
	for _, t := range p {
		c[n-t.Pow] = numeric.Complex128(t.Coef) / lead
	}
	return c
}

// Horner evaluates a polynomial with coefficients in descending order.
func Horner(c []complex128, z complex128) complex128 {
	var r complex128
	for _, k := range c {
		r = r*z + k
	}
	return r
}
