package numeric

import (
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// Sin returns the sine of x in radians.
func (c Context) Sin(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Sin, x, p)
	}
	s, _ := sinCos(toFloat(x, p), p)
	return Real{s}, nil
}

// Cos returns the cosine of x in radians.
func (c Context) Cos(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Cos, x, p)
	}
	_, co := sinCos(toFloat(x, p), p)
	return Real{co}, nil
}

// Tan returns the tangent of x in radians.
func (c Context) Tan(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Tan, x, p)
	}
	s, co := sinCos(toFloat(x, p), p)
	if co.Sign() == 0 {
		return nil, &DomainError{Func: "tan", Reason: "pole"}
	}
	return Real{s.Quo(s, co)}, nil
}

// Atan returns the arctangent of x.
func (c Context) Atan(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Atan, x, p)
	}
	return Real{atan(toFloat(x, p), p)}, nil
}

// Asin returns the arcsine of x, which must be in [-1, 1] if real.
func (c Context) Asin(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Asin, x, p)
	}
	r, ok := asin(toFloat(x, p), p)
	if !ok {
		return nil, &DomainError{Func: "asin", Reason: "argument outside [-1, 1]"}
	}
	return Real{r}, nil
}

// Acos returns the arccosine of x, which must be in [-1, 1] if real.
func (c Context) Acos(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Acos, x, p)
	}
	r, ok := asin(toFloat(x, p), p)
	if !ok {
		return nil, &DomainError{Func: "acos", Reason: "argument outside [-1, 1]"}
	}
	h := halfPi(p)
	return Real{h.Sub(h, r)}, nil
}

// Sinh returns the hyperbolic sine of x.
func (c Context) Sinh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Sinh, x, p)
	}
	e, ie := expPair(toFloat(x, p), p)
	e.Sub(e, ie)
	return finite("sinh", Real{e.Quo(e, big.NewFloat(2))})
}

// Cosh returns the hyperbolic cosine of x.
func (c Context) Cosh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Cosh, x, p)
	}
	e, ie := expPair(toFloat(x, p), p)
	e.Add(e, ie)
	return finite("cosh", Real{e.Quo(e, big.NewFloat(2))})
}

// Tanh returns the hyperbolic tangent of x.
func (c Context) Tanh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Tanh, x, p)
	}
	a := toFloat(x, p)
	e, ie := expPair(a, p)
	if e.IsInf() || ie.IsInf() {
		return Real{new(big.Float).SetPrec(p).SetInt64(int64(a.Sign()))}, nil
	}
	n := new(big.Float).SetPrec(p).Sub(e, ie)
	d := new(big.Float).SetPrec(p).Add(e, ie)
	return Real{n.Quo(n, d)}, nil
}

// Asinh returns the inverse hyperbolic sine of x.
func (c Context) Asinh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Asinh, x, p)
	}
	a := toFloat(x, p)
	neg := a.Signbit()
	a.Abs(a)
	// ln(a + sqrt(a²+1))
	t := new(big.Float).SetPrec(p).Mul(a, a)
	t.Add(t, big.NewFloat(1))
	t.Sqrt(t)
	t.Add(t, a)
	r := bigfloat.Log(new(big.Float).SetPrec(p), t)
	if neg {
		r.Neg(r)
	}
	return Real{r}, nil
}

// Acosh returns the inverse hyperbolic cosine of x, which must be at least 1
// if real.
func (c Context) Acosh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Acosh, x, p)
	}
	a := toFloat(x, p)
	if a.Cmp(big.NewFloat(1)) < 0 {
		return nil, &DomainError{Func: "acosh", Reason: "argument below 1"}
	}
	t := new(big.Float).SetPrec(p).Mul(a, a)
	t.Sub(t, big.NewFloat(1))
	t.Sqrt(t)
	t.Add(t, a)
	return Real{bigfloat.Log(new(big.Float).SetPrec(p), t)}, nil
}

// Atanh returns the inverse hyperbolic tangent of x, which must be in
// (-1, 1) if real.
func (c Context) Atanh(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Atanh, x, p)
	}
	a := toFloat(x, p)
	if new(big.Float).Abs(a).Cmp(big.NewFloat(1)) >= 0 {
		return nil, &DomainError{Func: "atanh", Reason: "argument outside (-1, 1)"}
	}
	// ln((1+a)/(1-a))/2
	n := new(big.Float).SetPrec(p).Add(big.NewFloat(1), a)
	d := new(big.Float).SetPrec(p).Sub(big.NewFloat(1), a)
	n.Quo(n, d)
	r := bigfloat.Log(new(big.Float).SetPrec(p), n)
	return Real{r.Quo(r, big.NewFloat(2))}, nil
}

// expPair returns e^x and e^-x.
func expPair(x *big.Float, p uint) (*big.Float, *big.Float) {
	e := bigfloat.Exp(new(big.Float).SetPrec(p), x)
	ie := new(big.Float).SetPrec(p).Quo(big.NewFloat(1), e)
	return e, ie
}

func halfPi(p uint) *big.Float {
	h := bigfloat.Pi(new(big.Float).SetPrec(p))
	return h.Quo(h, big.NewFloat(2))
}

// sinCos computes the sine and cosine of x to p bits. The argument is
// reduced modulo 2π and both Taylor series are summed directly.
func sinCos(x *big.Float, p uint) (sin, cos *big.Float) {
	wp := p + 64
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}
	r := new(big.Float).SetPrec(wp).Set(x)
	twoPi := bigfloat.Pi(new(big.Float).SetPrec(wp))
	twoPi.Mul(twoPi, big.NewFloat(2))
	k := new(big.Float).SetPrec(wp).Quo(r, twoPi)
	ki, _ := k.Int(nil)
	k.SetInt(ki)
	r.Sub(r, k.Mul(k, twoPi))

	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	s := new(big.Float).SetPrec(wp).Set(r)
	co := new(big.Float).SetPrec(wp).SetInt64(1)
	st := new(big.Float).SetPrec(wp).Set(r)
	ct := new(big.Float).SetPrec(wp).SetInt64(1)
	d := new(big.Float).SetPrec(wp)
	limit := -int(wp) - 8
	for n := int64(1); ; n++ {
		// st_n = -st_{n-1} r² / ((2n)(2n+1)); ct_n = -ct_{n-1} r² / ((2n-1)(2n))
		st.Mul(st, r2)
		st.Quo(st, d.SetInt64(2*n*(2*n+1)))
		st.Neg(st)
		s.Add(s, st)
		ct.Mul(ct, r2)
		ct.Quo(ct, d.SetInt64((2*n-1)*(2*n)))
		ct.Neg(ct)
		co.Add(co, ct)
		if tiny(st, limit) && tiny(ct, limit) {
			break
		}
	}
	return s.SetPrec(p), co.SetPrec(p)
}

// tiny reports whether x is zero or has binary exponent below e.
func tiny(x *big.Float, e int) bool {
	return x.Sign() == 0 || x.MantExp(nil) < e
}

// atan computes the arctangent of x to p bits. The argument is halved with
// atan(x) = 2 atan(x / (1 + sqrt(1 + x²))) until it is small, then the
// Maclaurin series is summed.
func atan(x *big.Float, p uint) *big.Float {
	wp := p + 64
	y := new(big.Float).SetPrec(wp).Abs(x)
	neg := x.Signbit()
	eighth := big.NewFloat(0.125)
	t := new(big.Float).SetPrec(wp)
	doublings := 0
	for y.Cmp(eighth) > 0 {
		t.Mul(y, y)
		t.Add(t, big.NewFloat(1))
		t.Sqrt(t)
		t.Add(t, big.NewFloat(1))
		y.Quo(y, t)
		doublings++
	}
	y2 := new(big.Float).SetPrec(wp).Mul(y, y)
	pw := new(big.Float).SetPrec(wp).Set(y)
	sum := new(big.Float).SetPrec(wp).Set(y)
	d := new(big.Float).SetPrec(wp)
	limit := -int(wp) - 8
	for n := int64(1); ; n++ {
		pw.Mul(pw, y2)
		pw.Neg(pw)
		t.Quo(pw, d.SetInt64(2*n+1))
		sum.Add(sum, t)
		if tiny(t, limit) {
			break
		}
	}
	sum.SetMantExp(sum, doublings)
	if neg {
		sum.Neg(sum)
	}
	return sum.SetPrec(p)
}

// asin computes the arcsine of x. ok is false outside [-1, 1].
func asin(x *big.Float, p uint) (r *big.Float, ok bool) {
	wp := p + 32
	a := new(big.Float).SetPrec(wp).Abs(x)
	switch a.Cmp(big.NewFloat(1)) {
	case 1:
		return nil, false
	case 0:
		h := halfPi(p)
		if x.Signbit() {
			h.Neg(h)
		}
		return h, true
	}
	// atan(x / sqrt(1 - x²))
	t := new(big.Float).SetPrec(wp).Mul(x, x)
	t.Sub(big.NewFloat(1), t)
	t.Sqrt(t)
	t.Quo(new(big.Float).SetPrec(wp).Set(x), t)
	return atan(t, p), true
}
