package numeric

import (
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// Pi returns π at the working precision.
func (c Context) Pi() Real {
	return Real{bigfloat.Pi(new(big.Float).SetPrec(c.Prec()))}
}

// E returns Euler's number at the working precision.
func (c Context) E() Real {
	one := new(big.Float).SetPrec(c.Prec()).SetInt64(1)
	return Real{bigfloat.Exp(new(big.Float).SetPrec(c.Prec()), one)}
}

// unaryPrec is the precision for a unary operation on x.
func (c Context) unaryPrec(x Value) uint {
	return max(precOf(x), c.Prec())
}

// viaComplex evaluates f on complex128 and converts back.
func viaComplex(f func(complex128) complex128, x Value, p uint) (Value, error) {
	return FromComplex128(f(Complex128(x)), p)
}

// Abs returns |x|. The magnitude of a Complex is a Real.
func (c Context) Abs(x Value) Value {
	switch x := x.(type) {
	case Integer:
		return Integer{new(big.Int).Abs(x.val())}
	case Real:
		return Real{new(big.Float).Abs(x.val())}
	case Complex:
		re, im := x.parts()
		p := max(re.Prec(), im.Prec())
		t := new(big.Float).SetPrec(p).Mul(re, re)
		t.Add(t, new(big.Float).SetPrec(p).Mul(im, im))
		return Real{t.Sqrt(t)}
	}
	panic("numeric: unknown value type")
}

// Re returns the real part of x.
func Re(x Value) Value {
	if z, ok := x.(Complex); ok {
		return Real{z.Re()}
	}
	return x
}

// Im returns the imaginary part of x.
func Im(x Value) Value {
	if z, ok := x.(Complex); ok {
		return Real{z.Im()}
	}
	return NewInteger(0)
}

// Conj returns the complex conjugate of x.
func Conj(x Value) Value {
	if z, ok := x.(Complex); ok {
		re, im := z.parts()
		return Complex{new(big.Float).Copy(re), new(big.Float).Neg(im)}
	}
	return x
}

// Arg returns the argument of x in (-π, π].
func (c Context) Arg(x Value) (Value, error) {
	if x.Kind() != KindComplex {
		switch Sign(x) {
		case -1:
			return c.Pi(), nil
		case 0:
			return nil, &DomainError{Func: "arg", Reason: "argument of zero"}
		}
		return NewInteger(0), nil
	}
	return FromFloat64(cmplx.Phase(Complex128(x)), c.Prec())
}

// Sqrt returns the principal square root of x. Negative reals produce a
// purely imaginary result.
func (c Context) Sqrt(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Sqrt, x, p)
	}
	a := toFloat(x, p)
	if a.Sign() >= 0 {
		r := new(big.Float).SetPrec(p).Sqrt(a)
		if _, ok := x.(Integer); ok && r.IsInt() {
			n, _ := r.Int(nil)
			return Integer{n}, nil
		}
		return Real{r}, nil
	}
	a.Neg(a)
	return NewComplex(new(big.Float).SetPrec(p), a.Sqrt(a)), nil
}

// Exp returns e^x.
func (c Context) Exp(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Exp, x, p)
	}
	return finite("exp", Real{bigfloat.Exp(new(big.Float).SetPrec(p), toFloat(x, p))})
}

// Ln returns the natural logarithm of x. The logarithm of a negative real is
// the principal complex logarithm.
func (c Context) Ln(x Value) (Value, error) {
	p := c.unaryPrec(x)
	if x.Kind() == KindComplex {
		return viaComplex(cmplx.Log, x, p)
	}
	a := toFloat(x, p)
	switch a.Sign() {
	case 0:
		return nil, &DomainError{Func: "ln", Reason: "logarithm of zero"}
	case -1:
		a.Neg(a)
		re := bigfloat.Log(new(big.Float).SetPrec(p), a)
		return NewComplex(re, bigfloat.Pi(new(big.Float).SetPrec(p))), nil
	}
	return Real{bigfloat.Log(new(big.Float).SetPrec(p), a)}, nil
}

// Log returns the logarithm of x in the given base.
func (c Context) Log(x, base Value) (Value, error) {
	n, err := c.Ln(x)
	if err != nil {
		return nil, err
	}
	d, err := c.Ln(base)
	if err != nil {
		return nil, err
	}
	if IsZero(d) {
		return nil, &DomainError{Func: "log", Reason: "logarithm in base 1"}
	}
	return c.Quo(n, d)
}

// Factorial returns n! for a non-negative Integer n.
func Factorial(x Value) (Value, error) {
	n, ok := x.(Integer)
	if !ok {
		return nil, &DomainError{Func: "!", Reason: "factorial of a non-integer"}
	}
	if n.val().Sign() < 0 {
		return nil, &DomainError{Func: "!", Reason: "factorial of a negative number"}
	}
	if !n.val().IsInt64() || n.val().Int64() > maxExactExp {
		return nil, &DomainError{Func: "!", Reason: "argument too large"}
	}
	return Integer{new(big.Int).MulRange(1, n.val().Int64())}, nil
}
