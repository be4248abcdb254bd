package numeric

import (
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

type arithOp int8

const (
	opAdd arithOp = iota
	opSub
	opMul
)

// Add returns x+y. Integers add exactly; otherwise the result takes the
// higher kind of its operands.
func (c Context) Add(x, y Value) Value { return c.arith(opAdd, x, y) }

// Sub returns x-y.
func (c Context) Sub(x, y Value) Value { return c.arith(opSub, x, y) }

// Mul returns x*y.
func (c Context) Mul(x, y Value) Value { return c.arith(opMul, x, y) }

// Neg returns -x.
func (c Context) Neg(x Value) Value {
	switch x := x.(type) {
	case Integer:
		return Integer{new(big.Int).Neg(x.val())}
	case Real:
		return Real{new(big.Float).Neg(x.val())}
	case Complex:
		re, im := x.parts()
		return Complex{new(big.Float).Neg(re), new(big.Float).Neg(im)}
	}
	panic("numeric: unknown value type")
}

func (c Context) arith(op arithOp, x, y Value) Value {
	if a, ok := x.(Integer); ok {
		if b, ok := y.(Integer); ok {
			z := new(big.Int)
			switch op {
			case opAdd:
				z.Add(a.val(), b.val())
			case opSub:
				z.Sub(a.val(), b.val())
			case opMul:
				z.Mul(a.val(), b.val())
			}
			return Integer{z}
		}
	}
	p := c.opPrec(x, y)
	if x.Kind() == KindComplex || y.Kind() == KindComplex {
		a, b := toParts(x, p)
		d, e := toParts(y, p)
		return complexArith(op, a, b, d, e, p)
	}
	a, b := toFloat(x, p), toFloat(y, p)
	switch op {
	case opAdd:
		a.Add(a, b)
	case opSub:
		a.Sub(a, b)
	case opMul:
		a.Mul(a, b)
	}
	return Real{a}
}

func complexArith(op arithOp, a, b, c, d *big.Float, p uint) Value {
	re := new(big.Float).SetPrec(p)
	im := new(big.Float).SetPrec(p)
	switch op {
	case opAdd:
		re.Add(a, c)
		im.Add(b, d)
	case opSub:
		re.Sub(a, c)
		im.Sub(b, d)
	case opMul:
		t := new(big.Float).SetPrec(p)
		re.Mul(a, c)
		re.Sub(re, t.Mul(b, d))
		im.Mul(a, d)
		im.Add(im, t.Mul(b, c))
	}
	return NewComplex(re, im)
}

// Quo returns x/y. Division of integers stays exact when it is exact and
// produces a Real otherwise. Division by zero is a DomainError.
func (c Context) Quo(x, y Value) (Value, error) {
	if IsZero(y) {
		return nil, divByZero("/")
	}
	if a, ok := x.(Integer); ok {
		if b, ok := y.(Integer); ok {
			q, r := new(big.Int).QuoRem(a.val(), b.val(), new(big.Int))
			if r.Sign() == 0 {
				return Integer{q}, nil
			}
		}
	}
	p := c.opPrec(x, y)
	if x.Kind() == KindComplex || y.Kind() == KindComplex {
		a, b := toParts(x, p)
		d, e := toParts(y, p)
		// (a+bi)/(d+ei) = ((ad+be) + (bd-ae)i) / (d²+e²)
		t := new(big.Float).SetPrec(p)
		den := new(big.Float).SetPrec(p).Mul(d, d)
		den.Add(den, t.Mul(e, e))
		re := new(big.Float).SetPrec(p).Mul(a, d)
		re.Add(re, t.Mul(b, e))
		im := new(big.Float).SetPrec(p).Mul(b, d)
		im.Sub(im, t.Mul(a, e))
		re.Quo(re, den)
		im.Quo(im, den)
		return finite("/", NewComplex(re, im))
	}
	a, b := toFloat(x, p), toFloat(y, p)
	return finite("/", Real{a.Quo(a, b)})
}

// maxExactExp is the largest exponent for which integer powers are computed
// exactly.
const maxExactExp = 1 << 16

// Pow returns x^y. Integer exponents use repeated squaring and keep integer
// bases exact. A negative real base with a non-integer exponent produces a
// Complex result. A result too large to represent is a DomainError.
func (c Context) Pow(x, y Value) (Value, error) {
	r, err := c.pow(x, y)
	if err != nil {
		return nil, err
	}
	return finite("^", r)
}

func (c Context) pow(x, y Value) (Value, error) {
	if n, ok := y.(Integer); ok {
		return c.powInt(x, n.val())
	}
	p := c.opPrec(x, y)
	if y.Kind() == KindReal && x.Kind() != KindComplex {
		a, b := toFloat(x, p), toFloat(y, p)
		if b.IsInt() {
			n, _ := b.Int(nil)
			if n.IsInt64() && abs64(n.Int64()) <= maxExactExp {
				return c.powInt(Real{a}, n)
			}
		}
		switch a.Sign() {
		case 0:
			if b.Sign() > 0 {
				return Real{new(big.Float).SetPrec(p)}, nil
			}
			return nil, divByZero("^")
		case 1:
			return Real{bigfloat.Pow(new(big.Float).SetPrec(p), a, b)}, nil
		}
	}
	return complexPow(x, y, p)
}

func (c Context) powInt(x Value, n *big.Int) (Value, error) {
	if n.Sign() < 0 {
		if IsZero(x) {
			return nil, divByZero("^")
		}
		r, err := c.powInt(x, new(big.Int).Neg(n))
		if err != nil {
			return nil, err
		}
		return c.Quo(NewInteger(1), r)
	}
	if a, ok := x.(Integer); ok {
		if n.IsInt64() && n.Int64() <= maxExactExp || a.val().CmpAbs(big.NewInt(1)) <= 0 {
			return Integer{new(big.Int).Exp(a.val(), n, nil)}, nil
		}
		x = Real{toFloat(a, c.Prec())}
	}
	// Square and multiply over the bits of n.
	var r Value = NewInteger(1)
	b := x
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) != 0 {
			r = c.Mul(r, b)
		}
		if i+1 < n.BitLen() {
			b = c.Mul(b, b)
		}
	}
	return r, nil
}

// complexPow computes general powers through complex128. This loses
// precision beyond float64, which only affects complex results.
func complexPow(x, y Value, p uint) (Value, error) {
	a, b := Complex128(x), Complex128(y)
	if a == 0 {
		if real(b) > 0 {
			return NewInteger(0), nil
		}
		return nil, divByZero("^")
	}
	return FromComplex128(cmplx.Pow(a, b), p)
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
