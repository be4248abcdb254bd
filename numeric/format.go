package numeric

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"

	"github.com/zephyrtronium/calc/numerical"
)

const (
	// small is the distance within which a real displays as a nearby
	// integer or as pi.
	small = 5e-5
	// exactBound bounds the denominators accepted for exact forms.
	exactBound = 50
	// fractionPlaces is the agreement required of a rational approximation.
	fractionPlaces = 10
)

// exactRoots are the radicands recognized in exact forms.
var exactRoots = [...]int{2, 3, 5, 7, 11, 13}

// Format renders a value for display under the context's precision and
// exact-form policy.
func (c Context) Format(v Value) string {
	switch v := v.(type) {
	case Integer:
		return v.String()
	case Real:
		return c.formatReal(v.val())
	case Complex:
		re, im := v.parts()
		return c.formatComplex(re, im)
	}
	return "<invalid>"
}

// formatReal tries, in order: a nearby integer, pi, a simple fraction, a
// rational multiple of pi, a rational multiple of a small square root, and
// finally a decimal rounded to Digits significant digits. Exact forms are
// only tried in exact mode.
func (c Context) formatReal(x *big.Float) string {
	if x.IsInf() {
		if x.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	if n, ok := nearInt(x); ok {
		return n.String()
	}
	f, _ := x.Float64()
	if c.Exact && math.Abs(f) > small && !math.IsInf(f, 0) {
		if s, ok := exactForm(f); ok {
			return s
		}
	}
	return c.decimal(x)
}

// nearInt returns the integer nearest x if it is within small of x.
func nearInt(x *big.Float) (*big.Int, bool) {
	t := new(big.Float).SetPrec(x.Prec() + 8).Set(x)
	half := big.NewFloat(0.5)
	if x.Signbit() {
		t.Sub(t, half)
	} else {
		t.Add(t, half)
	}
	n, _ := t.Int(nil)
	d := new(big.Float).SetPrec(x.Prec()).SetInt(n)
	d.Sub(d, x)
	df, _ := d.Float64()
	if math.Abs(df) < small {
		return n, true
	}
	return nil, false
}

func exactForm(f float64) (string, bool) {
	switch {
	case math.Abs(f-math.Pi) < small:
		return "pi", true
	case math.Abs(f+math.Pi) < small:
		return "-pi", true
	}
	if a, b := numerical.ToFraction(f, fractionPlaces); b > 1 && b < exactBound {
		return strconv.FormatInt(a, 10) + "/" + strconv.FormatInt(b, 10), true
	}
	if a, b := numerical.ToFraction(f/math.Pi, fractionPlaces); a != 0 && b > 0 && b < exactBound {
		return rationalMultiple(a, b, "pi", ""), true
	}
	for _, n := range exactRoots {
		r := math.Sqrt(float64(n))
		if a, b := numerical.ToFraction(f/r, fractionPlaces); a != 0 && b > 0 && b < exactBound {
			return rationalMultiple(a, b, strconv.Itoa(n)+"^(1/2)", "*"), true
		}
	}
	return "", false
}

// rationalMultiple formats (a/b)·unit, writing a unit coefficient as the
// unit alone. sep separates a non-unit numerator from the unit.
func rationalMultiple(a, b int64, unit, sep string) string {
	var s strings.Builder
	if a < 0 {
		s.WriteByte('-')
		a = -a
	}
	if a != 1 {
		s.WriteString(strconv.FormatInt(a, 10))
		s.WriteString(sep)
	}
	s.WriteString(unit)
	if b != 1 {
		s.WriteByte('/')
		s.WriteString(strconv.FormatInt(b, 10))
	}
	return s.String()
}

// decimal rounds x to the display precision and strips trailing zeros.
// Large and small magnitudes use scientific notation.
func (c Context) decimal(x *big.Float) string {
	digits := c.digits()
	s := x.Text('e', int(digits)+4)
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return x.Text('g', int(digits))
	}
	ctx := apd.BaseContext.WithPrecision(uint32(digits))
	if _, err := ctx.Round(d, d); err != nil {
		return x.Text('g', int(digits))
	}
	d.Reduce(d)
	return d.String()
}

// formatComplex renders a+bi. A negligible real part is omitted and a unit
// imaginary coefficient is written as i alone.
func (c Context) formatComplex(re, im *big.Float) string {
	var b strings.Builder
	rf, _ := re.Float64()
	if math.Abs(rf) >= small {
		b.WriteString(c.formatReal(re))
		if im.Signbit() {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
	} else if im.Signbit() {
		b.WriteByte('-')
	}
	switch s := c.formatReal(new(big.Float).Abs(im)); {
	case s == "1":
	case strings.ContainsAny(s, "/^"):
		// 1/2i would read as 1/(2i).
		b.WriteByte('(')
		b.WriteString(s)
		b.WriteByte(')')
	case strings.HasSuffix(s, "pi"):
		b.WriteString(s)
		b.WriteByte('*')
	default:
		b.WriteString(s)
	}
	b.WriteByte('i')
	return b.String()
}
