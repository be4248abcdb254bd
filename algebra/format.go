package algebra

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/calc/numeric"
)

// printer renders expressions. The display style writes implicit
// multiplication and ^; the gnuplot style writes * and **.
type printer struct {
	ctx     numeric.Context
	mul     string
	pow     string
	gnuplot bool
}

func (n Number) Format(ctx numeric.Context) string   { return display(ctx).expr(n) }
func (s Symbol) Format(ctx numeric.Context) string   { return s.Name }
func (s *Sum) Format(ctx numeric.Context) string     { return display(ctx).expr(s) }
func (p *Product) Format(ctx numeric.Context) string { return display(ctx).expr(p) }
func (p *Power) Format(ctx numeric.Context) string   { return display(ctx).expr(p) }
func (c *Call) Format(ctx numeric.Context) string    { return display(ctx).expr(c) }
func (Constant) Format(ctx numeric.Context) string   { return "c" }
func (n Number) String() string                      { return n.Format(numeric.Default) }
func (s Symbol) String() string                      { return s.Name }
func (s *Sum) String() string                        { return s.Format(numeric.Default) }
func (p *Product) String() string                    { return p.Format(numeric.Default) }
func (p *Power) String() string                      { return p.Format(numeric.Default) }
func (c *Call) String() string                       { return c.Format(numeric.Default) }
func (Constant) String() string                      { return "c" }

func display(ctx numeric.Context) printer {
	return printer{ctx: ctx, pow: "^"}
}

// Gnuplot renders e in the syntax of the gnuplot plotting tool, with
// explicit multiplication, ** for powers, and decimal numbers.
func Gnuplot(e Expr) string {
	p := printer{ctx: numeric.Context{Digits: 15}, mul: "*", pow: "**", gnuplot: true}
	return p.expr(e)
}

func (p printer) expr(e Expr) string {
	switch e := e.(type) {
	case Number:
		return p.number(e.Value())
	case Symbol:
		return e.Name
	case *Sum:
		return p.sum(e)
	case *Product:
		return p.product(e)
	case *Power:
		return p.power(e)
	case *Call:
		name := e.fn.Name
		if p.gnuplot {
			name = e.fn.Gnuplot
		}
		return name + "(" + p.expr(e.arg) + ")"
	case Constant:
		return "c"
	}
	return "<invalid>"
}

func (p printer) number(v numeric.Value) string {
	if !p.gnuplot {
		return p.ctx.Format(v)
	}
	switch v.Kind() {
	case numeric.KindInteger:
		return v.String()
	case numeric.KindReal:
		s := strconv.FormatFloat(numeric.Float64(v), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			// Keep gnuplot from using integer division.
			s += ".0"
		}
		return s
	}
	z := numeric.Complex128(v)
	return "{" + strconv.FormatFloat(real(z), 'g', -1, 64) + "," + strconv.FormatFloat(imag(z), 'g', -1, 64) + "}"
}

// plainNumber reports whether s is an optionally signed decimal numeral.
func plainNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func negative(e Expr) bool {
	c, _ := splitCoef(e)
	return numeric.Sign(c) < 0
}

func (p printer) sum(s *Sum) string {
	var b strings.Builder
	for i, t := range s.terms {
		if i == 0 {
			b.WriteString(p.expr(t))
			continue
		}
		if negative(t) {
			b.WriteString(" - ")
			t = Neg(t)
		} else {
			b.WriteString(" + ")
		}
		str := p.expr(t)
		if _, ok := t.(Number); ok && !plainNumber(str) && !p.gnuplot {
			str = "(" + str + ")"
		}
		b.WriteString(str)
	}
	return b.String()
}

func (p printer) product(e *Product) string {
	var b strings.Builder
	fs := e.factors
	if v, ok := numberOf(fs[0]); ok {
		fs = fs[1:]
		switch s := p.number(v); {
		case numeric.IsInt(v, -1):
			b.WriteByte('-')
		case p.gnuplot || plainNumber(s):
			b.WriteString(s)
		default:
			b.WriteString("(" + s + ")")
		}
	}
	for _, f := range fs {
		s := p.expr(f)
		if _, ok := f.(*Sum); ok {
			s = "(" + s + ")"
		}
		if b.Len() > 0 && b.String() != "-" {
			last := b.String()[b.Len()-1]
			switch {
			case p.mul != "":
				b.WriteString(p.mul)
			case isDigit(last) && (isDigit(s[0]) || s[0] == '.'):
				b.WriteByte('*')
			}
		}
		b.WriteString(s)
	}
	return b.String()
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func (p printer) power(e *Power) string {
	base := p.expr(e.base)
	switch e.base.(type) {
	case *Sum, *Product, *Power:
		base = "(" + base + ")"
	case Number:
		if !plainNumber(base) || strings.HasPrefix(base, "-") {
			base = "(" + base + ")"
		}
	}
	exp := p.expr(e.exp)
	switch e.exp.(type) {
	case Symbol, *Call, Constant:
	case Number:
		if !plainNumber(exp) {
			exp = "(" + exp + ")"
		}
	default:
		exp = "(" + exp + ")"
	}
	return base + p.pow + exp
}
