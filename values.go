package calc

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

// Value is the result of evaluating a command or any part of one. The
// concrete types are the algebra.Expr implementations, *matrix.Matrix,
// matrix.Vector, List, Text, and Rich.
type Value interface {
	// Format renders the value for display.
	Format(ctx numeric.Context) string
}

var (
	_ Value = algebra.Expr(nil)
	_ Value = (*matrix.Matrix)(nil)
	_ Value = matrix.Vector(nil)
	_ Value = List(nil)
	_ Value = Text("")
	_ Value = (*Rich)(nil)
)

// List is an unordered collection of results, such as the roots of a
// polynomial. Lists display in braces.
type List []Value

func (l List) Format(ctx numeric.Context) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Format(ctx))
	}
	b.WriteByte('}')
	return b.String()
}

// Text is a plain message, such as the result of help.
type Text string

func (t Text) Format(numeric.Context) string { return string(t) }

// Rich is a result paired with markup for a front end that can render it.
// Hosts that cannot render markup show Plain.
type Rich struct {
	// Plain is the text form of the result.
	Plain string
	// Markup is an HTML fragment. It has been sanitized.
	Markup string
}

// NewRich creates a rich value, sanitizing the markup.
func NewRich(plain, markup string) *Rich {
	return &Rich{Plain: plain, Markup: markupPolicy.Sanitize(markup)}
}

func (r *Rich) Format(numeric.Context) string { return r.Plain }

// markupPolicy allows the elements rich results produce and the data
// attributes that carry plot descriptions.
var markupPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "p")
	p.AllowDataAttributes()
	return p
}()

// kindOf names the type of a value for error messages.
func kindOf(v Value) string {
	switch v.(type) {
	case algebra.Number:
		return "number"
	case algebra.Expr:
		return "expression"
	case *matrix.Matrix:
		return "matrix"
	case matrix.Vector:
		return "vector"
	case List:
		return "list"
	case Text, *Rich:
		return "text"
	}
	return "value"
}
