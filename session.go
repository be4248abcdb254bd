package calc

import (
	"html"
	"maps"
	"slices"
	"strings"

	"github.com/zephyrtronium/calc/numeric"
)

// maxDigits bounds the display precision.
const maxDigits = 1000

// builtinSetPrec sets the number of significant digits displayed and shows
// ans at the new precision.
func builtinSetPrec(c *Calculator, args []Value) (Value, error) {
	n, err := count(args, 0)
	if err != nil {
		return nil, err
	}
	if n > maxDigits {
		return nil, &numeric.DomainError{Func: "setprec", Reason: "precision too large"}
	}
	c.ctx = c.ctx.WithDigits(uint(n))
	return c.objects["ans"], nil
}

// builtinSetExact sets whether exact forms are displayed. With no argument,
// it toggles the setting.
func builtinSetExact(c *Calculator, args []Value) (Value, error) {
	exact := !c.ctx.Exact
	if len(args) > 0 {
		x, err := number(args, 0)
		if err != nil {
			return nil, err
		}
		exact = !numeric.IsZero(x)
	}
	c.ctx = c.ctx.WithExact(exact)
	return c.objects["ans"], nil
}

// builtinDecimal shows a value without exact forms.
func builtinDecimal(c *Calculator, args []Value) (Value, error) {
	return Text(args[0].Format(c.ctx.WithExact(false))), nil
}

func builtinType(c *Calculator, args []Value) (Value, error) {
	return Text(kindOf(args[0])), nil
}

const aboutText = "calc: a symbolic calculator with arbitrary precision arithmetic, " +
	"calculus on expressions in one variable, numerical integration and root finding, " +
	"and matrices."

func builtinAbout(c *Calculator) (Value, error) {
	markup := `<p class="about">` + html.EscapeString(aboutText) + `</p>`
	return NewRich(aboutText, markup), nil
}

func builtinHelp(c *Calculator) (Value, error) {
	names := slices.Sorted(maps.Keys(c.funcs))
	var b strings.Builder
	b.WriteString("functions: ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\nconstants: pi, i\noperators: + - * / ^ ! degs |x| ||v|| := $ (f $ x + 1 is f(x + 1))\nobjects: ans and uppercase letters")
	return Text(b.String()), nil
}

func builtinQuit(c *Calculator) (Value, error) {
	return nil, ErrQuit
}
