package calc

import (
	"html"
	"math"
	"strconv"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

func builtinExpand(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	return algebra.Expand(e), nil
}

func builtinDifferentiate(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	x, err := variable(args, 1, e)
	if err != nil {
		return nil, err
	}
	d, err := algebra.Differentiate(e, x)
	if err != nil {
		return nil, err
	}
	return algebra.Expand(d), nil
}

// builtinIntegrate is integrate(y), integrate(y, x), integrate(y, a, b), or
// integrate(y, a, b, x).
func builtinIntegrate(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 1, 2:
		x, err := variable(args, 1, e)
		if err != nil {
			return nil, err
		}
		return algebra.Integrate(c.ctx, e, x)
	}
	a, err := expr(args, 1)
	if err != nil {
		return nil, err
	}
	b, err := expr(args, 2)
	if err != nil {
		return nil, err
	}
	x, err := variable(args, 3, e)
	if err != nil {
		return nil, err
	}
	return algebra.DefiniteIntegral(c.ctx, e, x, a, b)
}

func builtinEval(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	v, err := expr(args, 1)
	if err != nil {
		return nil, err
	}
	x, err := variable(args, 2, e)
	if err != nil {
		return nil, err
	}
	return algebra.Substitute(c.ctx, e, x, v)
}

// defaultSamples is the number of points evalbetween computes.
const defaultSamples = 1000

// builtinEvalBetween tabulates a function at evenly spaced points of an
// interval, including both ends, as rows of x and f(x).
func builtinEvalBetween(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	a, b, err := interval(args, 1)
	if err != nil {
		return nil, err
	}
	n := defaultSamples
	if len(args) > 3 {
		if n, err = count(args, 3); err != nil {
			return nil, err
		}
	}
	if n < 2 {
		return nil, &numeric.DomainError{Func: "evalbetween", Reason: "need at least two samples"}
	}
	f := algebra.Func(c.ctx, e, algebra.Variable(e))
	rows := make([][]algebra.Expr, n)
	for k := range rows {
		t := a + (b-a)*float64(k)/float64(n-1)
		y := f(t)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, &numeric.DomainError{Func: "evalbetween", Reason: "function is undefined at " + strconv.FormatFloat(t, 'g', -1, 64)}
		}
		x, err := fromFloat(t)
		if err != nil {
			return nil, err
		}
		fx, err := fromFloat(y)
		if err != nil {
			return nil, err
		}
		rows[k] = []algebra.Expr{x.(algebra.Expr), fx.(algebra.Expr)}
	}
	return matrix.New(rows)
}

// interval gets a pair of finite real bounds starting at argument i.
func interval(args []Value, i int) (a, b float64, err error) {
	if a, err = float(args, i); err != nil {
		return 0, 0, err
	}
	if b, err = float(args, i+1); err != nil {
		return 0, 0, err
	}
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, 0, &numeric.DomainError{Reason: "bounds must be finite"}
	}
	return a, b, nil
}

func builtinRoots(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	n := algebra.DefaultRootIterations
	if len(args) > 1 {
		if n, err = count(args, 1); err != nil {
			return nil, err
		}
	}
	rs, err := algebra.Roots(c.ctx, e, algebra.Variable(e), n)
	if err != nil {
		return nil, err
	}
	return numbers(rs), nil
}

// defaultExtremaIterations is the number of root-finding iterations maxima
// and minima use on the derivative.
const defaultExtremaIterations = 100

// extrema creates the builtin for maxima or minima.
func extrema(find func(numeric.Context, algebra.Expr, algebra.Symbol, int) ([]numeric.Value, error)) func(*Calculator, []Value) (Value, error) {
	return func(c *Calculator, args []Value) (Value, error) {
		e, err := expr(args, 0)
		if err != nil {
			return nil, err
		}
		n := defaultExtremaIterations
		if len(args) > 1 {
			if n, err = count(args, 1); err != nil {
				return nil, err
			}
		}
		rs, err := find(c.ctx, e, algebra.Variable(e), n)
		if err != nil {
			return nil, err
		}
		return numbers(rs), nil
	}
}

var (
	builtinMaxima = extrema(algebra.Maxima)
	builtinMinima = extrema(algebra.Minima)
)

// quadrature creates the builtin for a numerical integration rule with a
// default strip count or, for Romberg, a default number of levels.
func quadrature(rule func(f func(float64) float64, a, b float64, n int) float64, def int) func(*Calculator, []Value) (Value, error) {
	return func(c *Calculator, args []Value) (Value, error) {
		e, err := expr(args, 0)
		if err != nil {
			return nil, err
		}
		a, b, err := interval(args, 1)
		if err != nil {
			return nil, err
		}
		n := def
		if len(args) > 3 {
			if n, err = count(args, 3); err != nil {
				return nil, err
			}
		}
		r := rule(algebra.Func(c.ctx, e, algebra.Variable(e)), a, b, n)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, &numeric.DomainError{Reason: "integrand is undefined on the interval"}
		}
		return fromFloat(r)
	}
}

// builtinPlot describes a plot of a function of one variable. The plain form
// is a gnuplot command; the markup carries the same description for a front
// end that draws it.
func builtinPlot(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	a, b := -10.0, 10.0
	switch len(args) {
	case 2:
		return nil, &numeric.DomainError{Func: "plot", Reason: "need both bounds or neither"}
	case 3:
		if a, b, err = interval(args, 1); err != nil {
			return nil, err
		}
	}
	if !(a < b) {
		return nil, &numeric.DomainError{Func: "plot", Reason: "empty range"}
	}
	x := algebra.Variable(e)
	g := algebra.Gnuplot(e)
	rng := "[" + strconv.FormatFloat(a, 'g', -1, 64) + ":" + strconv.FormatFloat(b, 'g', -1, 64) + "]"
	plain := "set xrange " + rng + "; plot " + g
	markup := `<figure class="plot" data-gnuplot="` + html.EscapeString(g) +
		`" data-variable="` + html.EscapeString(x.Name) +
		`" data-range="` + html.EscapeString(rng) + `"><figcaption>` +
		html.EscapeString(e.Format(c.ctx)) + `</figcaption></figure>`
	return NewRich(plain, markup), nil
}

func builtinGnuplot(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	return Text(algebra.Gnuplot(e)), nil
}
