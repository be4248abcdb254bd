package calc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
)

func TestBuiltins(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"expand", "expand((x+1)^2)", "x^2 + 2x + 1"},
		{"differentiate", "differentiate(x^3 + 2x)", "3x^2 + 2"},
		{"differentiate-sin", "differentiate(sin x)", "cos(x)"},
		{"integrate", "integrate(x^2)", "(1/3)x^3 + c"},
		{"integrate-definite", "integrate(sin x, 0, pi)", "2"},
		{"eval", "eval(x^2, 3)", "9"},
		{"roots", "roots(x^2-2x-15)", "{-3, 5}"},
		{"roots-dollar", "roots $ x^2-2x-15", "{-3, 5}"},
		{"maxima", "maxima(x^3 - 3x)", "{-1}"},
		{"minima", "minima(x^3 - 3x)", "{1}"},
		{"romberg", "romberg(x^2, 0, 3)", "9"},
		{"gnuplot", "gnuplot(2x^2 + 3x)", "2*x**2 + 3*x"},
		{"factorial", "factorial 5", "120"},
		{"ncr", "nCr(5,2)", "10"},
		{"npr", "nPr(5,2)", "20"},
		{"factors", "factors(12)", "{2, 2, 3}"},
		{"factors-poly", "factors(x^2-1)", "{x + 1, x - 1}"},
		{"det", "det [[1, 2], [3, 4]]", "-2"},
		{"trace", "trace [[1, 2], [3, 4]]", "5"},
		{"transpose", "transpose [[1, 2], [3, 4]]", "[[1, 3], [2, 4]]"},
		{"order", "order [[1,2,3],[4,5,6]]", "2×3"},
		{"identity", "identity 2", "[[1, 0], [0, 1]]"},
		{"norm", "norm [3, 4]", "5"},
		{"poly", "poly [[2,0],[0,3]]", "x^2 - 5x + 6"},
		{"eigenvalues", "eigenvalues [[2,0],[0,3]]", "{2, 3}"},
		{"type", "type [1, 2]", "vector"},
		{"type-number", "type 1", "number"},
		{"decimal", "decimal(1/3)", "0.333"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, run(t, calc.New(), c.src))
		})
	}
}

func TestStatistics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"mean", "mean [1,2,3,4]", "2.5"},
		{"median", "median [4,1,2,3]", "2.5"},
		{"mode", "mode [1,2,2,3]", "2"},
		{"variance", "variance [1,2,3,4]", "1.67"},
		{"sxx", "sxx [1,2,3,4]", "5"},
		{"binomialpdf", "binomialpdf(10, 0.5, 5)", "0.246"},
		{"normalcdf", "normalcdf(0)", "0.5"},
		{"poissonpdf", "poissonpdf(2, 0)", "0.135"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, run(t, calc.New(calc.Exact(false)), c.src))
		})
	}
}

func TestBuiltinErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"ncr-range", "nCr(2, 5)"},
		{"probability", "binomialpdf(10, 2, 5)"},
		{"poisson-rate", "poissonpdf(0, 1)"},
		{"variance-short", "variance [1]"},
		{"factors-real", "factors(1.5)"},
		{"minor-range", "minor([[1, 2], [3, 4]], 2, 0)"},
		{"setprec-zero", "setprec(0)"},
		{"plot-args", "plot(x, 1)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := calc.New().Evaluate(c.src)
			assert.Error(t, err, "got %v", v)
		})
	}
}

func TestPlot(t *testing.T) {
	v, err := calc.New().Evaluate("plot(x^2, -1, 1)")
	require.NoError(t, err)
	r, ok := v.(*calc.Rich)
	require.True(t, ok, "plot gave %T", v)
	assert.Equal(t, "set xrange [-1:1]; plot x**2", r.Plain)
	assert.Contains(t, r.Markup, `class="plot"`)
	assert.Contains(t, r.Markup, `data-gnuplot="x**2"`)
}

func TestHelp(t *testing.T) {
	c := calc.New(calc.Funcs(map[string]calc.Func{
		"double": calc.Monadic(func(ctx numeric.Context, x numeric.Value) (numeric.Value, error) {
			return ctx.Add(x, x), nil
		}),
		"sin": nil,
	}))
	assert.Equal(t, "8", run(t, c, "double 4"))
	help := run(t, c, "help")
	assert.Contains(t, help, "double")
	assert.NotContains(t, help, ", sin,")
	assert.Contains(t, help, ", cos,")
	assert.True(t, strings.HasPrefix(help, "functions: "))
	assert.Contains(t, help, "f $ x + 1")
}

func TestFuncArity(t *testing.T) {
	f := func(*calc.Calculator, []calc.Value) (calc.Value, error) { return algebra.Int(0), nil }
	cases := []struct {
		name string
		fn   calc.Func
		ok   []int
		bad  []int
	}{
		{"niladic", calc.Niladic(func(*calc.Calculator) (calc.Value, error) { return nil, nil }), []int{0}, []int{1, 2}},
		{"monadic", calc.Monadic(nil), []int{1}, []int{0, 2}},
		{"variadic", calc.Variadic(1, 3, f), []int{1, 2, 3}, []int{0, 4}},
		{"unbounded", calc.Variadic(2, -1, f), []int{2, 3, 100}, []int{0, 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, n := range c.ok {
				assert.True(t, c.fn.CanCall(n), "%d args", n)
			}
			for _, n := range c.bad {
				assert.False(t, c.fn.CanCall(n), "%d args", n)
			}
		})
	}
}
