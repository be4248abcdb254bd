package calc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
)

// run evaluates commands in order in one calculator and returns the
// formatted result of the last.
func run(t *testing.T, c *calc.Calculator, srcs ...string) string {
	t.Helper()
	var v calc.Value
	for _, src := range srcs {
		var err error
		v, err = c.Evaluate(src)
		require.NoError(t, err, "evaluating %q", src)
	}
	return c.Format(v)
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"arith", "2+3*4", "14"},
		{"pow-right", "2^3^2", "512"},
		{"div-left", "6/2*3", "9"},
		{"neg-pow", "-2^2", "-4"},
		{"fraction", "1/3", "1/3"},
		{"group", "(1+2)(3+4)", "21"},
		{"pi", "pi", "pi"},
		{"symbolic", "x + x", "2x"},
		{"unexpanded", "(x+1)^2", "(x + 1)^2"},
		{"fact", "5!", "120"},
		{"degs", "2 sin 30 degs", "1"},
		{"abs", "|-3|", "3"},
		{"abs-vector", "|[3, 4]|", "5"},
		{"norm", "||[3, 4]||", "5"},
		{"abs-det", "|[[1, 2], [3, 4]]|", "-2"},
		{"vector", "[1, 2] + [3, 4]", "[4, 6]"},
		{"vector-scale", "2[1, 2]", "[2, 4]"},
		{"dot", "[1, 2] * [3, 4]", "11"},
		{"matrix", "[[1, 2], [3, 4]] * [[1, 0], [0, 1]]", "[[1, 2], [3, 4]]"},
		{"matrix-vector", "[[1, 2], [3, 4]] * [1, 1]", "[3, 7]"},
		{"matrix-pow", "[[1, 1], [0, 1]]^3", "[[1, 3], [0, 1]]"},
		{"dollar", "2 $ 1 + 1", "4"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, run(t, calc.New(), c.src))
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	var (
		de *numeric.DomainError
		le *calc.LookupError
		ce *calc.CallError
		ie calc.InputError
	)
	cases := []struct {
		name string
		src  string
		is   func(error) bool
	}{
		{"parse", "1+", func(err error) bool { return errors.As(err, &ie) }},
		{"call", "sin(1, 2)", func(err error) bool { return errors.As(err, &ce) }},
		{"object", "A + 1", func(err error) bool { return errors.As(err, &le) && le.Name == "A" }},
		{"div-zero", "1/0", func(err error) bool { return errors.As(err, &de) }},
		{"dims", "[1, 2] + [1, 2, 3]", func(err error) bool { return errors.As(err, &de) }},
		{"mixed-vector", "[[1, 2], 3]", func(err error) bool { return errors.As(err, &de) }},
		{"operands", "[1, 2] + 1", func(err error) bool { return errors.As(err, &de) }},
		{"fact", "2.5!", func(err error) bool { return errors.As(err, &de) }},
		{"singular", "inv [[1, 2], [2, 4]]", func(err error) bool { return errors.As(err, &de) }},
		{"wrapped-domain", "sqrt [1]", func(err error) bool { return errors.As(err, &de) }},
		{"overflow", "2^10^40", func(err error) bool { return errors.As(err, &de) }},
		{"overflow-difference", "2^10^40 - 2^10^40", func(err error) bool { return errors.As(err, &de) }},
		{"singular-decimal", "inv [[0.3, 0.9], [0.1, 0.3]]", func(err error) bool { return errors.As(err, &de) }},
		{"unsupported", "integrate(sin(x)cos(x))", func(err error) bool { return errors.Is(err, algebra.ErrUnsupported) }},
		{"quit", "quit", func(err error) bool { return errors.Is(err, calc.ErrQuit) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := calc.New().Evaluate(c.src)
			require.Error(t, err, "got %v", v)
			assert.True(t, c.is(err), "wrong error %#v", err)
		})
	}
}

func TestCalculatorState(t *testing.T) {
	t.Run("assign", func(t *testing.T) {
		c := calc.New()
		assert.Equal(t, "5", run(t, c, "X := 5"))
		assert.Equal(t, "25", run(t, c, "X^2"))
		assert.Equal(t, "[2, 4]", run(t, c, "Y := [1, 2]", "2Y"))
		assert.Equal(t, "[1, 2]", c.Format(c.Lookup("Y")))
	})
	t.Run("ans", func(t *testing.T) {
		c := calc.New()
		assert.Equal(t, "0", run(t, c, "ans"))
		assert.Equal(t, "10", run(t, c, "2+3", "ans*2"))
		_, err := c.Evaluate("1/0")
		require.Error(t, err)
		assert.Equal(t, "10", run(t, c, "ans"))
		assert.Equal(t, "10", run(t, c, "type ans", "ans"))
	})
	t.Run("failure-keeps-precision", func(t *testing.T) {
		c := calc.New()
		_, err := c.Evaluate("setprec(10) + [1, 2]")
		require.Error(t, err)
		assert.Equal(t, uint(numeric.DefaultDigits), c.Context().Digits)
	})
	t.Run("setprec", func(t *testing.T) {
		c := calc.New(calc.Exact(false))
		assert.Equal(t, "0.333", run(t, c, "1/3"))
		assert.Equal(t, "0.3333333333", run(t, c, "setprec(10)"))
		assert.Equal(t, uint(10), c.Context().Digits)
	})
	t.Run("setexact", func(t *testing.T) {
		c := calc.New()
		assert.Equal(t, "1/3", run(t, c, "1/3"))
		assert.Equal(t, "0.333", run(t, c, "setexact"))
		assert.Equal(t, "1/3", run(t, c, "setexact(1)"))
	})
	t.Run("vars", func(t *testing.T) {
		c := calc.New(calc.SetVar("x", algebra.Int(3)), calc.SetVars(map[string]calc.Value{"A": algebra.Int(2)}))
		assert.Equal(t, "12", run(t, c, "4x"))
		assert.Equal(t, "6", run(t, c, "A x"))
		assert.Equal(t, "3y", run(t, c, "x y"))
	})
	t.Run("implicit-denominator", func(t *testing.T) {
		c := calc.New(calc.SetVar("x", algebra.Int(4)))
		assert.Equal(t, "1/8", run(t, c, "1/2x"))
		assert.Equal(t, "2", run(t, c, "(1/2)x"))
	})
	t.Run("precision-option", func(t *testing.T) {
		c := calc.New(calc.Precision(5), calc.Exact(false))
		assert.Equal(t, "0.66667", run(t, c, "2/3"))
	})
}

func TestSetVarPanics(t *testing.T) {
	assert.Panics(t, func() { calc.New(calc.SetVar("x1", algebra.Int(1))) })
	assert.Panics(t, func() { calc.New(calc.SetVar("x", calc.Text("no"))) })
	assert.NotPanics(t, func() { calc.New(calc.SetVar("M", calc.Text("yes"))) })
}

func TestEvalString(t *testing.T) {
	v, err := calc.EvalString("x^2", calc.SetVar("x", algebra.Int(4)))
	require.NoError(t, err)
	assert.Equal(t, "16", v.Format(numeric.Default))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	boom := calc.Niladic(func(*calc.Calculator) (calc.Value, error) { panic("boom") })
	c := calc.New(calc.Logger(zap.New(core)), calc.Funcs(map[string]calc.Func{"boom": boom}))

	run(t, c, "1+1")
	assert.Equal(t, 1, logs.FilterMessage("evaluated").Len())

	_, err := c.Evaluate("1+")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("parse failed").Len())

	_, err = c.Evaluate("1/0")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("evaluation failed").Len())

	_, err = c.Evaluate("boom")
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("panic during evaluation").Len())
	assert.Equal(t, "2", run(t, c, "ans"))

	_, err = c.Evaluate("setprec(20) + boom")
	require.Error(t, err)
	assert.Equal(t, 2, logs.FilterMessage("panic during evaluation").Len())
	assert.Equal(t, uint(numeric.DefaultDigits), c.Context().Digits)
}
