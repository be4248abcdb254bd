package calc_test

import (
	"testing"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/algebra"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("x")
	f.Add("y")
	f.Add("1×2")
	f.Add("det [[1, 2], [3, 4]]")
	f.Add("integrate(x^2, 0, 1)")
	f.Fuzz(func(t *testing.T, s string) {
		c := calc.New(calc.SetVar("x", algebra.Int(0)))
		// Panics are recovered into errors, so any input must return.
		c.Evaluate(s)
	})
}
