package calc_test

import (
	"fmt"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/algebra"
)

type nargin struct{}

func (nargin) CanCall(n int) bool {
	return true
}

func (nargin) Call(c *calc.Calculator, args []calc.Value) (calc.Value, error) {
	return algebra.Int(int64(len(args))), nil
}

func ExampleFunc() {
	c := calc.New(calc.Funcs(map[string]calc.Func{"nargin": nargin{}}))

	for _, src := range []string{"nargin", "nargin 100", "nargin{3, 2, 1}"} {
		cmd, _ := calc.ParseString(src, calc.ParseFunc("nargin", nargin{}))
		v, _ := c.Run(cmd)
		fmt.Println(c.Format(v), cmd)
	}

	// Output:
	// 0 (nargin[])
	// 1 (nargin[(100)])
	// 3 (nargin[(3), (2), (1)])
}
