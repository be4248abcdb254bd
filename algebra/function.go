package algebra

import (
	"github.com/zephyrtronium/calc/numeric"
)

// Function is a builtin function that can appear symbolically in an
// expression. Each function knows how to evaluate itself on a number, its
// derivative, and its antiderivative.
type Function struct {
	// Name is the function's name as written in expressions.
	Name string
	// Gnuplot is the name of the function in gnuplot syntax.
	Gnuplot string

	eval func(numeric.Context, numeric.Value) (numeric.Value, error)
	// deriv gives f'(u) in terms of u.
	deriv func(u Expr) Expr
	// antideriv gives the antiderivative of f(u) with respect to u.
	antideriv func(u Expr) Expr
}

// Eval evaluates the function on a number.
func (f *Function) Eval(ctx numeric.Context, v numeric.Value) (numeric.Value, error) {
	return f.eval(ctx, v)
}

var (
	// Ln is the natural logarithm.
	Ln = &Function{Name: "ln", Gnuplot: "log", eval: numeric.Context.Ln}
	// Sin is the sine.
	Sin = &Function{Name: "sin", Gnuplot: "sin", eval: numeric.Context.Sin}
	// Cos is the cosine.
	Cos = &Function{Name: "cos", Gnuplot: "cos", eval: numeric.Context.Cos}
	// Tan is the tangent.
	Tan = &Function{Name: "tan", Gnuplot: "tan", eval: numeric.Context.Tan}
)

// The calculus rules refer to the functions themselves, so they are
// attached after the variables exist.
func init() {
	Ln.deriv = func(u Expr) Expr { return PowerOf(u, Int(-1)) }
	Ln.antideriv = func(u Expr) Expr { return SumOf(ProductOf(u, CallOf(Ln, u)), Neg(u)) }
	Sin.deriv = func(u Expr) Expr { return CallOf(Cos, u) }
	Sin.antideriv = func(u Expr) Expr { return Neg(CallOf(Cos, u)) }
	Cos.deriv = func(u Expr) Expr { return Neg(CallOf(Sin, u)) }
	Cos.antideriv = func(u Expr) Expr { return CallOf(Sin, u) }
	Tan.deriv = func(u Expr) Expr { return PowerOf(CallOf(Cos, u), Int(-2)) }
	Tan.antideriv = func(u Expr) Expr { return Neg(CallOf(Ln, CallOf(Cos, u))) }
}

// LookupFunction returns the symbolic function with the given name, or nil.
func LookupFunction(name string) *Function {
	switch name {
	case "ln":
		return Ln
	case "sin":
		return Sin
	case "cos":
		return Cos
	case "tan":
		return Tan
	}
	return nil
}
