package calc

import (
	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/numeric"
	"github.com/zephyrtronium/calc/numerical"
)

// Func is a builtin function of a calculator.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. The function may read and change the calculator's
	// display context, but it must not assign objects; the calculator does
	// that after the command succeeds.
	Call(c *Calculator, args []Value) (Value, error)

	// CanCall returns whether the function can be called with n arguments.
	// This controls how the parser handles instances of this function:
	//
	// 	1.	If a bracketed list of n expressions follows a function, the
	//		parser treats it as an argument list if CanCall(n), and rejects
	//		it otherwise.
	//
	// 	2.	If a bare atom follows a function and CanCall(1), then the parser
	//		treats the atom as an argument to the function. E.g., "exp x" is
	//		parsed as "exp(x)". If !CanCall(1) and CanCall(0), then it is a
	//		multiplication.
	CanCall(n int) bool
}

var globalfuncs = map[string]Func{
	// elementary functions
	"ln":      symbolic{algebra.Ln},
	"sin":     symbolic{algebra.Sin},
	"cos":     symbolic{algebra.Cos},
	"tan":     symbolic{algebra.Tan},
	"log":     Variadic(1, 2, builtinLog),
	"exp":     Monadic(numeric.Context.Exp),
	"sqrt":    Monadic(numeric.Context.Sqrt),
	"arcsin":  Monadic(numeric.Context.Asin),
	"arccos":  Monadic(numeric.Context.Acos),
	"arctan":  Monadic(numeric.Context.Atan),
	"asin":    Monadic(numeric.Context.Asin),
	"acos":    Monadic(numeric.Context.Acos),
	"atan":    Monadic(numeric.Context.Atan),
	"sinh":    Monadic(numeric.Context.Sinh),
	"cosh":    Monadic(numeric.Context.Cosh),
	"tanh":    Monadic(numeric.Context.Tanh),
	"arcsinh": Monadic(numeric.Context.Asinh),
	"arccosh": Monadic(numeric.Context.Acosh),
	"arctanh": Monadic(numeric.Context.Atanh),
	"asinh":   Monadic(numeric.Context.Asinh),
	"acosh":   Monadic(numeric.Context.Acosh),
	"atanh":   Monadic(numeric.Context.Atanh),
	"degrees": Monadic(degrees),
	"abs":     Variadic(1, 1, builtinAbs),

	// complex numbers
	"re":   Monadic(pure(numeric.Re)),
	"im":   Monadic(pure(numeric.Im)),
	"conj": Monadic(pure(numeric.Conj)),
	"arg":  Monadic(numeric.Context.Arg),

	// combinatorics and statistics
	"factorial":   Monadic(factorial),
	"nCr":         Variadic(2, 2, builtinNCR),
	"nPr":         Variadic(2, 2, builtinNPR),
	"factors":     Variadic(1, 1, builtinFactors),
	"binomialpdf": Variadic(3, 3, builtinBinomialPDF),
	"binomialcdf": Variadic(3, 3, builtinBinomialCDF),
	"poissonpdf":  Variadic(2, 2, builtinPoissonPDF),
	"poissoncdf":  Variadic(2, 2, builtinPoissonCDF),
	"normalcdf":   Variadic(1, 3, builtinNormalCDF),
	"mean":        Variadic(1, 1, builtinMean),
	"median":      Variadic(1, 1, builtinMedian),
	"mode":        Variadic(1, 1, builtinMode),
	"variance":    Variadic(1, 1, builtinVariance),
	"stdev":       Variadic(1, 1, builtinStdev),
	"sxx":         Variadic(1, 1, builtinSxx),

	// manipulation of functions
	"expand":        Variadic(1, 1, builtinExpand),
	"differentiate": Variadic(1, 2, builtinDifferentiate),
	"integrate":     Variadic(1, 4, builtinIntegrate),
	"eval":          Variadic(2, 3, builtinEval),
	"evalbetween":   Variadic(3, 4, builtinEvalBetween),
	"roots":         Variadic(1, 2, builtinRoots),
	"maxima":        Variadic(1, 2, builtinMaxima),
	"minima":        Variadic(1, 2, builtinMinima),
	"romberg":       Variadic(3, 4, quadrature(numerical.Romberg, 7)),
	"trapeziumrule": Variadic(3, 4, quadrature(numerical.Trapezoid, 100)),
	"simpsonrule":   Variadic(3, 4, quadrature(numerical.Simpson, 100)),
	"simpson38rule": Variadic(3, 4, quadrature(numerical.Simpson38, 100)),
	"boolerule":     Variadic(3, 4, quadrature(numerical.Boole, 100)),
	"plot":          Variadic(1, 3, builtinPlot),
	"gnuplot":       Variadic(1, 1, builtinGnuplot),

	// vectors and matrices
	"norm":        Variadic(1, 1, builtinNorm),
	"transpose":   Variadic(1, 1, builtinTranspose),
	"order":       Variadic(1, 1, builtinOrder),
	"identity":    Variadic(1, 1, builtinIdentity),
	"diag":        Variadic(1, -1, builtinDiag),
	"zero":        Variadic(1, 2, builtinZero),
	"inv":         Variadic(1, 1, builtinInverse),
	"invert":      Variadic(1, 1, builtinInverse),
	"decompose":   Variadic(1, 1, builtinDecompose),
	"trace":       Variadic(1, 1, builtinTrace),
	"poly":        Variadic(1, 1, builtinPoly),
	"adj":         Variadic(1, 1, builtinAdjugate),
	"minor":       Variadic(3, 3, builtinMinor),
	"det":         Variadic(1, 1, builtinDet),
	"eigenvalues": Variadic(1, 2, builtinEigenvalues),

	// session
	"setprec":  Variadic(1, 1, builtinSetPrec),
	"setexact": Variadic(0, 1, builtinSetExact),
	"decimal":  Variadic(1, 1, builtinDecimal),
	"type":     Variadic(1, 1, builtinType),
	"about":    Niladic(builtinAbout),
	"help":     Niladic(builtinHelp),
	"quit":     Niladic(builtinQuit),
}

type monadic struct {
	f func(ctx numeric.Context, x numeric.Value) (numeric.Value, error)
}

func (m monadic) Call(c *Calculator, args []Value) (Value, error) {
	x, err := number(args, 0)
	if err != nil {
		return nil, err
	}
	r, err := m.f(c.ctx, x)
	if err != nil {
		return nil, err
	}
	return algebra.Num(r), nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a numeric function of one number into a Func. Calling it on
// anything other than a number is an error.
func Monadic(f func(ctx numeric.Context, x numeric.Value) (numeric.Value, error)) Func {
	return monadic{f}
}

type niladic struct {
	f func(c *Calculator) (Value, error)
}

func (n niladic) Call(c *Calculator, args []Value) (Value, error) {
	return n.f(c)
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// Niladic wraps a function of zero arguments, such as a constant or a
// session command, into a Func.
func Niladic(f func(c *Calculator) (Value, error)) Func {
	return niladic{f}
}

type variadic struct {
	min, max int
	f        func(c *Calculator, args []Value) (Value, error)
}

func (v variadic) Call(c *Calculator, args []Value) (Value, error) {
	return v.f(c, args)
}

func (v variadic) CanCall(n int) bool {
	return v.min <= n && (v.max < 0 || n <= v.max)
}

// Variadic wraps a function of between min and max arguments into a Func.
// A negative max allows any number of arguments from min.
func Variadic(min, max int, f func(c *Calculator, args []Value) (Value, error)) Func {
	return variadic{min, max, f}
}

// symbolic is a function that stays unevaluated on symbolic arguments so
// that calculus can apply to it.
type symbolic struct {
	fn *algebra.Function
}

func (s symbolic) Call(c *Calculator, args []Value) (Value, error) {
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	return algebra.EvalCall(c.ctx, s.fn, e)
}

func (s symbolic) CanCall(n int) bool {
	return n == 1
}
