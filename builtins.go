package calc

import (
	"math"
	"math/big"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zephyrtronium/calc/algebra"
	"github.com/zephyrtronium/calc/matrix"
	"github.com/zephyrtronium/calc/numeric"
)

func builtinLog(c *Calculator, args []Value) (Value, error) {
	x, err := number(args, 0)
	if err != nil {
		return nil, err
	}
	var base numeric.Value = numeric.NewInteger(10)
	if len(args) > 1 {
		if base, err = number(args, 1); err != nil {
			return nil, err
		}
	}
	r, err := c.ctx.Log(x, base)
	if err != nil {
		return nil, err
	}
	return algebra.Num(r), nil
}

// pure adapts a numeric function that cannot fail and does not depend on
// precision.
func pure(f func(numeric.Value) numeric.Value) func(numeric.Context, numeric.Value) (numeric.Value, error) {
	return func(_ numeric.Context, x numeric.Value) (numeric.Value, error) {
		return f(x), nil
	}
}

func factorial(_ numeric.Context, x numeric.Value) (numeric.Value, error) {
	return numeric.Factorial(numeric.Snap(x))
}

// degrees converts radians to degrees.
func degrees(ctx numeric.Context, x numeric.Value) (numeric.Value, error) {
	return ctx.Quo(ctx.Mul(x, numeric.NewInteger(180)), ctx.Pi())
}

func builtinAbs(c *Calculator, args []Value) (Value, error) {
	switch x := args[0].(type) {
	case algebra.Number:
		return algebra.Num(c.ctx.Abs(x.Value())), nil
	case matrix.Vector:
		return x.Norm(c.ctx)
	case *matrix.Matrix:
		return x.Determinant(c.ctx)
	}
	return nil, argError(args, 0, "number")
}

// maxCombinatoric bounds the arguments of nCr and nPr.
const maxCombinatoric = 1 << 20

// choose gets the arguments of nCr and nPr.
func choose(fn string, args []Value) (n, r int64, err error) {
	if n, err = integer(args, 0); err != nil {
		return 0, 0, err
	}
	if r, err = integer(args, 1); err != nil {
		return 0, 0, err
	}
	if n < 0 || n > maxCombinatoric {
		return 0, 0, &numeric.DomainError{Func: fn, Reason: "n out of range"}
	}
	if r < 0 || r > n {
		return 0, 0, &numeric.DomainError{Func: fn, Reason: "r must be between 0 and n"}
	}
	return n, r, nil
}

func builtinNCR(c *Calculator, args []Value) (Value, error) {
	n, r, err := choose("nCr", args)
	if err != nil {
		return nil, err
	}
	return algebra.Num(numeric.IntegerFromBig(new(big.Int).Binomial(n, r))), nil
}

func builtinNPR(c *Calculator, args []Value) (Value, error) {
	n, r, err := choose("nPr", args)
	if err != nil {
		return nil, err
	}
	// n!/(n-r)! is the product of the top r factors of n!.
	return algebra.Num(numeric.IntegerFromBig(new(big.Int).MulRange(n-r+1, n))), nil
}

// maxTrialDivisor bounds the search for prime factors. Whatever remains
// after dividing out smaller primes is reported as a single factor.
const maxTrialDivisor = 1 << 20

func builtinFactors(c *Calculator, args []Value) (Value, error) {
	if n, ok := args[0].(algebra.Number); ok {
		z, ok := numeric.Snap(n.Value()).(numeric.Integer)
		if !ok {
			return nil, &numeric.DomainError{Func: "factors", Reason: "only integers and polynomials have factors"}
		}
		return primeFactors(z.Big()), nil
	}
	e, err := expr(args, 0)
	if err != nil {
		return nil, err
	}
	return linearFactors(c.ctx, e)
}

// primeFactors lists the prime factors of n with multiplicity, smallest
// first. Negative numbers include a factor of -1.
func primeFactors(n *big.Int) List {
	var l List
	if n.Sign() < 0 {
		l = append(l, algebra.Int(-1))
		n.Neg(n)
	}
	if n.Cmp(big.NewInt(2)) < 0 {
		return append(l, algebra.Num(numeric.IntegerFromBig(n)))
	}
	var q, m big.Int
	for d := int64(2); d <= maxTrialDivisor; d++ {
		bd := big.NewInt(d)
		if new(big.Int).Mul(bd, bd).Cmp(n) > 0 {
			break
		}
		for {
			q.QuoRem(n, bd, &m)
			if m.Sign() != 0 {
				break
			}
			l = append(l, algebra.Int(d))
			n.Set(&q)
		}
	}
	if n.Cmp(big.NewInt(1)) > 0 {
		l = append(l, algebra.Num(numeric.IntegerFromBig(n)))
	}
	return l
}

// linearFactors factors a polynomial over the complex numbers into its
// leading coefficient and one linear factor per root.
func linearFactors(ctx numeric.Context, e algebra.Expr) (Value, error) {
	x := algebra.Variable(e)
	p, ok := algebra.ToPoly(e, x)
	if !ok {
		return nil, &algebra.UnsupportedError{Op: "factor", Expr: e}
	}
	rs, err := algebra.Roots(ctx, e, x, algebra.DefaultRootIterations)
	if err != nil {
		return nil, err
	}
	var l List
	if lead := p.Coef(p.Degree()); !numeric.IsInt(lead, 1) || len(rs) == 0 {
		l = append(l, algebra.Num(lead))
	}
	for _, r := range rs {
		f, err := algebra.Apply(ctx, algebra.OpSub, x, algebra.Num(r))
		if err != nil {
			return nil, err
		}
		l = append(l, f)
	}
	return l, nil
}

// probability gets a probability argument.
func probability(args []Value, i int) (float64, error) {
	p, err := float(args, i)
	if err != nil {
		return 0, err
	}
	if p < 0 || p > 1 || math.IsNaN(p) {
		return 0, &numeric.DomainError{Reason: "probability must be between 0 and 1"}
	}
	return p, nil
}

// binomial gets the distribution and observation of binomialpdf and
// binomialcdf.
func binomial(args []Value) (distuv.Binomial, float64, error) {
	n, err := integer(args, 0)
	if err != nil {
		return distuv.Binomial{}, 0, err
	}
	if n < 0 {
		return distuv.Binomial{}, 0, &numeric.DomainError{Func: "binomial", Reason: "negative number of trials"}
	}
	p, err := probability(args, 1)
	if err != nil {
		return distuv.Binomial{}, 0, err
	}
	r, err := float(args, 2)
	if err != nil {
		return distuv.Binomial{}, 0, err
	}
	return distuv.Binomial{N: float64(n), P: p}, r, nil
}

func builtinBinomialPDF(c *Calculator, args []Value) (Value, error) {
	d, r, err := binomial(args)
	if err != nil {
		return nil, err
	}
	return fromFloat(d.Prob(r))
}

func builtinBinomialCDF(c *Calculator, args []Value) (Value, error) {
	d, r, err := binomial(args)
	if err != nil {
		return nil, err
	}
	return fromFloat(d.CDF(r))
}

// poisson gets the distribution and observation of poissonpdf and
// poissoncdf.
func poisson(args []Value) (distuv.Poisson, float64, error) {
	t, err := float(args, 0)
	if err != nil {
		return distuv.Poisson{}, 0, err
	}
	if !(t > 0) {
		return distuv.Poisson{}, 0, &numeric.DomainError{Func: "poisson", Reason: "rate must be positive"}
	}
	r, err := float(args, 1)
	if err != nil {
		return distuv.Poisson{}, 0, err
	}
	return distuv.Poisson{Lambda: t}, r, nil
}

func builtinPoissonPDF(c *Calculator, args []Value) (Value, error) {
	d, r, err := poisson(args)
	if err != nil {
		return nil, err
	}
	return fromFloat(d.Prob(r))
}

func builtinPoissonCDF(c *Calculator, args []Value) (Value, error) {
	d, r, err := poisson(args)
	if err != nil {
		return nil, err
	}
	return fromFloat(d.CDF(r))
}

func builtinNormalCDF(c *Calculator, args []Value) (Value, error) {
	x, err := float(args, 0)
	if err != nil {
		return nil, err
	}
	d := distuv.Normal{Mu: 0, Sigma: 1}
	if len(args) > 1 {
		if d.Mu, err = float(args, 1); err != nil {
			return nil, err
		}
	}
	if len(args) > 2 {
		if d.Sigma, err = float(args, 2); err != nil {
			return nil, err
		}
	}
	if !(d.Sigma > 0) {
		return nil, &numeric.DomainError{Func: "normalcdf", Reason: "standard deviation must be positive"}
	}
	return fromFloat(d.CDF(x))
}

// data gets a sample with at least min elements.
func data(fn string, args []Value, min int) ([]float64, error) {
	xs, err := sample(args, 0)
	if err != nil {
		return nil, err
	}
	if len(xs) < min {
		return nil, &numeric.DomainError{Func: fn, Reason: "not enough data"}
	}
	return xs, nil
}

func builtinMean(c *Calculator, args []Value) (Value, error) {
	xs, err := data("mean", args, 1)
	if err != nil {
		return nil, err
	}
	return fromFloat(stat.Mean(xs, nil))
}

func builtinMedian(c *Calculator, args []Value) (Value, error) {
	xs, err := data("median", args, 1)
	if err != nil {
		return nil, err
	}
	slices.Sort(xs)
	n := len(xs)
	if n%2 == 0 {
		return fromFloat((xs[n/2-1] + xs[n/2]) / 2)
	}
	return fromFloat(stat.Quantile(0.5, stat.Empirical, xs, nil))
}

func builtinMode(c *Calculator, args []Value) (Value, error) {
	xs, err := data("mode", args, 1)
	if err != nil {
		return nil, err
	}
	m, _ := stat.Mode(xs, nil)
	return fromFloat(m)
}

func builtinVariance(c *Calculator, args []Value) (Value, error) {
	xs, err := data("variance", args, 2)
	if err != nil {
		return nil, err
	}
	return fromFloat(stat.Variance(xs, nil))
}

func builtinStdev(c *Calculator, args []Value) (Value, error) {
	xs, err := data("stdev", args, 2)
	if err != nil {
		return nil, err
	}
	return fromFloat(stat.StdDev(xs, nil))
}

// builtinSxx is the sum of squared deviations from the mean.
func builtinSxx(c *Calculator, args []Value) (Value, error) {
	xs, err := data("sxx", args, 2)
	if err != nil {
		return nil, err
	}
	return fromFloat(stat.Variance(xs, nil) * float64(len(xs)-1))
}
