package numerical

import "math"

// maxFractionRuns bounds the continued fraction expansion in ToFraction.
const maxFractionRuns = 50

// ToFraction finds a rational approximation a/b of x, agreeing with x to
// within 5×10^-places. The sign is carried by a and b is always positive. If
// the expansion does not terminate within a fixed number of steps, the last
// convergent is returned, which usually has a large denominator.
func ToFraction(x float64, places int) (a, b int64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 0
	}
	sign := int64(1)
	if x < 0 {
		sign = -1
	}
	ax := math.Abs(x)
	if ax == math.Trunc(ax) && ax < 1<<62 {
		return sign * int64(ax), 1
	}
	tol := 5 * math.Pow(10, -float64(places))
	z := ax
	var num, den, prev float64 = 0, 1, 0
	for i := 0; i < maxFractionRuns; i++ {
		f := z - math.Trunc(z)
		if f == 0 {
			break
		}
		z = 1 / f
		t := den
		den = den*math.Trunc(z) + prev
		num = math.Round(ax * den)
		prev = t
		if den > 1<<62 || num > 1<<62 {
			break
		}
		if math.Abs(ax-num/den) < tol || z == math.Trunc(z) {
			break
		}
	}
	if den == 0 {
		return 0, 0
	}
	return sign * int64(num), int64(den)
}
