package numerical

import "math/cmplx"

// seed is the base of the initial root estimates. It is neither real nor a
// root of unity, so successive powers are distinct and off the real axis.
const seed = 0.4 + 0.9i

// DurandKerner approximates all roots of a monic polynomial of the given
// degree simultaneously. f must evaluate the polynomial after it has been
// normalized by its leading coefficient. Each iteration computes every new
// estimate from the previous iteration's complete set:
//
//	r_i <- r_i - f(r_i) / prod_{j != i} (r_i - r_j)
//
// There is no convergence test; the result is whatever the estimates are
// after the given number of iterations.
func DurandKerner(f func(complex128) complex128, degree, iterations int) []complex128 {
	if degree <= 0 {
		return nil
	}
	cur := make([]complex128, degree)
	for k := range cur {
		cur[k] = cmplx.Pow(seed, complex(float64(k), 0))
	}
	next := make([]complex128, degree)
	for n := 0; n < iterations; n++ {
		for i, r := range cur {
			d := complex(1, 0)
			for j, s := range cur {
				if i != j {
					d *= r - s
				}
			}
			if d == 0 {
				// Coincident estimates. Leave this one alone and let the
				// others move it apart.
				next[i] = r
				continue
			}
			next[i] = r - f(r)/d
		}
		cur, next = next, cur
	}
	return cur
}
