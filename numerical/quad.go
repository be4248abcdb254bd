package numerical

import "math"

// Trapezoid approximates the integral of f over [a, b] with the composite
// trapezium rule on m strips.
func Trapezoid(f func(float64) float64, a, b float64, m int) float64 {
	if m < 1 {
		m = 1
	}
	h := (b - a) / float64(m)
	s := (f(a) + f(b)) / 2
	for k := 1; k < m; k++ {
		s += f(a + float64(k)*h)
	}
	return h * s
}

// Simpson approximates the integral of f over [a, b] with the composite
// Simpson rule. m is rounded to the nearest even number of strips.
func Simpson(f func(float64) float64, a, b float64, m int) float64 {
	m = strips(m, 2)
	h := (b - a) / float64(m)
	s := f(a) + f(b)
	for k := 1; k < m; k++ {
		w := 2.0
		if k%2 == 1 {
			w = 4
		}
		s += w * f(a+float64(k)*h)
	}
	return h / 3 * s
}

// Simpson38 approximates the integral of f over [a, b] with the composite
// Simpson 3/8 rule. m is rounded to the nearest multiple of 3.
func Simpson38(f func(float64) float64, a, b float64, m int) float64 {
	m = strips(m, 3)
	h := (b - a) / float64(m)
	s := f(a) + f(b)
	for k := 1; k < m; k++ {
		w := 3.0
		if k%3 == 0 {
			w = 2
		}
		s += w * f(a+float64(k)*h)
	}
	return 3 * h / 8 * s
}

// Boole approximates the integral of f over [a, b] with the composite Boole
// rule. m is rounded to the nearest multiple of 4.
func Boole(f func(float64) float64, a, b float64, m int) float64 {
	m = strips(m, 4)
	h := (b - a) / float64(m)
	s := 7 * (f(a) + f(b))
	for k := 1; k < m; k++ {
		var w float64
		switch k % 4 {
		case 1, 3:
			w = 32
		case 2:
			w = 12
		case 0:
			w = 14
		}
		s += w * f(a+float64(k)*h)
	}
	return 2 * h / 45 * s
}

// Romberg approximates the integral of f over [a, b] by Richardson
// extrapolation of trapezium estimates, returning R(n, n). The finest
// trapezium estimate uses 2^n strips.
func Romberg(f func(float64) float64, a, b float64, n int) float64 {
	if n < 0 {
		n = 0
	}
	prev := make([]float64, n+1)
	cur := make([]float64, n+1)
	h := b - a
	prev[0] = h / 2 * (f(a) + f(b))
	for i := 1; i <= n; i++ {
		h /= 2
		var s float64
		for k := 1; k <= 1<<(i-1); k++ {
			s += f(a + float64(2*k-1)*h)
		}
		cur[0] = prev[0]/2 + h*s
		for j := 1; j <= i; j++ {
			p := math.Pow(4, float64(j))
			cur[j] = (p*cur[j-1] - prev[j-1]) / (p - 1)
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

// strips rounds m to the nearest positive multiple of k.
func strips(m, k int) int {
	m = k * int(math.Round(float64(m)/float64(k)))
	if m < k {
		m = k
	}
	return m
}
