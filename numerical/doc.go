// Package numerical implements the floating-point methods behind the
// calculator's symbolic engine: simultaneous polynomial root finding and
// composite Newton-Cotes and Romberg quadrature.
//
// Everything here works in float64 and complex128. Callers convert exact or
// arbitrary-precision values on the way in and out.
package numerical
