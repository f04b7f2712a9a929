package foodweb

import "math"

// response computes the generalized (Hill-type) functional response
//
//	F(N) = fmax * N^(q+1) / (n0^(q+1) + N^(q+1))
//
// q = 0 gives the hyperbolic Type II form, q > 0 a sigmoid Type III form.
// n0 must be strictly positive, so F(0) = 0 for any q >= 0.
func response(n, fmax, n0, q float64) float64 {
	if n <= 0 {
		return 0
	}
	p := q + 1
	np := math.Pow(n, p)
	return fmax * np / (math.Pow(n0, p) + np)
}
