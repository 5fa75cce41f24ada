package upscale

import "math"

// coefficients holds the 4x4 weights of one output pixel.
// Index i*4+j weights source row x0+i and column y0+j.
type coefficients [16]float64

// kernelWeights returns the four 1-D weights for the taps around t.
// u = frac(t)+1 lies in [1, 2), so the taps sit at distances u, u-1, 2-u and 3-u.
func kernelWeights(t, a float64) [4]float64 {
	u := t - math.Floor(t) + 1

	var w [4]float64
	for i := range 4 {
		w[i] = cubicWeight(math.Abs(u-float64(i)), a)
	}
	return w
}

// calcCoeff builds the weight matrix for the source point (x, y), x being the
// row coordinate and y the column coordinate.
// The 2-D kernel is separable, so 8 kernel evaluations replace 16.
func calcCoeff(x, y, a float64) coefficients {
	wu := kernelWeights(x, a)
	wv := kernelWeights(y, a)

	var c coefficients
	for i := range 4 {
		for j := range 4 {
			c[i*4+j] = wu[i] * wv[j]
		}
	}
	return c
}

// sum returns the total weight, 1 up to rounding for any finite point.
func (c *coefficients) sum() float64 {
	var s float64
	for _, w := range c {
		s += w
	}
	return s
}
