package upscale

// DefaultSharpness is the cubic convolution parameter a.
// -0.5 gives the Catmull-Rom spline used by most resampling references.
const DefaultSharpness = -0.5

// cubicWeight evaluates the cubic convolution kernel at distance x >= 0.
// for more detail of formula, please refer to https://en.wikipedia.org/wiki/Bicubic_interpolation#Bicubic_convolution_algorithm
func cubicWeight(x, a float64) float64 {
	switch {
	case x <= 1:
		return 1 - (a+3)*x*x + (a+2)*x*x*x
	case x < 2:
		return -4*a + 8*a*x - 5*a*x*x + a*x*x*x
	}
	return 0
}
