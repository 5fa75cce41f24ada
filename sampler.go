package upscale

import (
	"fmt"
	"math"
)

// Rounding selects how an interpolated sum is turned into an 8-bit value.
type Rounding int

const (
	// Truncate drops the fractional part, the conversion rule of classic
	// cubic convolution resizers.
	Truncate Rounding = iota
	// RoundNearest rounds half away from zero.
	RoundNearest
)

func (r Rounding) String() string {
	switch r {
	case Truncate:
		return "truncate"
	case RoundNearest:
		return "round"
	}
	return fmt.Sprintf("Rounding(%d)", int(r))
}

func (r Rounding) valid() bool {
	return r == Truncate || r == RoundNearest
}

// sample interpolates every channel of the source point (x, y) into px.
// The caller guarantees the 4x4 window [x0, x0+3] x [y0, y0+3] lies inside src.
func sample(src *Image, x, y float64, c *coefficients, mode Rounding, px []uint8) {
	x0 := int(math.Floor(x)) - 1
	y0 := int(math.Floor(y)) - 1
	ch := src.Channels
	stride := src.Width * ch

	for d := range ch {
		var sum float64
		for i := range 4 {
			row := (x0+i)*stride + y0*ch + d
			for j := range 4 {
				sum += c[i*4+j] * float64(src.Pix[row+j*ch])
			}
		}
		px[d] = clamp(sum, mode)
	}
}

// clamp returns the uint8 value of v clamped to the range [0, 255]
func clamp(v float64, mode Rounding) uint8 {
	if v >= 255 { // overshoot
		return 255
	} else if v <= 0 { // undershoot
		return 0
	}
	if mode == RoundNearest {
		return uint8(math.Round(v))
	}
	return uint8(v)
}
