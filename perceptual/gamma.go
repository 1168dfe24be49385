package perceptual

import (
	"math"
	"sync"
)

// GammaExponent is the display transfer exponent used for GammaRGB.
const GammaExponent = 2.2

var encoded8ToLinearLUT = sync.OnceValue(func() (ans [256]float64) {
	for i := range ans {
		ans[i] = math.Pow(float64(i)/255, GammaExponent)
	}
	return
})

// GammaToLinear converts a display encoded value in [0,255] to a linear value
// in [0,1]. The input is not clamped.
func GammaToLinear(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v/255, GammaExponent)
}

// LinearToGamma converts a linear value in [0,1] to a display encoded value in
// [0,255]. The result is not rounded, use Gamma8 for 8-bit output.
func LinearToGamma(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Pow(v, 1/GammaExponent) * 255
}

// From8Bit converts an 8-bit display encoded value to a linear value using a
// look-up table.
func From8Bit(v uint8) float64 {
	return encoded8ToLinearLUT()[v]
}

// To8Bit converts a linear value to the nearest 8-bit display encoded value,
// clipping to [0,1] first.
func To8Bit(v float64) uint8 {
	return uint8(math.Round(LinearToGamma(clamp01(v))))
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}
