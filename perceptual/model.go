package perceptual

import (
	"math"
)

// Relative contribution of each linear channel to perceived brightness
// (Rec. 709 luminance coefficients). They sum to 1 so that white has
// intensity 1.
var Sensitivity = [3]float64{0.2126, 0.7152, 0.0722}

// Exponents applied to the within-segment hue split, indexed by the dominant
// primary. Values above 1 stretch the region near that primary, values below
// 1 compress it, so that equal steps in hue look roughly equal.
var HueWarp = [3]float64{0.85, 1.25, 0.9}

// Below this spread between the highest and lowest linear channel a color is
// treated as neutral: half an 8-bit step.
const neutralEpsilon = 0.5 / 255

// Hue and purity recorded for neutral colors. The pair is also a valid
// chromatic color (pure cyan), so a Color tracks neutrality separately.
const (
	NeutralHue    = 0.5
	NeutralPurity = 0
)

// Position of each primary on the hue wheel.
func primaryHue(ch int) float64 { return float64(ch) / 3 }

func luminance(c [3]float64) float64 {
	return Sensitivity[0]*c[0] + Sensitivity[1]*c[1] + Sensitivity[2]*c[2]
}

func wrapHue(h float64) float64 {
	h -= math.Floor(h)
	if h >= 1 {
		h = 0
	}
	return h
}

// order returns the indices of the highest, middle and lowest channel. Ties
// resolve to the lowest index for the highest channel and the highest index
// for the lowest, so the three indices are always distinct.
func order(c [3]float64) (hi, mid, lo int) {
	hi, lo = 0, 2
	for i := 1; i < 3; i++ {
		if c[i] > c[hi] {
			hi = i
		}
	}
	for i := 1; i >= 0; i-- {
		if c[i] < c[lo] {
			lo = i
		}
	}
	if lo == hi {
		lo = (hi + 2) % 3
	}
	mid = 3 - hi - lo
	return
}

// linearToAbsolute converts linear RGB to hue, purity and absolute intensity.
func linearToAbsolute(c [3]float64) (hue, purity, intensity float64, neutral bool) {
	intensity = math.Pow(max(luminance(c), 0), 1/GammaExponent)
	hi, mid, lo := order(c)
	spread := c[hi] - c[lo]
	if spread < neutralEpsilon {
		return NeutralHue, NeutralPurity, intensity, true
	}
	if c[mid] == c[lo] {
		// A single primary plus white sits on the primary itself, by convention
		// on the side of the next primary.
		mid = (hi + 1) % 3
		lo = 3 - hi - mid
	}
	u := (c[mid] - c[lo]) / spread
	offset := math.Pow(u, HueWarp[hi]) / 6
	if mid == (hi+1)%3 {
		hue = primaryHue(hi) + offset
	} else {
		hue = primaryHue(hi) - offset
	}
	hue = wrapHue(hue)
	wh, wm := Sensitivity[hi], Sensitivity[mid]
	purity = clamp01((wh + wm) * c[lo] / (wh*c[hi] + wm*c[mid]))
	return
}

// relativeChannels returns linear RGB for the given hue and purity with the
// highest channel at exactly 1.
func relativeChannels(hue, purity float64, neutral bool) (c [3]float64) {
	if neutral {
		return [3]float64{1, 1, 1}
	}
	pos := wrapHue(hue) * 3
	nearest := math.Round(pos)
	d := pos - nearest
	if math.Abs(d) < 1e-12 {
		d = 0
	}
	hi := int(nearest) % 3
	mid := (hi + 2) % 3
	if d >= 0 {
		mid = (hi + 1) % 3
	}
	lo := 3 - hi - mid
	u := math.Pow(min(2*math.Abs(d), 1), 1/HueWarp[hi])
	p := clamp01(purity)
	wh, wm := Sensitivity[hi], Sensitivity[mid]
	low := p * (wh + wm*u) / ((wh + wm) - p*wm*(1-u))
	c[hi] = 1
	c[lo] = low
	c[mid] = low + u*(1-low)
	return
}

// absoluteToLinear is the inverse of linearToAbsolute. The result is not
// clamped: intensities above IMax produce channels above 1.
func absoluteToLinear(hue, purity, intensity float64, neutral bool) [3]float64 {
	c := relativeChannels(hue, purity, neutral)
	target := math.Pow(max(intensity, 0), GammaExponent)
	scale := target / luminance(c)
	c[0] *= scale
	c[1] *= scale
	c[2] *= scale
	return c
}

// LowestIMax is the smallest IMax over all hue and purity pairs, attained by
// the fully saturated primary with the lowest sensitivity.
func LowestIMax() float64 {
	return math.Pow(min(Sensitivity[0], Sensitivity[1], Sensitivity[2]), 1/GammaExponent)
}

// IMaxOf returns the largest absolute intensity reachable for hue and purity
// without any linear channel exceeding 1.
func IMaxOf(hue, purity float64) float64 {
	return imax(hue, purity, false)
}

func imax(hue, purity float64, neutral bool) float64 {
	i0 := LowestIMax()
	c := absoluteToLinear(hue, purity, i0, neutral)
	limit := max(c[0], c[1], c[2])
	if limit <= 0 {
		return i0
	}
	return i0 * math.Pow(1/limit, 1/GammaExponent)
}
