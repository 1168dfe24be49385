package perceptual

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// Color is a three component color tagged with the Space its components are
// in. The zero value is not a valid color, use one of the constructors.
//
// For the perceptual spaces the components are hue, purity and intensity
// (absolute for Absolute, relative to IMax for Normalized). Colors whose
// channels are too close together to have a meaningful hue are neutral: they
// carry NeutralHue and NeutralPurity and convert back to a grey.
type Color struct {
	space   Space
	v       [3]float64
	neutral bool

	// IMax memo, valid only while v[0], v[1] equal cacheR, cacheP
	cacheR, cacheP, cacheIMax float64
	cacheOK                   bool
}

// New creates a color in the specified space. It panics if space is not one
// of the four defined spaces.
func New(space Space, a, b, c float64) Color {
	if !space.Valid() {
		panic(fmt.Sprintf("perceptual: cannot create a color in the invalid space: %s", space))
	}
	return Color{space: space, v: [3]float64{a, b, c}}
}

func Linear(r, g, b float64) Color         { return New(LinearRGB, r, g, b) }
func Gamma(r, g, b float64) Color          { return New(GammaRGB, r, g, b) }
func FromAbsolute(r, p, i float64) Color   { return New(Absolute, r, p, i) }
func FromNormalized(r, p, j float64) Color { return New(Normalized, r, p, j) }

// Gamma8 creates a GammaRGB color from 8-bit components.
func Gamma8(r, g, b uint8) Color {
	return New(GammaRGB, float64(r), float64(g), float64(b))
}

func (c Color) Space() Space { return c.space }

func (c Color) Components() (float64, float64, float64) { return c.v[0], c.v[1], c.v[2] }

// At returns component i (0, 1 or 2).
func (c Color) At(i int) float64 { return c.v[i] }

// Set changes component i. Changing the hue or purity of a neutral color
// makes it chromatic.
func (c *Color) Set(i int, val float64) {
	if c.neutral && i < 2 && c.v[i] != val {
		c.neutral = false
	}
	c.v[i] = val
}

func (c Color) Hue() float64 {
	c.mustBePerceptual()
	return c.v[0]
}

func (c Color) Purity() float64 {
	c.mustBePerceptual()
	return c.v[1]
}

// IsNeutral reports whether the color was derived from a grey.
func (c Color) IsNeutral() bool { return c.neutral }

func (c Color) mustBePerceptual() {
	if !c.space.IsPerceptual() {
		panic(fmt.Sprintf("perceptual: %s has no hue or purity", c.space))
	}
}

// IMax returns the maximum absolute intensity reachable for the hue and
// purity of this color. The value is memoized on the color and recomputed
// when hue or purity change. RGB colors are converted first.
func (c *Color) IMax() float64 {
	if c.space.IsRGB() {
		a := c.To(Absolute)
		return a.IMax()
	}
	if c.cacheOK && c.cacheR == c.v[0] && c.cacheP == c.v[1] {
		return c.cacheIMax
	}
	c.cacheR, c.cacheP, c.cacheOK = c.v[0], c.v[1], true
	c.cacheIMax = imax(c.v[0], c.v[1], c.neutral)
	return c.cacheIMax
}

// Intensity returns the absolute intensity i.
func (c *Color) Intensity() float64 {
	if c.space.IsRGB() {
		a := c.To(Absolute)
		return a.v[2]
	}
	if c.space == Normalized {
		return c.v[2] * c.IMax()
	}
	return c.v[2]
}

// NormalizedIntensity returns the intensity relative to IMax, j.
func (c *Color) NormalizedIntensity() float64 {
	switch c.space {
	case Normalized:
		return c.v[2]
	case Absolute:
		return c.v[2] / c.IMax()
	}
	a := c.To(Normalized)
	return a.v[2]
}

func (c Color) linear() [3]float64 {
	switch c.space {
	case LinearRGB:
		return c.v
	case GammaRGB:
		return [3]float64{GammaToLinear(c.v[0]), GammaToLinear(c.v[1]), GammaToLinear(c.v[2])}
	case Absolute:
		return absoluteToLinear(c.v[0], c.v[1], c.v[2], c.neutral)
	case Normalized:
		return absoluteToLinear(c.v[0], c.v[1], c.v[2]*c.IMax(), c.neutral)
	}
	panic(fmt.Sprintf("perceptual: cannot convert from the invalid space: %s", c.space))
}

// To converts the color to the specified space. Conversions to RGB are not
// clamped, call Clamp on the result if the source may be out of gamut.
func (c Color) To(space Space) Color {
	if !space.Valid() {
		panic(fmt.Sprintf("perceptual: cannot convert to the invalid space: %s", space))
	}
	if c.space == space {
		return c
	}
	switch {
	case c.space == Absolute && space == Normalized:
		ans := c
		ans.space = Normalized
		ans.v[2] = c.v[2] / ans.IMax()
		return ans
	case c.space == Normalized && space == Absolute:
		ans := c
		ans.space = Absolute
		ans.v[2] = c.v[2] * ans.IMax()
		return ans
	}
	lin := c.linear()
	switch space {
	case LinearRGB:
		return Color{space: LinearRGB, v: lin}
	case GammaRGB:
		return Color{space: GammaRGB, v: [3]float64{LinearToGamma(lin[0]), LinearToGamma(lin[1]), LinearToGamma(lin[2])}}
	}
	r, p, i, neutral := linearToAbsolute(lin)
	ans := Color{space: Absolute, v: [3]float64{r, p, i}, neutral: neutral}
	if space == Normalized {
		return ans.To(Normalized)
	}
	return ans
}

// Clamp returns the color with its components limited to the valid range
// of its space. Hue wraps around instead of being clamped.
func (c Color) Clamp() Color {
	switch c.space {
	case LinearRGB:
		c.v = [3]float64{clamp01(c.v[0]), clamp01(c.v[1]), clamp01(c.v[2])}
	case GammaRGB:
		c.v = [3]float64{clamp255(c.v[0]), clamp255(c.v[1]), clamp255(c.v[2])}
	case Absolute:
		c.v[0], c.v[1] = wrapHue(c.v[0]), clamp01(c.v[1])
		c.v[2] = max(0, min(c.v[2], c.IMax()))
	case Normalized:
		c.v[0], c.v[1], c.v[2] = wrapHue(c.v[0]), clamp01(c.v[1]), clamp01(c.v[2])
	}
	return c
}

func clamp255(x float64) float64 {
	return max(0, min(x, 255))
}

// Gamma8 returns the color as 8-bit display encoded components, rounding to
// the nearest integer and clipping to the gamut.
func (c Color) Gamma8() (r, g, b uint8) {
	if c.space == GammaRGB {
		f := func(x float64) uint8 { return uint8(math.Round(clamp255(x))) }
		return f(c.v[0]), f(c.v[1]), f(c.v[2])
	}
	lin := c.linear()
	return To8Bit(lin[0]), To8Bit(lin[1]), To8Bit(lin[2])
}

// Equal reports whether two colors are in the same space with the same
// components.
func (c Color) Equal(o Color) bool {
	return c.space == o.space && c.v == o.v && c.neutral == o.neutral
}

func (c Color) String() string {
	switch c.space {
	case LinearRGB, GammaRGB:
		return fmt.Sprintf("%s{%.4f %.4f %.4f}", c.space, c.v[0], c.v[1], c.v[2])
	case Absolute:
		return fmt.Sprintf("Absolute{r=%.4f p=%.4f i=%.4f}", c.v[0], c.v[1], c.v[2])
	case Normalized:
		return fmt.Sprintf("Normalized{r=%.4f p=%.4f j=%.4f}", c.v[0], c.v[1], c.v[2])
	}
	return "Color{invalid}"
}
