package perceptual

import (
	"fmt"
)

var _ = fmt.Print

// Space identifies which representation the components of a Color are in.
type Space uint8

const (
	InvalidSpace Space = iota
	// LinearRGB components are in [0,1] and proportional to light intensity.
	LinearRGB
	// GammaRGB components are in [0,255], display encoded with exponent 2.2.
	GammaRGB
	// Absolute is hue, purity and absolute intensity (r, p, i).
	Absolute
	// Normalized is hue, purity and intensity relative to IMax (r, p, j).
	Normalized
)

var spaceNames = map[Space]string{
	LinearRGB:  "LinearRGB",
	GammaRGB:   "GammaRGB",
	Absolute:   "Absolute",
	Normalized: "Normalized",
}

func (s Space) String() string {
	if n, ok := spaceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Space(%d)", uint8(s))
}

func (s Space) Valid() bool {
	_, ok := spaceNames[s]
	return ok
}

// IsRGB reports whether the space is one of the two RGB encodings.
func (s Space) IsRGB() bool { return s == LinearRGB || s == GammaRGB }

// IsPerceptual reports whether the space is one of the (r, p, i|j) encodings.
func (s Space) IsPerceptual() bool { return s == Absolute || s == Normalized }
