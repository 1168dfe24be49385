// Package distance measures how different two colors look.
//
// Both colors are placed in a two dimensional polar slice of the perceptual
// space: the radius is the absolute intensity and the angle is the hue
// difference, expressed as a fraction of 60 degrees. A hue difference of
// one sixth of the wheel (a primary and its nearest secondary) is the
// largest difference that is considered perceptibly meaningful, beyond it
// the angular term saturates. The distance is the Euclidean distance
// between the two points of the slice.
package distance

import (
	"fmt"
	"math"

	"github.com/chromafix/chromafix/perceptual"
)

var _ = fmt.Print

// Fraction of the hue wheel at which the hue term saturates.
const MaxHueDifference = 1. / 6

// Between returns the perceptual distance between a and b, which must both
// be in one of the perceptual spaces. The result is symmetric in a and b and
// zero when a and b are the same color.
func Between(a, b perceptual.Color) float64 {
	ra, rb := a.Intensity(), b.Intensity()
	var h float64
	// a grey has no hue, only the intensities of a pair with one count
	if !a.IsNeutral() && !b.IsNeutral() {
		dh := math.Abs(a.Hue() - b.Hue())
		if dh > 0.5 {
			dh = 1 - dh
		}
		h = min(dh/MaxHueDifference, 1)
	}
	theta := h * (math.Pi / 3)
	dr := ra - rb
	// law of cosines, written to stay exact for coincident points
	d2 := dr*dr + 2*ra*rb*(1-math.Cos(theta))
	return math.Sqrt(max(d2, 0))
}

// Matrix is an immutable table of pairwise distances.
type Matrix struct {
	n    int
	vals []float64
}

// NewMatrix computes the pairwise distances between colors, which may be in
// any space. Only the upper triangle is computed, the lower is mirrored.
func NewMatrix(colors []perceptual.Color) *Matrix {
	n := len(colors)
	ans := &Matrix{n: n, vals: make([]float64, n*n)}
	pc := make([]perceptual.Color, n)
	for i, c := range colors {
		if c.Space().IsPerceptual() {
			pc[i] = c
		} else {
			pc[i] = c.To(perceptual.Absolute)
		}
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			d := Between(pc[i], pc[j])
			ans.vals[i*n+j] = d
			ans.vals[j*n+i] = d
		}
	}
	return ans
}

func (m *Matrix) Len() int { return m.n }

func (m *Matrix) At(i, j int) float64 { return m.vals[i*m.n+j] }

// Row returns the distances from color i. The returned slice must not be
// modified.
func (m *Matrix) Row(i int) []float64 { return m.vals[i*m.n : (i+1)*m.n : (i+1)*m.n] }
