package chromafix

import (
	"math"

	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/distance"
	"github.com/chromafix/chromafix/perceptual"
)

// Drift returns, for every color, the CIEDE2000 difference between the
// input color and its replacement, as seen with normal vision. Values
// around 1 are barely noticeable.
func (r *Result) Drift() []float64 {
	ans := make([]float64, len(r.Input))
	for i, c := range r.Input {
		ans[i] = c.colorful().DistanceCIEDE2000(r.Palette[i].colorful())
	}
	return ans
}

// Perceived returns the distances between the colors of p as seen by a
// viewer with deficiency d.
func Perceived(p Palette, d cvd.Deficiency) *distance.Matrix {
	proj := cvd.NewProjector(d)
	seen := make([]perceptual.Color, len(p))
	for i, c := range p {
		seen[i] = proj.Project(c.Color())
	}
	return distance.NewMatrix(seen)
}

// ClosestPair returns the two colors of p that a viewer with deficiency d
// finds hardest to tell apart and their perceived distance. It returns -1,
// -1 for palettes of fewer than two colors.
func ClosestPair(p Palette, d cvd.Deficiency) (a, b int, dist float64) {
	a, b, dist = -1, -1, math.Inf(1)
	m := Perceived(p, d)
	for i := range m.Len() {
		for j := i + 1; j < m.Len(); j++ {
			if v := m.At(i, j); v < dist {
				a, b, dist = i, j, v
			}
		}
	}
	return
}
