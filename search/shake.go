package search

import (
	"math/rand/v2"

	"github.com/chromafix/chromafix/perceptual"
)

// Jitter is the largest change Shake applies to each perceptual component.
type Jitter struct {
	Hue, Purity, Intensity float64
}

var DefaultJitter = Jitter{Hue: 0.03, Purity: 0.1, Intensity: 0.1}

// NewShake creates a strategy that perturbs the hue, purity and normalized
// intensity of every color by a uniformly distributed amount of at most
// jitter. Neutral colors only have their intensity changed, as they have no
// hue to perturb. All randomness comes from rng.
func NewShake(ctx *Context, rng *rand.Rand, jitter Jitter) *Strategy {
	s := newStrategy(ctx, Shake)
	s.rng, s.jitter = rng, jitter
	return s
}

func (s *Strategy) uniform(limit float64) float64 {
	return (2*s.rng.Float64() - 1) * limit
}

func (s *Strategy) exploreShake() {
	if s.budget < 1 {
		return
	}
	for k, c := range s.palette {
		nc := c.To(perceptual.Normalized)
		if !nc.IsNeutral() {
			nc.Set(0, nc.At(0)+s.uniform(s.jitter.Hue))
			nc.Set(1, nc.At(1)+s.uniform(s.jitter.Purity))
		}
		nc.Set(2, nc.At(2)+s.uniform(s.jitter.Intensity))
		s.palette[k] = nc.Clamp().To(perceptual.LinearRGB).Clamp()
	}
	s.refresh(s.ctx, s.palette)
	s.total = s.kind.Mode().aggregate(s.errors)
	s.iterations = 1
	// the disturbed palette is the result, whether or not it is better
	copy(s.best, s.palette)
	s.bestTotal = s.total
}
