package cvd

import (
	"fmt"

	"github.com/chromafix/chromafix/perceptual"
)

var _ = fmt.Print

// Projector maps linear RGB colors to the colors a dichromat perceives. It is
// never modified after creation and can be shared between goroutines.
type Projector struct {
	deficiency Deficiency
	matrix     Mat3
}

func NewProjector(d Deficiency) *Projector {
	return &Projector{deficiency: d, matrix: d.Matrix()}
}

func (p *Projector) Deficiency() Deficiency { return p.deficiency }

// Simulate returns the linear RGB color perceived in place of c. Colors not
// in LinearRGB are converted first. The transformed channels are clamped
// to [0,1].
func (p *Projector) Simulate(c perceptual.Color) perceptual.Color {
	if c.Space() != perceptual.LinearRGB {
		c = c.To(perceptual.LinearRGB)
	}
	if p.deficiency == None {
		return c
	}
	v := mulMat3Vec(&p.matrix, Vec3{c.At(0), c.At(1), c.At(2)})
	if !inGamut(v) {
		v[0], v[1], v[2] = clamp01(v[0]), clamp01(v[1]), clamp01(v[2])
	}
	return perceptual.Linear(v[0], v[1], v[2])
}

// Project returns the perceived color of c in the Absolute space. With no
// deficiency this is just the conversion of c to Absolute.
func (p *Projector) Project(c perceptual.Color) perceptual.Color {
	return p.Simulate(c).To(perceptual.Absolute)
}

// Simulate8 is Simulate for 8-bit display encoded components.
func (p *Projector) Simulate8(r, g, b uint8) (uint8, uint8, uint8) {
	if p.deficiency == None {
		return r, g, b
	}
	v := mulMat3Vec(&p.matrix, Vec3{perceptual.From8Bit(r), perceptual.From8Bit(g), perceptual.From8Bit(b)})
	return perceptual.To8Bit(v[0]), perceptual.To8Bit(v[1]), perceptual.To8Bit(v[2])
}
