package search

import (
	"fmt"
	"slices"

	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/distance"
	"github.com/chromafix/chromafix/perceptual"
)

var _ = fmt.Print

// Context is what all strategies of one optimization run share: the original
// palette, the perceptual distances between its colors as seen with normal
// vision, and the deficiency being simulated. It is never modified after
// creation so it can be read from any number of strategies.
type Context struct {
	original   []perceptual.Color
	distances  *distance.Matrix
	deficiency cvd.Deficiency
}

// NewContext creates a context for the specified palette. Colors may be in
// any space, they are converted to LinearRGB and clamped to the gamut.
func NewContext(original []perceptual.Color, d cvd.Deficiency) *Context {
	ans := &Context{original: make([]perceptual.Color, len(original)), deficiency: d}
	for i, c := range original {
		ans.original[i] = c.To(perceptual.LinearRGB).Clamp()
	}
	ans.distances = distance.NewMatrix(ans.original)
	return ans
}

func (c *Context) Len() int                          { return len(c.original) }
func (c *Context) Deficiency() cvd.Deficiency        { return c.deficiency }
func (c *Context) Distances() *distance.Matrix       { return c.distances }
func (c *Context) Original() []perceptual.Color      { return slices.Clone(c.original) }
func (c *Context) OriginalAt(i int) perceptual.Color { return c.original[i] }

// Evaluate returns the total error of palette, aggregated according to mode,
// and the error of each color.
func (c *Context) Evaluate(palette []perceptual.Color, mode Mode) (total float64, errors []float64) {
	if len(palette) != c.Len() {
		panic(fmt.Sprintf("search: palette of %d colors evaluated against a context of %d", len(palette), c.Len()))
	}
	n := len(palette)
	e := evaluation{
		projector: cvd.NewProjector(c.deficiency),
		projected: make([]perceptual.Color, n),
		penalties: make([]float64, n*n),
		errors:    make([]float64, n),
	}
	lin := make([]perceptual.Color, n)
	for i, x := range palette {
		lin[i] = x.To(perceptual.LinearRGB).Clamp()
	}
	e.refresh(c, lin)
	return mode.aggregate(e.errors), e.errors
}

// evaluation is the projected state of a working palette.
type evaluation struct {
	projector *cvd.Projector
	projected []perceptual.Color
	// penalties[k*n+l] is the penalty of the pair (k, l)
	penalties []float64
	errors    []float64
}

func (e *evaluation) pairPenalty(ctx *Context, k, l int, pk perceptual.Color) float64 {
	return Penalty(distance.Between(pk, e.projected[l]), ctx.distances.At(k, l))
}

func (e *evaluation) sumErrors() {
	n := len(e.errors)
	for k := range n {
		var s float64
		for _, p := range e.penalties[k*n : (k+1)*n] {
			s += p
		}
		e.errors[k] = s
	}
}

// refresh re-projects every color of palette and recomputes all penalties
// and errors.
func (e *evaluation) refresh(ctx *Context, palette []perceptual.Color) {
	n := len(palette)
	for k, c := range palette {
		e.projected[k] = e.projector.Project(c)
	}
	for k := range n {
		e.penalties[k*n+k] = 0
		for l := k + 1; l < n; l++ {
			p := e.pairPenalty(ctx, k, l, e.projected[k])
			e.penalties[k*n+l] = p
			e.penalties[l*n+k] = p
		}
	}
	e.sumErrors()
}
