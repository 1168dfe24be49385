package search

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/perceptual"
)

var _ = fmt.Print

// Kind selects the exploration performed by a Strategy.
type Kind uint8

const (
	// TabuSum is a Tabu local search minimizing the sum of per-color errors.
	TabuSum Kind = iota
	// TabuMax is a Tabu local search minimizing the largest per-color error.
	TabuMax
	// Shake is a single random perturbation of every color.
	Shake
)

var kindNames = [...]string{TabuSum: "tabu-sum", TabuMax: "tabu-max", Shake: "shake"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Mode returns how the strategy aggregates per-color errors.
func (k Kind) Mode() Mode {
	if k == TabuMax {
		return Max
	}
	return Sum
}

// Phase is the lifecycle state of a Strategy.
type Phase uint8

const (
	Idle Phase = iota
	Prepared
	Exploring
	Done
)

var phaseNames = [...]string{Idle: "idle", Prepared: "prepared", Exploring: "exploring", Done: "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Strategy is one search strategy together with all of its state. A
// Strategy owns its working buffers and projector and must only be used from
// one goroutine at a time. It can be prepared and explored any number of
// times.
type Strategy struct {
	kind  Kind
	ctx   *Context
	phase Phase
	evaluation

	palette   []perceptual.Color
	total     float64
	best      []perceptual.Color
	bestTotal float64

	budget, iterations, sinceBest int

	// tabu
	selection   Selection
	stallWindow int
	tabu        []tabuEntry
	scratch     []float64

	// shake
	rng    *rand.Rand
	jitter Jitter
}

var explorers = [...]func(*Strategy){
	TabuSum: (*Strategy).exploreTabu,
	TabuMax: (*Strategy).exploreTabu,
	Shake:   (*Strategy).exploreShake,
}

func newStrategy(ctx *Context, kind Kind) *Strategy {
	n := ctx.Len()
	return &Strategy{
		kind: kind, ctx: ctx,
		evaluation: evaluation{
			projector: cvd.NewProjector(ctx.deficiency),
			projected: make([]perceptual.Color, n),
			penalties: make([]float64, n*n),
			errors:    make([]float64, n),
		},
		palette: make([]perceptual.Color, n),
		best:    make([]perceptual.Color, n),
	}
}

func (s *Strategy) Kind() Kind      { return s.kind }
func (s *Strategy) Phase() Phase    { return s.phase }
func (s *Strategy) Iterations() int { return s.iterations }

// Total is the error of the current working palette.
func (s *Strategy) Total() float64 { return s.total }

// BestTotal is the lowest error seen since the last Prepare.
func (s *Strategy) BestTotal() float64 { return s.bestTotal }

// Best returns a copy of the palette with the lowest error seen since the
// last Prepare, in LinearRGB.
func (s *Strategy) Best() []perceptual.Color { return slices.Clone(s.best) }

// Errors returns the per-color errors of the current working palette. The
// returned slice must not be modified.
func (s *Strategy) Errors() []float64 { return s.errors }

// Prepare loads source, which must have as many colors as the context, as
// the working palette and allows at most budget iterations for the next
// Explore.
func (s *Strategy) Prepare(source []perceptual.Color, budget int) {
	if s.phase == Prepared || s.phase == Exploring {
		panic(fmt.Sprintf("search: cannot prepare a %s strategy that is %s", s.kind, s.phase))
	}
	if len(source) != s.ctx.Len() {
		panic(fmt.Sprintf("search: cannot prepare with %d colors for a context of %d", len(source), s.ctx.Len()))
	}
	for i, c := range source {
		s.palette[i] = c.To(perceptual.LinearRGB).Clamp()
	}
	s.refresh(s.ctx, s.palette)
	s.total = s.kind.Mode().aggregate(s.errors)
	copy(s.best, s.palette)
	s.bestTotal = s.total
	s.budget, s.iterations, s.sinceBest = budget, 0, 0
	clear(s.tabu)
	s.phase = Prepared
}

// Explore runs the strategy until its budget or stalling window is
// exhausted.
func (s *Strategy) Explore() {
	if s.phase != Prepared {
		panic(fmt.Sprintf("search: cannot explore a %s strategy that is %s", s.kind, s.phase))
	}
	s.phase = Exploring
	explorers[s.kind](s)
	s.phase = Done
}

func (s *Strategy) recordBest() {
	if s.total < s.bestTotal {
		copy(s.best, s.palette)
		s.bestTotal = s.total
		s.sinceBest = 0
	} else {
		s.sinceBest++
	}
}
