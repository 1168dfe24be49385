package chromafix

import (
	"fmt"
	"log/slog"

	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/perceptual"
	"github.com/chromafix/chromafix/search"
)

var _ = fmt.Print

// Phase describes one search phase of an optimization.
type Phase struct {
	Kind       search.Kind
	Iterations int
	// Error is the best error the phase reached, aggregated the way the
	// phase aggregates errors (Sum or Max).
	Error float64
	// GlobalBest is the Sum error of the best palette seen so far, after
	// this phase. It never increases from one phase to the next.
	GlobalBest float64
	// Improved is set when this phase lowered GlobalBest.
	Improved bool
	// Palette is the best palette seen so far, after this phase.
	Palette Palette
}

// Result is the outcome of an optimization.
type Result struct {
	Deficiency cvd.Deficiency
	Input      Palette
	// Palette has the same length as Input, color i of Palette is the
	// replacement for color i of Input.
	Palette Palette
	// InitialError and Error are the Sum errors of Input and of the best
	// palette found before rounding to 8 bits.
	InitialError, Error float64
	Iterations          int
	Phases              []Phase
}

type optimizer struct {
	cfg    config
	ctx    *search.Context
	result *Result
	log    *slog.Logger

	budget, used int
	best         []perceptual.Color
	bestError    float64
}

// Run optimizes palette p for viewers with deficiency d and returns the
// complete record of the optimization. Palettes of fewer than two colors
// and the None deficiency leave the palette unchanged.
func Run(p Palette, d cvd.Deficiency, opts ...Option) *Result {
	cfg := newConfig(opts)
	res := &Result{Deficiency: d, Input: p.Clone(), Palette: p.Clone()}
	if len(p) < 2 {
		return res
	}
	ctx := search.NewContext(p.Colors(), d)
	res.InitialError, _ = ctx.Evaluate(ctx.Original(), search.Sum)
	res.Error = res.InitialError
	if d == cvd.None {
		return res
	}
	o := &optimizer{
		cfg: cfg, ctx: ctx, result: res, log: cfg.logger.With("deficiency", d.String(), "colors", len(p)),
		budget: cfg.iterationsPerColor * len(p),
		best:   ctx.Original(), bestError: res.InitialError,
	}
	o.run()
	res.Palette = paletteFromColors(o.best)
	res.Error = o.bestError
	res.Iterations = o.used
	o.log.Info("optimized palette", "initial_error", res.InitialError, "error", res.Error,
		"iterations", res.Iterations, "phases", len(res.Phases))
	return res
}

// Optimize is Run returning only the optimized palette.
func Optimize(p Palette, d cvd.Deficiency, opts ...Option) Palette {
	return Run(p, d, opts...).Palette
}

func (o *optimizer) remaining() int { return o.budget - o.used }

func (o *optimizer) run() {
	n := o.ctx.Len()
	sum := search.NewTabu(o.ctx, search.TabuConfig{Mode: search.Sum, Selection: o.cfg.selection, StallWindow: o.cfg.stallPerColor * n})
	worst := search.NewTabu(o.ctx, search.TabuConfig{Mode: search.Max, Selection: o.cfg.selection})
	shake := search.NewShake(o.ctx, o.cfg.random(), o.cfg.jitter)

	o.phase(sum, o.ctx.Original(), o.remaining())
	for cycle := 0; o.remaining() > 0 && o.bestError > 0; cycle++ {
		var seed []perceptual.Color
		if cycle%2 == 0 {
			o.phase(worst, sum.Best(), min(o.cfg.maxPhasePerColor*n, o.remaining()))
			seed = worst.Best()
		} else {
			o.phase(shake, o.best, 1)
			seed = shake.Best()
		}
		if o.remaining() <= 0 {
			break
		}
		o.phase(sum, seed, o.remaining())
	}
}

// phase runs s from seed with the specified budget and records it. Only
// Sum phases can change the global best.
func (o *optimizer) phase(s *search.Strategy, seed []perceptual.Color, budget int) {
	s.Prepare(seed, budget)
	s.Explore()
	// every phase consumes budget so the loop always terminates
	o.used += max(1, s.Iterations())
	improved := false
	if s.Kind() == search.TabuSum && s.BestTotal() < o.bestError {
		o.best, o.bestError, improved = s.Best(), s.BestTotal(), true
	}
	o.result.Phases = append(o.result.Phases, Phase{
		Kind: s.Kind(), Iterations: s.Iterations(), Error: s.BestTotal(),
		GlobalBest: o.bestError, Improved: improved, Palette: paletteFromColors(o.best),
	})
	o.log.Debug("search phase", "kind", s.Kind().String(), "iterations", s.Iterations(),
		"error", s.BestTotal(), "global_best", o.bestError, "improved", improved)
}
