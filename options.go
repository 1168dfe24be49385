package chromafix

import (
	"log/slog"
	"math/rand/v2"

	"github.com/chromafix/chromafix/search"
)

type config struct {
	iterationsPerColor int
	stallPerColor      int
	maxPhasePerColor   int
	seed               uint64
	rng                *rand.Rand
	jitter             search.Jitter
	selection          search.Selection
	logger             *slog.Logger
}

var defaultConfig = config{
	iterationsPerColor: 150,
	stallPerColor:      10,
	maxPhasePerColor:   3,
	seed:               1,
	jitter:             search.DefaultJitter,
}

// Option sets an optional parameter for Run, Optimize and OptimizeMany.
type Option func(*config)

// IterationsPerColor sets the total number of search iterations allowed,
// per palette color. Default is 150.
func IterationsPerColor(n int) Option {
	return func(c *config) {
		c.iterationsPerColor = max(0, n)
	}
}

// StallPerColor sets, per palette color, the number of iterations without
// improvement after which a Sum phase stops early. Zero disables stalling.
// Default is 10.
func StallPerColor(n int) Option {
	return func(c *config) {
		c.stallPerColor = max(0, n)
	}
}

// MaxPhasePerColor sets the length of every Max phase, per palette color.
// Default is 3.
func MaxPhasePerColor(n int) Option {
	return func(c *config) {
		c.maxPhasePerColor = max(1, n)
	}
}

// Seed sets the seed of the random stream used by Shake phases. Runs with
// the same seed and options produce the same palette. Default is 1.
func Seed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// RandomSource makes Shake phases draw from r instead of a stream created
// from the seed. r must not be used concurrently elsewhere while the
// optimization runs. For OptimizeMany, r is only used to seed one stream
// per palette.
func RandomSource(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// ShakeJitter sets the largest perturbation applied by Shake phases.
func ShakeJitter(j search.Jitter) Option {
	return func(c *config) {
		c.jitter = j
	}
}

// TabuSelection sets how Tabu phases pick their move. The default,
// search.ColorError, takes the move leaving the moved color with the lowest
// error. search.PaletteError takes the move leaving the palette with the
// lowest error instead.
func TabuSelection(s search.Selection) Option {
	return func(c *config) {
		c.selection = s
	}
}

// WithLogger logs the optimization to l instead of the package Logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig
	for _, option := range opts {
		option(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	return cfg
}

func (c *config) random() *rand.Rand {
	if c.rng != nil {
		return c.rng
	}
	return rand.New(rand.NewPCG(c.seed, c.seed^0x9e3779b97f4a7c15))
}
