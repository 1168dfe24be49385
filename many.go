package chromafix

import (
	"fmt"

	"github.com/chromafix/chromafix/cvd"
	"github.com/kovidgoyal/go-parallel"
)

// OptimizeMany optimizes several palettes concurrently. Palette i uses the
// random stream of Seed(seed+i), or, when a RandomSource is given, a seed
// drawn from it in order, so the output does not depend on scheduling.
func OptimizeMany(palettes []Palette, d cvd.Deficiency, opts ...Option) ([]Palette, error) {
	results, err := RunMany(palettes, d, opts...)
	if err != nil {
		return nil, err
	}
	ans := make([]Palette, len(results))
	for i, r := range results {
		ans[i] = r.Palette
	}
	return ans, nil
}

// RunMany is OptimizeMany returning the full record of every optimization.
func RunMany(palettes []Palette, d cvd.Deficiency, opts ...Option) ([]*Result, error) {
	cfg := newConfig(opts)
	seeds := make([]uint64, len(palettes))
	for i := range seeds {
		if cfg.rng != nil {
			seeds[i] = cfg.rng.Uint64()
		} else {
			seeds[i] = cfg.seed + uint64(i)
		}
	}
	ans := make([]*Result, len(palettes))
	if len(palettes) == 0 {
		return ans, nil
	}
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			popts := append(opts[:len(opts):len(opts)], Seed(seeds[i]), RandomSource(nil))
			ans[i] = Run(palettes[i], d, popts...)
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, len(palettes)); err != nil {
		return nil, fmt.Errorf("failed to optimize %d palettes: %w", len(palettes), err)
	}
	return ans, nil
}
