package search

import (
	"fmt"
	"math"

	"github.com/chromafix/chromafix/perceptual"
)

const (
	// Step is the size of one move in linear RGB.
	Step = 1. / 128
	// TabuTenure is the number of iterations for which the reverse of an
	// accepted move stays forbidden.
	TabuTenure = 4
)

var directions = [2]int8{1, -1}

type tabuEntry struct {
	dir   int8
	until int
}

// Selection is the criterion by which a Tabu iteration picks its move.
type Selection uint8

const (
	// ColorError takes the move leaving the moved color with the lowest
	// error.
	ColorError Selection = iota
	// PaletteError takes the move leaving the whole palette with the lowest
	// error, aggregated according to the strategy's Mode.
	PaletteError
)

func (s Selection) String() string {
	switch s {
	case ColorError:
		return "color"
	case PaletteError:
		return "palette"
	}
	return fmt.Sprintf("Selection(%d)", uint8(s))
}

type TabuConfig struct {
	Mode      Mode
	Selection Selection
	// When positive, stop exploring after this many iterations without a
	// new best.
	StallWindow int
}

// NewTabu creates a Tabu local search strategy. Every iteration it tries a
// move of Step up and down on each channel of each color and takes the one
// scoring lowest according to cfg.Selection, even when that makes the
// palette worse. The reverse of the accepted move is forbidden for the
// next TabuTenure iterations to avoid cycling.
func NewTabu(ctx *Context, cfg TabuConfig) *Strategy {
	kind := TabuSum
	if cfg.Mode == Max {
		kind = TabuMax
	}
	s := newStrategy(ctx, kind)
	s.stallWindow = cfg.StallWindow
	s.selection = cfg.Selection
	s.tabu = make([]tabuEntry, 3*ctx.Len())
	s.scratch = make([]float64, ctx.Len())
	return s
}

func (s *Strategy) isTabu(k, ch int, dir int8) bool {
	e := s.tabu[3*k+ch]
	return e.dir == dir && s.iterations < e.until
}

// score returns the score of projecting color k to pk: the new error of k
// itself, or for PaletteError the new palette error. The pair penalties of
// k are left in s.scratch.
func (s *Strategy) score(k int, pk perceptual.Color) float64 {
	n := len(s.palette)
	var errK float64
	for l := range n {
		if l == k {
			s.scratch[l] = 0
			continue
		}
		p := s.pairPenalty(s.ctx, k, l, pk)
		s.scratch[l] = p
		errK += p
	}
	if s.selection == ColorError {
		return errK
	}
	if s.kind.Mode() == Sum {
		// the penalty matrix is symmetric so every pair is counted twice
		return s.total + 2*(errK-s.errors[k])
	}
	ans := errK
	for l := range n {
		if l != k {
			ans = max(ans, s.errors[l]-s.penalties[l*n+k]+s.scratch[l])
		}
	}
	return ans
}

func (s *Strategy) accept(k int, c, pk perceptual.Color) {
	n := len(s.palette)
	s.palette[k], s.projected[k] = c, pk
	for l := range n {
		if l != k {
			p := s.pairPenalty(s.ctx, k, l, pk)
			s.penalties[k*n+l] = p
			s.penalties[l*n+k] = p
		}
	}
	s.sumErrors()
	s.total = s.kind.Mode().aggregate(s.errors)
}

func (s *Strategy) exploreTabu() {
	n := len(s.palette)
	if n < 2 {
		return
	}
	for s.iterations < s.budget {
		if s.stallWindow > 0 && s.sinceBest >= s.stallWindow {
			break
		}
		found := false
		bestScore := math.Inf(1)
		var bk, bch int
		var bdir int8
		var bc, bp perceptual.Color
		for k := range n {
			for ch := range 3 {
				for _, dir := range directions {
					if s.isTabu(k, ch, dir) {
						continue
					}
					cur := s.palette[k].At(ch)
					v := max(0, min(cur+float64(dir)*Step, 1))
					if v == cur {
						continue
					}
					c := s.palette[k]
					c.Set(ch, v)
					pk := s.projector.Project(c)
					// strict comparison: ties go to the first candidate in
					// color, channel, direction order
					if score := s.score(k, pk); score < bestScore {
						found, bestScore = true, score
						bk, bch, bdir, bc, bp = k, ch, dir, c, pk
					}
				}
			}
		}
		if !found {
			break
		}
		s.accept(bk, bc, bp)
		s.tabu[3*bk+bch] = tabuEntry{dir: -bdir, until: s.iterations + TabuTenure}
		s.iterations++
		s.recordBest()
	}
}
