package search

import (
	"fmt"
)

var _ = fmt.Print

const (
	// Original distances at or below this are treated as the same color.
	MinOriginalDistance = 1e-4
	// Penalty of a pair that collapses completely.
	PenaltyCeiling = 1000.
)

// Penalty is the error contributed by a pair of colors whose distance is
// original with normal vision and projected under the simulated deficiency.
// Pairs that end up closer than they were are penalized, growing without
// bound (up to PenaltyCeiling) as they approach each other. Pairs that end
// up at least as far apart cost nothing. When the original distance is at
// most MinOriginalDistance the projected distance is used as the ratio on
// its own, so colors that started out identical are pushed apart until
// they are a unit distance away.
func Penalty(projected, original float64) float64 {
	ratio := projected
	if original > MinOriginalDistance {
		ratio = projected / original
	}
	diff := ratio - 1
	switch {
	case diff >= 0:
		return 0
	case diff > -1:
		return min(1/(1+diff)-1, PenaltyCeiling)
	}
	return PenaltyCeiling
}

// Mode is how per-color errors are combined into the error of a palette.
type Mode uint8

const (
	// Sum optimizes the overall quality of the palette.
	Sum Mode = iota
	// Max optimizes the worst color of the palette.
	Max
)

func (m Mode) String() string {
	switch m {
	case Sum:
		return "sum"
	case Max:
		return "max"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func (m Mode) aggregate(errors []float64) (ans float64) {
	switch m {
	case Max:
		for _, e := range errors {
			ans = max(ans, e)
		}
	default:
		for _, e := range errors {
			ans += e
		}
	}
	return
}
