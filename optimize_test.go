package chromafix

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/chromafix/chromafix/cvd"
	"github.com/chromafix/chromafix/distance"
	"github.com/chromafix/chromafix/search"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

var red_and_orange = Palette{{255, 0, 0}, {200, 80, 0}}

var theme = Palette{
	{0xd6, 0x27, 0x28}, {0x2c, 0xa0, 0x2c}, {0xff, 0x7f, 0x0e},
	{0x1f, 0x77, 0xb4}, {0x8c, 0x56, 0x4b}, {0xbc, 0xbd, 0x22},
}

func random_rgb_palette(r *rand.Rand, n int) Palette {
	ans := make(Palette, n)
	for i := range ans {
		ans[i] = RGB{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
	}
	return ans
}

func projected_distance(p Palette, d cvd.Deficiency, i, j int) float64 {
	proj := cvd.NewProjector(d)
	a := proj.Project(p[i].Color())
	b := proj.Project(p[j].Color())
	return distance.Between(a, b)
}

func TestOutputLength(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for _, d := range []cvd.Deficiency{cvd.None, cvd.Protan, cvd.Deutan} {
		for n := range 6 {
			p := random_rgb_palette(r, n)
			ans := Optimize(p, d, IterationsPerColor(20))
			require.Len(t, ans, n, "deficiency: %s", d)
		}
	}
}

func TestSingleColor(t *testing.T) {
	p := Palette{{12, 200, 99}}
	res := Run(p, cvd.Protan)
	require.Empty(t, cmp.Diff(p, res.Palette))
	require.Empty(t, res.Phases)
	require.Equal(t, 0., res.Error)
	// the result never aliases the input
	res.Palette[0].R = 0
	require.Equal(t, uint8(12), p[0].R)
}

func TestNoDeficiency(t *testing.T) {
	res := Run(theme, cvd.None)
	require.Empty(t, cmp.Diff(theme, res.Palette))
	require.Equal(t, 0., res.InitialError)
	require.Equal(t, 0., res.Error)
	require.Empty(t, res.Phases)
}

func TestRedDeficiencyScenario(t *testing.T) {
	before := projected_distance(red_and_orange, cvd.Protan, 0, 1)
	res := Run(red_and_orange, cvd.Protan)
	require.Len(t, res.Palette, 2)
	require.Greater(t, res.InitialError, 0.)
	require.Less(t, res.Error, res.InitialError)
	after := projected_distance(res.Palette, cvd.Protan, 0, 1)
	require.Greater(t, after, before, "%s -> %s", red_and_orange, res.Palette)
	i, j, d := ClosestPair(res.Palette, cvd.Protan)
	require.Equal(t, 0, i)
	require.Equal(t, 1, j)
	require.InDelta(t, after, d, 1e-12)
}

func TestGlobalBestNeverIncreases(t *testing.T) {
	for _, d := range []cvd.Deficiency{cvd.Protan, cvd.Deutan} {
		res := Run(theme, d, Seed(11))
		require.NotEmpty(t, res.Phases)
		require.Equal(t, search.TabuSum, res.Phases[0].Kind)
		prev := res.InitialError
		total := 0
		for i, p := range res.Phases {
			require.LessOrEqual(t, p.GlobalBest, prev, "phase %d (%s)", i, p.Kind)
			require.Equal(t, p.GlobalBest < prev, p.Improved)
			if p.Improved {
				require.Equal(t, search.TabuSum, p.Kind)
			}
			require.Len(t, p.Palette, len(theme))
			prev = p.GlobalBest
			total += max(1, p.Iterations)
		}
		require.Equal(t, prev, res.Error)
		require.Equal(t, total, res.Iterations)
		require.LessOrEqual(t, res.Iterations, 150*len(theme))
		require.Empty(t, cmp.Diff(res.Phases[len(res.Phases)-1].Palette, res.Palette))
	}
}

func TestPhaseOrder(t *testing.T) {
	n := len(theme)
	for _, m := range []int{3, 1, 5} {
		// Sum phases stall quickly so the budget covers several cycles
		res := Run(theme, cvd.Deutan, StallPerColor(1), IterationsPerColor(60), MaxPhasePerColor(m))
		kinds := make([]search.Kind, 0, len(res.Phases))
		for _, p := range res.Phases {
			kinds = append(kinds, p.Kind)
		}
		expected := []search.Kind{search.TabuSum, search.TabuMax, search.TabuSum, search.Shake, search.TabuSum}
		if len(kinds) >= len(expected) {
			require.Equal(t, expected, kinds[:len(expected)], "max phase per color: %d", m)
		} else {
			require.Equal(t, expected[:len(kinds)], kinds, "max phase per color: %d", m)
		}
		for i, p := range res.Phases {
			switch p.Kind {
			case search.Shake:
				require.Equal(t, 1, p.Iterations)
			case search.TabuMax:
				require.LessOrEqual(t, p.Iterations, m*n)
				if i < len(res.Phases)-1 {
					// only the budget can cut a Max phase short
					require.Equal(t, m*n, p.Iterations, "max phase per color: %d", m)
				}
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := Run(theme, cvd.Protan, Seed(5))
	b := Run(theme, cvd.Protan, Seed(5))
	require.Empty(t, cmp.Diff(a.Palette, b.Palette))
	require.Equal(t, a.Error, b.Error)
	c := Run(theme, cvd.Protan, RandomSource(rand.New(rand.NewPCG(5, 5^0x9e3779b97f4a7c15))))
	require.Empty(t, cmp.Diff(a.Palette, c.Palette))

	testCases := []struct {
		name string
		opts []Option
	}{
		{"jitter", []Option{ShakeJitter(search.Jitter{Hue: 0.1, Purity: 0.2, Intensity: 0.05})}},
		{"no jitter", []Option{ShakeJitter(search.Jitter{})}},
		{"short max phases", []Option{MaxPhasePerColor(1), StallPerColor(2)}},
		{"palette selection", []Option{TabuSelection(search.PaletteError)}},
	}
	for _, tc := range testCases {
		opts := append([]Option{Seed(9), IterationsPerColor(80)}, tc.opts...)
		a, b := Run(red_and_orange, cvd.Deutan, opts...), Run(red_and_orange, cvd.Deutan, opts...)
		require.Empty(t, cmp.Diff(a.Palette, b.Palette), tc.name)
		require.Equal(t, a.Error, b.Error, tc.name)
		require.Equal(t, len(a.Phases), len(b.Phases), tc.name)
		require.LessOrEqual(t, a.Error, a.InitialError, tc.name)
	}
}

func TestOptimizeMany(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	palettes := []Palette{theme, red_and_orange, {}, {{1, 2, 3}}}
	for range 4 {
		palettes = append(palettes, random_rgb_palette(r, 4))
	}
	ans, err := OptimizeMany(palettes, cvd.Deutan, Seed(7), IterationsPerColor(40))
	require.NoError(t, err)
	require.Len(t, ans, len(palettes))
	for i, p := range palettes {
		expected := Optimize(p, cvd.Deutan, Seed(7+uint64(i)), IterationsPerColor(40))
		if diff := cmp.Diff(expected, ans[i]); diff != "" {
			t.Fatalf("palette %d differs from a sequential run:\n%s", i, diff)
		}
	}
	ans, err = OptimizeMany(nil, cvd.Deutan)
	require.NoError(t, err)
	require.Empty(t, ans)
}

func TestLogging(t *testing.T) {
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Run(red_and_orange, cvd.Protan, WithLogger(l), IterationsPerColor(10))
	out := buf.String()
	require.Contains(t, out, "search phase")
	require.Contains(t, out, "kind=tabu-sum")
	require.Contains(t, out, "optimized palette")
	require.Contains(t, out, "deficiency=protan")

	buf.Reset()
	SetLogger(l)
	defer SetLogger(nil)
	Run(red_and_orange, cvd.Protan, IterationsPerColor(10))
	require.Contains(t, buf.String(), "optimized palette")
}
