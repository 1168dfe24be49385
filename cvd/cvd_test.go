package cvd

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/chromafix/chromafix/perceptual"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestParseDeficiency(t *testing.T) {
	for name, expected := range map[string]Deficiency{
		"none": None, "Protan": Protan, " protanopia ": Protan, "RED": Protan,
		"deutan": Deutan, "Deuteranopia": Deutan, "green": Deutan,
	} {
		d, err := ParseDeficiency(name)
		require.NoError(t, err)
		require.Equal(t, expected, d, name)
	}
	_, err := ParseDeficiency("tritan")
	require.ErrorIs(t, err, ErrUnknownDeficiency)
	require.Equal(t, "protan", Protan.String())
	require.Equal(t, "Deficiency(7)", Deficiency(7).String())
}

func TestProjectorIdentity(t *testing.T) {
	p := NewProjector(None)
	for _, c := range []perceptual.Color{
		perceptual.Linear(1, 0, 0), perceptual.Linear(0.2, 0.7, 0.1), perceptual.Gamma(200, 80, 0),
	} {
		expected := c.To(perceptual.Absolute)
		require.True(t, expected.Equal(p.Project(c)), "%s", c)
	}
	r, g, b := p.Simulate8(1, 2, 3)
	require.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})
}

func TestProjectorKnownValues(t *testing.T) {
	red := perceptual.Linear(1, 0, 0)
	testCases := []struct {
		d        Deficiency
		expected [3]float64
	}{
		{Protan, [3]float64{0.11238, 0.11238, 0.00401}},
		// the blue row goes negative for red and is clamped
		{Deutan, [3]float64{0.29275, 0.29275, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.d.String(), func(t *testing.T) {
			s := NewProjector(tc.d).Simulate(red)
			require.Equal(t, perceptual.LinearRGB, s.Space())
			for i := range 3 {
				require.InDelta(t, tc.expected[i], s.At(i), 1e-12)
			}
		})
	}
}

func TestDichromatsLoseRedGreen(t *testing.T) {
	for _, d := range []Deficiency{Protan, Deutan} {
		p := NewProjector(d)
		for r := 0; r < 256; r += 51 {
			for g := 0; g < 256; g += 51 {
				for b := 0; b < 256; b += 51 {
					s := p.Simulate(perceptual.Gamma8(uint8(r), uint8(g), uint8(b)))
					require.Equal(t, s.At(0), s.At(1), "%s (%d,%d,%d)", d, r, g, b)
					for i := range 3 {
						require.GreaterOrEqual(t, s.At(i), 0.)
						require.LessOrEqual(t, s.At(i), 1.)
					}
					// hence every projected chromatic color is yellow or blue
					a := p.Project(perceptual.Gamma8(uint8(r), uint8(g), uint8(b)))
					if !a.IsNeutral() {
						h := a.Hue()
						require.True(t, abs(h-1./6) < 1e-9 || abs(h-2./3) < 1e-9, "%s (%d,%d,%d) -> %s", d, r, g, b, a)
					}
				}
			}
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestProjectorIsStateless(t *testing.T) {
	p := NewProjector(Protan)
	x, y := perceptual.Linear(0.9, 0.1, 0.3), perceptual.Linear(0.1, 0.9, 0.3)
	px := p.Project(x)
	py := p.Project(y)
	// earlier results are not overwritten by later calls
	require.True(t, px.Equal(NewProjector(Protan).Project(x)))
	require.True(t, py.Equal(NewProjector(Protan).Project(y)))
	require.False(t, px.Equal(py))
	require.True(t, p.Project(x).Equal(px))
}

func populate(img interface{ Set(x, y int, c color.Color) }, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 37), G: uint8(y * 53), B: uint8(x*y + 11), A: 0xff})
		}
	}
}

func expected_simulation(img image.Image, d Deficiency) []uint8 {
	p := NewProjector(d)
	b := img.Bounds()
	ans := make([]uint8, 0, 4*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r, g, bl := p.Simulate8(c.R, c.G, c.B)
			ans = append(ans, r, g, bl, c.A)
		}
	}
	return ans
}

func TestSimulateImage(t *testing.T) {
	r := image.Rect(3, 5, 40, 33)
	nrgba := image.NewNRGBA(r)
	populate(nrgba, r)
	rgba := image.NewRGBA(r)
	populate(rgba, r)
	gray := image.NewGray(r)
	populate(gray, r)
	sub := nrgba.SubImage(image.Rect(10, 10, 20, 30))
	for _, d := range []Deficiency{None, Protan, Deutan} {
		for _, img := range []image.Image{nrgba, rgba, gray, sub} {
			t.Run(fmt.Sprintf("%s/%T", d, img), func(t *testing.T) {
				ans, err := SimulateImage(img, d)
				require.NoError(t, err)
				require.Equal(t, img.Bounds().Dx(), ans.Bounds().Dx())
				require.Equal(t, img.Bounds().Dy(), ans.Bounds().Dy())
				if diff := cmp.Diff(expected_simulation(img, d), ans.Pix); diff != "" {
					t.Fatalf("unexpected pixels (-want +got):\n%s", diff)
				}
			})
		}
	}
	empty, err := SimulateImage(image.NewNRGBA(image.Rect(0, 0, 0, 4)), Protan)
	require.NoError(t, err)
	require.Empty(t, empty.Pix)
}
