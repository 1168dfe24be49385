package chromafix

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/chromafix/chromafix/perceptual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestParseColor(t *testing.T) {
	testCases := []struct {
		spec     string
		expected RGB
	}{
		{"#f00", RGB{255, 0, 0}},
		{"#FF8000", RGB{255, 128, 0}},
		{"ff8000", RGB{255, 128, 0}},
		{"  0a0B0c ", RGB{10, 11, 12}},
		{"abc", RGB{0xaa, 0xbb, 0xcc}},
		{"cornflowerblue", RGB{100, 149, 237}},
		{" Red ", RGB{255, 0, 0}},
	}
	for _, tc := range testCases {
		c, err := ParseColor(tc.spec)
		if assert.NoError(t, err, tc.spec) {
			assert.Equal(t, tc.expected, c, tc.spec)
		}
	}
	for _, bad := range []string{"", "#12", "#ggg", "not-a-color", "#1234567"} {
		_, err := ParseColor(bad)
		require.ErrorIs(t, err, ErrInvalidColor, "%q", bad)
	}
}

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#000", "white", "#123456"})
	require.NoError(t, err)
	require.Equal(t, Palette{{0, 0, 0}, {255, 255, 255}, {0x12, 0x34, 0x56}}, p)
	require.Equal(t, "[#000000 #FFFFFF #123456]", p.String())
	_, err = ParsePalette([]string{"#000", "nope"})
	require.ErrorIs(t, err, ErrInvalidColor)
	require.Contains(t, err.Error(), "color number 2")
}

func TestRGB(t *testing.T) {
	c := RGB{0x12, 0xab, 0xff}
	require.Equal(t, "#12ABFF", c.AsSharp())
	r, g, b, a := c.RGBA()
	require.Equal(t, [4]uint32{0x1212, 0xabab, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
	require.Equal(t, c, RGBModel.Convert(c))
	require.Equal(t, RGB{0x12, 0xab, 0xff}, RGBModel.Convert(color.NRGBA{0x12, 0xab, 0xff, 0xff}))
	require.Equal(t, RGB{}, RGBModel.Convert(color.NRGBA{0x12, 0xab, 0xff, 0}))
	require.Equal(t, RGB{0xff, 0, 0}, RGBModel.Convert(color.RGBA{0x80, 0, 0, 0x80}))
	for _, x := range []RGB{{0, 0, 0}, {255, 255, 255}, {30, 90, 200}, {200, 80, 0}} {
		require.Equal(t, x, FromColor(x.Color()))
		require.Equal(t, x, FromColor(x.Color().To(perceptual.Normalized)))
	}
	p := Palette{{1, 2, 3}, {4, 5, 6}}
	q := p.Clone()
	q[0].R = 9
	require.Equal(t, uint8(1), p[0].R)
	for _, l := range p.Colors() {
		require.Equal(t, perceptual.LinearRGB, l.Space())
	}
}

func TestDrift(t *testing.T) {
	res := &Result{Input: Palette{{10, 20, 30}, {255, 0, 0}}, Palette: Palette{{10, 20, 30}, {200, 80, 0}}}
	drift := res.Drift()
	require.Len(t, drift, 2)
	require.InDelta(t, 0, drift[0], 1e-9)
	require.Greater(t, drift[1], 1.)
}
