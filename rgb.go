package chromafix

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/chromafix/chromafix/perceptual"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var _ = fmt.Print

// RGB is a display encoded (Gamma RGB) palette color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) AsSharp() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("RGB{%02X %02X %02X}", c.R, c.G, c.B)
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 65535 // (255 << 8 | 255)
	return
}

// Color returns c as a GammaRGB perceptual.Color.
func (c RGB) Color() perceptual.Color { return perceptual.Gamma8(c.R, c.G, c.B) }

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColor rounds c, in any space, to the nearest in gamut RGB.
func FromColor(c perceptual.Color) RGB {
	r, g, b := c.Gamma8()
	return RGB{r, g, b}
}

func rgbModel(c color.Color) color.Color {
	if _, ok := c.(RGB); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	switch a {
	case 0xffff:
		return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	case 0:
		return RGB{0, 0, 0}
	default:
		// Color.RGBA is alpha premultiplied so r <= a && g <= a && b <= a
		r = (r * 0xffff) / a
		g = (g * 0xffff) / a
		b = (b * 0xffff) / a
		return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}

// RGBModel converts any color to an opaque RGB, discarding alpha.
var RGBModel color.Model = color.ModelFunc(rgbModel)

// Palette is an ordered list of colors. Optimization preserves both the
// length and the order.
type Palette []RGB

func (p Palette) Clone() Palette { return slices.Clone(p) }

// Colors returns the palette as LinearRGB colors.
func (p Palette) Colors() []perceptual.Color {
	ans := make([]perceptual.Color, len(p))
	for i, c := range p {
		ans[i] = c.Color().To(perceptual.LinearRGB)
	}
	return ans
}

func paletteFromColors(colors []perceptual.Color) Palette {
	ans := make(Palette, len(colors))
	for i, c := range colors {
		ans[i] = FromColor(c)
	}
	return ans
}

func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.AsSharp()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// ErrInvalidColor is returned when a color specification cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

func is_hex(s string) bool {
	for _, ch := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return false
		}
	}
	return true
}

// ParseColor parses a color given as #rgb, #rrggbb (the # is optional) or
// as a CSS color name.
func ParseColor(spec string) (RGB, error) {
	s := strings.TrimSpace(spec)
	hex := strings.TrimPrefix(s, "#")
	if (len(hex) == 3 || len(hex) == 6) && is_hex(hex) {
		c, err := colorful.Hex("#" + strings.ToLower(hex))
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, spec, err)
		}
		r, g, b := c.RGB255()
		return RGB{r, g, b}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{c.R, c.G, c.B}, nil
	}
	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
}

// ParsePalette parses every entry of specs with ParseColor.
func ParsePalette(specs []string) (Palette, error) {
	ans := make(Palette, 0, len(specs))
	for i, s := range specs {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("color number %d: %w", i+1, err)
		}
		ans = append(ans, c)
	}
	return ans, nil
}
