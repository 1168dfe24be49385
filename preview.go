package chromafix

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/chromafix/chromafix/cvd"
	"github.com/kettek/apng"
)

var _ = fmt.Print

func fill(img *image.NRGBA, r image.Rectangle, c RGB) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, 0xff
		}
	}
}

// Swatch renders p as a strip of square cells of cell pixels each.
func Swatch(p Palette, cell int) *image.NRGBA {
	cell = max(1, cell)
	img := image.NewNRGBA(image.Rect(0, 0, cell*len(p), cell))
	for i, c := range p {
		fill(img, image.Rect(i*cell, 0, (i+1)*cell, cell), c)
	}
	return img
}

// Simulate returns p as seen by a viewer with deficiency d.
func Simulate(p Palette, d cvd.Deficiency) Palette {
	proj := cvd.NewProjector(d)
	ans := make(Palette, len(p))
	for i, c := range p {
		ans[i].R, ans[i].G, ans[i].B = proj.Simulate8(c.R, c.G, c.B)
	}
	return ans
}

// Comparison renders p in a top row and p as seen with deficiency d in a
// bottom row.
func Comparison(p Palette, d cvd.Deficiency, cell int) *image.NRGBA {
	cell = max(1, cell)
	img := image.NewNRGBA(image.Rect(0, 0, cell*len(p), 2*cell))
	for i, c := range Simulate(p, d) {
		fill(img, image.Rect(i*cell, 0, (i+1)*cell, cell), p[i])
		fill(img, image.Rect(i*cell, cell, (i+1)*cell, 2*cell), c)
	}
	return img
}

// as_fraction returns the best approximation of d in seconds as a ratio of
// two uint16, found with continued fractions.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()
	num, den = 0, 1
	best := val
	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0
	f := val
	for range 100 {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		if e := math.Abs(val - float64(h[2])/float64(k[2])); e < best {
			best, num, den = e, uint16(h[2]), uint16(k[2])
		}
		if f == float64(a) {
			break
		}
		f = 1 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return
}

// Frames returns one Comparison image for the input palette and one for
// every phase that improved the global best.
func (r *Result) Frames(cell int) []image.Image {
	ans := []image.Image{Comparison(r.Input, r.Deficiency, cell)}
	for _, p := range r.Phases {
		if p.Improved {
			ans = append(ans, Comparison(p.Palette, r.Deficiency, cell))
		}
	}
	return ans
}

// EncodeAPNG writes an animated PNG showing the progress of the
// optimization, each frame displayed for delay and the last frame
// repeated at the end so the result stays on screen longer. When nothing
// improved a plain PNG of the input is written.
func (r *Result) EncodeAPNG(w io.Writer, cell int, delay time.Duration) error {
	frames := r.Frames(cell)
	if len(frames) < 2 {
		return png.Encode(w, frames[0])
	}
	frames = append(frames, frames[len(frames)-1])
	num, den := as_fraction(delay)
	var a apng.APNG
	for _, img := range frames {
		a.Frames = append(a.Frames, apng.Frame{
			Image: img, DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE,
			DelayNumerator: num, DelayDenominator: den,
		})
	}
	if err := apng.Encode(w, a); err != nil {
		return fmt.Errorf("failed to encode the optimization of %s as APNG: %w", r.Input, err)
	}
	return nil
}
