package cvd

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

func unpremultiply8(r, a uint8) uint8 {
	return uint8((uint16(r) * 0xff) / uint16(a))
}

// SimulateImage returns a copy of img as it appears to a viewer with the
// specified deficiency. Rows are processed in parallel, each worker with
// its own Projector. Alpha is preserved.
func SimulateImage(img image.Image, d Deficiency) (ans *image.NRGBA, err error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	ans = image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return ans, nil
	}
	var f func(start, limit int)
	switch src := img.(type) {
	case *image.NRGBA:
		f = func(start, limit int) {
			p := NewProjector(d)
			for y := start; y < limit; y++ {
				row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := ans.Pix[ans.Stride*y:]
				_ = row[4*(width-1)+3]
				for range width {
					drow[0], drow[1], drow[2] = p.Simulate8(row[0], row[1], row[2])
					drow[3] = row[3]
					row, drow = row[4:], drow[4:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			p := NewProjector(d)
			for y := start; y < limit; y++ {
				row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := ans.Pix[ans.Stride*y:]
				_ = row[4*(width-1)+3]
				for range width {
					if a := row[3]; a != 0 {
						r, g, bl := unpremultiply8(row[0], a), unpremultiply8(row[1], a), unpremultiply8(row[2], a)
						drow[0], drow[1], drow[2] = p.Simulate8(r, g, bl)
						drow[3] = a
					}
					row, drow = row[4:], drow[4:]
				}
			}
		}
	default:
		f = func(start, limit int) {
			p := NewProjector(d)
			for y := start; y < limit; y++ {
				drow := ans.Pix[ans.Stride*y:]
				for x := range width {
					c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
					s := drow[4*x : 4*x+4 : 4*x+4]
					s[0], s[1], s[2] = p.Simulate8(c.R, c.G, c.B)
					s[3] = c.A
				}
			}
		}
	}
	if err = parallel.Run_in_parallel_over_range(0, f, 0, height); err != nil {
		return nil, fmt.Errorf("failed to simulate %s vision: %w", d, err)
	}
	return ans, nil
}
