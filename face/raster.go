package face

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"golang.org/x/image/vector"
)

const circleSegments = 64

// Rasterize draws the vector face. Bitmap overrides are not fetched; hands
// that have one are drawn with their vector style instead.
func (f *Face) Rasterize() (*image.NRGBA, error) {
	size := f.cfg.Size
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float32(f.center())

	for _, hand := range clock.Hands {
		state := f.hands[hand]
		if !state.visible {
			continue
		}

		style := f.cfg.Style(hand)
		src, err := paint(style.Color, style.StrokeOpacity)
		if err != nil {
			return nil, fmt.Errorf("%s hand: %w", hand, err)
		}

		z := vector.NewRasterizer(size, size)
		handQuad(z, c, float32(f.handLength(hand)), float32(style.StrokeWidth), state.angle)
		z.Draw(dst, dst.Bounds(), src, image.Point{})
	}

	center := f.cfg.Center

	// the stroke straddles the edge of the cap, so it is drawn first and
	// the fill goes over its inner half
	if center.StrokeWidth > 0 && center.StrokeOpacity > 0 {
		stroke, err := paint("#000", center.StrokeOpacity)
		if err != nil {
			return nil, err
		}

		outer := float32(center.Radius + center.StrokeWidth/2)
		inner := float32(center.Radius - center.StrokeWidth/2)

		z := vector.NewRasterizer(size, size)
		circle(z, c, outer, false)
		if inner > 0 {
			circle(z, c, inner, true)
		}
		z.Draw(dst, dst.Bounds(), stroke, image.Point{})
	}

	if center.Radius > 0 {
		fill, err := paint(center.Color, 1)
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}

		z := vector.NewRasterizer(size, size)
		circle(z, c, float32(center.Radius), false)
		z.Draw(dst, dst.Bounds(), fill, image.Point{})
	}

	return dst, nil
}

func (f *Face) WritePNG(w io.Writer) error {
	img, err := f.Rasterize()
	if err != nil {
		return err
	}

	return png.Encode(w, img)
}

func paint(hex string, opacity float64) (*image.Uniform, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", hex, err)
	}

	opacity = math.Max(0, math.Min(1, opacity))
	r, g, b := col.RGB255()

	return image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(opacity * 255))}), nil
}

// handQuad adds a bar from the centre towards angle, measured clockwise from
// 12 o'clock.
func handQuad(z *vector.Rasterizer, c, length, width float32, angle float64) {
	rad := angle * math.Pi / 180
	sin, cos := float32(math.Sin(rad)), float32(math.Cos(rad))

	// direction (sin, -cos), normal (cos, sin)
	tipX, tipY := c+length*sin, c-length*cos
	nx, ny := cos*width/2, sin*width/2

	z.MoveTo(c+nx, c+ny)
	z.LineTo(tipX+nx, tipY+ny)
	z.LineTo(tipX-nx, tipY-ny)
	z.LineTo(c-nx, c-ny)
	z.ClosePath()
}

// circle adds a polygonal circle. Reversed circles cut holes into the ones
// drawn the other way round.
func circle(z *vector.Rasterizer, c, r float32, reverse bool) {
	point := func(i int) (float32, float32) {
		theta := 2 * math.Pi * float64(i) / circleSegments
		if reverse {
			theta = -theta
		}
		return c + r*float32(math.Cos(theta)), c + r*float32(math.Sin(theta))
	}

	z.MoveTo(point(0))
	for i := 1; i < circleSegments; i++ {
		z.LineTo(point(i))
	}
	z.ClosePath()
}
