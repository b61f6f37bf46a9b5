package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// Rasterize draws the canvas into an image scale times its size. Layers
// whose transform has rotation or shear are skipped; the effect only ever
// translates, scales and mirrors.
func Rasterize(c *Canvas, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	size := c.Size()
	dc := gg.NewContext(int(math.Ceil(size.W*scale)), int(math.Ceil(size.H*scale)))
	dc.Scale(scale, scale)

	dc.SetColor(c.Background())
	dc.DrawRectangle(0, 0, size.W, size.H)
	dc.Fill()

	if content := c.Content(); content != nil {
		drawImage(dc, content, size, 1)
	}

	for _, l := range c.Layers() {
		if !l.Visible() {
			continue
		}
		m := l.DeviceMatrix()
		if !m.AxisAligned() {
			continue
		}
		dc.Push()
		dc.Translate(m.E, m.F)
		dc.Scale(m.A, m.D)
		drawLayer(dc, l)
		dc.Pop()
	}
	return dc.Image()
}

// RenderPNG rasterizes the canvas and encodes it as PNG.
func RenderPNG(c *Canvas, scale float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodePNG(&buf, Rasterize(c, scale)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawLayer(dc *gg.Context, l *Layer) {
	spec := l.Spec()
	switch l.Kind() {
	case effect.KindMask:
		dc.SetColor(fade(spec.Background, l.Opacity()))
		dc.DrawRectangle(0, 0, spec.Frame.Size.W, spec.Frame.Size.H)
		dc.Fill()
	case effect.KindSnapshot, effect.KindIcon:
		drawImage(dc, spec.Image, spec.Frame.Size, l.Opacity())
	default:
		tracePath(dc, l.Path())
		dc.SetColor(fade(spec.Fill, l.Opacity()))
		dc.Fill()
	}
}

// drawImage stretches img over a rectangle of the given size at the
// current origin.
func drawImage(dc *gg.Context, img image.Image, size geom.Size, opacity float64) {
	b := img.Bounds()
	if b.Empty() || size.IsEmpty() {
		return
	}
	dc.Push()
	dc.Scale(size.W/float64(b.Dx()), size.H/float64(b.Dy()))
	dc.DrawImage(fadeImage(img, opacity), 0, 0)
	dc.Pop()
}

func tracePath(dc *gg.Context, p *geom.Path) {
	for _, e := range p.Elements() {
		switch e.Op {
		case geom.OpMove:
			dc.MoveTo(e.Pts[0].X, e.Pts[0].Y)
		case geom.OpLine:
			dc.LineTo(e.Pts[0].X, e.Pts[0].Y)
		case geom.OpCubic:
			dc.CubicTo(e.Pts[0].X, e.Pts[0].Y, e.Pts[1].X, e.Pts[1].Y, e.Pts[2].X, e.Pts[2].Y)
		case geom.OpClose:
			dc.ClosePath()
		}
	}
}

// fadeImage returns img with its alpha multiplied by opacity, with its
// origin moved to (0, 0).
func fadeImage(img image.Image, opacity float64) image.Image {
	b := img.Bounds()
	if opacity >= 1 && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(geom.Clamp(opacity, 0, 1)*255 + 0.5)})
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
