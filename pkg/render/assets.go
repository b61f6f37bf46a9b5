package render

import (
	stderrors "errors"
	"image"
	"image/color"
	"io/fs"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// DefaultIconSize is the edge length of built-in icons, in points.
const DefaultIconSize = 20

// Built-in icon names.
const (
	IconCheck = "check"
	IconCross = "cross"
)

// ActionGreen is the demo action colour.
var ActionGreen = color.NRGBA{R: 0x4d, G: 0x7f, B: 0x64, A: 0xff}

// BuiltinIcon draws a white check mark or cross on a transparent square.
func BuiltinIcon(name string, size int) (image.Image, error) {
	if size <= 0 {
		size = DefaultIconSize
	}
	s := float64(size)

	dc := gg.NewContext(size, size)
	dc.SetColor(color.White)
	dc.SetLineWidth(math.Max(1.5, s/8))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	switch name {
	case IconCheck:
		dc.MoveTo(0.2*s, 0.52*s)
		dc.LineTo(0.42*s, 0.72*s)
		dc.LineTo(0.8*s, 0.3*s)
	case IconCross:
		dc.MoveTo(0.27*s, 0.27*s)
		dc.LineTo(0.73*s, 0.73*s)
		dc.MoveTo(0.73*s, 0.27*s)
		dc.LineTo(0.27*s, 0.73*s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown icon %q (want %s or %s)", name, IconCheck, IconCross)
	}
	dc.Stroke()
	return dc.Image(), nil
}

// LoadIcon returns a built-in icon by name, or decodes the PNG at path.
func LoadIcon(nameOrPath string, size int) (image.Image, error) {
	if nameOrPath == IconCheck || nameOrPath == IconCross {
		return BuiltinIcon(nameOrPath, size)
	}
	if err := errors.ValidatePath(nameOrPath); err != nil {
		return nil, err
	}
	img, err := gg.LoadPNG(nameOrPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "icon %s", nameOrPath)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode icon %s", nameOrPath)
	}
	return img, nil
}

// DemoItem is the content of one demo inbox row.
type DemoItem struct {
	Name   string
	Title  string
	Body   string
	Time   string
	Avatar color.Color
}

// DemoItems is the demo inbox.
var DemoItems = []DemoItem{
	{"Trailhead", "Your saved search to Lisbon", "Three new stays match your filters...", "20 FEB", rgb(0x34e0a1)},
	{"Sketchbook", "Comments are here!", "Mention a teammate to pull them in...", "22 FEB", rgb(0xf24e1e)},
	{"Launch Daily", "Must-have terminal tools", "There's a plugin for everything...", "13:46", rgb(0xda552f)},
	{"Studio Notes", "First interview with a designer", "So I asked around for questions...", "15:12", rgb(0xff3666)},
	{"Pinboard", "18 new ideas waiting for you", "Transfer window roundup by Signal...", "18:30", rgb(0xe60023)},
}

func rgb(v uint32) color.NRGBA {
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// DemoItemAt returns the demo item for row i, cycling through DemoItems.
func DemoItemAt(i int) DemoItem {
	if i < 0 {
		i = -i
	}
	return DemoItems[i%len(DemoItems)]
}

// DrawDemoRow renders an inbox row: a card with an avatar disc, sender,
// subject, preview and time.
func DrawDemoRow(size geom.Size, item DemoItem) image.Image {
	w, h := int(math.Ceil(size.W)), int(math.Ceil(size.H))
	dc := gg.NewContext(w, h)
	W, H := float64(w), float64(h)

	dc.SetColor(color.NRGBA{A: 0x14})
	dc.DrawRoundedRectangle(9, 7, W-18, H-12, 10)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(8, 5, W-16, H-12, 10)
	dc.Fill()

	r := math.Min(18, (H-24)/2)
	cx, cy := 20+r, H/2
	dc.SetColor(item.Avatar)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	textX := cx + r + 12
	muted := Blend(color.Black, color.White, 0.55)

	dc.SetColor(color.Black)
	dc.DrawString(item.Name, textX, cy-14)
	dc.DrawString(item.Title, textX, cy+2)
	dc.SetColor(muted)
	dc.DrawString(item.Body, textX, cy+18)
	dc.DrawStringAnchored(item.Time, W-20, cy-18, 1, 0.5)

	return dc.Image()
}

// DemoCanvas returns a canvas showing demo row i on a white list.
func DemoCanvas(size geom.Size, i int) *Canvas {
	return NewCanvas(size,
		WithBackgrounds(nil, color.Transparent, color.White),
		WithContent(DrawDemoRow(size, DemoItemAt(i))),
	)
}
