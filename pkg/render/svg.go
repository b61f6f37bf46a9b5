package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"image"
	"image/png"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
)

// SVGOption configures SVG output.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	images bool
	title  string
}

// WithoutImages replaces snapshot, icon and content bitmaps with outlined
// placeholders. The output is much smaller and deterministic.
func WithoutImages() SVGOption { return func(r *svgRenderer) { r.images = false } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws the canvas content and its layers as a standalone SVG
// document.
func RenderSVG(c *Canvas, opts ...SVGOption) []byte {
	r := &svgRenderer{images: true}
	for _, opt := range opts {
		opt(r)
	}

	w, h := c.Size().W, c.Size().H
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}

	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, hex(c.Background()))
	if content := c.Content(); content != nil {
		r.image(&buf, "content", content, w, h)
	}

	fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", c.ContentTransform().SVG())
	for _, l := range c.Layers() {
		if !l.Visible() {
			continue
		}
		r.layer(&buf, l)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) layer(buf *bytes.Buffer, l *Layer) {
	spec := l.Spec()
	fw, fh := spec.Frame.Size.W, spec.Frame.Size.H

	fmt.Fprintf(buf, `    <g class="%s" transform="%s" opacity="%.3f">`+"\n", l.Kind(), l.Matrix().SVG(), l.Opacity())
	switch l.Kind() {
	case effect.KindMask:
		fmt.Fprintf(buf, `      <rect width="%.1f" height="%.1f" fill="%s" fill-opacity="%.3f"/>`+"\n",
			fw, fh, hex(spec.Background), alpha(spec.Background))
	case effect.KindSnapshot, effect.KindIcon:
		buf.WriteString("  ")
		r.image(buf, l.Kind().String(), spec.Image, fw, fh)
	default:
		fmt.Fprintf(buf, `      <path d="%s" fill="%s" fill-opacity="%.3f"/>`+"\n",
			l.Path().SVG(), hex(spec.Fill), alpha(spec.Fill))
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) image(buf *bytes.Buffer, class string, img image.Image, w, h float64) {
	if !r.images {
		fmt.Fprintf(buf, `    <rect class="%s" width="%.1f" height="%.1f" fill="none" stroke="#999999" stroke-dasharray="4 2"/>`+"\n",
			class, w, h)
		return
	}
	var data bytes.Buffer
	if err := encodePNG(&data, img); err != nil {
		return
	}
	fmt.Fprintf(buf, `    <image class="%s" width="%.1f" height="%.1f" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		class, w, h, base64.StdEncoding.EncodeToString(data.Bytes()))
}

func encodePNG(buf *bytes.Buffer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(buf, img)
}
