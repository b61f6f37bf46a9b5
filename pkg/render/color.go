package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
)

// alpha returns the opacity of c in [0,1]. nil is fully transparent.
func alpha(c color.Color) float64 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

// hex returns c as #rrggbb with alpha dropped. Fully transparent colours
// return black.
func hex(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}

// fade returns c with its alpha multiplied by opacity.
func fade(c color.Color, opacity float64) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*opacity + 0.5)
	return n
}

// ParseColor parses a #rgb or #rrggbb hex colour. An empty string or
// "none" yields nil, which renders transparent.
func ParseColor(s string) (color.Color, error) {
	if s == "" || s == "none" || s == "transparent" {
		return nil, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid colour %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Blend mixes a and b in Lab space; t=0 is a, t=1 is b.
func Blend(a, b color.Color, t float64) color.Color {
	var ca, cb colorful.Color
	okA, okB := a != nil, b != nil
	if okA {
		ca, okA = colorful.MakeColor(a)
	}
	if okB {
		cb, okB = colorful.MakeColor(b)
	}
	switch {
	case !okA && !okB:
		return color.Transparent
	case !okA:
		return b
	case !okB:
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}
