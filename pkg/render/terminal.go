package render

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// ToTerminal renders img as rows of upper half blocks, two pixels per
// character cell, cols characters wide.
func ToTerminal(img image.Image, cols int) string {
	b := img.Bounds()
	if cols <= 0 || b.Empty() {
		return ""
	}
	ph := int(math.Round(float64(cols) * float64(b.Dy()) / float64(b.Dx())))
	ph = max(ph, 2)
	if ph%2 == 1 {
		ph++
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols, ph))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	var sb strings.Builder
	for y := 0; y < ph; y += 2 {
		run, runLen := "", 0
		var style lipgloss.Style
		flush := func() {
			if runLen > 0 {
				sb.WriteString(style.Render(strings.Repeat("▀", runLen)))
			}
		}
		for x := 0; x < cols; x++ {
			top, bottom := hex(dst.RGBAAt(x, y)), hex(dst.RGBAAt(x, y+1))
			key := top + bottom
			if key == run {
				runLen++
				continue
			}
			flush()
			run, runLen = key, 1
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
		}
		flush()
		sb.WriteByte('\n')
	}
	return sb.String()
}
