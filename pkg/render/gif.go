package render

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
)

// GIFRecorder collects canvas frames into an animated GIF.
type GIFRecorder struct {
	scale  float64
	delay  int
	frames []*image.Paletted
}

// NewGIFRecorder returns a recorder that rasterizes at scale and shows each
// frame for frameTime (rounded to GIF's 10ms resolution, at least 20ms).
func NewGIFRecorder(scale float64, frameTime time.Duration) *GIFRecorder {
	delay := int(frameTime / (10 * time.Millisecond))
	return &GIFRecorder{scale: scale, delay: max(delay, 2)}
}

// Capture appends the current state of c.
func (r *GIFRecorder) Capture(c *Canvas) {
	r.Add(Rasterize(c, r.scale))
}

// Add appends an already rasterized frame.
func (r *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	r.frames = append(r.frames, p)
}

// Len returns the number of frames recorded.
func (r *GIFRecorder) Len() int { return len(r.frames) }

// Encode writes the animation, looping forever.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return errors.New(errors.ErrCodeRenderFailed, "no frames recorded")
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, f := range r.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, r.delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "encode gif")
	}
	return nil
}
