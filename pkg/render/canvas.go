package render

import (
	"image"
	"image/color"
	"slices"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// Canvas is an in-memory container: a fixed-size row with captured content
// and a stack of layers. It implements effect.Container.
type Canvas struct {
	size        geom.Size
	backgrounds []color.Color
	content     image.Image
	layers      []*Layer
	transform   geom.Affine
	released    bool
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithBackgrounds sets the background chain, innermost first.
func WithBackgrounds(chain ...color.Color) CanvasOption {
	return func(c *Canvas) { c.backgrounds = chain }
}

// WithContent sets the row content. It is drawn beneath the layers and
// returned by Capture.
func WithContent(img image.Image) CanvasOption {
	return func(c *Canvas) { c.content = img }
}

// NewCanvas returns an empty canvas of the given size.
func NewCanvas(size geom.Size, opts ...CanvasOption) *Canvas {
	c := &Canvas{size: size, transform: geom.Identity}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ effect.Container = (*Canvas)(nil)

func (c *Canvas) Size() geom.Size { return c.size }

func (c *Canvas) Backgrounds() []color.Color { return c.backgrounds }

// Capture returns the row content, or a transparent image of the canvas
// size when there is none.
func (c *Canvas) Capture() image.Image {
	if c.content != nil {
		return c.content
	}
	return image.NewRGBA(image.Rect(0, 0, int(c.size.W), int(c.size.H)))
}

// Content returns the row content, which may be nil.
func (c *Canvas) Content() image.Image { return c.content }

// SetContent replaces the row content.
func (c *Canvas) SetContent(img image.Image) { c.content = img }

func (c *Canvas) AddSurface(spec effect.SurfaceSpec) effect.Surface {
	l := &Layer{
		canvas:    c,
		spec:      spec,
		position:  spec.Frame.Center(),
		opacity:   1,
		transform: geom.Identity,
	}
	c.layers = append(c.layers, l)
	return l
}

func (c *Canvas) SetContentTransform(m geom.Affine) { c.transform = m }

// ContentTransform returns the transform applied on top of every layer.
func (c *Canvas) ContentTransform() geom.Affine { return c.transform }

func (c *Canvas) Alive() bool { return !c.released }

// Release detaches the canvas; effects on it stop updating.
func (c *Canvas) Release() { c.released = true }

// Layers returns the attached layers, bottom first.
func (c *Canvas) Layers() []*Layer { return slices.Clone(c.layers) }

// Background returns the colour the mask layer would resolve to.
func (c *Canvas) Background() color.Color {
	return effect.ResolveBackground(c.backgrounds)
}

func (c *Canvas) detach(l *Layer) {
	if i := slices.Index(c.layers, l); i >= 0 {
		c.layers = slices.Delete(c.layers, i, i+1)
	}
}

// Layer is one surface on a Canvas. It implements effect.Surface.
type Layer struct {
	canvas    *Canvas
	spec      effect.SurfaceSpec
	path      *geom.Path
	position  geom.Point
	opacity   float64
	transform geom.Affine
	detached  bool
}

var _ effect.Surface = (*Layer)(nil)

func (l *Layer) SetPath(p *geom.Path)       { l.path = p }
func (l *Layer) SetPosition(p geom.Point)   { l.position = p }
func (l *Layer) SetOpacity(o float64)       { l.opacity = geom.Clamp(o, 0, 1) }
func (l *Layer) SetTransform(m geom.Affine) { l.transform = m }

// Remove detaches the layer. It is safe to call more than once.
func (l *Layer) Remove() {
	if l.detached {
		return
	}
	l.detached = true
	l.canvas.detach(l)
}

func (l *Layer) Kind() effect.SurfaceKind { return l.spec.Kind }
func (l *Layer) Spec() effect.SurfaceSpec { return l.spec }
func (l *Layer) Path() *geom.Path         { return l.path }
func (l *Layer) Position() geom.Point     { return l.position }
func (l *Layer) Opacity() float64         { return l.opacity }
func (l *Layer) Transform() geom.Affine   { return l.transform }

// Matrix maps layer-local coordinates to canvas coordinates, before the
// canvas content transform. The layer transform applies about the frame
// centre, which sits at Position.
func (l *Layer) Matrix() geom.Affine {
	w, h := l.spec.Frame.Size.W, l.spec.Frame.Size.H
	return geom.Translate(l.position.X, l.position.Y).
		Mul(l.transform).
		Mul(geom.Translate(-w/2, -h/2))
}

// DeviceMatrix is Matrix with the canvas content transform applied.
func (l *Layer) DeviceMatrix() geom.Affine {
	return l.canvas.transform.Mul(l.Matrix())
}

// Visible reports whether drawing the layer would change any pixel.
func (l *Layer) Visible() bool {
	if l.opacity <= 0 || l.DeviceMatrix().Singular() {
		return false
	}
	switch l.spec.Kind {
	case effect.KindMask:
		return true
	case effect.KindSnapshot, effect.KindIcon:
		return l.spec.Image != nil && !l.spec.Frame.Size.IsEmpty()
	default:
		return l.path.Len() > 0 && alpha(l.spec.Fill) > 0
	}
}

// FindLayer returns the attached layer of the given kind, or nil.
func (c *Canvas) FindLayer(k effect.SurfaceKind) *Layer {
	for _, l := range c.layers {
		if l.spec.Kind == k {
			return l
		}
	}
	return nil
}
