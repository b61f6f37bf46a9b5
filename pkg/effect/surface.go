package effect

import (
	"image"
	"image/color"
	"strings"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// Direction is the way a row is swiped. It is fixed for the lifetime of an
// effect.
type Direction int

const (
	ToRight Direction = iota
	ToLeft
)

// String returns "right" or "left".
func (d Direction) String() string {
	if d == ToLeft {
		return "left"
	}
	return "right"
}

// Sign is +1 for ToRight and -1 for ToLeft.
func (d Direction) Sign() float64 {
	if d == ToLeft {
		return -1
	}
	return 1
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts "right"/"left" and the arrow shorthands "r"/"l".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r", "toright":
		return ToRight, nil
	case "left", "l", "toleft":
		return ToLeft, nil
	}
	return ToRight, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (want right or left)", s)
}

// Config styles one direction of an effect. A nil Color renders the shapes
// fully transparent; a nil Icon leaves the icon surface empty.
type Config struct {
	Color color.Color
	Icon  image.Image
}

// SurfaceKind identifies the role of a surface in the effect stack.
type SurfaceKind int

// Surfaces are created in this order, bottom to top.
const (
	KindMask SurfaceKind = iota
	KindSnapshot
	KindCircle
	KindEdge
	KindJoint
	KindIcon
)

var kindNames = [...]string{"mask", "snapshot", "circle", "edge", "joint", "icon"}

func (k SurfaceKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// SurfaceSpec carries the static properties of a surface.
type SurfaceSpec struct {
	Kind SurfaceKind

	// Frame is the surface rectangle in container coordinates. Position
	// updates move its centre.
	Frame geom.Rect

	// Background fills the whole frame (mask).
	Background color.Color

	// Fill paints the surface's path (circle, edge, joint).
	Fill color.Color

	// Image is drawn stretched over the frame (snapshot, icon).
	Image image.Image
}

// Surface is one drawable layer owned by an effect. Setters apply
// immediately, with no implicit interpolation.
type Surface interface {
	// SetPath replaces the filled path, in the surface's local coordinates.
	SetPath(p *geom.Path)

	// SetPosition moves the centre of the surface's frame.
	SetPosition(p geom.Point)

	// SetOpacity sets the surface opacity in [0,1].
	SetOpacity(o float64)

	// SetTransform sets the surface transform, applied about its centre.
	SetTransform(m geom.Affine)

	// Remove detaches the surface from its container.
	Remove()
}

// Container is the host of an effect: a list row, or any view with content
// that can be captured.
type Container interface {
	// Size returns the container bounds.
	Size() geom.Size

	// Backgrounds returns the background colours of the container and its
	// ancestors, innermost first. Entries may be nil.
	Backgrounds() []color.Color

	// Capture returns a snapshot of the container's current content.
	Capture() image.Image

	// AddSurface stacks a new surface on top of the existing ones.
	AddSurface(spec SurfaceSpec) Surface

	// SetContentTransform sets a transform, in container coordinates,
	// applied on top of every surface.
	SetContentTransform(m geom.Affine)

	// Alive reports whether the container is still attached. Effects on a
	// released container stop updating.
	Alive() bool
}

// ResolveBackground returns the first colour of chain that is not fully
// transparent, or white when there is none.
func ResolveBackground(chain []color.Color) color.Color {
	for _, c := range chain {
		if c == nil {
			continue
		}
		if _, _, _, a := c.RGBA(); a != 0 {
			return c
		}
	}
	return color.White
}

// nopSurface stands in for surfaces of an effect created without a
// container.
type nopSurface struct{}

func (nopSurface) SetPath(*geom.Path)       {}
func (nopSurface) SetPosition(geom.Point)   {}
func (nopSurface) SetOpacity(float64)       {}
func (nopSurface) SetTransform(geom.Affine) {}
func (nopSurface) Remove()                  {}
