package geom

import (
	"bytes"
	"fmt"
)

// Op identifies a path command.
type Op uint8

// Path commands.
const (
	OpMove Op = iota
	OpLine
	OpCubic
	OpClose
)

// Element is a single path command. Pts holds one point for OpMove and
// OpLine, three (control 1, control 2, end) for OpCubic and none for OpClose.
type Element struct {
	Op  Op
	Pts [3]Point
}

// ovalKappa is the control-point distance ratio for approximating a quarter
// ellipse with one cubic Bézier.
const ovalKappa = 0.5522847498307936

// Path is a sequence of drawing commands. The zero value is an empty path.
type Path struct {
	elems []Element
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt Point) {
	p.elems = append(p.elems, Element{Op: OpMove, Pts: [3]Point{pt}})
}

// LineTo adds a straight segment to pt.
func (p *Path) LineTo(pt Point) {
	p.elems = append(p.elems, Element{Op: OpLine, Pts: [3]Point{pt}})
}

// CubicTo adds a cubic Bézier segment ending at end.
func (p *Path) CubicTo(c1, c2, end Point) {
	p.elems = append(p.elems, Element{Op: OpCubic, Pts: [3]Point{c1, c2, end}})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elems = append(p.elems, Element{Op: OpClose})
}

// Elements returns the recorded commands. The slice must not be modified.
func (p *Path) Elements() []Element {
	if p == nil {
		return nil
	}
	return p.elems
}

// Len returns the number of commands.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.elems)
}

// Oval returns a closed path for the ellipse inscribed in r, built from four
// cubic arcs starting at the rightmost point and running clockwise.
func Oval(r Rect) *Path {
	c := r.Center()
	rx, ry := r.Size.W/2, r.Size.H/2
	kx, ky := rx*ovalKappa, ry*ovalKappa

	p := &Path{elems: make([]Element, 0, 6)}
	p.MoveTo(Pt(c.X+rx, c.Y))
	p.CubicTo(Pt(c.X+rx, c.Y+ky), Pt(c.X+kx, c.Y+ry), Pt(c.X, c.Y+ry))
	p.CubicTo(Pt(c.X-kx, c.Y+ry), Pt(c.X-rx, c.Y+ky), Pt(c.X-rx, c.Y))
	p.CubicTo(Pt(c.X-rx, c.Y-ky), Pt(c.X-kx, c.Y-ry), Pt(c.X, c.Y-ry))
	p.CubicTo(Pt(c.X+kx, c.Y-ry), Pt(c.X+rx, c.Y-ky), Pt(c.X+rx, c.Y))
	p.Close()
	return p
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m Affine) *Path {
	out := &Path{elems: make([]Element, len(p.Elements()))}
	for i, e := range p.Elements() {
		for j := range e.Pts {
			e.Pts[j] = m.Apply(e.Pts[j])
		}
		out.elems[i] = e
	}
	return out
}

// SVG formats p as SVG path data ("M… C… L… Z").
func (p *Path) SVG() string {
	var buf bytes.Buffer
	for i, e := range p.Elements() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		switch e.Op {
		case OpMove:
			fmt.Fprintf(&buf, "M%.2f %.2f", e.Pts[0].X, e.Pts[0].Y)
		case OpLine:
			fmt.Fprintf(&buf, "L%.2f %.2f", e.Pts[0].X, e.Pts[0].Y)
		case OpCubic:
			fmt.Fprintf(&buf, "C%.2f %.2f %.2f %.2f %.2f %.2f",
				e.Pts[0].X, e.Pts[0].Y, e.Pts[1].X, e.Pts[1].Y, e.Pts[2].X, e.Pts[2].Y)
		case OpClose:
			buf.WriteByte('Z')
		}
	}
	return buf.String()
}
