// Package geom provides the 2D primitives used by the gooey effect: points,
// sizes, rectangles, affine transforms, vector paths and a circle–circle
// intersection solver.
//
// All coordinates use a top-left origin with Y growing downwards, matching
// both SVG and raster image coordinates.
//
// # Paths
//
// [Path] records move, line, cubic Bézier and close commands. Paths are
// built by the geometry kernel and consumed by renderers:
//
//	var p geom.Path
//	p.MoveTo(geom.Pt(0, 0))
//	p.CubicTo(geom.Pt(10, 0), geom.Pt(20, 10), geom.Pt(20, 20))
//	p.Close()
//	d := p.SVG() // "M0.00 0.00 C10.00 0.00 20.00 10.00 20.00 20.00 Z"
//
// # Intersections
//
// [CircleIntersections] returns the intersection points of two circles
// together with the number of valid points. Degenerate configurations
// (disjoint, contained or coincident circles) report zero points and return
// the zero point twice.
package geom
