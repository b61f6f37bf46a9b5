package geom

import "math"

// Point is a position in 2D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales both coordinates by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp returns the point at fraction t along the segment p→q.
// t is not clamped: values outside [0,1] extrapolate along the line.
func Lerp(p, q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// R returns the rectangle with origin (x, y) and size (w, h).
func R(x, y, w, h float64) Rect { return Rect{Point{x, y}, Size{w, h}} }

// RectFromCircle returns the bounding square of the circle at c with radius r.
func RectFromCircle(c Point, r float64) Rect {
	return R(c.X-r, c.Y-r, 2*r, 2*r)
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.Origin.X }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Origin.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.H }

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{r.Origin.X + r.Size.W/2, r.Origin.Y + r.Size.H/2}
}

// Bounds returns r moved to the origin.
func (r Rect) Bounds() Rect { return Rect{Size: r.Size} }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
