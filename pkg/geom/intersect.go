package geom

import "math"

// CircleIntersections returns the points where the circle (c1, r1) meets the
// circle (c2, r2), and how many of the returned points are valid.
//
// With two intersections the points mirror each other across the line c1→c2;
// the first is offset from the chord midpoint along (dy, -dx). Touching
// circles yield the single contact point followed by the zero point. Disjoint,
// contained and coincident circles yield (Point{}, Point{}, 0).
//
// The construction follows Paul Bourke's "Intersection of two circles": a is
// the distance from c1 to the chord midpoint and h the half chord length.
func CircleIntersections(c1 Point, r1 float64, c2 Point, r2 float64) (Point, Point, int) {
	d := c1.Dist(c2)

	switch {
	case d > r1+r2:
		return Point{}, Point{}, 0
	case d < math.Abs(r1-r2):
		return Point{}, Point{}, 0
	case d == 0:
		// Concentric circles: either identical or nested, no finite solution.
		return Point{}, Point{}, 0
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, r1*r1-a*a))

	mid := Point{
		X: c1.X + (a/d)*(c2.X-c1.X),
		Y: c1.Y + (a/d)*(c2.Y-c1.Y),
	}

	if d == r1+r2 {
		return mid, Point{}, 1
	}

	p1 := Point{
		X: mid.X + (h/d)*(c2.Y-c1.Y),
		Y: mid.Y - (h/d)*(c2.X-c1.X),
	}
	p2 := Point{
		X: mid.X - (h/d)*(c2.Y-c1.Y),
		Y: mid.Y + (h/d)*(c2.X-c1.X),
	}
	return p1, p2, 2
}
