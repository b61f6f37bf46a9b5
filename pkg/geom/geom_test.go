package geom

import (
	"math"
	"strings"
	"testing"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestCircleIntersections(t *testing.T) {
	c1, c2 := Pt(0, 0), Pt(6, 0)
	p1, p2, n := CircleIntersections(c1, 5, c2, 5)
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}

	for _, p := range []Point{p1, p2} {
		if !near(p.Dist(c1), 5) || !near(p.Dist(c2), 5) {
			t.Errorf("point %+v not on both circles (d1=%f d2=%f)", p, p.Dist(c1), p.Dist(c2))
		}
	}

	// Symmetric about the X axis, which joins the centres.
	if !near(p1.X, p2.X) || !near(p1.Y, -p2.Y) {
		t.Errorf("points not symmetric: %+v %+v", p1, p2)
	}
	if !near(p1.X, 3) || !near(math.Abs(p1.Y), 4) {
		t.Errorf("p1 = %+v, want (3, ±4)", p1)
	}
}

func TestCircleIntersectionsDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		c1     Point
		r1     float64
		c2     Point
		r2     float64
		wantN  int
		zeroP1 bool
	}{
		{"disjoint", Pt(0, 0), 3, Pt(10, 0), 3, 0, true},
		{"contained", Pt(0, 0), 10, Pt(1, 0), 2, 0, true},
		{"identical", Pt(2, 2), 4, Pt(2, 2), 4, 0, true},
		{"touching", Pt(0, 0), 3, Pt(6, 0), 3, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2, n := CircleIntersections(tt.c1, tt.r1, tt.c2, tt.r2)
			if n != tt.wantN {
				t.Errorf("count = %d, want %d", n, tt.wantN)
			}
			if !p2.IsZero() {
				t.Errorf("second point = %+v, want zero", p2)
			}
			if tt.zeroP1 != p1.IsZero() {
				t.Errorf("first point = %+v, zero=%v", p1, tt.zeroP1)
			}
		})
	}
}

func TestCircleIntersectionsTouchingPoint(t *testing.T) {
	p, _, n := CircleIntersections(Pt(0, 0), 3, Pt(6, 0), 3)
	if n != 1 || !near(p.X, 3) || !near(p.Y, 0) {
		t.Errorf("touching point = %+v (n=%d), want (3, 0)", p, n)
	}
}

func TestLerp(t *testing.T) {
	p := Lerp(Pt(0, 0), Pt(10, 20), 0.25)
	if !near(p.X, 2.5) || !near(p.Y, 5) {
		t.Errorf("Lerp = %+v", p)
	}
	// Extrapolation beyond the segment is allowed.
	p = Lerp(Pt(0, 0), Pt(10, 0), 2)
	if !near(p.X, 20) {
		t.Errorf("Lerp(t=2).X = %f, want 20", p.X)
	}
}

func TestAffine(t *testing.T) {
	m := ScaleAbout(-1, 1, Pt(50, 10))
	got := m.Apply(Pt(0, 3))
	if !near(got.X, 100) || !near(got.Y, 3) {
		t.Errorf("mirror = %+v, want (100, 3)", got)
	}

	// Mul applies the right-hand transform first.
	m = Translate(10, 0).Mul(Scale(2, 2))
	got = m.Apply(Pt(1, 1))
	if !near(got.X, 12) || !near(got.Y, 2) {
		t.Errorf("compose = %+v, want (12, 2)", got)
	}

	if !Identity.IsIdentity() || Scale(2, 1).IsIdentity() {
		t.Error("IsIdentity mismatch")
	}
	if !Scale(0, 1).Singular() {
		t.Error("zero scale should be singular")
	}
}

func TestPathSVG(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.CubicTo(Pt(1, 2), Pt(3, 4), Pt(5, 6))
	p.LineTo(Pt(7, 8))
	p.Close()

	want := "M0.00 0.00 C1.00 2.00 3.00 4.00 5.00 6.00 L7.00 8.00 Z"
	if got := p.SVG(); got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
}

func TestOval(t *testing.T) {
	p := Oval(RectFromCircle(Pt(10, 10), 5))
	d := p.SVG()
	if !strings.HasPrefix(d, "M15.00 10.00") {
		t.Errorf("oval should start at the rightmost point, got %q", d)
	}
	if !strings.HasSuffix(d, "Z") {
		t.Errorf("oval should be closed, got %q", d)
	}
	if p.Len() != 6 {
		t.Errorf("oval has %d elements, want 6", p.Len())
	}

	// Every on-curve point lies on the circle.
	for _, e := range p.Elements() {
		if e.Op == OpCubic && !near(e.Pts[2].Dist(Pt(10, 10)), 5) {
			t.Errorf("end point %+v off circle", e.Pts[2])
		}
	}
}

func TestPathTransform(t *testing.T) {
	var p Path
	p.MoveTo(Pt(1, 1))
	p.LineTo(Pt(2, 2))
	q := p.Transform(Translate(10, 0))
	if q.Elements()[1].Pts[0] != Pt(12, 2) {
		t.Errorf("transformed = %+v", q.Elements()[1].Pts[0])
	}
	if p.Elements()[1].Pts[0] != Pt(2, 2) {
		t.Error("Transform must not modify the receiver")
	}
}

func TestNilPath(t *testing.T) {
	var p *Path
	if p.Len() != 0 || p.SVG() != "" {
		t.Error("nil path should be empty")
	}
}
