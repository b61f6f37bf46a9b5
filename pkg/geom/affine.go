package geom

import "fmt"

// Affine is a 2D affine transform in SVG matrix order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Affine{A: 1, D: 1}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine { return Affine{A: 1, D: 1, E: tx, F: ty} }

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Affine { return Affine{A: sx, D: sy} }

// ScaleAbout returns a scale by (sx, sy) that keeps p fixed.
func ScaleAbout(sx, sy float64, p Point) Affine {
	return Translate(p.X, p.Y).Mul(Scale(sx, sy)).Mul(Translate(-p.X, -p.Y))
}

// Mul returns the composition m∘n: n is applied first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool { return m == Identity }

// AxisAligned reports whether m has no rotation or shear component.
func (m Affine) AxisAligned() bool { return m.B == 0 && m.C == 0 }

// Singular reports whether m collapses the plane (zero determinant).
func (m Affine) Singular() bool { return m.A*m.D-m.B*m.C == 0 }

// SVG formats m as an SVG transform attribute value.
func (m Affine) SVG() string {
	return fmt.Sprintf("matrix(%.4f %.4f %.4f %.4f %.2f %.2f)", m.A, m.B, m.C, m.D, m.E, m.F)
}
