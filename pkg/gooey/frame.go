package gooey

import "github.com/matzehuels/gooeyswipe/pkg/geom"

// CircleInfo describes the travelling circle.
type CircleInfo struct {
	Center geom.Point
	Radius float64
	Left   geom.Point
	Right  geom.Point
	Path   *geom.Path
}

// EdgeInfo describes the teardrop attached to the leading edge.
type EdgeInfo struct {
	Width              float64
	TopPoint           geom.Point
	TopControlPoint    geom.Point
	BottomPoint        geom.Point
	BottomControlPoint geom.Point
	RightControlPoint  geom.Point
	Path               *geom.Path
}

// JointInfo describes the bridge between edge and circle.
type JointInfo struct {
	// CircleTop and CircleBottom are the tangent points on the circle. Both
	// are zero when Tail is set.
	CircleTop    geom.Point
	CircleBottom geom.Point

	// Tail is set past the gap, when the joint is a droplet at the edge tip.
	Tail bool

	// Degenerate is set when a tangent point could not be solved and the
	// zero point was used instead.
	Degenerate bool

	Path *geom.Path
}

// SnapshotInfo places the row snapshot. Opacity is already clamped to [0,1].
type SnapshotInfo struct {
	Position geom.Point
	Opacity  float64
}

// IconInfo places the action icon.
type IconInfo struct {
	Position geom.Point
	Opacity  float64
	// Scale is uniform and may be negative near progress 1.
	Scale float64
}

// Transform returns the icon's scale as an affine transform about its
// anchor.
func (i IconInfo) Transform() geom.Affine {
	return geom.Scale(i.Scale, i.Scale)
}

// Frame bundles every descriptor for one progress value.
type Frame struct {
	Progress float64
	Circle   CircleInfo
	Edge     EdgeInfo
	Joint    JointInfo
	Snapshot SnapshotInfo
	Icon     IconInfo
}

// Description is a serialisable view of a Frame with paths as SVG data.
type Description struct {
	Progress float64 `json:"progress"`
	Circle   struct {
		Center geom.Point `json:"center"`
		Radius float64    `json:"radius"`
		D      string     `json:"d"`
	} `json:"circle"`
	Edge struct {
		Width float64    `json:"width"`
		Tip   geom.Point `json:"tip"`
		D     string     `json:"d"`
	} `json:"edge"`
	Joint struct {
		Tail       bool   `json:"tail"`
		Degenerate bool   `json:"degenerate"`
		D          string `json:"d"`
	} `json:"joint"`
	Snapshot SnapshotDescription `json:"snapshot"`
	Icon     IconDescription     `json:"icon"`
}

// SnapshotDescription is the serialisable form of SnapshotInfo.
type SnapshotDescription struct {
	Position geom.Point `json:"position"`
	Opacity  float64    `json:"opacity"`
}

// IconDescription is the serialisable form of IconInfo.
type IconDescription struct {
	Position geom.Point `json:"position"`
	Opacity  float64    `json:"opacity"`
	Scale    float64    `json:"scale"`
}

// Describe converts f into its serialisable form.
func (f Frame) Describe() Description {
	var d Description
	d.Progress = f.Progress
	d.Circle.Center = f.Circle.Center
	d.Circle.Radius = f.Circle.Radius
	d.Circle.D = f.Circle.Path.SVG()
	d.Edge.Width = f.Edge.Width
	d.Edge.Tip = f.Edge.RightControlPoint
	d.Edge.D = f.Edge.Path.SVG()
	d.Joint.Tail = f.Joint.Tail
	d.Joint.Degenerate = f.Joint.Degenerate
	d.Joint.D = f.Joint.Path.SVG()
	d.Snapshot = SnapshotDescription{Position: f.Snapshot.Position, Opacity: f.Snapshot.Opacity}
	d.Icon = IconDescription{Position: f.Icon.Position, Opacity: f.Icon.Opacity, Scale: f.Icon.Scale}
	return d
}
