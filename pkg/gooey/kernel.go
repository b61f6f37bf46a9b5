package gooey

import (
	"math"

	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// Edge shape ratios. They reproduce the reference teardrop outline and must
// not be tuned independently of each other.
const (
	edgeVerticalRateOuter   = 0.44
	edgeVerticalRateInner   = 0.71
	edgeHorizontalRateInner = 0.64
	edgeHorizontalRateTip   = 1.36
)

const (
	// jointControlOffset is how far left of the circle the joint's virtual
	// control points sit.
	jointControlOffset = 10.0

	// jointTailDivisor sizes the droplet left behind after the gap.
	jointTailDivisor = 2.5

	// iconVanishRate makes the icon scale overshoot zero before the effect
	// completes, briefly mirroring it.
	iconVanishRate = 1.2
)

// Kernel computes shape descriptors for one effect session. It is immutable
// and safe to share.
type Kernel struct {
	params Params
	bounds geom.Size
	pivotY float64
	height float64
}

// NewKernel derives the session constants for a container of the given size
// and a pivot at verticalPosition (a fraction of the container height).
//
// The pivot is clamped so the circle stays inside the container, and the
// edge height is the largest band centred on the pivot that fits, capped at
// params.MaxHeight.
func NewKernel(params Params, bounds geom.Size, verticalPosition float64) *Kernel {
	r := params.CircleRadius
	pivot := bounds.H * verticalPosition
	pivot = math.Max(r, math.Min(pivot, bounds.H-r))

	height := math.Min(math.Min(pivot, bounds.H-pivot)*2, params.MaxHeight)

	return &Kernel{
		params: params,
		bounds: bounds,
		pivotY: pivot,
		height: height,
	}
}

// Params returns the tuning the kernel was built with.
func (k *Kernel) Params() Params { return k.params }

// Bounds returns the container size.
func (k *Kernel) Bounds() geom.Size { return k.bounds }

// PivotY returns the vertical centre of the effect.
func (k *Kernel) PivotY() float64 { return k.pivotY }

// EffectHeight returns the height of the edge shape.
func (k *Kernel) EffectHeight() float64 { return k.height }

// Frame computes every descriptor for progress, clamped to [0,1].
func (k *Kernel) Frame(progress float64) Frame {
	p := geom.Clamp(progress, 0, 1)
	if math.IsNaN(progress) {
		p = 0
	}

	circle := k.Circle(p)
	edge := k.Edge(p, circle)

	return Frame{
		Progress: p,
		Circle:   circle,
		Edge:     edge,
		Joint:    k.Joint(p, circle, edge),
		Snapshot: k.Snapshot(p, circle),
		Icon:     k.Icon(p, circle),
	}
}

// afterGap maps progress past the gap onto [0,1]; it is negative before.
func (k *Kernel) afterGap(p float64) float64 {
	gap := k.params.GapProgress
	return (p - gap) / (1 - gap)
}

// Circle returns the travelling circle.
func (k *Kernel) Circle(p float64) CircleInfo {
	radius := k.params.CircleRadius
	if p > k.params.GapProgress {
		radius = k.params.CircleRadius * (1 - k.afterGap(p))
	}

	center := geom.Pt(k.params.MaxWidth*p-radius, k.pivotY)

	return CircleInfo{
		Center: center,
		Radius: radius,
		Left:   geom.Pt(center.X-radius, center.Y),
		Right:  geom.Pt(center.X+radius, center.Y),
		Path:   geom.Oval(geom.RectFromCircle(center, radius)),
	}
}

// Edge returns the teardrop anchored on the container's leading edge.
func (k *Kernel) Edge(p float64, c CircleInfo) EdgeInfo {
	gap := k.params.GapProgress
	maxWidth := k.params.MaxWidth * gap * k.params.EdgeWidthRate

	var width float64
	if p <= gap {
		width = math.Min(c.Left.X-c.Radius/2, maxWidth*p/gap)
	} else {
		width = maxWidth * (1 - k.afterGap(p))
	}

	y := c.Center.Y
	minY := y - k.height/2
	maxY := minY + k.height
	topPart := y - minY
	bottomPart := maxY - y

	top3 := geom.Pt(0, minY)
	top2 := geom.Pt(0, minY+topPart*edgeVerticalRateOuter)
	top1 := geom.Pt(width*edgeHorizontalRateInner, minY+topPart*edgeVerticalRateInner)
	tip := geom.Pt(width*edgeHorizontalRateTip, y)
	bottom1 := geom.Pt(width*edgeHorizontalRateInner, maxY-bottomPart*edgeVerticalRateInner)
	bottom2 := geom.Pt(0, maxY-bottomPart*edgeVerticalRateOuter)
	bottom3 := geom.Pt(0, maxY)

	path := &geom.Path{}
	path.MoveTo(top3)
	path.CubicTo(top3, top2, top1)
	path.CubicTo(tip, bottom1, bottom1)
	path.CubicTo(bottom1, bottom2, bottom3)
	path.Close()

	blend := p * k.params.JointConstringency

	return EdgeInfo{
		Width:              width,
		TopPoint:           top1,
		TopControlPoint:    geom.Lerp(top1, tip, blend),
		BottomPoint:        bottom1,
		BottomControlPoint: geom.Lerp(bottom1, tip, blend),
		RightControlPoint:  tip,
		Path:               path,
	}
}

// Joint returns the bridge between the edge and the circle. Up to the gap it
// is a curved band that meets the circle tangentially; past the gap it is a
// shrinking droplet at the edge tip.
func (k *Kernel) Joint(p float64, c CircleInfo, e EdgeInfo) JointInfo {
	if p > k.params.GapProgress {
		radius := c.Radius / jointTailDivisor * (1 - p)
		return JointInfo{
			Tail: true,
			Path: geom.Oval(geom.RectFromCircle(e.RightControlPoint, radius)),
		}
	}

	topControl := geom.Pt(c.Left.X-jointControlOffset, e.TopControlPoint.Y)
	_, circleTop, nTop := tangentPoints(topControl, c.Center, c.Radius)

	bottomControl := geom.Pt(c.Left.X-jointControlOffset, e.BottomControlPoint.Y)
	circleBottom, _, nBottom := tangentPoints(bottomControl, c.Center, c.Radius)

	path := &geom.Path{}
	path.MoveTo(e.TopPoint)
	path.CubicTo(e.TopControlPoint, circleTop, circleTop)
	path.LineTo(circleBottom)
	path.CubicTo(circleBottom, e.BottomControlPoint, e.BottomPoint)
	path.Close()

	return JointInfo{
		CircleTop:    circleTop,
		CircleBottom: circleBottom,
		Degenerate:   nTop < 2 || nBottom < 2,
		Path:         path,
	}
}

// tangentPoints finds where lines from cp touch the circle (center, radius):
// the touch points lie on the circle whose diameter is cp–center.
func tangentPoints(cp, center geom.Point, radius float64) (geom.Point, geom.Point, int) {
	mid := geom.Midpoint(center, cp)
	return geom.CircleIntersections(center, radius, mid, center.Dist(mid))
}

// Snapshot returns where the row snapshot sits and how visible it is.
func (k *Kernel) Snapshot(p float64, c CircleInfo) SnapshotInfo {
	return SnapshotInfo{
		Position: geom.Pt(c.Right.X+k.bounds.W/2, k.bounds.H/2),
		Opacity:  geom.Clamp(1-p/k.params.GapProgress, 0, 1),
	}
}

// Icon returns the action icon placement. Scale is intentionally left
// unclamped.
func (k *Kernel) Icon(p float64, c CircleInfo) IconInfo {
	after := math.Max(0, k.afterGap(p))
	return IconInfo{
		Position: c.Center,
		Opacity:  geom.Clamp(1-after, 0, 1),
		Scale:    1 - after*iconVanishRate,
	}
}
