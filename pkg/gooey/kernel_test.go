package gooey

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tol }

func rowKernel() *Kernel {
	return NewKernel(DefaultParams(), geom.Sz(375, 88), 0.5)
}

func TestNewKernelPivot(t *testing.T) {
	tests := []struct {
		name       string
		size       geom.Size
		vpos       float64
		wantPivot  float64
		wantHeight float64
	}{
		{"centre", geom.Sz(375, 88), 0.5, 44, 88},
		{"clamped top", geom.Sz(375, 88), 0.05, 20, 40},
		{"clamped bottom", geom.Sz(375, 88), 1, 68, 40},
		{"height capped", geom.Sz(375, 400), 0.5, 200, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKernel(DefaultParams(), tt.size, tt.vpos)
			if !approx(k.PivotY(), tt.wantPivot) {
				t.Errorf("PivotY() = %f, want %f", k.PivotY(), tt.wantPivot)
			}
			if !approx(k.EffectHeight(), tt.wantHeight) {
				t.Errorf("EffectHeight() = %f, want %f", k.EffectHeight(), tt.wantHeight)
			}
		})
	}
}

func TestCircleRadius(t *testing.T) {
	k := rowKernel()
	gap := k.Params().GapProgress

	prev := math.Inf(1)
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		r := k.Frame(p).Circle.Radius
		if p <= gap {
			if r != DefaultCircleRadius {
				t.Errorf("p=%.2f: radius = %f, want constant %f", p, r, DefaultCircleRadius)
			}
		} else if r > prev {
			t.Errorf("p=%.2f: radius %f grew from %f", p, r, prev)
		}
		prev = r
	}

	if r := k.Frame(1).Circle.Radius; !approx(r, 0) {
		t.Errorf("radius at 1 = %f, want 0", r)
	}
}

func TestCirclePosition(t *testing.T) {
	k := rowKernel()
	tests := []struct {
		p       float64
		wantX   float64
		wantRad float64
	}{
		{0, -20, 20},
		{0.5, 65, 20},
		{0.85, 134.5, 10},
		{1, 170, 0},
	}
	for _, tt := range tests {
		c := k.Frame(tt.p).Circle
		if !approx(c.Center.X, tt.wantX) || !approx(c.Radius, tt.wantRad) {
			t.Errorf("p=%.2f: centre.x=%f radius=%f, want %f/%f", tt.p, c.Center.X, c.Radius, tt.wantX, tt.wantRad)
		}
		if c.Center.Y != k.PivotY() {
			t.Errorf("p=%.2f: centre.y=%f, want pivot %f", tt.p, c.Center.Y, k.PivotY())
		}
		if !approx(c.Right.X-c.Left.X, 2*c.Radius) {
			t.Errorf("p=%.2f: left/right points not a diameter apart", tt.p)
		}
	}
}

func TestEdgeWidth(t *testing.T) {
	k := rowKernel()
	maxEdge := DefaultMaxWidth * DefaultGapProgress * DefaultEdgeWidthRate

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"limited by circle", 0.35, 9.5},
		{"full at gap", 0.7, maxEdge},
		{"half after gap", 0.85, maxEdge / 2},
		{"gone at end", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.Frame(tt.p).Edge.Width; math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("width = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEdgeShape(t *testing.T) {
	k := rowKernel()
	e := k.Frame(0.7).Edge

	if !approx(e.RightControlPoint.X, e.Width*1.36) || e.RightControlPoint.Y != k.PivotY() {
		t.Errorf("tip = %+v", e.RightControlPoint)
	}
	if !approx(e.TopPoint.X, e.Width*0.64) || !approx(e.BottomPoint.X, e.Width*0.64) {
		t.Errorf("inner points x = %f / %f", e.TopPoint.X, e.BottomPoint.X)
	}
	// Top and bottom halves mirror each other around the pivot.
	if !approx(k.PivotY()-e.TopPoint.Y, e.BottomPoint.Y-k.PivotY()) {
		t.Errorf("edge not symmetric: top %+v bottom %+v", e.TopPoint, e.BottomPoint)
	}

	d := e.Path.SVG()
	if !strings.HasPrefix(d, "M0.00 0.00") || !strings.HasSuffix(d, "Z") {
		t.Errorf("edge path = %q", d)
	}
	if n := strings.Count(d, "C"); n != 3 {
		t.Errorf("edge path has %d cubic segments, want 3", n)
	}
}

func TestEdgeControlBlend(t *testing.T) {
	k := rowKernel()
	e := k.Frame(0.25).Edge
	want := geom.Lerp(e.TopPoint, e.RightControlPoint, 0.5)
	if !approx(e.TopControlPoint.X, want.X) || !approx(e.TopControlPoint.Y, want.Y) {
		t.Errorf("top control = %+v, want %+v", e.TopControlPoint, want)
	}
}

func TestJointBeforeGap(t *testing.T) {
	k := rowKernel()
	for i := 1; i <= 14; i++ {
		p := float64(i) / 20
		f := k.Frame(p)
		j := f.Joint
		if j.Tail {
			t.Fatalf("p=%.2f: joint should not be a tail before the gap", p)
		}
		if j.Degenerate {
			continue
		}
		for _, pt := range []geom.Point{j.CircleTop, j.CircleBottom} {
			if d := pt.Dist(f.Circle.Center); math.Abs(d-f.Circle.Radius) > 1e-6 {
				t.Errorf("p=%.2f: tangent point %+v is %f from centre, want %f", p, pt, d, f.Circle.Radius)
			}
		}
		if j.CircleTop.Y > j.CircleBottom.Y {
			t.Errorf("p=%.2f: top tangent %+v below bottom %+v", p, j.CircleTop, j.CircleBottom)
		}
		if !strings.Contains(j.Path.SVG(), "L") {
			t.Errorf("p=%.2f: joint path should contain the straight bridge", p)
		}
	}
}

func TestJointAfterGap(t *testing.T) {
	k := rowKernel()
	f := k.Frame(0.85)
	if !f.Joint.Tail {
		t.Fatal("joint should be a tail after the gap")
	}
	wantRadius := f.Circle.Radius / 2.5 * (1 - 0.85)
	first := f.Joint.Path.Elements()[0].Pts[0]
	if got := first.Dist(f.Edge.RightControlPoint); math.Abs(got-wantRadius) > 1e-9 {
		t.Errorf("tail radius = %f, want %f", got, wantRadius)
	}
}

func TestJointDegenerateIsTolerated(t *testing.T) {
	// A tiny row pulls the control points into the circle; the joint must
	// still produce a closed path.
	k := NewKernel(DefaultParams(), geom.Sz(375, 40), 0.5)
	for i := 0; i <= 70; i++ {
		f := k.Frame(float64(i) / 100)
		if f.Joint.Path.Len() == 0 {
			t.Fatalf("p=%.2f: empty joint path", f.Progress)
		}
	}
}

func TestSnapshotOpacity(t *testing.T) {
	k := rowKernel()
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.35, 0.5},
		{0.7, 0},
		{0.9, 0},
		{1, 0},
	}
	for _, tt := range tests {
		if got := k.Frame(tt.p).Snapshot.Opacity; !approx(got, tt.want) {
			t.Errorf("p=%.2f: opacity = %f, want %f", tt.p, got, tt.want)
		}
	}
}

func TestSnapshotPosition(t *testing.T) {
	k := rowKernel()
	f := k.Frame(0.5)
	want := geom.Pt(f.Circle.Right.X+375.0/2, 44)
	if f.Snapshot.Position != want {
		t.Errorf("position = %+v, want %+v", f.Snapshot.Position, want)
	}
}

func TestIconTransform(t *testing.T) {
	k := rowKernel()

	f := k.Frame(0.5)
	if f.Icon.Opacity != 1 || f.Icon.Scale != 1 {
		t.Errorf("before gap: opacity=%f scale=%f, want 1/1", f.Icon.Opacity, f.Icon.Scale)
	}

	f = k.Frame(0.7)
	if !approx(f.Icon.Opacity, 1) {
		t.Errorf("at gap: opacity = %f, want 1", f.Icon.Opacity)
	}

	f = k.Frame(1)
	if !approx(f.Icon.Opacity, 0) {
		t.Errorf("at end: opacity = %f, want 0", f.Icon.Opacity)
	}
	if !approx(f.Icon.Scale, -0.2) {
		t.Errorf("at end: scale = %f, want -0.2 (overshoot kept)", f.Icon.Scale)
	}
	if f.Icon.Position != f.Circle.Center {
		t.Errorf("icon should follow the circle centre")
	}

	for i := 71; i <= 100; i++ {
		p := float64(i) / 100
		after := (p - 0.7) / 0.3
		want := geom.Clamp(1-after, 0, 1)
		if got := k.Frame(p).Icon.Opacity; math.Abs(got-want) > 1e-9 {
			t.Errorf("p=%.2f: icon opacity = %f, want %f", p, got, want)
		}
	}
}

func TestFrameIdempotent(t *testing.T) {
	k := rowKernel()
	for _, p := range []float64{0, 0.2, 0.7, 0.71, 0.95, 1} {
		if a, b := k.Frame(p), k.Frame(p); !reflect.DeepEqual(a, b) {
			t.Errorf("p=%.2f: frames differ", p)
		}
	}
}

func TestFrameClampsProgress(t *testing.T) {
	k := rowKernel()
	if got := k.Frame(-0.5).Progress; got != 0 {
		t.Errorf("Frame(-0.5).Progress = %f, want 0", got)
	}
	if got := k.Frame(3).Progress; got != 1 {
		t.Errorf("Frame(3).Progress = %f, want 1", got)
	}
	if got := k.Frame(math.NaN()).Progress; got != 0 {
		t.Errorf("Frame(NaN).Progress = %f, want 0", got)
	}
}

func TestDescribe(t *testing.T) {
	d := rowKernel().Frame(0.8).Describe()
	if !d.Joint.Tail {
		t.Error("description should carry the tail flag")
	}
	if !strings.HasPrefix(d.Circle.D, "M") || !strings.HasPrefix(d.Edge.D, "M") {
		t.Errorf("description paths missing: %q %q", d.Circle.D, d.Edge.D)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero width", func(p *Params) { p.MaxWidth = 0 }},
		{"gap at one", func(p *Params) { p.GapProgress = 1 }},
		{"negative radius", func(p *Params) { p.CircleRadius = -1 }},
		{"band wider than gap", func(p *Params) { p.EasingBand = 0.9 }},
		{"negative duration", func(p *Params) { p.BaseDuration = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
