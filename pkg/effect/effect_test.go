package effect

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/observability"
)

type fakeSurface struct {
	spec      SurfaceSpec
	path      *geom.Path
	position  geom.Point
	opacity   float64
	transform geom.Affine
	removed   bool
	updates   int
}

func (s *fakeSurface) SetPath(p *geom.Path)       { s.path = p; s.updates++ }
func (s *fakeSurface) SetPosition(p geom.Point)   { s.position = p; s.updates++ }
func (s *fakeSurface) SetOpacity(o float64)       { s.opacity = o; s.updates++ }
func (s *fakeSurface) SetTransform(m geom.Affine) { s.transform = m; s.updates++ }
func (s *fakeSurface) Remove()                    { s.removed = true }

type fakeContainer struct {
	size        geom.Size
	backgrounds []color.Color
	surfaces    []*fakeSurface
	content     geom.Affine
	alive       bool
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{
		size:        geom.Sz(375, 88),
		backgrounds: []color.Color{nil, color.Transparent, color.RGBA{R: 10, G: 20, B: 30, A: 255}},
		content:     geom.Identity,
		alive:       true,
	}
}

func (c *fakeContainer) Size() geom.Size            { return c.size }
func (c *fakeContainer) Backgrounds() []color.Color { return c.backgrounds }
func (c *fakeContainer) Capture() image.Image {
	return image.NewRGBA(image.Rect(0, 0, int(c.size.W), int(c.size.H)))
}
func (c *fakeContainer) SetContentTransform(m geom.Affine) { c.content = m }
func (c *fakeContainer) Alive() bool                       { return c.alive }
func (c *fakeContainer) AddSurface(spec SurfaceSpec) Surface {
	s := &fakeSurface{spec: spec, opacity: 1, transform: geom.Identity}
	c.surfaces = append(c.surfaces, s)
	return s
}

func (c *fakeContainer) surface(k SurfaceKind) *fakeSurface {
	for _, s := range c.surfaces {
		if s.spec.Kind == k {
			return s
		}
	}
	return nil
}

type recordingHooks struct {
	observability.NoopEffectHooks
	started, completed, ended int
}

func (h *recordingHooks) OnSessionStart(string, string, float64)             { h.started++ }
func (h *recordingHooks) OnAnimationComplete(string, float64, time.Duration) { h.completed++ }
func (h *recordingHooks) OnSessionEnd(string, bool)                          { h.ended++ }

var testConfig = &Config{
	Color: color.RGBA{R: 0x4d, G: 0x7f, B: 0x64, A: 0xff},
	Icon:  image.NewRGBA(image.Rect(0, 0, 24, 24)),
}

func newTestEffect(t *testing.T, dir Direction) (*Effect, *fakeContainer, *ManualClock, *Driver) {
	t.Helper()
	clock := NewManualClock(time.Unix(0, 0))
	driver := NewDriver(clock)
	c := newFakeContainer()
	e := New(c, 0.5, dir, testConfig, WithDriver(driver), WithHooks(&recordingHooks{}))
	return e, c, clock, driver
}

func settle(d *Driver, clock *ManualClock) int {
	return d.Settle(clock, time.Second/60, 1000, nil)
}

func TestNewStacksSurfaces(t *testing.T) {
	_, c, _, _ := newTestEffect(t, ToRight)

	want := []SurfaceKind{KindMask, KindSnapshot, KindCircle, KindEdge, KindJoint, KindIcon}
	if len(c.surfaces) != len(want) {
		t.Fatalf("got %d surfaces, want %d", len(c.surfaces), len(want))
	}
	for i, k := range want {
		if c.surfaces[i].spec.Kind != k {
			t.Errorf("surface %d = %v, want %v", i, c.surfaces[i].spec.Kind, k)
		}
	}

	mask := c.surface(KindMask)
	if mask.spec.Background != c.backgrounds[2] {
		t.Errorf("mask background = %v, want first opaque ancestor colour", mask.spec.Background)
	}
	if c.surface(KindSnapshot).spec.Image == nil {
		t.Error("snapshot surface has no captured image")
	}
	if got := c.surface(KindIcon).spec.Frame.Size; got != geom.Sz(24, 24) {
		t.Errorf("icon frame size = %+v, want 24x24", got)
	}
	if c.surface(KindCircle).path == nil {
		t.Error("New should draw progress 0")
	}
}

func TestNewMirrorsToLeft(t *testing.T) {
	e, c, _, _ := newTestEffect(t, ToLeft)

	want := geom.ScaleAbout(-1, 1, geom.Pt(187.5, 44))
	if c.content != want {
		t.Errorf("content transform = %+v, want %+v", c.content, want)
	}
	if got := c.surface(KindSnapshot).transform; got != geom.Scale(-1, 1) {
		t.Errorf("snapshot transform = %+v, want horizontal flip", got)
	}

	e.RemoveEffect(false, nil)
	if !c.content.IsIdentity() {
		t.Errorf("content transform after removal = %+v, want identity", c.content)
	}
}

func TestNewToRightDoesNotMirror(t *testing.T) {
	_, c, _, _ := newTestEffect(t, ToRight)
	if !c.content.IsIdentity() {
		t.Errorf("content transform = %+v, want identity", c.content)
	}
}

func TestNilColorIsTransparent(t *testing.T) {
	c := newFakeContainer()
	New(c, 0.5, ToRight, nil)
	if _, _, _, a := c.surface(KindCircle).spec.Fill.RGBA(); a != 0 {
		t.Errorf("fill alpha = %d, want 0", a)
	}
	if c.surface(KindIcon).spec.Image != nil {
		t.Error("icon surface should be empty without a configured icon")
	}
}

func TestResolveBackground(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	tests := []struct {
		name  string
		chain []color.Color
		want  color.Color
	}{
		{"empty", nil, color.White},
		{"all transparent", []color.Color{nil, color.Transparent}, color.White},
		{"first opaque wins", []color.Color{color.Transparent, red, color.Black}, red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBackground(tt.chain); got != tt.want {
				t.Errorf("ResolveBackground() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateProgressAppliesFrame(t *testing.T) {
	e, c, _, _ := newTestEffect(t, ToRight)

	e.UpdateProgress(0.35)
	f := e.Frame()

	snap := c.surface(KindSnapshot)
	if snap.position != f.Snapshot.Position || snap.opacity != f.Snapshot.Opacity {
		t.Errorf("snapshot = %+v/%f, want %+v/%f", snap.position, snap.opacity, f.Snapshot.Position, f.Snapshot.Opacity)
	}
	if got, want := c.surface(KindCircle).path.SVG(), f.Circle.Path.SVG(); got != want {
		t.Errorf("circle path = %q, want %q", got, want)
	}
	icon := c.surface(KindIcon)
	if icon.position != f.Icon.Position || icon.transform != f.Icon.Transform() {
		t.Errorf("icon = %+v %+v", icon.position, icon.transform)
	}
}

func TestUpdateProgressClampsAndIsIdempotent(t *testing.T) {
	e, c, _, _ := newTestEffect(t, ToRight)

	e.UpdateProgress(2)
	if e.Progress() != 1 {
		t.Errorf("Progress() = %f, want 1", e.Progress())
	}
	first := c.surface(KindEdge).path.SVG()
	e.UpdateProgress(1)
	if got := c.surface(KindEdge).path.SVG(); got != first {
		t.Errorf("second update changed the edge: %q vs %q", got, first)
	}

	e.UpdateProgress(-3)
	if e.Progress() != 0 {
		t.Errorf("Progress() = %f, want 0", e.Progress())
	}
}

func TestUpdateProgressAfterRelease(t *testing.T) {
	e, c, _, _ := newTestEffect(t, ToRight)
	c.alive = false

	circle := c.surface(KindCircle)
	before := circle.updates
	e.UpdateProgress(0.5)
	if circle.updates != before {
		t.Error("updates should be ignored once the container is released")
	}
	if e.Progress() != 0 {
		t.Errorf("Progress() = %f, want unchanged 0", e.Progress())
	}
}

func TestAnimateToProgress(t *testing.T) {
	e, _, clock, driver := newTestEffect(t, ToRight)
	e.UpdateProgress(0.5)

	calls := 0
	e.AnimateToProgress(1, func() { calls++ })
	if !e.Animating() {
		t.Fatal("animation should be running")
	}

	// Halfway through the 175ms animation.
	clock.Advance(87500 * time.Microsecond)
	driver.Tick()
	if math.Abs(e.Progress()-0.75) > 1e-9 {
		t.Errorf("mid-animation progress = %f, want 0.75", e.Progress())
	}
	if calls != 0 {
		t.Error("completion ran early")
	}

	settle(driver, clock)
	if e.Progress() != 1 {
		t.Errorf("final progress = %f, want 1", e.Progress())
	}
	if calls != 1 {
		t.Errorf("completion ran %d times, want 1", calls)
	}
	if e.Animating() {
		t.Error("animation should have finished")
	}
}

func TestAnimateToSameProgress(t *testing.T) {
	e, _, clock, driver := newTestEffect(t, ToRight)
	e.UpdateProgress(0.3)

	calls := 0
	e.AnimateToProgress(0.3, func() { calls++ })
	if n := settle(driver, clock); n != 1 {
		t.Errorf("zero-length animation took %d ticks, want 1", n)
	}
	if calls != 1 || e.Progress() != 0.3 {
		t.Errorf("calls=%d progress=%f", calls, e.Progress())
	}
}

func TestAnimationSuperseded(t *testing.T) {
	tests := []struct {
		name      string
		supersede func(e *Effect)
	}{
		{"by update", func(e *Effect) { e.UpdateProgress(0.2) }},
		{"by animation", func(e *Effect) { e.AnimateToProgress(0, nil) }},
		{"by removal", func(e *Effect) { e.RemoveEffect(false, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, clock, driver := newTestEffect(t, ToRight)
			e.UpdateProgress(0.5)

			calls := 0
			e.AnimateToProgress(1, func() { calls++ })
			clock.Advance(10 * time.Millisecond)
			driver.Tick()

			tt.supersede(e)
			settle(driver, clock)

			if calls != 0 {
				t.Errorf("superseded completion ran %d times", calls)
			}
		})
	}
}

func TestRemoveEffectImmediate(t *testing.T) {
	e, c, _, driver := newTestEffect(t, ToRight)

	calls := 0
	e.RemoveEffect(false, func() { calls++ })
	for _, s := range c.surfaces {
		if !s.removed {
			t.Errorf("%v surface not removed", s.spec.Kind)
		}
	}
	if calls != 1 {
		t.Errorf("completion ran %d times, want 1", calls)
	}
	if !driver.Idle() {
		t.Error("immediate removal should not schedule work")
	}

	e.RemoveEffect(false, func() { calls++ })
	e.RemoveEffect(true, func() { calls++ })
	if calls != 1 {
		t.Errorf("repeated removal invoked completion again (%d calls)", calls)
	}
}

func TestRemoveEffectAnimated(t *testing.T) {
	e, c, clock, driver := newTestEffect(t, ToRight)
	mask := c.surface(KindMask)

	calls := 0
	e.RemoveEffect(true, func() { calls++ })

	if !c.surface(KindCircle).removed || !c.surface(KindSnapshot).removed {
		t.Error("shapes and snapshot should go immediately")
	}
	if mask.removed {
		t.Fatal("mask should stay while fading")
	}

	clock.Advance(175 * time.Millisecond)
	driver.Tick()
	if math.Abs(mask.opacity-0.5) > 1e-9 {
		t.Errorf("mask opacity halfway = %f, want 0.5", mask.opacity)
	}

	settle(driver, clock)
	if !mask.removed || mask.opacity != 0 {
		t.Errorf("mask removed=%v opacity=%f after fade", mask.removed, mask.opacity)
	}
	if calls != 1 {
		t.Errorf("completion ran %d times, want 1", calls)
	}
}

func TestUpdatesAfterRemovalAreIgnored(t *testing.T) {
	e, c, _, _ := newTestEffect(t, ToRight)
	e.RemoveEffect(false, nil)

	circle := c.surface(KindCircle)
	before := circle.updates
	e.UpdateProgress(0.9)
	e.AnimateToProgress(1, nil)
	if circle.updates != before {
		t.Error("removed effect should not touch its surfaces")
	}
}

func TestInertEffectWithoutContainer(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	driver := NewDriver(clock)
	e := New(nil, 0.5, ToLeft, testConfig, WithDriver(driver))

	e.UpdateProgress(0.5)
	if e.Progress() != 0 {
		t.Errorf("Progress() = %f, want 0", e.Progress())
	}

	animated := 0
	e.AnimateToProgress(1, func() { animated++ })
	if n := settle(driver, clock); n != 1 {
		t.Errorf("inert animation took %d ticks, want 1", n)
	}
	if animated != 1 || e.Progress() != 0 {
		t.Errorf("completion ran %d times, progress %f", animated, e.Progress())
	}

	removed := 0
	e.RemoveEffect(true, func() { removed++ })
	e.RemoveEffect(false, func() { removed++ })
	if removed != 1 || !driver.Idle() {
		t.Errorf("removal completion ran %d times, driver idle %v", removed, driver.Idle())
	}
}

func TestAnimateAfterReleaseStillCompletes(t *testing.T) {
	e, c, clock, driver := newTestEffect(t, ToRight)
	e.UpdateProgress(0.4)
	c.alive = false

	circle := c.surface(KindCircle)
	before := circle.updates
	calls := 0
	e.AnimateToProgress(0, func() { calls++ })
	settle(driver, clock)

	if calls != 1 {
		t.Errorf("completion ran %d times, want 1", calls)
	}
	if circle.updates != before || e.Progress() != 0.4 {
		t.Errorf("released container was drawn on (progress %f)", e.Progress())
	}
}

func TestRemoveAfterReleaseSkipsFade(t *testing.T) {
	e, c, _, driver := newTestEffect(t, ToRight)
	c.alive = false

	calls := 0
	e.RemoveEffect(true, func() { calls++ })
	if calls != 1 || !c.surface(KindMask).removed {
		t.Errorf("completion ran %d times, mask removed %v", calls, c.surface(KindMask).removed)
	}
	if !driver.Idle() {
		t.Error("no fade should be scheduled on a released container")
	}
}

func TestHooksReported(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	driver := NewDriver(clock)
	hooks := &recordingHooks{}
	e := New(newFakeContainer(), 0.5, ToRight, testConfig, WithDriver(driver), WithHooks(hooks))

	e.AnimateToProgress(1, nil)
	settle(driver, clock)
	e.RemoveEffect(false, nil)

	if hooks.started != 1 || hooks.completed != 1 || hooks.ended != 1 {
		t.Errorf("hooks = %+v, want one of each", *hooks)
	}
}

func TestEffectIDsAreUnique(t *testing.T) {
	a, _, _, _ := newTestEffect(t, ToRight)
	b, _, _, _ := newTestEffect(t, ToRight)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs %q and %q should be distinct", a.ID(), b.ID())
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"right", ToRight, false},
		{"L", ToLeft, false},
		{" left ", ToLeft, false},
		{"up", ToRight, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
