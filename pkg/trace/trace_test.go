package trace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name  string
		g     Gesture
		final swipe.Phase
		endX  float64
	}{
		{"right", Gesture{Direction: effect.ToRight, Distance: 150}, swipe.PhaseEnded, 150},
		{"left", Gesture{Direction: effect.ToLeft, Distance: 90}, swipe.PhaseEnded, -90},
		{"cancelled", Gesture{Direction: effect.ToRight, Distance: 150, Final: swipe.PhaseCancelled}, swipe.PhaseCancelled, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Synthesize(tt.g)
			if err := tr.Validate(); err != nil {
				t.Fatalf("synthesized trace invalid: %v", err)
			}
			// began, changed every 16ms before 300ms, release
			if n := len(tr.Events); n != 20 {
				t.Errorf("got %d events, want 20", n)
			}
			first, last := tr.Events[0], tr.Events[len(tr.Events)-1]
			if first.Phase != swipe.PhaseBegan || first.Velocity.X*tt.g.Direction.Sign() <= 0 {
				t.Errorf("began = %+v", first)
			}
			if last.Phase != tt.final || last.At != 300*time.Millisecond {
				t.Errorf("release = %+v", last)
			}
			if diff := last.Translation.X - tt.endX; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("final translation = %g, want %g", last.Translation.X, tt.endX)
			}
			if last.Location.Y != 44 {
				t.Errorf("location y = %g, want middle of the row", last.Location.Y)
			}
		})
	}
}

func TestSynthesizeZeroDistanceKeepsDirection(t *testing.T) {
	tr := Synthesize(Gesture{Direction: effect.ToRight})
	if tr.Events[0].Velocity.X <= 0 {
		t.Errorf("began velocity = %g, want positive", tr.Events[0].Velocity.X)
	}
}

func TestValidate(t *testing.T) {
	ev := func(at time.Duration, p swipe.Phase) TimedEvent {
		return TimedEvent{At: at, Event: swipe.Event{Phase: p}}
	}
	size := geom.Sz(375, 88)
	tests := []struct {
		name   string
		events []TimedEvent
		ok     bool
	}{
		{"ok", []TimedEvent{ev(0, swipe.PhaseBegan), ev(5, swipe.PhaseChanged), ev(9, swipe.PhaseEnded)}, true},
		{"unfinished", []TimedEvent{ev(0, swipe.PhaseBegan), ev(5, swipe.PhaseChanged)}, true},
		{"empty", nil, false},
		{"no began", []TimedEvent{ev(0, swipe.PhaseChanged)}, false},
		{"backwards", []TimedEvent{ev(5, swipe.PhaseBegan), ev(2, swipe.PhaseChanged)}, false},
		{"two gestures", []TimedEvent{ev(0, swipe.PhaseBegan), ev(1, swipe.PhaseBegan)}, false},
		{"early end", []TimedEvent{ev(0, swipe.PhaseBegan), ev(1, swipe.PhaseEnded), ev(2, swipe.PhaseChanged)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Trace{Size: size, Events: tt.events}
			err := tr.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, errors.ErrCodeInvalidTrace) {
				t.Errorf("error = %v, want INVALID_TRACE", err)
			}
		})
	}

	bad := &Trace{Name: "../x", Size: size, Events: []TimedEvent{ev(0, swipe.PhaseBegan)}}
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidTrace) {
		t.Errorf("bad name error = %v", err)
	}
}

type replayHarness struct {
	canvas    *render.Canvas
	cell      *swipe.Cell
	clock     *effect.ManualClock
	triggered []effect.Direction
}

func newReplayHarness() *replayHarness {
	h := &replayHarness{
		canvas: render.DemoCanvas(DefaultSize, 0),
		clock:  effect.NewManualClock(time.Unix(0, 0)),
	}
	delegate := swipe.DelegateFuncs{
		Config: func(dir effect.Direction) (swipe.ActionConfig, bool) {
			return swipe.ActionConfig{Effect: effect.Config{Color: render.ActionGreen}}, true
		},
		Triggered: func(dir effect.Direction) { h.triggered = append(h.triggered, dir) },
	}
	h.cell = swipe.NewCell(h.canvas, delegate, effect.NewDriver(h.clock))
	return h
}

func TestReplayCommit(t *testing.T) {
	h := newReplayHarness()
	tr := Synthesize(Gesture{Direction: effect.ToRight, Distance: 150})

	var states []swipe.State
	var delivered int
	n := Replay(tr, h.cell, h.clock, time.Second/60, 600, func(f Frame) {
		delivered += f.Events
		if len(states) == 0 || states[len(states)-1] != f.State {
			states = append(states, f.State)
		}
	})

	if n >= 600 {
		t.Fatal("replay did not settle")
	}
	if delivered != len(tr.Events) {
		t.Errorf("delivered %d events, want %d", delivered, len(tr.Events))
	}
	want := []swipe.State{swipe.StateTracking, swipe.StateCommitting, swipe.StateIdle}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states = %v, want %v", states, want)
		}
	}
	if len(h.triggered) != 1 || h.triggered[0] != effect.ToRight {
		t.Errorf("triggered = %v", h.triggered)
	}
	if h.cell.Effect() != nil || len(h.canvas.Layers()) != 0 {
		t.Error("non-deleting commit should leave a clean row")
	}
}

func TestReplayCancel(t *testing.T) {
	h := newReplayHarness()
	tr := Synthesize(Gesture{Direction: effect.ToLeft, Distance: 60})

	var maxProgress float64
	Replay(tr, h.cell, h.clock, time.Second/60, 600, func(f Frame) {
		maxProgress = max(maxProgress, f.Progress)
	})

	if len(h.triggered) != 0 {
		t.Errorf("short drag triggered %v", h.triggered)
	}
	if maxProgress <= 0 || maxProgress >= 0.7 {
		t.Errorf("max progress = %g, want between 0 and gap", maxProgress)
	}
	if h.cell.State() != swipe.StateIdle || h.cell.Effect() != nil {
		t.Errorf("state = %v, effect = %v", h.cell.State(), h.cell.Effect())
	}
}

func TestRecorder(t *testing.T) {
	clock := effect.NewManualClock(time.Unix(100, 0))
	r := NewRecorder(clock, "live", DefaultSize)

	r.Record(swipe.Event{Phase: swipe.PhaseChanged})
	clock.Advance(time.Second)
	r.Record(swipe.Event{Phase: swipe.PhaseBegan, Velocity: geom.Pt(10, 0)})
	clock.Advance(20 * time.Millisecond)
	r.Record(swipe.Event{Phase: swipe.PhaseChanged, Translation: geom.Pt(5, 0)})
	if r.Complete() {
		t.Error("gesture has not ended yet")
	}
	clock.Advance(30 * time.Millisecond)
	r.Record(swipe.Event{Phase: swipe.PhaseEnded, Translation: geom.Pt(9, 0)})

	tr := r.Trace()
	if r.Len() != 3 || !r.Complete() {
		t.Fatalf("recorded %d events, complete=%v", r.Len(), r.Complete())
	}
	if tr.Events[0].At != 0 || tr.Duration() != 50*time.Millisecond {
		t.Errorf("offsets = %v .. %v", tr.Events[0].At, tr.Duration())
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("recorded trace invalid: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	a := Synthesize(Gesture{Direction: effect.ToRight, Distance: 150, Name: "commit-right"})
	a.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := Synthesize(Gesture{Direction: effect.ToLeft, Distance: 40})
	b.CreatedAt = a.CreatedAt.Add(time.Hour)

	for _, tr := range []*Trace{b, a} {
		if err := store.Save(ctx, tr); err != nil {
			t.Fatal(err)
		}
	}

	for _, ref := range []string{a.ID, "commit-right", a.ID[:8]} {
		got, err := store.Get(ctx, ref)
		if err != nil {
			t.Errorf("Get(%q): %v", ref, err)
			continue
		}
		if got.ID != a.ID || len(got.Events) != len(a.Events) {
			t.Errorf("Get(%q) = %s", ref, got.ID)
		}
	}

	list, err := store.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != a.ID {
		t.Errorf("List = %v, %v; want oldest first", list, err)
	}

	dup := Synthesize(Gesture{Name: "commit-right"})
	if err := store.Save(ctx, dup); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate name error = %v", err)
	}

	if err := store.Delete(ctx, "commit-right"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, a.ID); !errors.Is(err, errors.ErrCodeTraceNotFound) {
		t.Errorf("deleted trace error = %v", err)
	}
	if err := store.Delete(ctx, "nope"); !errors.Is(err, errors.ErrCodeTraceNotFound) {
		t.Errorf("missing trace error = %v", err)
	}
}

func TestReadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, _ := NewFileStore(dir)
	tr := Synthesize(Gesture{Direction: effect.ToRight, Distance: 100})
	if err := store.Save(ctx, tr); err != nil {
		t.Fatal(err)
	}

	got, err := ReadFile(filepath.Join(dir, tr.ID+".json"))
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != tr.ID || got.Events[3].Phase != swipe.PhaseChanged {
		t.Errorf("ReadFile = %+v", got)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"events":[{"phase":"wiggle"}]}`), 0600)
	if _, err := ReadFile(bad); !errors.Is(err, errors.ErrCodeInvalidTrace) {
		t.Errorf("bad phase error = %v", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "none.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
