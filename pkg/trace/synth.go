package trace

import (
	"math"
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

// Gesture describes a synthetic drag.
type Gesture struct {
	Direction effect.Direction
	// Distance is how far the finger travels, in points.
	Distance float64
	// Duration is the time from began to release. Zero means 300ms.
	Duration time.Duration
	// VPos is where the finger sits, as a fraction of the row height. Zero
	// means the middle.
	VPos float64
	// Final is the release phase. Non-terminal values mean ended.
	Final swipe.Phase
	// Size is the row size. Zero means 375x88.
	Size geom.Size
	// Interval is the time between changed events. Zero means 16ms.
	Interval time.Duration
	Name     string
}

const (
	defaultGestureDuration = 300 * time.Millisecond
	defaultInterval        = 16 * time.Millisecond
)

// DefaultSize is the row size used when none is given.
var DefaultSize = geom.Sz(375, 88)

// Synthesize produces a began event, changed events along an ease-out
// curve and a release event at full distance.
func Synthesize(g Gesture) *Trace {
	if g.Duration <= 0 {
		g.Duration = defaultGestureDuration
	}
	if g.Interval <= 0 {
		g.Interval = defaultInterval
	}
	if g.Size.IsEmpty() {
		g.Size = DefaultSize
	}
	if g.VPos <= 0 {
		g.VPos = 0.5
	}
	if !g.Final.Terminal() {
		g.Final = swipe.PhaseEnded
	}
	distance := math.Max(g.Distance, 0)
	sign := g.Direction.Sign()
	secs := g.Duration.Seconds()

	startX := g.Size.W * 0.25
	if g.Direction == effect.ToLeft {
		startX = g.Size.W * 0.75
	}
	y := g.Size.H * g.VPos

	sample := func(phase swipe.Phase, at time.Duration) TimedEvent {
		t := math.Min(at.Seconds()/secs, 1)
		dx := sign * distance * (1 - math.Pow(1-t, 3))
		vx := sign * 3 * distance * (1 - t) * (1 - t) / secs
		return TimedEvent{
			At: at,
			Event: swipe.Event{
				Phase:       phase,
				Translation: geom.Pt(dx, 0),
				Location:    geom.Pt(startX+dx, y),
				Velocity:    geom.Pt(vx, 0),
			},
		}
	}

	tr := New(g.Name, g.Size)
	began := sample(swipe.PhaseBegan, 0)
	// The recognizer infers the direction from the initial velocity.
	if math.Abs(began.Velocity.X) < 1 {
		began.Velocity.X = sign
	}
	tr.Events = append(tr.Events, began)
	for at := g.Interval; at < g.Duration; at += g.Interval {
		tr.Events = append(tr.Events, sample(swipe.PhaseChanged, at))
	}
	tr.Events = append(tr.Events, sample(g.Final, g.Duration))
	return tr
}
