package trace

import (
	"time"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

// Frame is the state of a replay after one display frame.
type Frame struct {
	Index    int
	At       time.Duration
	State    swipe.State
	Progress float64
	// Events is how many trace events were delivered during this frame.
	Events int
}

// Replay feeds tr to cell one display frame at a time. Each frame moves
// clock to the frame time, delivers the events due by then, ticks the
// cell's driver and calls onFrame. It stops once every event is delivered
// and no animation is left, or after maxFrames, and returns the number of
// frames played.
//
// clock must be the clock of the cell's driver.
func Replay(tr *Trace, cell *swipe.Cell, clock *effect.ManualClock, frame time.Duration, maxFrames int, onFrame func(Frame)) int {
	if frame <= 0 {
		frame = time.Second / 60
	}
	driver := cell.Driver()
	start := clock.Now()
	next := 0

	for i := 0; i < maxFrames; i++ {
		at := time.Duration(i) * frame
		clock.Advance(start.Add(at).Sub(clock.Now()))

		delivered := 0
		for next < len(tr.Events) && tr.Events[next].At <= at {
			cell.Handle(tr.Events[next].Event)
			next++
			delivered++
		}
		driver.Tick()

		if onFrame != nil {
			f := Frame{Index: i, At: at, State: cell.State(), Events: delivered}
			if e := cell.Effect(); e != nil {
				f.Progress = e.Progress()
			}
			onFrame(f)
		}
		if next == len(tr.Events) && driver.Idle() {
			return i + 1
		}
	}
	return maxFrames
}

// Recorder captures live events into a trace, stamping each with the time
// since the first one.
type Recorder struct {
	clock effect.Clock
	start time.Time
	trace *Trace
}

// NewRecorder returns a recorder reading time from clock.
func NewRecorder(clock effect.Clock, name string, size geom.Size) *Recorder {
	return &Recorder{clock: clock, trace: New(name, size)}
}

// Record appends ev. A began event restarts the recording, so only the
// latest gesture is kept.
func (r *Recorder) Record(ev swipe.Event) {
	now := r.clock.Now()
	if ev.Phase == swipe.PhaseBegan || len(r.trace.Events) == 0 {
		r.start = now
		r.trace.Events = r.trace.Events[:0]
	}
	r.trace.Events = append(r.trace.Events, TimedEvent{At: now.Sub(r.start), Event: ev})
}

// Len returns the number of events recorded.
func (r *Recorder) Len() int { return len(r.trace.Events) }

// Complete reports whether the recorded gesture has ended.
func (r *Recorder) Complete() bool {
	ev, ok := r.trace.Final()
	return ok && ev.Phase.Terminal()
}

// Trace returns the recording.
func (r *Recorder) Trace() *Trace { return r.trace }
