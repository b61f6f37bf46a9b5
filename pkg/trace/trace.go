// Package trace records, synthesizes and replays drag gestures.
//
// A [Trace] is a timed list of [swipe.Event]s plus the row size it was
// captured on. Traces are stored as JSON by a [FileStore] and replayed
// against a [swipe.Cell] frame by frame with a manual clock, which makes a
// replay deterministic:
//
//	tr := trace.Synthesize(trace.Gesture{Direction: effect.ToRight, Distance: 150})
//	clock := effect.NewManualClock(time.Time{})
//	cell := swipe.NewCell(canvas, delegate, effect.NewDriver(clock))
//	trace.Replay(tr, cell, clock, time.Second/60, 600, func(f trace.Frame) { ... })
package trace

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

// TimedEvent is a gesture event at an offset from the start of the trace.
type TimedEvent struct {
	At time.Duration `json:"at"`
	swipe.Event
}

// Trace is one recorded or synthesized gesture.
type Trace struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Size      geom.Size    `json:"size"`
	Events    []TimedEvent `json:"events"`
}

// New returns an empty trace with a fresh ID.
func New(name string, size geom.Size) *Trace {
	return &Trace{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Size:      size,
	}
}

// Duration returns the offset of the last event.
func (t *Trace) Duration() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].At
}

// Final returns the last event. ok is false for an empty trace.
func (t *Trace) Final() (ev TimedEvent, ok bool) {
	if len(t.Events) == 0 {
		return TimedEvent{}, false
	}
	return t.Events[len(t.Events)-1], true
}

// Validate checks that the trace is one well-formed gesture: it starts with
// began, offsets never decrease, and only the last event may be terminal.
func (t *Trace) Validate() error {
	if t.Name != "" {
		if err := errors.ValidateTraceName(t.Name); err != nil {
			return err
		}
	}
	if t.Size.IsEmpty() {
		return errors.New(errors.ErrCodeInvalidTrace, "trace size must be positive")
	}
	if len(t.Events) == 0 {
		return errors.New(errors.ErrCodeInvalidTrace, "trace has no events")
	}
	if t.Events[0].Phase != swipe.PhaseBegan {
		return errors.New(errors.ErrCodeInvalidTrace, "trace must start with began, got %s", t.Events[0].Phase)
	}
	for i, ev := range t.Events {
		if ev.At < 0 || (i > 0 && ev.At < t.Events[i-1].At) {
			return errors.New(errors.ErrCodeInvalidTrace, "event %d goes back in time", i)
		}
		if i > 0 && ev.Phase == swipe.PhaseBegan {
			return errors.New(errors.ErrCodeInvalidTrace, "event %d begins a second gesture", i)
		}
		if ev.Phase.Terminal() && i != len(t.Events)-1 {
			return errors.New(errors.ErrCodeInvalidTrace, "event %d ends the gesture early", i)
		}
	}
	return nil
}

// ReadFile decodes and validates a trace written by a FileStore or by hand.
func ReadFile(path string) (*Trace, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "trace %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	var tr Trace
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTrace, err, "parse %s", path)
	}
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}
