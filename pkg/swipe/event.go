package swipe

import (
	"strings"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
)

// Phase is the stage of a drag gesture.
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
	PhaseFailed
)

var phaseNames = [...]string{"began", "changed", "ended", "cancelled", "failed"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Terminal reports whether the phase ends a gesture.
func (p Phase) Terminal() bool {
	return p == PhaseEnded || p == PhaseCancelled || p == PhaseFailed
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(s string) (Phase, error) {
	s = strings.ToLower(s)
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return PhaseFailed, errors.New(errors.ErrCodeInvalidTrace, "unknown gesture phase %q", s)
}

// Event is one sample of a drag gesture, in container coordinates.
// Translation is relative to where the gesture began.
type Event struct {
	Phase       Phase      `json:"phase"`
	Translation geom.Point `json:"translation"`
	Location    geom.Point `json:"location"`
	Velocity    geom.Point `json:"velocity"`
}

// State is where the interaction state machine is.
type State int

const (
	StateIdle State = iota
	StateTracking
	StateCommitting
	StateCancelling
)

var stateNames = [...]string{"idle", "tracking", "committing", "cancelling"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ParseState converts a state name back to a State.
func ParseState(s string) (State, error) {
	s = strings.ToLower(s)
	for i, name := range stateNames {
		if name == s {
			return State(i), nil
		}
	}
	return StateIdle, errors.New(errors.ErrCodeInvalidInput, "unknown state %q", s)
}
