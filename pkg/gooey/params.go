package gooey

import (
	"fmt"
	"time"
)

// Default tuning values.
const (
	DefaultMaxWidth           = 170.0
	DefaultGapProgress        = 0.7
	DefaultCircleRadius       = 20.0
	DefaultMaxHeight          = 150.0
	DefaultEdgeWidthRate      = 0.35
	DefaultJointConstringency = 2.0
	DefaultEasingBand         = 0.15
	DefaultBaseDuration       = 350 * time.Millisecond
)

// Params holds the tunables shared by the kernel, the effect controller and
// the interaction state machine.
type Params struct {
	// MaxWidth is the horizontal travel, in points, that maps to progress 1.
	MaxWidth float64 `json:"max_width"`

	// GapProgress separates the approach phase (circle travels, edge grows)
	// from the commit phase (circle shrinks, icon disappears).
	GapProgress float64 `json:"gap_progress"`

	// CircleRadius is the radius of the travelling circle before the gap.
	CircleRadius float64 `json:"circle_radius"`

	// MaxHeight caps the height of the edge shape.
	MaxHeight float64 `json:"max_height"`

	// EdgeWidthRate scales the widest edge relative to MaxWidth×GapProgress.
	EdgeWidthRate float64 `json:"edge_width_rate"`

	// JointConstringency controls how fast the joint's control points slide
	// towards the edge tip.
	JointConstringency float64 `json:"joint_constringency"`

	// EasingBand is the width, in progress units, of the resistance band
	// that ends at GapProgress during interactive drags.
	EasingBand float64 `json:"easing_band"`

	// BaseDuration is the time a programmatic animation takes to cover the
	// full [0,1] progress range.
	BaseDuration time.Duration `json:"base_duration"`
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		MaxWidth:           DefaultMaxWidth,
		GapProgress:        DefaultGapProgress,
		CircleRadius:       DefaultCircleRadius,
		MaxHeight:          DefaultMaxHeight,
		EdgeWidthRate:      DefaultEdgeWidthRate,
		JointConstringency: DefaultJointConstringency,
		EasingBand:         DefaultEasingBand,
		BaseDuration:       DefaultBaseDuration,
	}
}

// Validate reports the first parameter that would make the geometry
// undefined.
func (p Params) Validate() error {
	switch {
	case p.MaxWidth <= 0:
		return fmt.Errorf("max_width must be positive, got %g", p.MaxWidth)
	case p.GapProgress <= 0 || p.GapProgress >= 1:
		return fmt.Errorf("gap_progress must be in (0, 1), got %g", p.GapProgress)
	case p.CircleRadius <= 0:
		return fmt.Errorf("circle_radius must be positive, got %g", p.CircleRadius)
	case p.MaxHeight <= 0:
		return fmt.Errorf("max_height must be positive, got %g", p.MaxHeight)
	case p.EdgeWidthRate < 0:
		return fmt.Errorf("edge_width_rate must not be negative, got %g", p.EdgeWidthRate)
	case p.JointConstringency < 0:
		return fmt.Errorf("joint_constringency must not be negative, got %g", p.JointConstringency)
	case p.EasingBand < 0 || p.EasingBand > p.GapProgress:
		return fmt.Errorf("easing_band must be in [0, gap_progress], got %g", p.EasingBand)
	case p.BaseDuration < 0:
		return fmt.Errorf("base_duration must not be negative, got %s", p.BaseDuration)
	}
	return nil
}
