package swipe

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/gooey"
	"github.com/matzehuels/gooeyswipe/pkg/observability"
)

// ActionConfig is what a delegate offers for one swipe direction.
type ActionConfig struct {
	Effect effect.Config

	// Deleting actions leave the final shape on screen after the commit;
	// the owner is expected to remove the row and Reset the cell.
	Deleting bool
}

// Delegate supplies actions and learns about triggered ones.
type Delegate interface {
	// ActionConfig returns the action for dir, or false if swiping that way
	// does nothing.
	ActionConfig(dir effect.Direction) (ActionConfig, bool)

	// ActionTriggered is called once per committed swipe, after the commit
	// animation has finished.
	ActionTriggered(dir effect.Direction)
}

// DelegateFuncs adapts two functions to Delegate. A nil Config offers no
// action in either direction.
type DelegateFuncs struct {
	Config    func(dir effect.Direction) (ActionConfig, bool)
	Triggered func(dir effect.Direction)
}

func (d DelegateFuncs) ActionConfig(dir effect.Direction) (ActionConfig, bool) {
	if d.Config == nil {
		return ActionConfig{}, false
	}
	return d.Config(dir)
}

func (d DelegateFuncs) ActionTriggered(dir effect.Direction) {
	if d.Triggered != nil {
		d.Triggered(dir)
	}
}

// Option configures a Cell.
type Option func(*Cell)

// WithParams overrides the tuning shared with the effect.
func WithParams(p gooey.Params) Option {
	return func(c *Cell) { c.params = p }
}

// WithLogger sets the logger for the cell and its effects.
func WithLogger(l *log.Logger) Option {
	return func(c *Cell) { c.logger = l }
}

// WithHooks overrides the registered interaction hooks.
func WithHooks(h observability.InteractionHooks) Option {
	return func(c *Cell) { c.hooks = h }
}

// WithEffectOptions passes extra options to every effect the cell creates.
func WithEffectOptions(opts ...effect.Option) Option {
	return func(c *Cell) { c.effectOpts = append(c.effectOpts, opts...) }
}

// Cell turns drag gestures on a container into effect sessions.
//
// A Cell is not safe for concurrent use. Feed it events and tick its driver
// from one goroutine.
type Cell struct {
	container  effect.Container
	delegate   Delegate
	driver     *effect.Driver
	params     gooey.Params
	logger     *log.Logger
	hooks      observability.InteractionHooks
	effectOpts []effect.Option

	state     State
	enabled   bool
	effect    *effect.Effect
	action    ActionConfig
	hasAction bool
	resets    int
}

// NewCell returns an idle cell on container. A nil driver means a private
// wall-clock driver.
func NewCell(container effect.Container, delegate Delegate, driver *effect.Driver, opts ...Option) *Cell {
	c := &Cell{
		container: container,
		delegate:  delegate,
		driver:    driver,
		params:    gooey.DefaultParams(),
		enabled:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.driver == nil {
		c.driver = effect.NewDriver(nil)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.hooks == nil {
		c.hooks = observability.Interaction()
	}
	return c
}

// State returns the current interaction state.
func (c *Cell) State() State { return c.state }

// Enabled reports whether the gesture recognizer accepts events.
func (c *Cell) Enabled() bool { return c.enabled }

// Effect returns the live effect session, if any.
func (c *Cell) Effect() *effect.Effect { return c.effect }

// Action returns the action chosen when the current gesture began.
func (c *Cell) Action() (ActionConfig, bool) { return c.action, c.hasAction }

// Driver returns the driver animating the cell's effects.
func (c *Cell) Driver() *effect.Driver { return c.driver }

// Params returns the cell's tuning.
func (c *Cell) Params() gooey.Params { return c.params }

// RecognizerResets counts how often a rejected gesture toggled the
// recognizer off and on.
func (c *Cell) RecognizerResets() int { return c.resets }

// ShouldBegin reports whether a drag with the given initial translation may
// start. Drags with any vertical component are left to the enclosing list.
func (c *Cell) ShouldBegin(translation geom.Point) bool {
	return math.Abs(translation.Y) == 0
}

// Handle feeds one gesture event to the state machine. Events arriving while
// the recognizer is disabled are dropped.
func (c *Cell) Handle(ev Event) {
	if !c.enabled {
		c.logger.Debug("recognizer disabled, dropping event", "phase", ev.Phase)
		return
	}
	switch ev.Phase {
	case PhaseBegan:
		c.began(ev)
	case PhaseChanged:
		c.changed(ev)
	case PhaseEnded, PhaseCancelled, PhaseFailed:
		c.released(ev)
	}
}

// Reset prepares the cell for reuse: any effect is removed without
// animation and the recognizer is re-enabled.
func (c *Cell) Reset() {
	if c.effect != nil {
		c.effect.RemoveEffect(false, nil)
	}
	c.effect = nil
	c.action = ActionConfig{}
	c.hasAction = false
	c.enabled = true
	c.state = StateIdle
}

func (c *Cell) began(ev Event) {
	dir := effect.ToLeft
	if ev.Velocity.X > 0 {
		dir = effect.ToRight
	}

	if c.effect != nil {
		c.reject(dir, "effect already active")
		return
	}
	if c.delegate == nil {
		c.reject(dir, "no delegate")
		return
	}
	action, ok := c.delegate.ActionConfig(dir)
	if !ok {
		c.reject(dir, "no action configured")
		return
	}

	c.action = action
	c.hasAction = true

	vpos := 0.5
	if h := c.container.Size().H; h > 0 {
		vpos = ev.Location.Y / h
	}

	opts := append([]effect.Option{
		effect.WithParams(c.params),
		effect.WithDriver(c.driver),
		effect.WithLogger(c.logger),
	}, c.effectOpts...)
	c.effect = effect.New(c.container, vpos, dir, &action.Effect, opts...)
	c.state = StateTracking
	c.logger.Debug("gesture began", "direction", dir, "vpos", vpos)
}

func (c *Cell) reject(dir effect.Direction, reason string) {
	// The recognizer is toggled off and on, which cancels the gesture in
	// flight. The cell stays idle, so the rest of it is ignored.
	c.resets++
	c.hooks.OnGestureRejected(dir.String(), reason)
	c.logger.Debug("gesture rejected", "direction", dir, "reason", reason)
}

func (c *Cell) changed(ev Event) {
	if c.state != StateTracking || c.effect == nil {
		return
	}
	raw := c.directed(ev.Translation.X / c.params.MaxWidth)
	c.effect.UpdateProgress(EffectProgress(raw, c.params.GapProgress, c.params.EasingBand))
}

// directed folds raw onto the effect's direction; drags the wrong way map
// to 0.
func (c *Cell) directed(raw float64) float64 {
	if !c.inDirection(raw) {
		return 0
	}
	return math.Abs(raw)
}

func (c *Cell) inDirection(raw float64) bool {
	dir := c.effect.Direction()
	return !(raw < 0 && dir == effect.ToRight || raw > 0 && dir == effect.ToLeft)
}

func (c *Cell) released(ev Event) {
	if c.state != StateTracking || c.effect == nil {
		return
	}
	c.enabled = false

	e := c.effect
	raw := ev.Translation.X / c.params.MaxWidth
	commit := ev.Phase == PhaseEnded && c.inDirection(raw) && math.Abs(raw) >= c.params.GapProgress

	c.hooks.OnRelease(e.ID(), e.Direction().String(), math.Abs(raw), commit)
	c.logger.Debug("gesture released", "phase", ev.Phase, "raw", raw, "commit", commit)

	if commit {
		c.state = StateCommitting
		e.AnimateToProgress(1, func() { c.committed(e) })
		return
	}
	c.state = StateCancelling
	e.AnimateToProgress(0, func() { c.cancelled(e) })
}

func (c *Cell) committed(e *effect.Effect) {
	deleting := c.action.Deleting
	c.state = StateIdle

	c.hooks.OnActionTriggered(e.ID(), e.Direction().String())
	c.delegate.ActionTriggered(e.Direction())

	if !deleting {
		e.RemoveEffect(true, func() {
			if c.effect == e {
				c.effect = nil
			}
		})
	}
	c.enabled = true
}

func (c *Cell) cancelled(e *effect.Effect) {
	e.RemoveEffect(false, nil)
	if c.effect == e {
		c.effect = nil
	}
	c.state = StateIdle
	c.enabled = true
}
