// Package scene assembles demo rows with a live effect for the CLI and the
// preview server.
package scene

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gooeyswipe/pkg/config"
	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

// Builder creates scenes from one configuration. Actions are resolved once.
type Builder struct {
	cfg      *config.Config
	delegate swipe.Delegate
	logger   *log.Logger
}

// NewBuilder resolves the configured actions.
func NewBuilder(cfg *config.Config, logger *log.Logger) (*Builder, error) {
	delegate, err := cfg.Delegate(render.DefaultIconSize, nil)
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, delegate: delegate, logger: logger}, nil
}

// Config returns the configuration scenes are built from.
func (b *Builder) Config() *config.Config { return b.cfg }

// Size returns the configured row size.
func (b *Builder) Size() geom.Size {
	return geom.Sz(b.cfg.Canvas.Width, b.cfg.Canvas.Height)
}

// Still describes a single frame.
type Still struct {
	Direction effect.Direction
	Progress  float64
	VPos      float64
	Row       int
}

// Validate rejects out-of-range input.
func (s Still) Validate() error {
	if err := errors.ValidateProgress(s.Progress); err != nil {
		return err
	}
	return errors.ValidateVerticalPosition(s.VPos)
}

// Frame returns a demo row with an effect drawn at s.Progress.
func (b *Builder) Frame(s Still) (*render.Canvas, *effect.Effect, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	action, ok := b.delegate.ActionConfig(s.Direction)
	if !ok {
		return nil, nil, errors.New(errors.ErrCodeNotFound, "no action configured for %s swipes", s.Direction)
	}
	canvas := render.DemoCanvas(b.Size(), s.Row)
	e := effect.New(canvas, s.VPos, s.Direction, &action.Effect,
		effect.WithParams(b.cfg.Params()),
		effect.WithLogger(b.logger),
	)
	e.UpdateProgress(s.Progress)
	return canvas, e, nil
}

// Simulation is one replay of a trace on a demo row.
type Simulation struct {
	Canvas    *render.Canvas
	Cell      *swipe.Cell
	Clock     *effect.ManualClock
	Triggered []effect.Direction
}

// NewSimulation returns an idle cell on demo row `row` driven by a manual
// clock. Committed deleting actions keep their final frame; call Cell.Reset
// to emulate the row going away.
func (b *Builder) NewSimulation(row int) *Simulation {
	sim := &Simulation{
		Canvas: render.DemoCanvas(b.Size(), row),
		Clock:  effect.NewManualClock(time.Unix(0, 0)),
	}
	delegate := swipe.DelegateFuncs{
		Config: b.delegate.ActionConfig,
		Triggered: func(dir effect.Direction) {
			sim.Triggered = append(sim.Triggered, dir)
		},
	}
	sim.Cell = swipe.NewCell(sim.Canvas, delegate, effect.NewDriver(sim.Clock),
		swipe.WithParams(b.cfg.Params()),
		swipe.WithLogger(b.logger),
	)
	return sim
}

// Run replays tr at the configured frame rate, for at most maxFrames, and
// returns the number of frames played.
func (sim *Simulation) Run(tr *trace.Trace, frame time.Duration, maxFrames int, onFrame func(trace.Frame)) int {
	return trace.Replay(tr, sim.Cell, sim.Clock, frame, maxFrames, onFrame)
}

// RecordGIF replays tr and captures every frame.
func (b *Builder) RecordGIF(tr *trace.Trace, row, maxFrames int) (*render.GIFRecorder, *Simulation) {
	frame := b.cfg.Canvas.FrameTime()
	rec := render.NewGIFRecorder(b.cfg.Canvas.Scale/2, frame)
	sim := b.NewSimulation(row)
	sim.Run(tr, frame, maxFrames, func(trace.Frame) { rec.Capture(sim.Canvas) })
	return rec, sim
}
