package effect

import (
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/gooey"
	"github.com/matzehuels/gooeyswipe/pkg/observability"
)

// Option configures an Effect.
type Option func(*options)

type options struct {
	params gooey.Params
	driver *Driver
	logger *log.Logger
	hooks  observability.EffectHooks
}

// WithParams overrides the kernel tuning.
func WithParams(p gooey.Params) Option {
	return func(o *options) { o.params = p }
}

// WithDriver animates the effect on d instead of a private wall-clock
// driver.
func WithDriver(d *Driver) Option {
	return func(o *options) { o.driver = d }
}

// WithLogger sets the logger used for debug notes.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHooks overrides the registered observability hooks.
func WithHooks(h observability.EffectHooks) Option {
	return func(o *options) { o.hooks = h }
}

// Effect is one live swipe session on a container.
//
// An Effect is not safe for concurrent use. It must be driven from the same
// goroutine that ticks its Driver.
type Effect struct {
	id        string
	container Container
	direction Direction
	kernel    *gooey.Kernel
	driver    *Driver
	logger    *log.Logger
	hooks     observability.EffectHooks

	mask, snapshot, circle, edge, joint, icon Surface

	progress     float64
	anim         *Task
	inert        bool
	removed      bool
	reportedGone bool
}

// New starts an effect on container. The container content is captured
// once, the six surfaces are stacked on top of it and the effect is drawn
// at progress 0.
//
// A nil container yields an inert effect: it draws nothing, but animations
// and removal still run their completions.
func New(container Container, verticalPosition float64, direction Direction, cfg *Config, opts ...Option) *Effect {
	o := options{params: gooey.DefaultParams()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.driver == nil {
		o.driver = NewDriver(nil)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.hooks == nil {
		o.hooks = observability.Effect()
	}
	if cfg == nil {
		cfg = &Config{}
	}

	e := &Effect{
		id:        uuid.NewString(),
		container: container,
		direction: direction,
		driver:    o.driver,
		hooks:     o.hooks,
	}
	e.logger = o.logger.With("effect", shortID(e.id), "direction", direction)

	var size geom.Size
	if container != nil {
		size = container.Size()
	}
	e.kernel = gooey.NewKernel(o.params, size, verticalPosition)

	if container == nil {
		e.mask, e.snapshot, e.circle, e.edge, e.joint, e.icon =
			nopSurface{}, nopSurface{}, nopSurface{}, nopSurface{}, nopSurface{}, nopSurface{}
		e.inert = true
		e.logger.Debug("effect created without a container")
		return e
	}

	bounds := geom.Rect{Size: size}
	fill := cfg.Color
	if fill == nil {
		fill = color.Transparent
	}

	e.mask = container.AddSurface(SurfaceSpec{
		Kind:       KindMask,
		Frame:      bounds,
		Background: ResolveBackground(container.Backgrounds()),
	})
	e.snapshot = container.AddSurface(SurfaceSpec{
		Kind:  KindSnapshot,
		Frame: bounds,
		Image: container.Capture(),
	})
	e.circle = container.AddSurface(SurfaceSpec{Kind: KindCircle, Frame: bounds, Fill: fill})
	e.edge = container.AddSurface(SurfaceSpec{Kind: KindEdge, Frame: bounds, Fill: fill})
	e.joint = container.AddSurface(SurfaceSpec{Kind: KindJoint, Frame: bounds, Fill: fill})

	iconSpec := SurfaceSpec{Kind: KindIcon, Image: cfg.Icon}
	if cfg.Icon != nil {
		b := cfg.Icon.Bounds()
		iconSpec.Frame = geom.R(0, 0, float64(b.Dx()), float64(b.Dy()))
	}
	e.icon = container.AddSurface(iconSpec)

	if direction == ToLeft {
		container.SetContentTransform(geom.ScaleAbout(-1, 1, bounds.Center()))
		e.snapshot.SetTransform(geom.Scale(-1, 1))
	}

	e.hooks.OnSessionStart(e.id, direction.String(), verticalPosition)
	e.logger.Debug("effect started", "pivot", e.kernel.PivotY(), "height", e.kernel.EffectHeight())

	e.apply(0)
	return e
}

// ID returns the session's unique identifier.
func (e *Effect) ID() string { return e.id }

// Direction returns the swipe direction.
func (e *Effect) Direction() Direction { return e.direction }

// Progress returns the last applied progress.
func (e *Effect) Progress() float64 { return e.progress }

// Kernel returns the geometry kernel of this session.
func (e *Effect) Kernel() *gooey.Kernel { return e.kernel }

// Frame returns the descriptors for the current progress.
func (e *Effect) Frame() gooey.Frame { return e.kernel.Frame(e.progress) }

// Removed reports whether RemoveEffect has been called.
func (e *Effect) Removed() bool { return e.removed }

// Animating reports whether a progress animation is in flight.
func (e *Effect) Animating() bool { return e.anim.Running() }

// UpdateProgress draws the effect at progress p, clamped to [0,1]. It
// supersedes any running progress animation.
func (e *Effect) UpdateProgress(p float64) {
	e.cancelAnimation()
	e.apply(p)
}

// AnimateToProgress animates linearly from the current progress to target
// over BaseDuration scaled by the distance. completion runs once, after the
// final update, unless the animation is superseded. On an inert effect, or
// once the container is released, nothing is drawn and completion runs on
// the next tick. A removed effect ignores the call.
func (e *Effect) AnimateToProgress(target float64, completion func()) {
	if e.removed {
		return
	}
	e.cancelAnimation()
	if !e.usable() {
		e.anim = e.driver.Schedule(e.taskKey("progress"), func(time.Time) bool {
			return false
		}, func() {
			e.anim = nil
			if completion != nil {
				completion()
			}
		})
		return
	}

	target = geom.Clamp(target, 0, 1)
	start := e.progress
	length := start - target
	duration := time.Duration(float64(e.kernel.Params().BaseDuration) * math.Abs(length))
	began := e.driver.Now()

	e.anim = e.driver.Schedule(e.taskKey("progress"), func(now time.Time) bool {
		if duration <= 0 {
			e.apply(target)
			return false
		}
		frac := float64(now.Sub(began)) / float64(duration)
		v := start - length*frac
		if frac < 1 && v >= 0 && v <= 1 {
			e.apply(v)
			return true
		}
		e.apply(target)
		return false
	}, func() {
		e.anim = nil
		e.hooks.OnAnimationComplete(e.id, target, duration)
		if completion != nil {
			completion()
		}
	})
}

// RemoveEffect tears the effect down. Shapes, snapshot and icon disappear at
// once; the mask either fades out over BaseDuration (animated) or is removed
// immediately. A released container skips the fade. completion runs when
// the mask is gone. Calls after the first do nothing.
func (e *Effect) RemoveEffect(animated bool, completion func()) {
	if e.removed {
		e.logger.Debug("effect already removed")
		return
	}
	e.removed = true
	e.cancelAnimation()

	if e.inert {
		if completion != nil {
			completion()
		}
		return
	}

	for _, s := range []Surface{e.snapshot, e.circle, e.edge, e.joint, e.icon} {
		s.Remove()
	}
	if e.direction == ToLeft && e.container.Alive() {
		e.container.SetContentTransform(geom.Identity)
	}
	e.hooks.OnSessionEnd(e.id, animated)

	if !animated || !e.container.Alive() {
		e.mask.Remove()
		if completion != nil {
			completion()
		}
		return
	}

	duration := e.kernel.Params().BaseDuration
	began := e.driver.Now()
	e.driver.Schedule(e.taskKey("fade"), func(now time.Time) bool {
		if duration <= 0 {
			return false
		}
		frac := float64(now.Sub(began)) / float64(duration)
		if frac >= 1 {
			e.mask.SetOpacity(0)
			return false
		}
		e.mask.SetOpacity(1 - frac)
		return true
	}, func() {
		e.mask.Remove()
		if completion != nil {
			completion()
		}
	})
}

func (e *Effect) cancelAnimation() {
	if e.anim != nil {
		e.anim.Cancel()
		e.anim = nil
	}
}

// usable reports whether surface updates still have somewhere to go.
func (e *Effect) usable() bool {
	if e.removed || e.inert {
		return false
	}
	if !e.container.Alive() {
		if !e.reportedGone {
			e.logger.Debug("container released, ignoring updates")
			e.reportedGone = true
		}
		return false
	}
	return true
}

func (e *Effect) apply(p float64) {
	if !e.usable() {
		return
	}
	f := e.kernel.Frame(p)
	e.progress = f.Progress

	e.snapshot.SetPosition(f.Snapshot.Position)
	e.snapshot.SetOpacity(f.Snapshot.Opacity)

	e.circle.SetPath(f.Circle.Path)
	e.edge.SetPath(f.Edge.Path)
	e.joint.SetPath(f.Joint.Path)

	e.icon.SetPosition(f.Icon.Position)
	e.icon.SetOpacity(f.Icon.Opacity)
	e.icon.SetTransform(f.Icon.Transform())
}

func (e *Effect) taskKey(name string) string {
	return e.id + "/" + name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
