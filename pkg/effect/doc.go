// Package effect runs one gooey swipe session on a container.
//
// An [Effect] captures the container's content, stacks six surfaces on top
// of it (mask, snapshot, circle, edge, joint, icon) and redraws them from the
// [gooey] kernel whenever progress changes:
//
//	driver := effect.NewDriver(nil)
//	e := effect.New(row, 0.5, effect.ToRight, &effect.Config{Color: green, Icon: check},
//	    effect.WithDriver(driver))
//	e.UpdateProgress(0.4)                  // finger tracking
//	e.AnimateToProgress(1, func() { ... }) // release
//
// # Animation
//
// Programmatic animations and the mask fade run as tasks on a [Driver]. The
// driver does nothing on its own: call [Driver.Tick] once per display frame,
// or [Driver.Run] to tick on a timer. A [ManualClock] makes every animation
// deterministic, which the simulator and the tests rely on.
//
// A newer UpdateProgress, AnimateToProgress or RemoveEffect cancels the
// animation in flight; its completion never runs.
//
// # Containers
//
// [Container] and [Surface] are the only things an effect needs from a
// drawing backend. The render package provides an in-memory implementation
// that exports SVG, PNG and GIF.
package effect
