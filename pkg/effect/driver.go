package effect

import (
	"context"
	"time"
)

// Clock supplies the time a Driver animates against.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// Now returns time.Now().
func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. It drives simulations and tests
// deterministically.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// StepFunc advances an animation to now. It returns false once the
// animation has reached its final state.
type StepFunc func(now time.Time) bool

type taskState int

const (
	taskRunning taskState = iota
	taskFinished
	taskCancelled
)

// Task is one scheduled animation.
type Task struct {
	key        string
	step       StepFunc
	completion func()
	state      taskState
	driver     *Driver
}

// Key returns the key the task was scheduled under.
func (t *Task) Key() string { return t.key }

// Running reports whether the task is still scheduled.
func (t *Task) Running() bool { return t != nil && t.state == taskRunning }

// Cancel unschedules the task. Its completion never runs. Cancelling a
// finished task is a no-op.
func (t *Task) Cancel() {
	if t == nil || t.state != taskRunning {
		return
	}
	t.state = taskCancelled
	t.driver.remove(t)
}

// Driver is the animation-frame scheduler. Each Tick steps every running
// task once against a single clock reading.
//
// A Driver is not safe for concurrent use; tick it from the goroutine that
// owns the effects it animates.
type Driver struct {
	clock Clock
	tasks []*Task
	keys  map[string]*Task
}

// NewDriver returns a driver reading clock. A nil clock means WallClock.
func NewDriver(clock Clock) *Driver {
	if clock == nil {
		clock = WallClock{}
	}
	return &Driver{clock: clock, keys: make(map[string]*Task)}
}

// Clock returns the driver's clock.
func (d *Driver) Clock() Clock { return d.clock }

// Now reads the driver's clock.
func (d *Driver) Now() time.Time { return d.clock.Now() }

// Schedule adds a task under key. A running task with the same key is
// cancelled first. The task is first stepped on the next Tick; completion,
// if non-nil, runs once after the step that returns false.
func (d *Driver) Schedule(key string, step StepFunc, completion func()) *Task {
	if prev, ok := d.keys[key]; ok {
		prev.Cancel()
	}
	t := &Task{key: key, step: step, completion: completion, driver: d}
	d.tasks = append(d.tasks, t)
	d.keys[key] = t
	return t
}

// Tick steps every task that was running when the tick began. Tasks
// scheduled while ticking, including from completions, wait for the next
// tick.
func (d *Driver) Tick() {
	if len(d.tasks) == 0 {
		return
	}
	now := d.clock.Now()
	pending := append([]*Task(nil), d.tasks...)
	for _, t := range pending {
		if t.state != taskRunning {
			continue
		}
		if t.step(now) {
			continue
		}
		// The step may have cancelled its own task by superseding it.
		if t.state != taskRunning {
			continue
		}
		t.state = taskFinished
		d.remove(t)
		if t.completion != nil {
			t.completion()
		}
	}
}

// Active returns the number of running tasks.
func (d *Driver) Active() int { return len(d.tasks) }

// Idle reports whether no task is running.
func (d *Driver) Idle() bool { return len(d.tasks) == 0 }

// Run ticks the driver every interval until ctx is done.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Settle advances clock by frame and ticks until the driver is idle or
// maxFrames ticks have run. onFrame, if non-nil, is called after every tick.
// It returns the number of ticks run.
func (d *Driver) Settle(clock *ManualClock, frame time.Duration, maxFrames int, onFrame func()) int {
	n := 0
	for !d.Idle() && n < maxFrames {
		clock.Advance(frame)
		d.Tick()
		n++
		if onFrame != nil {
			onFrame()
		}
	}
	return n
}

func (d *Driver) remove(t *Task) {
	for i, x := range d.tasks {
		if x == t {
			d.tasks = append(d.tasks[:i], d.tasks[i+1:]...)
			break
		}
	}
	if d.keys[t.key] == t {
		delete(d.keys, t.key)
	}
}
