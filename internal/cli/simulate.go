package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	output    string        // gif path, empty to skip
	framesDir string        // directory for one svg per frame, empty to skip
	traceRef  string        // trace file or stored trace; overrides the synthetic gesture
	record    string        // save the replayed trace under this name
	direction string        // synthetic gesture direction
	distance  float64       // synthetic drag distance in points
	duration  time.Duration // synthetic drag duration
	vpos      float64       // synthetic finger position
	release   string        // ended, cancelled or failed
	row       int           // demo row
	reset     bool          // reset the cell after a deleting commit
}

func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{
		output:    "swipe.gif",
		direction: "right",
		distance:  150,
		duration:  300 * time.Millisecond,
		vpos:      0.5,
		release:   "ended",
	}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a swipe gesture and record it as a GIF",
		Long: `Replay a drag gesture on a demo row through the interaction state machine
and record every display frame.

By default a synthetic drag is generated from --direction, --distance and
--duration. Use --trace to replay a trace file or a stored trace instead.`,
		Example: `  gooeyswipe simulate -d left --distance 160
  gooeyswipe simulate --distance 40 -o cancelled.gif
  gooeyswipe simulate --record long-right --frames out/frames
  gooeyswipe simulate --trace long-right`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "GIF output path (empty to skip)")
	cmd.Flags().StringVar(&opts.framesDir, "frames", "", "also write one SVG per frame into this directory")
	cmd.Flags().StringVarP(&opts.traceRef, "trace", "t", "", "trace file or stored trace name/ID to replay")
	cmd.Flags().StringVar(&opts.record, "record", "", "store the replayed trace under this name")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", opts.direction, "swipe direction: right or left")
	cmd.Flags().Float64Var(&opts.distance, "distance", opts.distance, "drag distance in points")
	cmd.Flags().DurationVar(&opts.duration, "duration", opts.duration, "drag duration")
	cmd.Flags().Float64Var(&opts.vpos, "vpos", opts.vpos, "vertical finger position in [0,1]")
	cmd.Flags().StringVar(&opts.release, "release", opts.release, "release phase: ended, cancelled or failed")
	cmd.Flags().IntVar(&opts.row, "row", 0, "demo row index")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "reset the row after a deleting action")

	return cmd
}

func (c *CLI) runSimulate(ctx context.Context, opts simulateOpts) error {
	logger := loggerFromContext(ctx)

	scenes, err := c.scenes()
	if err != nil {
		return err
	}
	tr, err := c.loadTrace(ctx, opts, scenes)
	if err != nil {
		return err
	}
	if opts.record != "" {
		if err := saveTrace(ctx, tr, opts.record); err != nil {
			return err
		}
	}
	if opts.framesDir != "" {
		if err := os.MkdirAll(opts.framesDir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.framesDir)
		}
	}

	cfg := scenes.Config()
	frameTime := cfg.Canvas.FrameTime()
	rec := render.NewGIFRecorder(cfg.Canvas.Scale/2, frameTime)
	sim := scenes.NewSimulation(opts.row)

	spinner := newSpinnerWithContext(ctx, "Simulating...")
	spinner.Start()
	var frameErr error
	n := sim.Run(tr, frameTime, maxFrames, func(f trace.Frame) {
		if frameErr != nil {
			return
		}
		logger.Debug("frame", "index", f.Index, "at", f.At, "state", f.State, "progress", f.Progress)
		if opts.output != "" {
			rec.Capture(sim.Canvas)
		}
		if opts.framesDir != "" {
			path := filepath.Join(opts.framesDir, fmt.Sprintf("frame-%04d.svg", f.Index))
			frameErr = os.WriteFile(path, render.RenderSVG(sim.Canvas, render.WithoutImages()), 0o644)
		}
	})
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}
	if frameErr != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, frameErr, "write frame")
	}
	if opts.reset && sim.Cell.Effect() != nil {
		sim.Cell.Reset()
	}

	if opts.output != "" {
		if err := writeGIF(opts.output, rec); err != nil {
			return err
		}
	}

	outcome := "cancelled"
	if len(sim.Triggered) > 0 {
		outcome = "triggered " + sim.Triggered[0].String()
	}
	printSuccess("Simulated %s", outcome)
	printStats(n, (time.Duration(n) * frameTime).Round(time.Millisecond).String(), sim.Cell.State().String())
	if opts.output != "" {
		printFile(opts.output)
	}
	if opts.framesDir != "" {
		printFile(opts.framesDir)
	}
	return nil
}

// loadTrace returns the gesture to replay: a trace file, a stored trace, or
// a synthetic drag.
func (c *CLI) loadTrace(ctx context.Context, opts simulateOpts, scenes *scene.Builder) (*trace.Trace, error) {
	if opts.traceRef != "" {
		if _, err := os.Stat(opts.traceRef); err == nil {
			return trace.ReadFile(opts.traceRef)
		}
		store, err := traceStore()
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Get(ctx, opts.traceRef)
	}

	dir, err := effect.ParseDirection(opts.direction)
	if err != nil {
		return nil, err
	}
	release, err := swipe.ParsePhase(opts.release)
	if err != nil {
		return nil, err
	}
	if !release.Terminal() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "release must be ended, cancelled or failed")
	}
	if err := errors.ValidateVerticalPosition(opts.vpos); err != nil {
		return nil, err
	}
	return trace.Synthesize(trace.Gesture{
		Direction: dir,
		Distance:  opts.distance,
		Duration:  opts.duration,
		VPos:      opts.vpos,
		Final:     release,
		Size:      scenes.Size(),
		Interval:  scenes.Config().Canvas.FrameTime(),
	}), nil
}

func saveTrace(ctx context.Context, tr *trace.Trace, name string) error {
	store, err := traceStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tr.ID = ""
	tr.Name = name
	tr.CreatedAt = time.Now().UTC()
	if err := store.Save(ctx, tr); err != nil {
		return err
	}
	printSuccess("Recorded trace %s", StyleHighlight.Render(name))
	printDetail("%d events, %s", len(tr.Events), tr.Duration())
	return nil
}

func writeGIF(path string, rec *render.GIFRecorder) error {
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", d)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", path)
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "close %s", path)
	}
	return nil
}
