package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/effect"
	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/gooey"
	"github.com/matzehuels/gooeyswipe/pkg/render"
)

const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatPDF  = "pdf"
	formatJSON = "json"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string    // base path; the extension is added per format
	formats   []string  // svg, png, pdf, json
	direction string    // right or left
	progress  []float64 // one frame per value
	vpos      float64   // finger position as a fraction of row height
	row       int       // demo row
	scale     float64   // raster scale for png (0 means the configured one)
	noImages  bool      // leave snapshot and icon images out of svg
}

// frameDescriptor is what the json format writes for one frame.
type frameDescriptor struct {
	Direction effect.Direction  `json:"direction"`
	Pivot     float64           `json:"pivot"`
	Height    float64           `json:"height"`
	Frame     gooey.Description `json:"frame"`
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		output:    "frame",
		formats:   []string{formatSVG},
		direction: "right",
		progress:  []float64{0.5},
		vpos:      0.5,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render still frames of the effect",
		Long: `Render the effect on a demo row at one or more progress values.

With several progress values every file name gets the progress appended,
e.g. frame-right-035.svg for 0.35.`,
		Example: `  gooeyswipe render -p 0.35 -f svg,png
  gooeyswipe render -d left -p 0,0.25,0.5,0.75,1 -o out/left
  gooeyswipe render -p 0.8 -f json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output base path")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", opts.formats, "output formats: svg, png, pdf, json")
	cmd.Flags().StringVarP(&opts.direction, "direction", "d", opts.direction, "swipe direction: right or left")
	cmd.Flags().Float64SliceVarP(&opts.progress, "progress", "p", opts.progress, "progress values in [0,1]")
	cmd.Flags().Float64Var(&opts.vpos, "vpos", opts.vpos, "vertical finger position in [0,1]")
	cmd.Flags().IntVar(&opts.row, "row", 0, "demo row index")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "png scale (default from config)")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "omit embedded images from svg")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	dir, err := effect.ParseDirection(opts.direction)
	if err != nil {
		return err
	}
	for _, f := range opts.formats {
		switch f {
		case formatSVG, formatPNG, formatJSON:
		case formatPDF:
			if !render.HasRSVG() {
				return errors.New(errors.ErrCodeUnsupported, "pdf output needs rsvg-convert on PATH")
			}
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, pdf or json)", f)
		}
	}

	scenes, err := c.scenes()
	if err != nil {
		return err
	}
	scale := opts.scale
	if scale <= 0 {
		scale = scenes.Config().Canvas.Scale
	}

	if d := filepath.Dir(opts.output); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", d)
		}
	}

	var written []string
	for _, p := range opts.progress {
		still := scene.Still{Direction: dir, Progress: p, VPos: opts.vpos, Row: opts.row}
		canvas, e, err := scenes.Frame(still)
		if err != nil {
			return err
		}
		base := opts.output
		if len(opts.progress) > 1 {
			base = fmt.Sprintf("%s-%s-%03d", opts.output, dir, int(p*100+0.5))
		}

		for _, f := range opts.formats {
			data, err := encodeFrame(f, canvas, e, scale, opts.noImages)
			if err != nil {
				return err
			}
			path := base + "." + f
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", path)
			}
			logger.Debug("wrote frame", "path", path, "progress", p, "bytes", len(data))
			written = append(written, path)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d frames", len(opts.progress)))
	printSuccess("Rendered %s swipe at %s", dir, joinProgress(opts.progress))
	for _, path := range written {
		printFile(path)
	}
	return nil
}

func encodeFrame(format string, canvas *render.Canvas, e *effect.Effect, scale float64, noImages bool) ([]byte, error) {
	title := fmt.Sprintf("%s swipe at %.2f", e.Direction(), e.Progress())
	switch format {
	case formatPNG:
		return render.RenderPNG(canvas, scale)
	case formatPDF:
		return render.ToPDF(render.RenderSVG(canvas, render.WithTitle(title)))
	case formatJSON:
		k := e.Kernel()
		return json.MarshalIndent(frameDescriptor{
			Direction: e.Direction(),
			Pivot:     k.PivotY(),
			Height:    k.EffectHeight(),
			Frame:     e.Frame().Describe(),
		}, "", "  ")
	default:
		svgOpts := []render.SVGOption{render.WithTitle(title)}
		if noImages {
			svgOpts = append(svgOpts, render.WithoutImages())
		}
		return render.RenderSVG(canvas, svgOpts...), nil
	}
}

func joinProgress(ps []float64) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
