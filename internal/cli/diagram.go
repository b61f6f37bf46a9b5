package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/pkg/errors"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
)

func (c *CLI) diagramCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "diagram [state]",
		Short: "Draw the swipe interaction state machine",
		Long: `Draw the interaction state machine as Graphviz DOT or SVG. Passing a state
(idle, tracking, committing, cancelling) highlights it.`,
		Example: `  gooeyswipe diagram
  gooeyswipe diagram tracking -f svg -o tracking.svg`,
		Args: cobra.MaximumNArgs(1),
		ValidArgs: []string{
			swipe.StateIdle.String(),
			swipe.StateTracking.String(),
			swipe.StateCommitting.String(),
			swipe.StateCancelling.String(),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			current := swipe.State(-1)
			if len(args) == 1 {
				st, err := swipe.ParseState(args[0])
				if err != nil {
					return err
				}
				current = st
			}

			data := []byte(swipe.DiagramDOT(current))
			switch format {
			case "dot":
			case "svg":
				svg, err := swipe.RenderDiagramSVG(cmd.Context(), string(data))
				if err != nil {
					return errors.Wrap(errors.ErrCodeRenderFailed, err, "render diagram")
				}
				data = svg
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot or svg)", format)
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeRenderFailed, err, "write %s", output)
			}
			printSuccess("Wrote diagram")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")

	return cmd
}
