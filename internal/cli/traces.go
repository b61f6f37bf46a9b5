package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

func (c *CLI) traceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Manage recorded gesture traces",
		Long: `Manage gesture traces recorded with "simulate --record" or "play --record".
Traces are referenced by name, ID or a unique ID prefix.`,
	}

	cmd.AddCommand(c.traceListCommand())
	cmd.AddCommand(c.traceShowCommand())
	cmd.AddCommand(c.traceDeleteCommand())

	return cmd
}

func (c *CLI) traceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := traceStore()
			if err != nil {
				return err
			}
			defer store.Close()

			traces, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(traces) == 0 {
				printInfo("No traces recorded")
				printNextStep("Record one with", appName+" simulate --record <name>")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), traceTable(traces))
			return nil
		},
	}
}

func traceTable(traces []*trace.Trace) string {
	rows := make([][]string, 0, len(traces))
	for _, tr := range traces {
		outcome := "-"
		if ev, ok := tr.Final(); ok {
			outcome = ev.Phase.String()
		}
		rows = append(rows, []string{
			tr.ID[:min(8, len(tr.ID))],
			tr.Name,
			fmt.Sprintf("%d", len(tr.Events)),
			tr.Duration().Round(time.Millisecond).String(),
			outcome,
			tr.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Events", "Duration", "Release", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row < 0:
				return headerStyle
			case col == 1:
				return StyleHighlight
			case col == 0 || col == 5:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		String()
}

func (c *CLI) traceShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <trace>",
		Short: "Show a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := traceStore()
			if err != nil {
				return err
			}
			defer store.Close()

			tr, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tr)
			}

			printKeyValue("Name", tr.Name)
			printKeyValue("ID", tr.ID)
			printKeyValue("Size", fmt.Sprintf("%gx%g", tr.Size.W, tr.Size.H))
			printKeyValue("Events", fmt.Sprintf("%d", len(tr.Events)))
			printKeyValue("Duration", tr.Duration().String())
			if ev, ok := tr.Final(); ok {
				printKeyValue("Release", fmt.Sprintf("%s at %+.1f", ev.Phase, ev.Translation.X))
			}
			printNextStep("Replay with", appName+" simulate --trace "+tr.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw trace")
	return cmd
}

func (c *CLI) traceDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <trace>",
		Aliases: []string{"rm"},
		Short:   "Delete a stored trace",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := traceStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted trace %s", args[0])
			return nil
		},
	}
}
