package swipe

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// transition is one edge of the interaction state machine.
type transition struct {
	from, to State
	label    string
}

var transitions = []transition{
	{StateIdle, StateIdle, "began: rejected"},
	{StateIdle, StateTracking, "began: action offered"},
	{StateTracking, StateTracking, "changed: update progress"},
	{StateTracking, StateCommitting, "ended past gap"},
	{StateTracking, StateCancelling, "ended short / cancelled / failed"},
	{StateCommitting, StateIdle, "animation done: action triggered"},
	{StateCancelling, StateIdle, "animation done: effect removed"},
}

// DiagramDOT returns the interaction state machine in Graphviz DOT format.
// When current is a valid state it is highlighted.
func DiagramDOT(current State) string {
	var buf bytes.Buffer
	buf.WriteString("digraph swipe {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for i := range stateNames {
		s := State(i)
		attrs := ""
		if s == current {
			attrs = " [fillcolor=\"#4d7f64\", fontcolor=white]"
		}
		fmt.Fprintf(&buf, "  %q%s;\n", s.String(), attrs)
	}

	buf.WriteString("\n")
	for _, t := range transitions {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.from.String(), t.to.String(), t.label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDiagramSVG renders a DOT graph to SVG using Graphviz.
func RenderDiagramSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
