package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gooeyswipe/internal/scene"
	"github.com/matzehuels/gooeyswipe/pkg/geom"
	"github.com/matzehuels/gooeyswipe/pkg/render"
	"github.com/matzehuels/gooeyswipe/pkg/swipe"
	"github.com/matzehuels/gooeyswipe/pkg/trace"
)

const (
	playStep    = 12.0 // points per key press
	playMinCols = 40
	playMaxCols = 120
)

type playOpts struct {
	row    int
	vpos   float64
	record string
}

func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{vpos: 0.5}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Swipe a demo row interactively in the terminal",
		Long: `Drag a demo row with the arrow keys and watch the effect in the terminal.

  ←/→ or h/l   drag (the first press picks the direction)
  enter/space  release
  esc          cancel the gesture
  r            reset the row
  q            quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.row, "row", 0, "demo row index")
	cmd.Flags().Float64Var(&opts.vpos, "vpos", opts.vpos, "vertical finger position in [0,1]")
	cmd.Flags().StringVar(&opts.record, "record", "", "store the last gesture under this name on exit")

	return cmd
}

func (c *CLI) runPlay(ctx context.Context, opts playOpts) error {
	scenes, err := c.scenes()
	if err != nil {
		return err
	}
	m := newPlayModel(scenes, opts)

	// Log lines would tear the alternate screen.
	c.Logger.SetOutput(io.Discard)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	c.Logger.SetOutput(c.logOut)
	if err != nil {
		return err
	}

	pm := final.(*playModel)
	printInfo("%d actions triggered", len(pm.sim.Triggered))
	if opts.record != "" {
		if !pm.recorder.Complete() {
			printWarning("No complete gesture to record")
			return nil
		}
		return saveTrace(ctx, pm.recorder.Trace(), opts.record)
	}
	return nil
}

type playTickMsg time.Time

// playModel drives a simulation from key presses. Its manual clock follows
// the wall clock one tick at a time.
type playModel struct {
	scenes   *scene.Builder
	sim      *scene.Simulation
	recorder *trace.Recorder
	size     geom.Size
	frame    time.Duration
	vpos     float64
	row      int

	dragging    bool
	startX      float64
	translation float64
	lastTick    time.Time
	cols        int
	status      string
}

func newPlayModel(scenes *scene.Builder, opts playOpts) *playModel {
	m := &playModel{
		scenes: scenes,
		size:   scenes.Size(),
		frame:  scenes.Config().Canvas.FrameTime(),
		vpos:   geom.Clamp(opts.vpos, 0, 1),
		row:    opts.row,
		cols:   75,
	}
	m.reset()
	return m
}

func (m *playModel) reset() {
	m.sim = m.scenes.NewSimulation(m.row)
	m.recorder = trace.NewRecorder(m.sim.Clock, "", m.size)
	m.dragging = false
	m.translation = 0
	m.status = "drag with ←/→"
}

func (m *playModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return playTickMsg(t) })
}

func (m *playModel) Init() tea.Cmd {
	return m.tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "right", "l":
			m.drag(playStep)
		case "left", "h":
			m.drag(-playStep)
		case "enter", " ":
			m.release(swipe.PhaseEnded)
		case "esc":
			m.release(swipe.PhaseCancelled)
		case "r":
			m.reset()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.cols = max(playMinCols, min(msg.Width-4, playMaxCols))
		return m, nil

	case playTickMsg:
		m.advance(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

// advance moves the simulation clock by the wall time since the last tick
// and steps the animations.
func (m *playModel) advance(now time.Time) {
	if !m.lastTick.IsZero() {
		m.sim.Clock.Advance(now.Sub(m.lastTick))
	}
	m.lastTick = now
	m.sim.Cell.Driver().Tick()
}

func (m *playModel) location() geom.Point {
	return geom.Pt(m.startX+m.translation, m.size.H*m.vpos)
}

func (m *playModel) send(ev swipe.Event) {
	m.recorder.Record(ev)
	m.sim.Cell.Handle(ev)
}

func (m *playModel) drag(dx float64) {
	cell := m.sim.Cell
	if !m.dragging {
		if !cell.Enabled() || cell.State() != swipe.StateIdle {
			m.status = "wait for the animation"
			return
		}
		if cell.Effect() != nil {
			m.status = "press r to bring the row back"
			return
		}
		m.dragging = true
		m.translation = 0
		m.startX = m.size.W * 0.25
		if dx < 0 {
			m.startX = m.size.W * 0.75
		}
		m.send(swipe.Event{
			Phase:    swipe.PhaseBegan,
			Location: m.location(),
			Velocity: geom.Pt(math.Copysign(1, dx), 0),
		})
		if cell.State() != swipe.StateTracking {
			m.status = "no action that way"
		}
	}
	m.translation = geom.Clamp(m.translation+dx, -m.size.W, m.size.W)
	m.send(swipe.Event{
		Phase:       swipe.PhaseChanged,
		Translation: geom.Pt(m.translation, 0),
		Location:    m.location(),
		Velocity:    geom.Pt(dx/m.frame.Seconds(), 0),
	})
	if cell.State() == swipe.StateTracking {
		m.status = "release with enter, cancel with esc"
	}
}

func (m *playModel) release(phase swipe.Phase) {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.send(swipe.Event{
		Phase:       phase,
		Translation: geom.Pt(m.translation, 0),
		Location:    m.location(),
	})
	m.translation = 0
	m.status = m.sim.Cell.State().String()
}

func (m *playModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName) + StyleDim.Render(" play") + "\n\n")
	b.WriteString(render.ToTerminal(render.Rasterize(m.sim.Canvas, 1), m.cols))
	b.WriteString("\n")

	progress := 0.0
	if e := m.sim.Cell.Effect(); e != nil {
		progress = e.Progress()
	}
	state := m.sim.Cell.State().String()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		StyleDim.Render("state ")+StyleValue.Render(fmt.Sprintf("%-11s", state)),
		StyleDim.Render("progress ")+StyleHighlight.Render(fmt.Sprintf("%.2f", progress)),
		StyleDim.Render("  drag ")+StyleValue.Render(fmt.Sprintf("%+.0f", m.translation)),
	))
	b.WriteString("\n")
	if n := len(m.sim.Triggered); n > 0 {
		last := m.sim.Triggered[n-1]
		b.WriteString(styleAction.Render(fmt.Sprintf("%s action × %d", last, n)) + " ")
	}
	b.WriteString(StyleDim.Render(m.status) + "\n\n")
	b.WriteString(StyleDim.Render("←/→ drag · enter release · esc cancel · r reset · q quit") + "\n")
	return b.String()
}
