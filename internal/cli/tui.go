package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/geoshaper/pkg/pipeline"
	"github.com/matzehuels/geoshaper/pkg/search"
)

// Progress styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	acceptStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	rejectStyle    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	barWidth   = 40
	historyLen = 8
)

// decisionMsg carries one generation's outcome into the program.
type decisionMsg search.Decision

// runDoneMsg is sent once the pipeline returns.
type runDoneMsg struct {
	result *pipeline.Result
	err    error
}

// =============================================================================
// ProgressModel - Live view of a running search
// =============================================================================

// ProgressModel is the bubbletea model shown by "run --tui".
type ProgressModel struct {
	Image       string
	Shape       string
	Generations int

	done     int
	accepted int
	failed   int
	polygons int
	history  []search.Decision
	start    time.Time

	cancel   context.CancelFunc
	stopping bool
	Result   *pipeline.Result
	Err      error
}

// NewProgressModel creates a progress model for a run over the given options.
// cancel is called when the user asks to stop.
func NewProgressModel(opts pipeline.Options, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		Image:       opts.Image,
		Shape:       opts.Shape,
		Generations: opts.MaxGenerations,
		start:       time.Now(),
		cancel:      cancel,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.stopping && m.cancel != nil {
				m.cancel()
			}
			m.stopping = true
		}
	case decisionMsg:
		d := search.Decision(msg)
		m.done = d.Generation + 1
		m.failed += d.Failed
		m.polygons = d.Polygons
		if d.Accepted {
			m.accepted++
		}
		m.history = append(m.history, d)
		if len(m.history) > historyLen {
			m.history = m.history[len(m.history)-historyLen:]
		}
	case runDoneMsg:
		m.Result, m.Err = msg.result, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Approximating %s with %ss", m.Image, m.Shape)))
	b.WriteString("\n")
	if m.stopping {
		b.WriteString(StyleWarning.Render("stopping after the current generation..."))
	} else {
		b.WriteString(StyleDim.Render("q quit"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderBar(m.done, m.Generations, barWidth))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.done, m.Generations)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s   %s %s\n",
		StyleDim.Render("polygons"), StyleNumber.Render(fmt.Sprint(m.polygons)),
		StyleDim.Render("accepted"), StyleNumber.Render(fmt.Sprint(m.accepted)),
		StyleDim.Render("failed"), StyleNumber.Render(fmt.Sprint(m.failed)),
		StyleDim.Render("elapsed"), StyleValue.Render(time.Since(m.start).Round(time.Second).String())))
	b.WriteString("\n")

	for _, d := range m.history {
		b.WriteString("  " + formatDecision(d) + "\n")
	}
	return b.String()
}

// renderBar draws a done/total bar of the given width.
func renderBar(done, total, width int) string {
	filled := width
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// formatDecision renders one history line.
func formatDecision(d search.Decision) string {
	line := fmt.Sprintf("gen %-5d candidate %-7d %s -> %s",
		d.Generation, d.Winner.ID, formatFitness(d.Current), formatFitness(d.Winner.Fitness))
	if d.Accepted {
		return acceptStyle.Render(iconSuccess + " " + line)
	}
	return rejectStyle.Render(iconInfo + " " + line)
}

func formatFitness(f float64) string {
	if math.IsInf(f, 1) {
		return "-"
	}
	return fmt.Sprintf("%.2f", f)
}

// runWithTUI executes the pipeline while a ProgressModel renders each
// generation.
func runWithTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(opts, cancel))
	opts.Progress = func(d search.Decision) { p.Send(decisionMsg(d)) }

	go func() {
		res, err := runner.Execute(ctx, opts)
		p.Send(runDoneMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("progress display: %w", err)
	}
	m := final.(ProgressModel)
	return m.Result, m.Err
}
