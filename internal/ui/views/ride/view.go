package ride

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ridedto "gocycling/internal/modules/ride/dto"
	"gocycling/internal/platform/units"
	"gocycling/internal/ui/components"
	"gocycling/internal/ui/theme"
)

const confirmStopID = "ride:stop"

type RidePort interface {
	Status(ctx context.Context) (ridedto.StatusOutput, error)
	Start(ctx context.Context) (ridedto.StatusOutput, error)
	Pause(ctx context.Context) (ridedto.StatusOutput, error)
	Resume(ctx context.Context) (ridedto.StatusOutput, error)
	BeginStop(ctx context.Context) (ridedto.StatusOutput, error)
	Stop(ctx context.Context, confirmed bool) (ridedto.StopOutput, error)
	AbortStop(ctx context.Context) (ridedto.StatusOutput, error)
}

// TickMsg drives the once-per-second refresh of the live timer.
type TickMsg time.Time

type StatusMsg struct {
	Status ridedto.StatusOutput
	Err    error
}

// StopPendingMsg arrives once the ride is paused awaiting confirmation.
type StopPendingMsg struct {
	Status ridedto.StatusOutput
	Err    error
}

// StoppedMsg reports a committed stop; the app reloads history on it.
type StoppedMsg struct {
	Out ridedto.StopOutput
	Err error
}

type Model struct {
	port         RidePort
	status       ridedto.StatusOutput
	system       units.System
	largeMetrics bool
	spinner      spinner.Model
	message      string
	width        int
	height       int

	// resumeOnCancel is set when the pending stop paused a running ride.
	resumeOnCancel bool
}

func New(port RidePort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	return Model{port: port, system: units.Metric, spinner: sp, status: ridedto.StatusOutput{Status: "stopped"}}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusCmd(), tick(), m.spinner.Tick)
}

func (m *Model) SetPreferences(system units.System, largeMetrics bool) {
	m.system = system
	m.largeMetrics = largeMetrics
}

func (m Model) Status() ridedto.StatusOutput { return m.status }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tea.Batch(m.statusCmd(), tick())

	case StatusMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status

	case StopPendingMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.status = msg.Status
		m.resumeOnCancel = msg.Status.PausedByStop
		return m, func() tea.Msg {
			return components.ConfirmRequestMsg{
				ID:      confirmStopID,
				Title:   "Stop ride?",
				Body:    "Time " + units.FormatDuration(msg.Status.Elapsed) + " will be saved to your history.",
				Confirm: "Stop",
			}
		}

	case components.ConfirmResultMsg:
		if msg.ID != confirmStopID {
			return m, nil
		}
		resume := m.resumeOnCancel
		m.resumeOnCancel = false
		if msg.Accepted {
			return m, m.stopCmd()
		}
		if !resume {
			return m, nil
		}
		return m, m.transitionCmd(m.port.AbortStop)

	case StoppedMsg:
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, m.statusCmd()
		}
		m.status = ridedto.StatusOutput{Status: "stopped"}
		m.message = fmt.Sprintf("saved %s over %s", units.FormatDistance(msg.Out.Distance, m.system), units.FormatDuration(msg.Out.Duration))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.message = ""
		switch msg.String() {
		case "s":
			return m, m.Action("start")
		case "p":
			return m, m.Action("pause")
		case "r":
			return m, m.Action("resume")
		case "x":
			return m, m.Action("stop")
		}
	}
	return m, nil
}

// Action runs a named timer operation; "stop" asks for confirmation first.
func (m Model) Action(name string) tea.Cmd {
	switch name {
	case "start":
		return m.transitionCmd(m.port.Start)
	case "pause":
		return m.transitionCmd(m.port.Pause)
	case "resume":
		return m.transitionCmd(m.port.Resume)
	case "stop":
		return m.beginStopCmd()
	}
	return nil
}

func (m Model) View() string {
	var sb strings.Builder
	state := m.status.Status
	switch state {
	case "running":
		sb.WriteString(m.spinner.View() + theme.Title.Render(" Riding") + "\n\n")
	case "paused":
		sb.WriteString(theme.Hot.Render("❚❚ Paused") + "\n\n")
	default:
		sb.WriteString(theme.Muted.Render("Ready to ride") + "\n\n")
	}

	timer := units.FormatDuration(m.status.Elapsed)
	if m.largeMetrics {
		sb.WriteString(theme.Large.Render(timer) + "\n\n")
	} else {
		sb.WriteString(theme.Metric.Render(timer) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("Distance  ") + units.FormatDistance(m.status.Distance, m.system) + "\n")
	sb.WriteString(theme.Muted.Render("Avg speed ") + units.FormatSpeed(m.status.AverageSpeed, m.system) + "\n")
	if !m.status.StartedAt.IsZero() {
		sb.WriteString(theme.Muted.Render("Started   ") + units.FormatDate(m.status.StartedAt) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render(m.hints()))
	if m.message != "" {
		sb.WriteString("\n\n" + m.message)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.PaneActive.Render(sb.String()))
}

func (m Model) hints() string {
	switch m.status.Status {
	case "running":
		return "p: pause  x: stop"
	case "paused":
		return "r: resume  x: stop"
	default:
		return "s: start"
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) transitionCmd(op func(context.Context) (ridedto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := op(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) beginStopCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.port.BeginStop(context.Background())
		return StopPendingMsg{Status: status, Err: err}
	}
}

func (m Model) stopCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Stop(context.Background(), true)
		return StoppedMsg{Out: out, Err: err}
	}
}
