package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "gocycling/internal/modules/history/dto"
	prefsdto "gocycling/internal/modules/preferences/dto"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/units"
	"gocycling/internal/ui/components"
	"gocycling/internal/ui/theme"
)

const (
	confirmDeletePrefix = "history:delete:"
	emptyText           = "No completed bike rides to display!"
)

type HistoryPort interface {
	List(ctx context.Context, sort string, save bool) (historydto.ListOutput, error)
	Delete(ctx context.Context, id string, confirmed bool) (historydto.DeleteOutput, error)
}

type LoadedMsg struct {
	Out historydto.ListOutput
	Err error
}

type DeletedMsg struct {
	ID  string
	Out historydto.DeleteOutput
	Err error
}

type rideItem struct {
	ride   historydto.RideOutput
	system units.System
}

func (i rideItem) Title() string { return units.FormatDate(i.ride.StartedAt) }
func (i rideItem) Description() string {
	return fmt.Sprintf("%s  ·  %s  ·  %s",
		units.FormatDistance(i.ride.Distance, i.system),
		units.FormatDuration(i.ride.Duration),
		units.FormatSpeed(i.ride.AverageSpeed, i.system))
}
func (i rideItem) FilterValue() string { return i.Title() }

type Model struct {
	port    HistoryPort
	list    list.Model
	spinner spinner.Model
	out     historydto.ListOutput
	system  units.System
	loading bool
	message string
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Accent).BorderForeground(theme.Accent)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Accent)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Ride History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{port: port, list: l, spinner: sp, system: units.Metric, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(""), m.spinner.Tick)
}

func (m *Model) SetPreferences(system units.System) {
	m.system = system
}

// Reload lists rides with sort, or the saved preference when sort is empty.
// An explicit sort is saved as the new preference.
func (m Model) Reload(sort string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.List(context.Background(), sort, sort != "")
		return LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) Empty() bool { return len(m.out.Rides) == 0 }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.message = msg.Err.Error()
			return m, nil
		}
		m.out = msg.Out
		m.list.Title = "Ride History  " + theme.Muted.Render(msg.Out.SortLabel)
		items := make([]list.Item, len(msg.Out.Rides))
		for i, r := range msg.Out.Rides {
			items[i] = rideItem{ride: r, system: m.system}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case DeletedMsg:
		switch {
		case errors.Is(msg.Err, apperrors.ErrConfirmationRequired):
			id := msg.ID
			return m, func() tea.Msg {
				return components.ConfirmRequestMsg{
					ID:      confirmDeletePrefix + id,
					Title:   "Delete ride?",
					Body:    "This ride will be removed from your history.",
					Confirm: "Delete",
				}
			}
		case msg.Err != nil:
			m.message = msg.Err.Error()
		case msg.Out.Decision == prefsdto.DeletionSkip:
			m.message = "deletion is disabled in preferences"
		default:
			m.message = ""
			cmds = append(cmds, m.Reload(""))
		}

	case components.ConfirmResultMsg:
		if id, ok := strings.CutPrefix(msg.ID, confirmDeletePrefix); ok && msg.Accepted {
			cmds = append(cmds, m.deleteCmd(id, true))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "o":
			if next := m.nextSort(); next != "" {
				cmds = append(cmds, m.Reload(next))
			}
			return m, tea.Batch(cmds...)
		case "d":
			if item, ok := m.list.SelectedItem().(rideItem); ok {
				cmds = append(cmds, m.deleteCmd(item.ride.ID, false))
			}
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading rides…")
	}
	footer := theme.Muted.Render("o: sort  d: delete  ↑/↓: move")
	if m.message != "" {
		footer = m.message + "  " + footer
	}
	if m.Empty() {
		return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, theme.Muted.Render(emptyText)) + "\n" + footer
	}
	return m.list.View() + "\n" + footer
}

// nextSort returns the option after the current one, wrapping around.
func (m Model) nextSort() string {
	opts := m.out.Options
	if len(opts) == 0 {
		return ""
	}
	for i, o := range opts {
		if o.Key == m.out.Sort {
			return opts[(i+1)%len(opts)].Key
		}
	}
	return opts[0].Key
}

func (m Model) deleteCmd(id string, confirmed bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Delete(context.Background(), id, confirmed)
		return DeletedMsg{ID: id, Out: out, Err: err}
	}
}
