package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "gocycling/internal/modules/history/dto"
	prefsdto "gocycling/internal/modules/preferences/dto"
	ridedto "gocycling/internal/modules/ride/dto"
	"gocycling/internal/platform/units"
	"gocycling/internal/ui/components"
	"gocycling/internal/ui/theme"
	historyview "gocycling/internal/ui/views/history"
	rideview "gocycling/internal/ui/views/ride"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type ridePort interface {
	Status(ctx context.Context) (ridedto.StatusOutput, error)
	Start(ctx context.Context) (ridedto.StatusOutput, error)
	Pause(ctx context.Context) (ridedto.StatusOutput, error)
	Resume(ctx context.Context) (ridedto.StatusOutput, error)
	BeginStop(ctx context.Context) (ridedto.StatusOutput, error)
	Stop(ctx context.Context, confirmed bool) (ridedto.StopOutput, error)
	AbortStop(ctx context.Context) (ridedto.StatusOutput, error)
}

type historyPort interface {
	List(ctx context.Context, sort string, save bool) (historydto.ListOutput, error)
	Delete(ctx context.Context, id string, confirmed bool) (historydto.DeleteOutput, error)
}

type prefsPort interface {
	Get(ctx context.Context) (prefsdto.PreferencesOutput, error)
	Update(ctx context.Context, input prefsdto.UpdateInput) (prefsdto.PreferencesOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabRide tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Ride", "History"}

// ─── async messages ──────────────────────────────────────────────────────────

type prefsLoadedMsg struct {
	prefs prefsdto.PreferencesOutput
	err   error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Resume  key.Binding
	Stop    key.Binding
	Sort    key.Binding
	Delete  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start ride")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Sort:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "change sort")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete ride")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume, k.Stop},
		{k.Sort, k.Delete},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the confirmation dialog.
type Model struct {
	prefs prefsPort

	rideView rideview.Model
	histView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	confirm   components.Confirm
	status    string
	width     int
	height    int
}

func NewModel(ride ridePort, history historyPort, prefs prefsPort) Model {
	return Model{
		prefs:     prefs,
		rideView:  rideview.New(ride),
		histView:  historyview.New(history),
		activeTab: tabRide,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		confirm:   components.NewConfirm(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadPrefsCmd(),
		m.rideView.Init(),
		m.histView.Init(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Overlays take every key while open.
	if _, isKey := msg.(tea.KeyMsg); isKey {
		if m.confirm.Visible() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.confirm.SetWidth(min(m.width-4, 56))
		m.help.Width = m.width
		sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
		m.rideView, _ = m.rideView.Update(sz)
		m.histView, _ = m.histView.Update(sz)
		return m, nil

	case prefsLoadedMsg:
		if msg.err != nil {
			m.status = "preferences: " + msg.err.Error()
			return m, nil
		}
		m.applyPrefs(msg.prefs)
		return m, m.histView.Reload("")

	case components.ConfirmRequestMsg:
		m.confirm.Open(msg)
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case rideview.StoppedMsg:
		if msg.Err == nil {
			m.status = "ride saved"
			cmds = append(cmds, m.histView.Reload(""))
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case tabRide:
			m.rideView, cmd = m.rideView.Update(msg)
		case tabHistory:
			m.histView, cmd = m.histView.Update(msg)
		}
		return m, cmd
	}

	// Everything that is not a key press reaches both views so the ride
	// timer keeps ticking while History is shown.
	var rideCmd, histCmd tea.Cmd
	m.rideView, rideCmd = m.rideView.Update(msg)
	m.histView, histCmd = m.histView.Update(msg)
	cmds = append(cmds, rideCmd, histCmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) applyPrefs(p prefsdto.PreferencesOutput) {
	theme.SetAccent(p.Colour)
	system := units.System(p.Units)
	m.rideView.SetPreferences(system, p.LargeMetrics)
	m.histView.SetPreferences(system)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabHistory:
		content = m.histView.View()
	default:
		content = m.rideView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := theme.Title.Render("gocycling") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if st := m.rideView.Status(); st.Status != "stopped" && st.Status != "" {
		left = theme.Hot.Render("● "+st.Status+" "+units.FormatDuration(st.Elapsed)) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "ride:start", "ride:pause", "ride:resume", "ride:stop":
		m.activeTab = tabRide
		return m, m.rideView.Action(strings.TrimPrefix(parts[0], "ride:"))

	case "history:sort":
		if arg == "" {
			m.status = "usage: history:sort <choice>"
			return m, nil
		}
		m.activeTab = tabHistory
		return m, m.histView.Reload(arg)

	case "history:reload":
		m.activeTab = tabHistory
		return m, m.histView.Reload("")

	case "prefs:units":
		return m, m.updatePrefsCmd(prefsdto.UpdateInput{Units: &arg})

	case "prefs:colour":
		return m, m.updatePrefsCmd(prefsdto.UpdateInput{Colour: &arg})

	case "prefs:large-metrics", "prefs:confirm-delete", "prefs:deletion":
		on, err := parseSwitch(arg)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		input := prefsdto.UpdateInput{}
		switch parts[0] {
		case "prefs:large-metrics":
			input.LargeMetrics = &on
		case "prefs:confirm-delete":
			input.DeletionConfirmation = &on
		default:
			input.DeletionEnabled = &on
		}
		return m, m.updatePrefsCmd(input)
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", raw)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadPrefsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.prefs == nil {
			return prefsLoadedMsg{prefs: prefsdto.PreferencesOutput{Units: string(units.Metric), Colour: "blue"}}
		}
		prefs, err := m.prefs.Get(context.Background())
		return prefsLoadedMsg{prefs: prefs, err: err}
	}
}

func (m Model) updatePrefsCmd(input prefsdto.UpdateInput) tea.Cmd {
	return func() tea.Msg {
		if m.prefs == nil {
			return prefsLoadedMsg{err: fmt.Errorf("preferences are not configured")}
		}
		prefs, err := m.prefs.Update(context.Background(), input)
		return prefsLoadedMsg{prefs: prefs, err: err}
	}
}
