package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gocycling/internal/ui/theme"
)

// ConfirmRequestMsg asks the app to show a yes/no dialog. ID comes back in
// the matching ConfirmResultMsg.
type ConfirmRequestMsg struct {
	ID      string
	Title   string
	Body    string
	Confirm string
}

type ConfirmResultMsg struct {
	ID       string
	Accepted bool
}

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Red).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Confirm is a modal alert with a destructive action and a cancel.
type Confirm struct {
	req     ConfirmRequestMsg
	visible bool
	width   int
}

func NewConfirm() Confirm {
	return Confirm{}
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) SetWidth(w int) { c.width = w }

func (c *Confirm) Open(req ConfirmRequestMsg) {
	if req.Confirm == "" {
		req.Confirm = "OK"
	}
	c.req = req
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch strings.ToLower(key.String()) {
	case "y", "enter":
		return c.answer(true)
	case "n", "esc", "q":
		return c.answer(false)
	}
	return c, nil
}

func (c Confirm) answer(accepted bool) (Confirm, tea.Cmd) {
	c.visible = false
	id := c.req.ID
	return c, func() tea.Msg { return ConfirmResultMsg{ID: id, Accepted: accepted} }
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(c.req.Title) + "\n\n")
	if c.req.Body != "" {
		sb.WriteString(c.req.Body + "\n\n")
	}
	sb.WriteString(theme.Title.Render("y") + " " + c.req.Confirm + "   " + theme.Muted.Render("n Cancel"))
	w := c.width
	if w < 20 {
		w = 48
	}
	return confirmStyle.Width(w - 4).Render(sb.String())
}
