package ride_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	ridedto "gocycling/internal/modules/ride/dto"
	"gocycling/internal/ui/components"
	rideview "gocycling/internal/ui/views/ride"
)

type fakePort struct {
	status ridedto.StatusOutput
	aborts int
	stops  int
}

func (f *fakePort) set(status string) (ridedto.StatusOutput, error) {
	f.status.RideID = "ride-1"
	f.status.Status = status
	f.status.Elapsed = 90 * time.Second
	f.status.PausedByStop = false
	return f.status, nil
}

func (f *fakePort) Status(context.Context) (ridedto.StatusOutput, error) { return f.status, nil }
func (f *fakePort) Start(context.Context) (ridedto.StatusOutput, error)  { return f.set("running") }
func (f *fakePort) Pause(context.Context) (ridedto.StatusOutput, error)  { return f.set("paused") }
func (f *fakePort) Resume(context.Context) (ridedto.StatusOutput, error) { return f.set("running") }
func (f *fakePort) BeginStop(context.Context) (ridedto.StatusOutput, error) {
	wasRunning := f.status.Status == "running"
	out, err := f.set("paused")
	f.status.PausedByStop = wasRunning
	out.PausedByStop = wasRunning
	return out, err
}

func (f *fakePort) AbortStop(context.Context) (ridedto.StatusOutput, error) {
	f.aborts++
	return f.set("running")
}

func (f *fakePort) Stop(_ context.Context, confirmed bool) (ridedto.StopOutput, error) {
	f.stops++
	f.status = ridedto.StatusOutput{Status: "stopped"}
	return ridedto.StopOutput{Committed: confirmed, RideID: "ride-1", Duration: 90 * time.Second, Distance: 1200}, nil
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func feed(m rideview.Model, msgs []tea.Msg) (rideview.Model, []tea.Msg) {
	var produced []tea.Msg
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		produced = append(produced, run(cmd)...)
	}
	return m, produced
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStopAsksBeforeSaving(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := rideview.New(port)
	m, _ = feed(m, []tea.Msg{tea.WindowSizeMsg{Width: 80, Height: 24}})
	m, _ = feed(m, run(m.Action("start")))
	if got := m.Status().Status; got != "running" {
		t.Fatalf("status after start = %q", got)
	}

	m, msgs := feed(m, []tea.Msg{key("x")})
	m, msgs = feed(m, msgs)
	if len(msgs) != 1 {
		t.Fatalf("expected one confirmation request, got %v", msgs)
	}
	req, ok := msgs[0].(components.ConfirmRequestMsg)
	if !ok || req.ID != "ride:stop" {
		t.Fatalf("unexpected message %#v", msgs[0])
	}
	if m.Status().Status != "paused" {
		t.Fatalf("ride should pause while confirming, got %q", m.Status().Status)
	}

	m, msgs = feed(m, []tea.Msg{components.ConfirmResultMsg{ID: req.ID, Accepted: false}})
	m, _ = feed(m, msgs)
	if port.aborts != 1 || m.Status().Status != "running" {
		t.Fatalf("declining should resume: aborts=%d status=%q", port.aborts, m.Status().Status)
	}

	m, msgs = feed(m, []tea.Msg{key("x")})
	m, msgs = feed(m, msgs)
	m, msgs = feed(m, []tea.Msg{components.ConfirmResultMsg{ID: msgs[0].(components.ConfirmRequestMsg).ID, Accepted: true}})
	m, _ = feed(m, msgs)
	if port.stops != 1 || m.Status().Status != "stopped" {
		t.Fatalf("accepting should stop: stops=%d status=%q", port.stops, m.Status().Status)
	}
	if !strings.Contains(m.View(), "saved 1.20 km over") {
		t.Fatalf("missing saved message:\n%s", m.View())
	}
}

func TestForeignConfirmationIsIgnored(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := rideview.New(port)
	_, msgs := feed(m, []tea.Msg{components.ConfirmResultMsg{ID: "history:delete:a", Accepted: true}})
	if len(msgs) != 0 || port.stops != 0 {
		t.Fatalf("unrelated confirmation handled: %v", msgs)
	}
}

func TestCancelledStopKeepsRiderPause(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := rideview.New(port)
	m, _ = feed(m, run(m.Action("start")))
	m, _ = feed(m, run(m.Action("pause")))

	m, msgs := feed(m, []tea.Msg{key("x")})
	m, msgs = feed(m, msgs)
	req, ok := msgs[0].(components.ConfirmRequestMsg)
	if !ok {
		t.Fatalf("expected confirmation request, got %T", msgs[0])
	}
	m, msgs = feed(m, []tea.Msg{components.ConfirmResultMsg{ID: req.ID, Accepted: false}})
	m, _ = feed(m, msgs)
	if port.aborts != 0 || m.Status().Status != "paused" {
		t.Fatalf("cancel should leave the ride paused: aborts=%d status=%q", port.aborts, m.Status().Status)
	}
}
