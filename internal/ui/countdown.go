package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/notify"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
)

// AlertFunc turns an operation error into the text shown to the user.
type AlertFunc func(error) string

type eventMsg struct{ event *events.CountdownEvent }

type signalMsg struct{ signal notify.Signal }

type streamClosedMsg struct{}

// CountdownModel is the bubbletea model of one device countdown. Keys drive
// the runner; the view follows the events published on the subscription.
type CountdownModel struct {
	ctx      context.Context
	sessions *runner.Sessions
	sub      *events.Subscription
	alert    AlertFunc

	deviceID string
	kind     countdown.Kind
	title    string

	snap    runner.Snapshot
	expired bool
	notice  string
	err     string
}

// NewCountdownModel creates the view for the countdown of kind. sub must be
// subscribed to the same device and kind; the model reads it until it closes.
func NewCountdownModel(
	ctx context.Context,
	sessions *runner.Sessions,
	sub *events.Subscription,
	snap runner.Snapshot,
	title string,
	alert AlertFunc,
) CountdownModel {
	if alert == nil {
		alert = func(err error) string { return err.Error() }
	}
	if title == "" {
		title = defaultTitle(snap.Kind)
	}
	return CountdownModel{
		ctx:      ctx,
		sessions: sessions,
		sub:      sub,
		alert:    alert,
		deviceID: snap.DeviceID,
		kind:     snap.Kind,
		title:    title,
		snap:     snap,
	}
}

func defaultTitle(kind countdown.Kind) string {
	if kind == countdown.KindMeditation {
		return "Meditation"
	}
	return "Timer"
}

// Snapshot returns the countdown state the view currently shows.
func (m CountdownModel) Snapshot() runner.Snapshot {
	return m.snap
}

func (m CountdownModel) waitForEvent() tea.Msg {
	event, ok := <-m.sub.C
	if !ok {
		return streamClosedMsg{}
	}
	return eventMsg{event: event}
}

// Init implements tea.Model.
func (m CountdownModel) Init() tea.Cmd {
	return m.waitForEvent
}

// Update implements tea.Model.
func (m CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case eventMsg:
		ev := msg.event
		m.snap.RemainingSeconds = ev.RemainingSeconds
		m.snap.Running = ev.Running
		m.snap.Display = ev.Display
		switch ev.Type {
		case events.TypeExpired:
			m.expired = true
		case events.TypeReset, events.TypeStarted:
			m.expired = false
			m.notice = ""
		}
		return m, m.waitForEvent

	case signalMsg:
		switch msg.signal.Kind {
		case notify.SignalNotification:
			m.notice = msg.signal.Message
		case notify.SignalSound:
			return m, tea.Printf("\a")
		}
		return m, nil

	case streamClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m CountdownModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		snap runner.Snapshot
		err  error
	)
	r := m.sessions.Runner

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		if m.snap.Running {
			snap, err = r.Pause(m.ctx, m.deviceID, m.kind)
		} else {
			snap, err = r.Start(m.ctx, m.deviceID, m.kind)
		}
	case "r":
		snap, err = r.Reset(m.ctx, m.deviceID, m.kind)
	case "1", "2", "3":
		if m.kind != countdown.KindTimer {
			return m, nil
		}
		index := int(msg.String()[0] - '1')
		snap, err = m.sessions.SelectTab(m.ctx, m.deviceID, index, false)
	default:
		return m, nil
	}

	if err != nil {
		m.err = m.alert(err)
		return m, nil
	}
	m.err = ""
	m.snap = snap
	return m, nil
}

// View implements tea.Model.
func (m CountdownModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	clock := clockStyle
	if m.expired {
		clock = expiredClockStyle
	}
	b.WriteString(clock.Render(m.snap.Display))
	b.WriteString("\n")

	switch {
	case m.snap.Running:
		b.WriteString(runningStyle.Render("running"))
	case m.snap.RemainingSeconds == 0:
		b.WriteString(dimStyle.Render("finished"))
	default:
		b.WriteString(dimStyle.Render("paused"))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	help := "space start/pause • r reset • q quit"
	if m.kind == countdown.KindTimer {
		help = "space start/pause • 1-3 tabs • r reset • q quit"
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(help))

	return frameStyle.Render(b.String()) + "\n"
}

// SignalForwarder is a notify.Trigger that hands signals to a running
// program so the view can show notifications and ring the terminal bell.
type SignalForwarder struct {
	mu      sync.Mutex
	program *tea.Program
}

var _ notify.Trigger = (*SignalForwarder)(nil)

// Attach sets the program signals are sent to. Signals fired before Attach
// are dropped.
func (f *SignalForwarder) Attach(p *tea.Program) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.program = p
}

// Fire implements notify.Trigger.
func (f *SignalForwarder) Fire(ctx context.Context, signal notify.Signal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if signal.Kind == notify.SignalHaptic {
		return nil
	}

	f.mu.Lock()
	p := f.program
	f.mu.Unlock()
	if p == nil {
		return nil
	}
	p.Send(signalMsg{signal: signal})
	return nil
}

// Run shows model until the user quits or ctx is canceled. forwarder may be
// nil.
func Run(ctx context.Context, model CountdownModel, forwarder *SignalForwarder, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	if forwarder != nil {
		forwarder.Attach(p)
		defer forwarder.Attach(nil)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("countdown view: %w", err)
	}
	return nil
}

// TitleForTimer names the view after a stored timer.
func TitleForTimer(t domain.Timer) string {
	return fmt.Sprintf("%s (%d min)", t.Title, t.Minutes)
}
