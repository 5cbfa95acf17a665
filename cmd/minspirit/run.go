package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/notify"
	"github.com/Cipollinka/MinSpiritCountdown/internal/runner"
	"github.com/Cipollinka/MinSpiritCountdown/internal/service"
	"github.com/Cipollinka/MinSpiritCountdown/internal/ui"
)

const streamBuffer = 64

// countdownView is the runtime of one terminal countdown session.
type countdownView struct {
	sessions  *runner.Sessions
	forwarder *ui.SignalForwarder
}

// prepareFunc selects or starts the countdown before the view opens and
// returns the view title. An empty title keeps the default.
type prepareFunc func(v *countdownView) (string, error)

type viewRunner func(cmd *cobra.Command, model ui.CountdownModel, forwarder *ui.SignalForwarder) error

func runView(cmd *cobra.Command, model ui.CountdownModel, forwarder *ui.SignalForwarder) error {
	return ui.Run(cmd.Context(), model, forwarder,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()))
}

// runCountdown starts a runner for this device, lets prepare pick the
// duration and shows the countdown of kind until the user quits.
func (c *cli) runCountdown(cmd *cobra.Command, kind countdown.Kind, prepare prepareFunc) error {
	ctx := cmd.Context()
	log := c.env.logger

	emitter := events.NewInMemoryEventEmitter(log)
	hub := events.NewHub(streamBuffer, log)
	emitter.RegisterHandler(hub)

	forwarder := &ui.SignalForwarder{}
	signals, err := service.NewSignalHandler(c.env.settings, notify.Multi{notify.NewLogTrigger(log), forwarder}, log)
	if err != nil {
		return err
	}
	emitter.RegisterHandler(signals)

	r, err := runner.NewRunner(c.env.clock, emitter, c.env.timers, runner.DefaultRunnerConfig(), log)
	if err != nil {
		return err
	}
	defer r.Shutdown()

	view := &countdownView{
		sessions: &runner.Sessions{
			Runner:      r,
			Timers:      c.env.timers,
			Meditations: c.env.meditations,
		},
		forwarder: forwarder,
	}

	sub := hub.Subscribe(c.env.deviceID, kind)
	defer sub.Close()

	title, err := prepare(view)
	if err != nil {
		return alert(err)
	}

	snap, err := r.Snapshot(ctx, c.env.deviceID, kind)
	if err != nil {
		return alert(err)
	}

	model := ui.NewCountdownModel(ctx, view.sessions, sub, snap, title, alertText)
	return c.show(cmd, model, forwarder)
}
