package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/api"
)

// options are the global flags. Empty values keep the configured ones.
type options struct {
	deviceID string
	dbPath   string
	logLevel string
}

type envOpener func(ctx context.Context, opts options) (*env, error)

// cli owns the command tree and the environment shared by its commands.
type cli struct {
	opts options
	open envOpener
	show viewRunner
	env  *env
}

func newCLI(open envOpener) *cli {
	return &cli{open: open, show: runView}
}

func (c *cli) root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minspirit",
		Short: "MinSpirit: Countdown of Time",
		Long: `minspirit keeps timers, meditation sessions, predictions and settings
for this device and runs their countdowns in the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.env != nil {
				return nil
			}
			e, err := c.open(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			c.env = e
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.opts.deviceID, "device", "", "Device ID (default: configured or host name)")
	rootCmd.PersistentFlags().StringVar(&c.opts.dbPath, "db", "", "Path of the SQLite database")
	rootCmd.PersistentFlags().StringVar(&c.opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(c.newStartCmd())
	rootCmd.AddCommand(c.newTimerCmd())
	rootCmd.AddCommand(c.newMeditationCmd())
	rootCmd.AddCommand(c.newPredictionCmd())
	rootCmd.AddCommand(c.newSettingsCmd())
	rootCmd.AddCommand(c.newShareAppCmd())

	return rootCmd
}

func (c *cli) close() error {
	if c.env == nil {
		return nil
	}
	err := c.env.close()
	c.env = nil
	return err
}

// alert replaces user errors with the message the app shows for them.
// Unexpected errors pass through unchanged.
func alert(err error) error {
	if err == nil {
		return nil
	}
	if api.MapErrorToStatusCode(err) >= http.StatusInternalServerError {
		return err
	}
	return errors.New(api.GetSafeErrorMessage(err))
}

func alertText(err error) string {
	return alert(err).Error()
}
