package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/ui"
)

func (c *cli) newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Manage and run timers",
	}

	cmd.AddCommand(c.newTimerListCmd())
	cmd.AddCommand(c.newTimerAddCmd())
	cmd.AddCommand(c.newTimerRemoveCmd())
	cmd.AddCommand(c.newTimerRenameCmd())
	cmd.AddCommand(c.newTimerTabsCmd())
	cmd.AddCommand(c.newTimerSetTabCmd())
	cmd.AddCommand(c.newTimerRunCmd())

	return cmd
}

// --- timer list ---

func (c *cli) newTimerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved timers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timers, err := c.env.timers.List(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			if len(timers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timers yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tMINUTES")
			for _, t := range timers {
				fmt.Fprintf(w, "%d\t%s\t%d\n", t.ID, t.Title, t.Minutes)
			}
			return w.Flush()
		},
	}
}

// --- timer add ---

func (c *cli) newTimerAddCmd() *cobra.Command {
	var start bool

	cmd := &cobra.Command{
		Use:   "add <title> <minutes>",
		Short: "Save a timer",
		Example: `  minspirit timer add Focus 25
  minspirit timer add "Deep work" 90 --start`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[1])
			if err != nil {
				return err
			}

			if start {
				return c.runCountdown(cmd, countdown.KindTimer, func(v *countdownView) (string, error) {
					timer, _, err := v.sessions.AddTimer(cmd.Context(), c.env.deviceID, args[0], minutes, true)
					if err != nil {
						return "", err
					}
					return ui.TitleForTimer(timer), nil
				})
			}

			timer, err := c.env.timers.Add(cmd.Context(), c.env.deviceID, args[0], minutes)
			if err != nil {
				return alert(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added timer %d: %s (%d min)\n", timer.ID, timer.Title, timer.Minutes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&start, "start", false, "Start the new timer right away")
	return cmd
}

// --- timer rm ---

func (c *cli) newTimerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			timers, err := c.env.timers.Remove(cmd.Context(), c.env.deviceID, id)
			if err != nil {
				return alert(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d timers left\n", len(timers))
			return nil
		},
	}
}

// --- timer rename ---

func (c *cli) newTimerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a saved timer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			timer, err := c.env.timers.Rename(cmd.Context(), c.env.deviceID, id, args[1])
			if err != nil {
				return alert(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed timer %d to %s\n", timer.ID, timer.Title)
			return nil
		},
	}
}

// --- timer tabs / set-tab ---

func (c *cli) newTimerTabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "Show the quick-select timer durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tabs, err := c.env.timers.Tabs(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			printTabs(cmd, tabs)
			return nil
		},
	}
}

func (c *cli) newTimerSetTabCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set-tab <index> <minutes>",
		Short:   "Change a quick-select duration",
		Example: `  minspirit timer set-tab 0 30`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid tab index %q", args[0])
			}
			minutes, err := parseMinutes(args[1])
			if err != nil {
				return err
			}
			tabs, err := c.env.timers.SetTab(cmd.Context(), c.env.deviceID, index, minutes)
			if err != nil {
				return alert(err)
			}
			printTabs(cmd, tabs)
			return nil
		},
	}
}

func printTabs(cmd *cobra.Command, tabs domain.TimerTabs) {
	for i, minutes := range tabs {
		marker := " "
		if i == domain.TimerTabCount/2 {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %d min\n", marker, i, minutes)
	}
}

// --- timer run ---

type timerRunFlags struct {
	tab     int
	id      int
	minutes int
}

func (c *cli) newTimerRunCmd() *cobra.Command {
	flags := &timerRunFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer countdown in the terminal",
		Example: `  minspirit timer run
  minspirit timer run --tab 0
  minspirit timer run --id 3
  minspirit timer run --minutes 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCountdown(cmd, countdown.KindTimer, func(v *countdownView) (string, error) {
				ctx := cmd.Context()
				switch {
				case cmd.Flags().Changed("id"):
					timer, err := c.env.timers.Get(ctx, c.env.deviceID, flags.id)
					if err != nil {
						return "", err
					}
					if _, err := v.sessions.SelectTimer(ctx, c.env.deviceID, flags.id, true); err != nil {
						return "", err
					}
					return ui.TitleForTimer(timer), nil
				case cmd.Flags().Changed("minutes"):
					_, err := v.sessions.Runner.Select(ctx, c.env.deviceID, countdown.KindTimer, flags.minutes, true)
					return "", err
				case cmd.Flags().Changed("tab"):
					_, err := v.sessions.SelectTab(ctx, c.env.deviceID, flags.tab, true)
					return "", err
				}
				return "", nil
			})
		},
	}

	cmd.Flags().IntVar(&flags.tab, "tab", 1, "Quick-select tab (0-2)")
	cmd.Flags().IntVar(&flags.id, "id", 0, "Saved timer ID")
	cmd.Flags().IntVar(&flags.minutes, "minutes", 0, "Custom duration in minutes")
	cmd.MarkFlagsMutuallyExclusive("tab", "id", "minutes")

	return cmd
}

func parseMinutes(s string) (int, error) {
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return 0, alert(domain.ErrInvalidMinutes)
	}
	return minutes, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
