package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
)

func (c *cli) newMeditationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meditation",
		Aliases: []string{"med"},
		Short:   "Manage and run meditation sessions",
	}

	cmd.AddCommand(c.newMeditationListCmd())
	cmd.AddCommand(c.newMeditationAddCmd())
	cmd.AddCommand(c.newMeditationRemoveCmd())
	cmd.AddCommand(c.newMeditationRunCmd())

	return cmd
}

func (c *cli) newMeditationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved meditation sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := c.env.meditations.List(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No meditation sessions yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMINUTES")
			for _, m := range sessions {
				fmt.Fprintf(w, "%d\t%d\n", m.ID, m.Minutes)
			}
			return w.Flush()
		},
	}
}

func (c *cli) newMeditationAddCmd() *cobra.Command {
	var start bool

	cmd := &cobra.Command{
		Use:   "add <minutes>",
		Short: "Save a meditation session",
		Example: `  minspirit meditation add 15
  minspirit meditation add 20 --start`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseMinutes(args[0])
			if err != nil {
				return err
			}

			if start {
				return c.runCountdown(cmd, countdown.KindMeditation, func(v *countdownView) (string, error) {
					session, _, err := v.sessions.AddMeditation(cmd.Context(), c.env.deviceID, minutes, true)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Meditation (%d min)", session.Minutes), nil
				})
			}

			session, err := c.env.meditations.Add(cmd.Context(), c.env.deviceID, minutes)
			if err != nil {
				return alert(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meditation %d (%d min)\n", session.ID, session.Minutes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&start, "start", false, "Start the new session right away")
	return cmd
}

func (c *cli) newMeditationRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a saved meditation session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sessions, err := c.env.meditations.Remove(cmd.Context(), c.env.deviceID, id)
			if err != nil {
				return alert(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d meditation sessions left\n", len(sessions))
			return nil
		},
	}
}

func (c *cli) newMeditationRunCmd() *cobra.Command {
	var (
		id      int
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the meditation countdown in the terminal",
		Example: `  minspirit meditation run
  minspirit meditation run --id 2
  minspirit meditation run --minutes 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCountdown(cmd, countdown.KindMeditation, func(v *countdownView) (string, error) {
				ctx := cmd.Context()
				switch {
				case cmd.Flags().Changed("id"):
					snap, err := v.sessions.SelectMeditation(ctx, c.env.deviceID, id, true)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Meditation (%d min)", snap.Minutes), nil
				case cmd.Flags().Changed("minutes"):
					_, err := v.sessions.Runner.Select(ctx, c.env.deviceID, countdown.KindMeditation, minutes, true)
					return "", err
				}
				return "", nil
			})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Saved meditation session ID")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Custom duration in minutes")
	cmd.MarkFlagsMutuallyExclusive("id", "minutes")

	return cmd
}
