package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

func (c *cli) newStartCmd() *cobra.Command {
	var register bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open the app: onboarding on first launch, the timer afterwards",
		Example: `  minspirit start
  minspirit start --register`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			startup, err := c.env.profiles.Resolve(ctx, c.env.deviceID)
			if err != nil {
				return alert(err)
			}

			if register && startup.User == nil {
				user, err := c.env.profiles.Register(ctx, c.env.deviceID)
				if err != nil {
					return alert(err)
				}
				startup.User = user
			}

			if startup.Route == domain.RouteOnboarding {
				fmt.Fprintln(out, "Welcome to "+domain.AppName+"!")
				fmt.Fprintln(out, "Set up timers with `minspirit timer add`, then run one with `minspirit timer run`.")
			} else {
				fmt.Fprintln(out, "Welcome back.")
			}
			if startup.User != nil {
				fmt.Fprintf(out, "Profile: %s\n", startup.User.ID)
			}
			fmt.Fprintf(out, "Route: %s\n", startup.Route)
			return nil
		},
	}

	cmd.Flags().BoolVar(&register, "register", false, "Create the device profile if it does not exist")
	return cmd
}

func (c *cli) newShareAppCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share-app",
		Short: "Share an invitation to the app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.share(cmd, domain.AppShareMessage)
		},
	}
}

// share hands text to the sharer. Failures are logged and reported with a
// generic message.
func (c *cli) share(cmd *cobra.Command, text string) error {
	if err := c.env.sharer.Share(cmd.Context(), text); err != nil {
		c.env.logger.Error("share failed", "error", err)
		return fmt.Errorf("could not share, try again later")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Shared.")
	return nil
}
