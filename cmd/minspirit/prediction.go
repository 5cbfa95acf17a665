package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newPredictionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prediction",
		Aliases: []string{"predict"},
		Short:   "Draw, like and share predictions",
	}

	cmd.AddCommand(c.newPredictionDrawCmd())
	cmd.AddCommand(c.newPredictionSavedCmd())
	cmd.AddCommand(c.newPredictionLikeCmd())
	cmd.AddCommand(c.newPredictionShareCmd())

	return cmd
}

func (c *cli) newPredictionDrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draw",
		Short: "Draw a prediction you have not seen in this cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prediction, err := c.env.predictions.Draw(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			saved, err := c.env.predictions.IsSaved(cmd.Context(), c.env.deviceID, prediction.ID)
			if err != nil {
				return alert(err)
			}

			heart := "♡"
			if saved {
				heart = "♥"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", heart, prediction.ID, prediction.Text)
			return nil
		},
	}
}

func (c *cli) newPredictionSavedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List liked predictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := c.env.predictions.Saved(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			if len(saved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved predictions.")
				return nil
			}
			for _, p := range saved {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", p.ID, p.Text)
			}
			return nil
		},
	}
}

func (c *cli) newPredictionLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like a prediction, or unlike it when already liked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			saved, _, err := c.env.predictions.Toggle(cmd.Context(), c.env.deviceID, id)
			if err != nil {
				return alert(err)
			}
			if saved {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved prediction #%d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed prediction #%d\n", id)
			}
			return nil
		},
	}
}

func (c *cli) newPredictionShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Share a prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			message, err := c.env.predictions.ShareMessage(id)
			if err != nil {
				return alert(err)
			}
			return c.share(cmd, message)
		},
	}
}
