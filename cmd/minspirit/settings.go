package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

func (c *cli) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change sound, vibration and notification settings",
	}

	cmd.AddCommand(c.newSettingsShowCmd())
	cmd.AddCommand(c.newSettingsSetCmd())

	return cmd
}

func (c *cli) newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := c.env.settings.Get(cmd.Context(), c.env.deviceID)
			if err != nil {
				return alert(err)
			}
			printSettings(cmd, settings)
			return nil
		},
	}
}

type settingsSetFlags struct {
	sound        bool
	vibration    bool
	notification bool
}

func (c *cli) newSettingsSetCmd() *cobra.Command {
	flags := &settingsSetFlags{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; omitted flags keep their value",
		Example: `  minspirit settings set --sound=false
  minspirit settings set --vibration --notification=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.SettingsPatch
			if cmd.Flags().Changed("sound") {
				patch.SoundEnabled = &flags.sound
			}
			if cmd.Flags().Changed("vibration") {
				patch.VibrationEnabled = &flags.vibration
			}
			if cmd.Flags().Changed("notification") {
				patch.NotificationEnabled = &flags.notification
			}

			settings, err := c.env.settings.Update(cmd.Context(), c.env.deviceID, patch)
			if err != nil {
				return alert(err)
			}
			printSettings(cmd, settings)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.sound, "sound", true, "Play a sound when a countdown ends")
	cmd.Flags().BoolVar(&flags.vibration, "vibration", true, "Vibrate on every countdown second")
	cmd.Flags().BoolVar(&flags.notification, "notification", true, "Show a notification when a countdown ends")

	return cmd
}

func printSettings(cmd *cobra.Command, s domain.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sound:        %s\n", onOff(s.SoundEnabled))
	fmt.Fprintf(out, "vibration:    %s\n", onOff(s.VibrationEnabled))
	fmt.Fprintf(out, "notification: %s\n", onOff(s.NotificationEnabled))
	fmt.Fprintf(out, "timer tabs:   %d / %d / %d min\n", s.TimerTabs[0], s.TimerTabs[1], s.TimerTabs[2])
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
