package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/countdown/internal/alert"
	"github.com/hammamikhairi/countdown/internal/domain"
)

func newBeepCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "beep",
		Short: "Play the completion alert once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			// Report a missing device instead of falling back to silence.
			var alerter domain.Alerter
			switch a.cfg.Alert.Mode {
			case alert.ModeTone:
				b, err := alert.NewBeeper(a.cfg.Alert.SampleRate, a.log, alert.WithVolume(a.cfg.Alert.Volume))
				if err != nil {
					return err
				}
				defer b.Stop()
				alerter = b
			case alert.ModeBell:
				alerter = alert.NewBell(cmd.OutOrStdout())
			default:
				return errors.New("alerts are disabled (alert mode is none)")
			}

			if err := alerter.Alert(cmd.Context()); err != nil {
				return fmt.Errorf("playing alert: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "beep")
			return nil
		},
	}
}
