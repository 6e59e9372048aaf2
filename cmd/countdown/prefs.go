package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/countdown/internal/render"
	"github.com/hammamikhairi/countdown/internal/storage"
)

func newPrefsCmd(opts *options) *cobra.Command {
	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or clear the remembered minutes and seconds.",
	}

	prefs.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the remembered values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "minutes: %d\n", a.inputs.Minutes())
			fmt.Fprintf(out, "seconds: %d\n", a.inputs.Seconds())
			fmt.Fprintf(out, "total:   %s\n", render.Format(a.inputs.TotalSeconds()))
			fmt.Fprintf(out, "store:   %s\n", describeStore(a))
			return nil
		},
	})

	prefs.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Restore the default values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			a.inputs.Reset(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "preferences reset to %s\n", render.Format(a.inputs.TotalSeconds()))
			return nil
		},
	})

	return prefs
}

func describeStore(a *app) string {
	if a.cfg.Store.Backend == storage.BackendMemory {
		return "memory"
	}
	return a.cfg.Store.Backend + " (" + storage.ResolvePath(a.cfg.Store.Backend, a.cfg.Store.Path) + ")"
}
