package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/controller"
)

func syncCmd(baseURL *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Spreadsheet sync status and actions",
	}

	settings := func(cmd *cobra.Command) (*controller.Settings, error) {
		deps, err := cliSetup(*baseURL)
		if err != nil {
			return nil, err
		}
		return &controller.Settings{Deps: deps}, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show pending changes and the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			p, err := s.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("Connection Failed: %s", api.Message(err))
			}
			last := p.LastTime
			if last == "" {
				last = "Never"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pending push: %d\n", p.PendingPush)
			fmt.Fprintf(out, "last sync:    %s (%s)\n", p.LastStatus, last)
			fmt.Fprintf(out, "frequency:    %ss\n", p.Frequency)
			for _, r := range p.Resources {
				fmt.Fprintf(out, "  %-10s push %d  pull %d\n", r.Name, r.Push, r.Pull)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Push local changes to the sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			if err := s.Push(cmd.Context()); err != nil {
				return fmt.Errorf("Failed to start sync: %s", api.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Push Started")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Replace local data with the sheet's contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			if err := s.Pull(cmd.Context()); err != nil {
				return fmt.Errorf("pull: %s", api.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pull started")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "frequency <seconds>",
		Short: "Set the automatic sync interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings(cmd)
			if err != nil {
				return err
			}
			if err := s.SaveFrequency(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated!")
			return nil
		},
	})
	return cmd
}
