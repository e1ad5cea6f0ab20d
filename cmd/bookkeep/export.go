package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/export"
)

func exportCmd(baseURL *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			deps, err := cliSetup(*baseURL)
			if err != nil {
				return err
			}
			if err := deps.Cache.Refresh(ctx); err != nil {
				return fmt.Errorf("load lookups: %s", api.Message(err))
			}
			l, err := export.Load(ctx, deps.Client)
			if err != nil {
				return fmt.Errorf("load ledger: %s", api.Message(err))
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.Write(f, l, deps.Cache); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			deps.Log.Info().
				Str("path", out).
				Int("expenses", len(l.Expenses)).
				Int("payments", len(l.Payments)).
				Msg("export written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "ledger.xlsx", "output path")
	return cmd
}
