package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/bookkeep/internal/api"
	"github.com/jask/bookkeep/internal/config"
	"github.com/jask/bookkeep/internal/controller"
	"github.com/jask/bookkeep/internal/logger"
	"github.com/jask/bookkeep/internal/lookup"
	"github.com/jask/bookkeep/internal/nav"
	"github.com/jask/bookkeep/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var baseURL, startView string
	root := &cobra.Command{
		Use:           "bookkeep",
		Short:         "Vendors, wallets, expenses and payments in the terminal",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, ok := nav.Parse(startView)
			if !ok {
				return fmt.Errorf("unknown view %q", startView)
			}
			cfg, err := loadConfig(baseURL)
			if err != nil {
				return err
			}
			log, closer, err := logger.OpenFile(cfg.Log.Path, cfg.Log.Level)
			if err != nil {
				return err
			}
			defer closer.Close()
			log.Info().Str("base_url", cfg.API.BaseURL).Msg("starting")

			ctx := cmd.Context()
			deps := newDeps(cfg, log)
			app := tui.New(ctx, deps, tui.NewControllers(deps))
			app.Start(view)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				log.Error().Err(err).Msg("tui exited")
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "api", "", "backend base URL (overrides api.base_url)")
	root.Flags().StringVar(&startView, "view", string(nav.Expenses), "screen to open first: expenses, payments, vendors, wallets or settings")
	root.AddCommand(exportCmd(&baseURL), syncCmd(&baseURL), configCmd())
	return root
}

func loadConfig(baseURL string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	return cfg, nil
}

func newDeps(cfg config.Config, log zerolog.Logger) controller.Deps {
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, log)
	return controller.Deps{
		Client: client,
		Cache:  lookup.New(client),
		Symbol: cfg.UI.CurrencySymbol,
		Log:    log,

		DateFormat: cfg.UI.DateFormat,
	}
}

// cliSetup is the non-interactive variant: logs go to stderr.
func cliSetup(baseURL string) (controller.Deps, error) {
	cfg, err := loadConfig(baseURL)
	if err != nil {
		return controller.Deps{}, err
	}
	return newDeps(cfg, logger.New(os.Stderr, cfg.Log.Level)), nil
}
