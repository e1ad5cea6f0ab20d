// Command fakeapi serves the bookkeeping REST contract from memory for local
// development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jask/bookkeep/internal/fakeapi"
	"github.com/jask/bookkeep/internal/logger"
)

func main() {
	var (
		addr  string
		level string
		deps  bool
	)
	cmd := &cobra.Command{
		Use:          "fakeapi",
		Short:        "In-memory bookkeeping backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gin.SetMode(gin.ReleaseMode)
			log := logger.New(os.Stderr, level)
			b := fakeapi.New(fakeapi.Options{Logger: log, CheckDependencies: deps})

			srv := &http.Server{Addr: addr, Handler: b.Handler(), ReadHeaderTimeout: 5 * time.Second}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			log.Info().Str("addr", addr).Msg("fakeapi listening")

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdown); err != nil {
					return err
				}
				log.Info().Msg("fakeapi stopped")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level")
	cmd.Flags().BoolVar(&deps, "check-deps", false, "reject deletes of referenced vendors and wallets")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
