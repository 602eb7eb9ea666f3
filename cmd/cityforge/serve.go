package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harven/cityforge/internal/config"
	"github.com/harven/cityforge/internal/server"
	"github.com/harven/cityforge/internal/sim"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the city API over HTTP while the simulation ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			engine, state, err := newCity(cfg)
			if err != nil {
				return err
			}
			runner := sim.NewRunner(engine, state, cfg.Game.TickInterval)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("Starting city server",
				"city", cfg.Game.CurrentCity,
				"addr", cfg.Server.Addr,
				"tick_interval", cfg.Game.TickInterval,
			)
			err = server.New(cfg, runner).Run(ctx)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}
}
