package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/harven/cityforge/internal/config"
	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/sim"
)

// Server serves the city API over HTTP while the runner ticks the
// simulation in the background.
type Server struct {
	httpServer *http.Server
	runner     *sim.Runner
}

func New(cfg *config.Config, runner *sim.Runner) *Server {
	cities := make(map[string]grid.CityLayout, len(cfg.Cities))
	for id, c := range cfg.Cities {
		cities[id] = c.Layout(id)
	}

	routes := NewRoutes(runner, cities, cfg.Game.CurrentCity)
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           corsMiddleware.Handler(routes.Setup()),
			ReadHeaderTimeout: 5 * time.Second,
		},
		runner: runner,
	}
}

// Run ticks the simulation and serves the API until the context is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		if err := s.runner.Loop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Tick loop stopped", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
