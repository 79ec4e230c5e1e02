package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/colonial-go/internal/adapters/metrics"
	"github.com/andrescamacho/colonial-go/internal/application/live"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// Server is the serve-mode HTTP front end. Every endpoint dispatches through
// the mediator except the live websocket, which is fed by the hub.
type Server struct {
	cfg      *config.Config
	mediator mediator.Mediator
	prefs    *prefs.Preferences
	hub      *Hub
	logger   logging.Logger
	router   chi.Router
}

// NewServer builds the router. preferences supply defaults for requests that
// leave them out; preferences and clock may be nil.
func NewServer(cfg *config.Config, m mediator.Mediator, projects project.ProjectRepository, preferences *prefs.Preferences, clock shared.Clock, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	hub := NewHub(projects, live.PollerOptions{
		Interval:   cfg.Poller.Interval,
		IdleBudget: cfg.Poller.IdleBudget,
		Clock:      clock,
	}, cfg.Server.PingInterval, cfg.Server.AllowedOrigins)

	s := &Server{cfg: cfg, mediator: m, prefs: preferences, hub: hub, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the live update hub
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors(s.cfg.Server.AllowedOrigins))

	r.Get("/health", s.health)
	if s.cfg.Metrics.Enabled && metrics.IsEnabled() {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/route", s.route)
		api.Get("/projects", s.listProjects)
		api.Post("/projects", s.createProject)

		api.Route("/projects/{buildId}", func(p chi.Router) {
			p.Get("/cargo", s.cargoGrid)
			p.Get("/stats", s.projectStats)
			p.Get("/markets", s.cachedMarkets)
			p.Post("/markets", s.searchMarkets)
			p.Post("/deliver", s.deliver)
			p.Get("/live", s.live)
		})

		api.Get("/carriers/{marketId}", s.carrier)
		api.Post("/carriers/{marketId}/cargo", s.updateCarrierCargo)
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Server.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("address", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.hub.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	// websocket connections are hijacked and not tracked by Shutdown
	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
