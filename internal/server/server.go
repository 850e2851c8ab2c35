package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/rkaran/silverdash/internal/calculator"
	"github.com/rkaran/silverdash/internal/config"
	"github.com/rkaran/silverdash/internal/model"
	"github.com/rkaran/silverdash/internal/purchases"
	"github.com/rkaran/silverdash/internal/render"
	"github.com/rkaran/silverdash/internal/uploads"
)

// Pinger is implemented by the optional database store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the components the server answers from.
type Deps struct {
	Calculator *calculator.Calculator
	States     *purchases.Provider
	Uploads    *uploads.Store
	Database   Pinger // nil when no database is configured
	Map        render.MapOptions
	MaxUpload  int64
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg    config.ServerConfig
	deps   Deps
	hub    *Hub
	logger *slog.Logger
	router *mux.Router
}

// New creates a server and subscribes its websocket hub to state reloads.
func New(cfg config.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		hub:    NewHub(cfg.AllowedOrigins, logger.With("component", "ws")),
		logger: logger,
		router: mux.NewRouter(),
	}
	s.routes()

	deps.States.Subscribe(func(ds model.Dataset) {
		s.hub.Broadcast(DatasetEvent(ds))
	})
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/healthz", s.healthHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/currencies", s.currenciesHandler).Methods("GET")
	api.HandleFunc("/quote", s.quoteHandler).Methods("GET")
	api.HandleFunc("/history", s.historyHandler).Methods("GET")
	api.HandleFunc("/states", s.statesHandler).Methods("GET")
	api.HandleFunc("/states/top", s.topStatesHandler).Methods("GET")
	api.HandleFunc("/states/reload", s.reloadStatesHandler).Methods("POST")
	api.HandleFunc("/january", s.januaryHandler).Methods("GET")
	api.HandleFunc("/maps", s.uploadMapHandler).Methods("POST")
	api.HandleFunc("/maps/{id}", s.getMapHandler).Methods("GET")
	api.HandleFunc("/maps/{id}", s.deleteMapHandler).Methods("DELETE")
	api.HandleFunc("/maps/{id}/join", s.joinMapHandler).Methods("GET")
	api.HandleFunc("/maps/{id}/map.svg", s.mapSVGHandler).Methods("GET")

	r.HandleFunc("/charts/{name}", s.chartHandler).Methods("GET")
	r.HandleFunc("/", s.dashboardHandler).Methods("GET")
	r.Handle("/ws", s.hub)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
}

// Handler returns the routes wrapped with CORS.
func (s *Server) Handler() http.Handler {
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}
