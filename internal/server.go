package internal

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/agent"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/config"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/dispatch"
	"github.com/pragyakeshap/awesome-docker-experiments/internal/taskstore"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/cerr"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/clog"
)

type Server struct {
	server      *http.Server
	env         *config.Env
	taskServer  *dispatch.Server
	agentServer *agent.Server
	registry    *agent.Registry
	store       taskstore.Store
}

func NewServer(
	env *config.Env,
	taskServer *dispatch.Server,
	agentServer *agent.Server,
	registry *agent.Registry,
	store taskstore.Store,
) *Server {
	return &Server{
		env:         env,
		taskServer:  taskServer,
		agentServer: agentServer,
		registry:    registry,
		store:       store,
	}
}

// Handler builds the full route tree. Exposed separately from
// ListenAndServe so tests can drive it through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(clog.Middleware(
		clog.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/tasks", s.taskServer.CreateTask)
	r.Get("/tasks/{id}", s.taskServer.GetTask)
	r.Get("/agents", s.agentServer.ListAgents)
	r.Get("/store/info", s.handleStoreInfo)

	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r)
}

// ListenAndServe starts the HTTP server. The provided context is used
// as the base context for incoming requests, so cancelling it (on
// shutdown signal) also cancels in-flight request contexts.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.env.HTTPHost, s.env.HTTPPort)
	slog.Info("starting server", "addr", addr)

	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type rootResponse struct {
	Message        string   `json:"message"`
	Agents         []string `json:"agents"`
	StoreConnected bool     `json:"store_connected"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	cerr.WriteJSON(ctx, w, rootResponse{
		Message:        "Simple Multi-Agent System API",
		Agents:         s.registry.Types(),
		StoreConnected: s.store.Ping(pingCtx) == nil,
	})
}

type healthResponse struct {
	Status          string `json:"status"`
	Store           string `json:"store"`
	AgentsAvailable int    `json:"agents_available"`
}

// handleHealth reports liveness. The store probe is informational; an
// unhealthy store does not fail the endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	storeStatus := "healthy"
	if err := s.store.Ping(pingCtx); err != nil {
		storeStatus = "unhealthy"
	}
	cerr.WriteJSON(ctx, w, healthResponse{
		Status:          "healthy",
		Store:           storeStatus,
		AgentsAvailable: len(s.registry.List()),
	})
}

func (s *Server) handleStoreInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := s.store.Info(ctx)
	if err != nil {
		cerr.WriteError(ctx, w, taskstore.WrapReadError("store info", err))
		return
	}
	cerr.WriteJSON(ctx, w, stats)
}
