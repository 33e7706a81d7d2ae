package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"userdesk/internal/server/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	services        *service.Services
	db              Pinger
	logger          *slog.Logger
	maxRequestBytes int64
}

// NewRouter builds the HTTP API. db may be nil, in which case /health only
// reports that the process is up.
func NewRouter(services *service.Services, db Pinger, logger *slog.Logger, maxRequestBytes int64) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{services: services, db: db, logger: logger, maxRequestBytes: maxRequestBytes}
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(r.requestLogger)
	mux.Use(middleware.Recoverer)

	mux.Get("/health", r.handleHealth)
	mux.Get("/swagger.yaml", r.handleSwagger)

	mux.Route("/api/users", func(ur chi.Router) {
		ur.Get("/", r.handleListUsers)
		ur.Post("/", r.handleCreateUser)
		ur.Get("/{id}", r.handleGetUser)
		ur.Put("/{id}", r.handleUpdateUser)
		ur.Delete("/{id}", r.handleDeleteUser)
	})

	return mux
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.db != nil {
		if err := r.db.Ping(req.Context()); err != nil {
			r.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
