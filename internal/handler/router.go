package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/f1-api/backend/internal/handler/constructor"
	"github.com/zhouzirui/f1-api/backend/internal/handler/driver"
	"github.com/zhouzirui/f1-api/backend/internal/handler/live"
	"github.com/zhouzirui/f1-api/backend/internal/handler/race"
	"github.com/zhouzirui/f1-api/backend/internal/handler/status"
	"github.com/zhouzirui/f1-api/backend/internal/handler/team"
	middlewarePkg "github.com/zhouzirui/f1-api/backend/internal/middleware"
	"github.com/zhouzirui/f1-api/backend/internal/model/f1"
	"github.com/zhouzirui/f1-api/backend/pkg/utils"
)

// Options 控制路由的可选行为。
type Options struct {
	CacheMaxAge       time.Duration
	ETagEnabled       bool
	MetricsEnabled    bool
	HeartbeatInterval time.Duration
	InstanceID        string
	Logger            *slog.Logger
}

// NewRouter wires HTTP routes to the loaded dataset.
func NewRouter(store *f1.Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 15 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.Metrics)
	r.Use(middlewarePkg.CORS)
	r.Use(middleware.GetHead)

	jsonHeaders := middlewarePkg.JSONHeaders(opts.CacheMaxAge)

	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Streaming routes stay outside the buffered JSON group.
	live.New(store, opts.HeartbeatInterval).RegisterRoutes(r)

	r.Group(func(api chi.Router) {
		api.Use(jsonHeaders)
		api.Use(middlewarePkg.ETag(opts.ETagEnabled))

		status.New(store, opts.InstanceID).RegisterRoutes(api)

		api.Route("/api", func(api chi.Router) {
			driver.New(store).RegisterRoutes(api)
			constructor.New(store).RegisterRoutes(api)
			team.New(store).RegisterRoutes(api)
			race.New(store).RegisterRoutes(api)
		})
	})

	r.NotFound(jsonHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "Not found")
	})).ServeHTTP)

	r.MethodNotAllowed(jsonHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD")
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})).ServeHTTP)

	return r
}
