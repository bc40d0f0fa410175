// Package httpapi serves the schedule operations over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

// Options configures the router.
type Options struct {
	CORSOrigins []string
	Logger      *logrus.Logger

	// Tier defaults used when a request does not name its own.
	Boundary tiers.Boundary
	Weights  tiers.Weights
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	eng  *engine.Engine
	opts Options
	log  *logrus.Entry
}

// NewHandler creates a new handler with dependencies
func NewHandler(eng *engine.Engine, opts Options) *Handler {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Weights == (tiers.Weights{}) {
		opts.Weights = tiers.DefaultWeights()
	}
	return &Handler{eng: eng, opts: opts, log: opts.Logger.WithField("component", "http")}
}

// NewRouter wires the middleware stack and routes.
func NewRouter(eng *engine.Engine, opts Options) http.Handler {
	h := NewHandler(eng, opts)

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	origins := h.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", h.Teams)
		r.Get("/complements/{team}", h.Complements)
		r.Get("/added-starts", h.AddedStarts)
		r.Get("/added-starts/bulk", h.AddedStartsBulk)
		r.Get("/best-matches/{k}", h.BestMatches)
		r.Get("/tiers", h.Tiers)
	})

	return r
}

// requestLogger logs one line per request with logrus.
func requestLogger(log *logrus.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": chimiddleware.GetReqID(r.Context()),
			})
			switch {
			case ww.Status() >= 500:
				entry.Error("request")
			case ww.Status() >= 400:
				entry.Warn("request")
			default:
				entry.Info("request")
			}
		})
	}
}
