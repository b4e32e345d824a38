package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cardsapi/internal/config"
	"cardsapi/internal/gallery"
	"cardsapi/internal/logger"
	"cardsapi/internal/metrics"
	"cardsapi/internal/notion"
)

func NewRouter(cfg *config.Cfg, fields gallery.Fields) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeoutDuration()))
	r.Use(cors(cfg.CORSOrigin))

	setupErr := cfg.Validate()
	if setupErr != nil {
		logger.Log.WithError(setupErr).Warn("Notion is not configured; card requests will fail")
	}

	client := notion.NewClient(
		cfg.NotionSecret,
		cfg.NotionDatabaseID,
		&http.Client{Timeout: cfg.UpstreamTimeoutDuration()},
		notion.WithBaseURL(cfg.NotionBaseURL),
		notion.WithVersion(cfg.NotionVersion),
		notion.WithPageSize(cfg.PageSize),
		notion.WithSorts(
			notion.Sort{Property: fields.Pinned, Direction: "descending"},
			notion.Sort{Property: fields.PublishDate, Direction: "descending"},
		),
	)
	svc := gallery.NewService(client, fields)
	h := gallery.NewHandlers(svc, setupErr)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		type serviceHealth struct {
			OK        bool   `json:"ok"`
			Status    int    `json:"status"`
			LatencyMs int64  `json:"latencyMs"`
			Items     int    `json:"items"`
			Error     string `json:"error,omitempty"`
		}
		var notionRes serviceHealth
		if setupErr != nil {
			notionRes.Error = setupErr.Error()
		} else {
			ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
			defer cancel()

			start := time.Now()
			status, items, err := svc.Probe(ctx)
			notionRes = serviceHealth{
				OK:        err == nil && status >= 200 && status < 300,
				Status:    status,
				LatencyMs: time.Since(start).Milliseconds(),
				Items:     items,
			}
			if err != nil {
				notionRes.Error = err.Error()
			}
		}

		resp := map[string]any{
			"ok":        notionRes.OK,
			"timestamp": time.Now().Format(time.RFC3339),
			"services": map[string]serviceHealth{
				"notion": notionRes,
			},
		}
		code := http.StatusOK
		if !notionRes.OK {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/notion", h.Cards)
		r.Get("/items", h.Cards)
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.ObserveHTTP(route, status)

		entry := logger.Log.WithFields(logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"duration":    time.Since(start),
			"request_id":  middleware.GetReqID(r.Context()),
			"remote_addr": r.RemoteAddr,
		})
		if status >= 500 {
			entry.Warn("Request processed")
			return
		}
		entry.Info("Request processed")
	})
}

func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
