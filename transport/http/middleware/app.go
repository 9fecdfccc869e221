package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"innstay/config"
	"innstay/infras/otel"
	statsService "innstay/internal/domains/stats/service"
	"innstay/shared/cache"
	"innstay/shared/constant"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	ViewCounter(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
	stats  statsService.Stats
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, stats statsService.Stats) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
		stats:  stats,
	}
}

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.status_code": rec.status,
		})
	})
}

// ViewCounter bumps the site view counter for every page request.
// Health probes and the stats endpoints themselves are not page views.
func (a *appMiddleware) ViewCounter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == constant.PathHealth || strings.HasPrefix(path, "/v1/stats") {
			next.ServeHTTP(w, r)

			return
		}

		// Counting must never slow down or fail the request itself.
		go a.stats.RecordView(context.WithoutCancel(r.Context()))

		next.ServeHTTP(w, r)
	})
}
