package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nguyeenvoxx/strengths-best-gateway/internal/observability"
)

// ServerTimingApp measures total request processing time, writes
// app;dur=... to Server-Timing and reports the request to
// Metrics.ObserveHTTP under its chi route pattern.
func ServerTimingApp(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			dur := float64(time.Since(start).Microseconds()) / 1000.0
			observability.AppendServerTiming(w, "app", dur, "")

			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			m.ObserveHTTP(r.Method, route, ww.Status(), dur)
		})
	}
}
