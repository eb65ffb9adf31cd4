// Package observability wraps every request with a request id, the HTTP
// metrics and the request-scoped logging context.
//
// Middleware must be installed outermost so that auth failures and recovered
// panics are timed, counted and correlated like any other request.
package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ghuser/itemsvc/pkg/logger"
	"github.com/ghuser/itemsvc/pkg/metrics"
)

// RequestIDHeader carries the generated request id on every response.
const RequestIDHeader = "X-Request-ID"

// unmatchedRoute is the path label for requests no route matched.
const unmatchedRoute = "unmatched"

// Middleware returns the outermost request wrapper. For each request it:
//  1. generates a fresh UUID request id and sets it on the response header,
//  2. increments the in-flight gauge, decrementing it on every exit path,
//  3. binds request id, path and method into the request context for logging,
//  4. records latency and the request counter once the chain has returned.
func Middleware(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			start := time.Now()

			w.Header().Set(RequestIDHeader, requestID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			ctx := logger.WithRequestFields(r.Context(), logger.RequestFields{
				RequestID: requestID,
				Path:      r.URL.Path,
				Method:    r.Method,
			})
			r = r.WithContext(ctx)

			m.RequestStarted()
			defer func() {
				m.RequestFinished()

				status := ww.Status()
				rec := recover()
				switch {
				case rec != nil:
					status = http.StatusInternalServerError
				case status == 0:
					status = http.StatusOK
				}
				m.Observe(r.Method, routePattern(r), status, time.Since(start))

				if rec != nil {
					panic(rec)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// routePattern returns the matched chi route, e.g. "/api/v1/items/{id}",
// so that ids in the URL do not explode label cardinality.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}
