package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RequestObserver receives the route pattern and final status of each request.
type RequestObserver func(route string, status int)

// Logger emits one structured log line per request and stores a request-scoped
// logger (tagged with the chi request id) on the context.
func Logger(base *zap.Logger, observe RequestObserver) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()
			rid := chiMid.GetReqID(ctx)
			logger := base.With(
				zap.String("request_id", rid),
				zap.String("method", r.Method),
				zap.String("remote_ip", clientIP(r)),
			)
			if rid != "" {
				ctx = WithRequestID(ctx, rid)
			}
			ctx = WithLogger(ctx, logger)
			r = r.WithContext(ctx)

			rw := NewResponseRecorder(w)
			defer func() {
				status := rw.Status()
				route := routePattern(r)
				fields := []zap.Field{
					zap.String("path", r.URL.Path),
					zap.String("route", route),
					zap.Int("status", status),
					zap.Duration("latency", time.Since(start)),
					zap.Int64("bytes", rw.BytesWritten()),
				}
				switch {
				case status >= http.StatusInternalServerError:
					logger.Error("request completed", fields...)
				case status >= http.StatusBadRequest:
					logger.Warn("request completed", fields...)
				default:
					logger.Info("request completed", fields...)
				}
				if observe != nil {
					observe(route, status)
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return ""
}

func clientIP(r *http.Request) string {
	// chi RealIP has already rewritten RemoteAddr when a proxy header was present.
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
