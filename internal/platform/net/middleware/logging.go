package middleware

import (
	"net/http"
	"time"

	"pathstats/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// slowRequest is the duration after which a request logs at warn
const slowRequest = 500 * time.Millisecond

// AccessLog logs request duration and status. Profile downloads are long by nature,
// so only non-pprof requests are promoted to warn when slow
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &capture{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		log := logger.Named("debug-http")
		evt := log.Debug()
		if elapsed >= slowRequest && !isProfile(r.URL.Path) {
			evt = log.Warn()
		}
		evt.Int("status", sw.status).
			Dur("elapsed", elapsed).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request done")
	})
}

func isProfile(path string) bool {
	const p = "/debug/pprof"
	return len(path) >= len(p) && path[:len(p)] == p
}

type capture struct {
	http.ResponseWriter
	status int
}

func (c *capture) WriteHeader(code int) {
	c.status = code
	c.ResponseWriter.WriteHeader(code)
}
