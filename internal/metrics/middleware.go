package metrics

import (
	"log"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// skipLog returns true for health probes.
func skipLog(p string) bool {
	return p == "/health"
}

// Middleware records request metrics and writes an access log line.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		latency := time.Since(start)
		Get().RecordRequest(rw.status, latency)

		if !skipLog(r.URL.Path) {
			log.Printf("%s %s %d %s", r.Method, r.URL.Path, rw.status, latency.Round(time.Millisecond))
		}
	})
}
