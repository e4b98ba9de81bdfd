package middleware

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger/src/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Instrument records the duration of every request under its route pattern.
// It must wrap handlers registered on the mux so that r.Pattern is set. A
// request whose handler panics is recorded as a 500 before the panic
// continues to Recover.
func Instrument(recorder *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			completed := false
			defer func() {
				status := rec.status
				if !completed {
					status = http.StatusInternalServerError
				}

				route := r.Pattern
				if route == "" {
					route = "unmatched"
				}
				recorder.HTTPRequest(r.Context(), r.Method, route, status, time.Since(start))
			}()

			next.ServeHTTP(rec, r)
			completed = true
		})
	}
}
