package middleware

import (
	"net/http"
	"time"

	"fight-picks-go/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogging logs one line per request with status and duration
func RequestLogging(next http.Handler) http.Handler {
	logger := logging.WithPrefix("HTTP")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Debugf("%s %s %d %s (%s)",
			r.Method, r.URL.Path, rec.status, time.Since(start), r.Header.Get(RequestIDHeader))
	})
}
