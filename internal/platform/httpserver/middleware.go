package httpserver

import (
	"net/http"
	"strconv"
	"time"
)

// statusRecorder captures the response status and stamps X-Process-Time
// on the first write, before headers are flushed.
type statusRecorder struct {
	http.ResponseWriter
	status int
	start  time.Time
	wrote  bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wrote {
		rec.Header().Set("X-Process-Time", strconv.FormatFloat(time.Since(rec.start).Seconds(), 'f', 6, 64))
		rec.status = code
		rec.wrote = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wrote {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK, start: time.Now()}
		next.ServeHTTP(rec, r)
		s.logger.Info("request completed",
			"event", "http_request_completed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(rec.start).Milliseconds(),
			"client", resolveClientIP(r),
		)
	})
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
