package middleware

import (
	"net/http"
	"time"

	"github.com/skillforge/checkout-service/internal/pkg/generator"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

const correlationIDHeader = "X-Correlation-ID"

func NewLoggingMiddleware(log *logger.Logger, gen *generator.Generator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()

			correlationID := r.Header.Get(correlationIDHeader)
			if correlationID == "" {
				correlationID = gen.CorrelationID()
			}
			w.Header().Set(correlationIDHeader, correlationID)

			wrw := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrw, r)

			log.WithCorrelationID(correlationID).Info("HTTP Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"user_agent", r.UserAgent(),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
