package monitoring

import (
	"net/http"
	"strconv"
	"strings"
)

type HTTPMetricsMiddleware struct {
	next http.Handler
}

func NewHTTPMetricsMiddleware(next http.Handler) *HTTPMetricsMiddleware {
	return &HTTPMetricsMiddleware{
		next: next,
	}
}

func (m *HTTPMetricsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wrapped := &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default to 200
	}

	end := TimeHTTPRequest(extractHandlerName(r.URL.Path), r.Method)

	m.next.ServeHTTP(wrapped, r)

	end(strconv.Itoa(wrapped.statusCode))
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func extractHandlerName(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "api/v1/cart"):
		return "cart"
	case strings.HasPrefix(path, "api/v1/checkout"):
		return "checkout"
	case strings.HasPrefix(path, "api/v1/receipt"):
		return "receipt"
	case strings.HasPrefix(path, "api/v1/courses"):
		return "courses"
	case strings.HasPrefix(path, "api/v1/auth"):
		return "auth"
	case strings.HasPrefix(path, "api/v1/profile"):
		return "profile"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	case strings.HasPrefix(path, "health"):
		return "health"
	default:
		parts := strings.Split(path, "/")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
		return "unknown"
	}
}
