package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
)

func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.healthHandler.HandleHealth())

	mux.HandleFunc("/api/v1/courses", s.catalogHandler.HandleListCourses)
	mux.HandleFunc("/api/v1/courses/", s.handleCourseRoutes)

	auth := s.authMiddleware.Wrap

	mux.HandleFunc("/api/v1/cart", auth(s.handleCartRoot))
	mux.HandleFunc("/api/v1/cart/items", auth(s.handleCartItems))
	mux.HandleFunc("/api/v1/cart/items/", auth(s.handleCartItemRoutes))

	mux.HandleFunc("/api/v1/checkout", auth(s.checkoutHandler.HandleBeginCheckout()))
	mux.HandleFunc("/api/v1/checkout/payment-session", auth(s.checkoutHandler.HandleRetryPaymentSession()))
	mux.HandleFunc("/api/v1/checkout/submit", auth(s.checkoutHandler.HandleSubmitPayment()))
	mux.HandleFunc("/api/v1/receipt", auth(s.receiptHandler.HandleReceipt()))

	mux.HandleFunc("/api/v1/auth/send-otp", auth(s.authHandler.HandleSendOTP))
	mux.HandleFunc("/api/v1/auth/verify-otp", auth(s.authHandler.HandleVerifyOTP))
	mux.HandleFunc("/api/v1/auth/logout", auth(s.authHandler.HandleLogout))

	mux.HandleFunc("/api/v1/profile/theme", auth(s.profileHandler.HandleTheme))

	handler := middleware.NewRecoveryMiddleware(s.logger)(mux)
	handler = middleware.NewLoggingMiddleware(s.logger, s.gen)(handler)
	handler = monitoring.WrapHandler(handler)
	handler = s.corsMiddleware(handler)
	handler = s.timeoutMiddleware(handler)

	return handler
}

func (s *Server) handleCourseRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	courseID := strings.TrimPrefix(r.URL.Path, "/api/v1/courses/")
	if courseID == "" || strings.Contains(courseID, "/") {
		http.NotFound(w, r)
		return
	}

	s.catalogHandler.HandleGetCourse(w, r, courseID)
}

func (s *Server) handleCartRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.cartHandler.HandleGetCart(w, r)
	case http.MethodDelete:
		s.cartHandler.HandleClearCart(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.cartHandler.HandleAddItem(w, r)
}

func (s *Server) handleCartItemRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	courseID := strings.TrimPrefix(r.URL.Path, "/api/v1/cart/items/")
	if courseID == "" || strings.Contains(courseID, "/") {
		http.NotFound(w, r)
		return
	}

	s.cartHandler.HandleRemoveItem(w, r, courseID)
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Correlation-ID")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) timeoutMiddleware(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, 90*time.Second, "Request timeout")
}
