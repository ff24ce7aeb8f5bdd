package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/config"
	"github.com/skillforge/checkout-service/internal/infrastructure/backend"
	"github.com/skillforge/checkout-service/internal/infrastructure/gateway"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/handlers"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/persistence/postgres"
	"github.com/skillforge/checkout-service/internal/infrastructure/persistence/redis"
	"github.com/skillforge/checkout-service/internal/pkg/clock"
	"github.com/skillforge/checkout-service/internal/pkg/generator"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type Server struct {
	server          *http.Server
	logger          *logger.Logger
	gen             *generator.Generator
	authMiddleware  *middleware.AuthMiddleware
	healthHandler   *handlers.HealthHandler
	cartHandler     *handlers.CartHandler
	checkoutHandler *handlers.CheckoutHandler
	receiptHandler  *handlers.ReceiptHandler
	catalogHandler  *handlers.CatalogHandler
	authHandler     *handlers.AuthHandler
	profileHandler  *handlers.ProfileHandler
}

func NewServer(
	cfg *config.Config,
	db *postgres.Connection,
	redisConn *redis.Connection,
	publisher ports.PurchasePublisher,
	log *logger.Logger,
) *Server {
	store := redis.NewStore(redisConn, log)
	courseRepo := postgres.NewCourseRepository(db)

	backendClient := backend.NewClient(cfg.Backend, log)
	gatewayClient := gateway.NewClient(cfg.Gateway, log)

	checkoutUseCase := use_cases.NewCheckoutUseCase(
		store,
		backendClient,
		gatewayClient,
		publisher,
		clock.NewRealClock(),
		log,
		cfg.Checkout.HoldTTL(),
		cfg.Checkout.FreshnessWindow(),
	)
	cartUseCase := use_cases.NewCartUseCase(store, log)
	accountUseCase := use_cases.NewAccountUseCase(store, backendClient, log, cfg.Checkout.OTPResendCooldown())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server:          server,
		logger:          log,
		gen:             generator.NewGenerator(),
		authMiddleware:  middleware.NewAuthMiddleware(backendClient, store, log),
		healthHandler:   handlers.NewHealthHandler(db.GetDB(), redisConn.GetClient(), log),
		cartHandler:     handlers.NewCartHandler(cartUseCase, log),
		checkoutHandler: handlers.NewCheckoutHandler(checkoutUseCase, log),
		receiptHandler:  handlers.NewReceiptHandler(checkoutUseCase, log),
		catalogHandler:  handlers.NewCatalogHandler(courseRepo, log),
		authHandler:     handlers.NewAuthHandler(accountUseCase, log),
		profileHandler:  handlers.NewProfileHandler(accountUseCase, log),
	}
}

func (s *Server) ListenAndServe() error {
	s.server.Handler = s.setupRoutes()

	s.logger.Info("Starting HTTP server", "address", s.server.Addr)

	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
