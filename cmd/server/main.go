package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skillforge/checkout-service/internal/config"
	"github.com/skillforge/checkout-service/internal/infrastructure/events"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/server"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/infrastructure/persistence/postgres"
	"github.com/skillforge/checkout-service/internal/infrastructure/persistence/redis"
	"github.com/skillforge/checkout-service/internal/infrastructure/scheduler"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	flag.Parse()

	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	log := logger.NewLogger()
	log.Info("Starting Checkout Service")

	cfg, configErr := config.LoadConfig(*configPath)
	if configErr != nil {
		log.Fatal("Failed to load configuration", "error", configErr)
	}

	db, dbErr := postgres.NewConnection(cfg.Database)
	if dbErr != nil {
		log.Fatal("Failed to connect to database", "error", dbErr)
	}
	defer db.Close()

	if migrationErr := postgres.RunMigrations(cfg.Database); migrationErr != nil {
		log.Fatal("Failed to run migrations", "error", migrationErr)
	}

	redisConn, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisConn.Close()

	dbMetricsCollector := monitoring.NewDBMetricsCollector(db.GetDB())
	dbMetricsCollector.StartCollecting(context.Background(), 30*time.Second)

	publisher := events.NewKafkaPublisher(cfg.Kafka, log)
	defer publisher.Close()
	if publisher.Enabled() {
		log.Info("Purchase event publishing enabled", "topic", cfg.Kafka.Topic)
	}

	store := redis.NewStore(redisConn, log)
	holdSweeper := scheduler.NewHoldSweeper(store, log, cfg.Checkout.HoldTTL(), time.Minute)

	httpServer := server.NewServer(cfg, db, redisConn, publisher, log)

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	go holdSweeper.Start(serverCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigChan
		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		log.Info("Shutting down server...")
		holdSweeper.Stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}

		serverStopCtx()
	}()

	log.Info("Server starting", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed", "error", err)
	}

	<-serverCtx.Done()
	log.Info("Server stopped")
}
