package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/socialcarehq/social-care-backend/internal/config"
	"github.com/socialcarehq/social-care-backend/internal/db"
	"github.com/socialcarehq/social-care-backend/internal/events"
	"github.com/socialcarehq/social-care-backend/internal/handlers"
	"github.com/socialcarehq/social-care-backend/internal/logger"
	"github.com/socialcarehq/social-care-backend/internal/observability"
	"github.com/socialcarehq/social-care-backend/internal/outbox"
	"github.com/socialcarehq/social-care-backend/internal/repos"
	"github.com/socialcarehq/social-care-backend/internal/server"
	"github.com/socialcarehq/social-care-backend/internal/services"
	"github.com/socialcarehq/social-care-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	cfg := config.Load(log)

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "social-care-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer otelShutdown(context.Background())
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	patientRepo := repos.NewPatientRepo(thePG, log)
	outboxRepo := repos.NewOutboxRepo(thePG, log)

	// Event registry + relay
	log.Info("Setting up outbox relay from main...")
	registry := events.NewDefaultRegistry()
	relay := outbox.NewRelay(outboxRepo, registry, log, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	relay.Start(ctx)

	// Realtime bus
	var bus services.EventBus
	if cfg.RedisAddr != "" {
		bus, err = services.NewRedisEventBus(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Warn("Redis event bus init failed, falling back to noop", "error", err)
			bus = services.NewNoopEventBus()
		}
	} else {
		bus = services.NewNoopEventBus()
	}
	defer bus.Close()

	// Services
	log.Info("Setting up Services from main...")
	patientService := services.NewPatientService(patientRepo, bus, log)

	// Handlers
	log.Info("Setting up handlers from main...")
	patientHandler := handlers.NewPatientHandler(patientService)
	eventsHandler := handlers.NewEventsHandler(log, relay)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		PatientHandler: patientHandler,
		EventsHandler:  eventsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
