// @title Event Activities API
// @version 1.0
// @description Activity scheduling, registration and certificate readiness for events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventactivities/config"
	_ "eventactivities/docs"
	"eventactivities/internal/adapters/auth"
	"eventactivities/internal/adapters/email"
	deliveryhttp "eventactivities/internal/delivery/http"
	"eventactivities/internal/delivery/http/controllers"
	"eventactivities/internal/delivery/http/middleware"
	"eventactivities/internal/domain"
	"eventactivities/internal/repository/memory"
	"eventactivities/internal/repository/postgres"
	"eventactivities/internal/scheduling"
	"eventactivities/internal/services"
	"eventactivities/internal/telemetry"
)

const serviceName = "eventactivities-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "err", err)
		}
	}()

	uow, health, parallelism, closeStore, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			Endpoint:           cfg.Email.SESEndpoint,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	detector := scheduling.NewDetector(parallelism)
	timeout := cfg.ContextTimeout

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Events:       controllers.NewEventController(logger, services.NewEventService(uow, timeout)),
		Activities:   controllers.NewActivityController(logger, services.NewActivityService(uow, detector, timeout)),
		Registries:   controllers.NewRegistryController(logger, services.NewRegistryService(uow, detector, timeout)),
		Certificates: controllers.NewCertificateController(logger, services.NewCertificateService(uow, emailService, logger, timeout)),
		Exports:      controllers.NewExportController(logger, services.NewExportService(uow, timeout)),
	}, auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer), health, logger)

	handler := middleware.LoggingMiddleware(logger, router)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "err", err)
		}
	}()

	logger.Info("server starting", "addr", server.Addr, "env", cfg.Environment, "storage", cfg.StorageDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openStorage returns the unit of work for the configured driver with its health check,
// the conflict query parallelism it supports and a close function.
func openStorage(cfg *config.Config, logger *slog.Logger) (domain.UnitOfWork, deliveryhttp.HealthCheck, int, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil, cfg.ConflictCheckParallelism, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "err", err)
		}
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.ContextTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeDB()
		return nil, nil, 0, nil, err
	}
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(db, logger); err != nil {
			closeDB()
			return nil, nil, 0, nil, err
		}
	}
	// Conflict queries share the unit of work transaction, which serves one query at a time.
	if cfg.ConflictCheckParallelism > 1 {
		logger.Info("conflict checks run sequentially on postgres", "configured_parallelism", cfg.ConflictCheckParallelism)
	}
	return postgres.NewUnitOfWork(db), db.PingContext, 1, closeDB, nil
}
