package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/psspowers/underwriting/internal/application/usecase"
	"github.com/psspowers/underwriting/internal/domain/service"
	"github.com/psspowers/underwriting/internal/domain/taxonomy"
	"github.com/psspowers/underwriting/internal/infrastructure/config"
	"github.com/psspowers/underwriting/internal/infrastructure/kafka"
	pgRepo "github.com/psspowers/underwriting/internal/infrastructure/postgres"
	"github.com/psspowers/underwriting/internal/infrastructure/telemetry"
	grpcPresentation "github.com/psspowers/underwriting/internal/presentation/grpc"
	"github.com/psspowers/underwriting/internal/presentation/rest"
	"github.com/psspowers/underwriting/pkg/auth"
	pkgkafka "github.com/psspowers/underwriting/pkg/kafka"
	"github.com/psspowers/underwriting/pkg/observability"
	pkgpostgres "github.com/psspowers/underwriting/pkg/postgres"
	"github.com/psspowers/underwriting/pkg/tlsutil"
)

const shutdownGrace = 15 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load and validate configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting underwriting-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"grpc_tls", cfg.GRPCTLS.Enabled(),
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			_ = shutdownTracer(flushCtx) //nolint:errcheck // best-effort tracer shutdown
		}()
	}

	// Initialize metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	assessmentMetrics, err := telemetry.NewAssessmentMetrics(meterProvider)
	if err != nil {
		logger.Error("failed to register assessment metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := cfg.Postgres()
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Domain services.
	registry := taxonomy.Default()
	classifier := service.NewVerdictClassifier()
	engine := service.NewScrutinyEngine(registry, classifier)
	resolver := service.NewClassificationResolver(registry)

	// Wire infrastructure adapters.
	assessmentRepo := pgRepo.NewAssessmentRepo(pool, classifier)
	classificationRepo := pgRepo.NewClassificationRepo(pool)

	kafkaCfg := cfg.KafkaClient()
	kafkaProducer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		logger.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = kafkaProducer.Close() }()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.EventsTopic, logger)

	// Wire use cases.
	scoreUC := usecase.NewScoreScrutinyUseCase(engine, classifier)
	browseUC := usecase.NewBrowseTaxonomyUseCase(registry)
	classifyUC := usecase.NewClassifyRecordUseCase(resolver, classificationRepo, publisher, logger)
	evaluateUC := usecase.NewEvaluateScrutinyUseCase(scoreUC, classificationRepo, assessmentRepo, publisher, assessmentMetrics, logger)
	rescoreUC := usecase.NewRescoreRecordUseCase(scoreUC, classificationRepo, assessmentRepo, publisher, assessmentMetrics, logger)
	getAssessmentUC := usecase.NewGetAssessmentUseCase(assessmentRepo)
	listAssessmentsUC := usecase.NewListAssessmentsUseCase(assessmentRepo)

	// Rescoring consumer for CRM reclassification messages.
	recordsHandler := kafka.NewRecordsHandler(rescoreUC, logger)
	consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.RecordsTopic, recordsHandler.Handle, logger)
	if err != nil {
		logger.Error("failed to create kafka consumer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = consumer.Close() }()

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcOpts := grpcPresentation.ServerOptions{Reflection: cfg.Reflection}
	if cfg.GRPCTLS.Enabled() {
		creds, credErr := tlsutil.ServerTLSConfig(cfg.GRPCTLS.CertFile, cfg.GRPCTLS.KeyFile)
		if credErr != nil {
			logger.Error("failed to load gRPC TLS credentials", "error", credErr)
			os.Exit(1)
		}
		grpcOpts.Creds = creds
	}
	grpcHandler := grpcPresentation.NewUnderwritingHandler(browseUC, classifyUC, evaluateUC,
		getAssessmentUC, listAssessmentsUC, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcOpts)

	// HTTP server (API, health checks and metrics).
	router := rest.NewRouter(rest.RouterConfig{
		Handler: rest.NewUnderwritingHandler(browseUC, classifyUC, evaluateUC,
			getAssessmentUC, listAssessmentsUC, logger),
		Health:         rest.NewHealthHandler(cfg.ServiceName, pool, logger),
		JWT:            jwtSvc,
		MetricsHandler: metricsHandler,
		Logger:         logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers and the consumer.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("records consumer starting", "topic", cfg.Kafka.RecordsTopic)
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("records consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
		cancel()
	}

	// Graceful shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	grpcStopped := make(chan struct{})
	go func() {
		grpcServer.Shutdown(shutdownCtx)
		close(grpcStopped)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	<-grpcStopped

	logger.Info("underwriting-service stopped")
}

// newJWTService builds a validation-only JWT service. An RSA public key is
// preferred, with the shared HMAC secret as fallback.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Leeway:   cfg.Leeway,
	}
	switch {
	case cfg.PublicKeyPEM != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKeyPEM
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load JWT public key file: %w", err)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
