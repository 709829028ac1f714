package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthvault/health-api/config"
	"github.com/healthvault/health-api/internal/email"
	appointmentHandler "github.com/healthvault/health-api/internal/handler/appointment"
	assistantHandler "github.com/healthvault/health-api/internal/handler/assistant"
	authHandler "github.com/healthvault/health-api/internal/handler/auth"
	dashboardHandler "github.com/healthvault/health-api/internal/handler/dashboard"
	diseaseHandler "github.com/healthvault/health-api/internal/handler/disease"
	medicationHandler "github.com/healthvault/health-api/internal/handler/medication"
	profileHandler "github.com/healthvault/health-api/internal/handler/profile"
	recordHandler "github.com/healthvault/health-api/internal/handler/record"
	sharingHandler "github.com/healthvault/health-api/internal/handler/sharing"
	"github.com/healthvault/health-api/internal/middleware"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/router"
	appointmentService "github.com/healthvault/health-api/internal/service/appointment"
	assistantService "github.com/healthvault/health-api/internal/service/assistant"
	authService "github.com/healthvault/health-api/internal/service/auth"
	dashboardService "github.com/healthvault/health-api/internal/service/dashboard"
	diseaseService "github.com/healthvault/health-api/internal/service/disease"
	eventService "github.com/healthvault/health-api/internal/service/event"
	medicationService "github.com/healthvault/health-api/internal/service/medication"
	profileService "github.com/healthvault/health-api/internal/service/profile"
	recordService "github.com/healthvault/health-api/internal/service/record"
	sharingService "github.com/healthvault/health-api/internal/service/sharing"
	"github.com/healthvault/health-api/pkg/auth"
	"github.com/healthvault/health-api/pkg/logger"
	"github.com/healthvault/health-api/pkg/messaging"
	redisbroker "github.com/healthvault/health-api/pkg/messaging/redis"
	"github.com/healthvault/health-api/pkg/metrics"
	"github.com/healthvault/health-api/pkg/security"
	"github.com/healthvault/health-api/pkg/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{Level: cfg.LogLevel, Pretty: true})

	// Repositories. Everything is in-memory: collections live for the
	// process lifetime and start empty on every boot.
	appointmentRepo := memory.NewAppointmentRepository()
	medicationRepo := memory.NewMedicationRepository()
	diseaseRepo := memory.NewDiseaseRepository()
	recordRepo := memory.NewRecordRepository()
	grantRepo := memory.NewGrantRepository()
	profileRepo := memory.NewProfileRepository()
	outboxRepo := memory.NewOutboxRepository()

	m := metrics.New("healthvault")

	// Message broker: redis when configured, otherwise a no-op sink.
	var broker messaging.Broker = messaging.NoopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewBroker(redisbroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, log.Zerolog())
		if err != nil {
			log.Fatal(err, "failed to connect to redis")
		}
	}
	defer broker.Close()

	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		emailSvc = email.NewNoopService(log)
	}

	hasher := security.NewBcryptHasher(0)
	tokens := auth.NewJWTService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour,
	)

	// Services.
	events := eventService.NewService(outboxRepo).WithMetrics(m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, events)
	medicationSvc := medicationService.NewService(medicationRepo, events)
	diseaseSvc := diseaseService.NewService(diseaseRepo, events)
	recordSvc := recordService.NewService(recordRepo, events)
	sharingSvc := sharingService.NewService(grantRepo, events, emailSvc, m, cfg.ShareBase)
	profileSvc := profileService.NewService(profileRepo, events)
	authSvc := authService.NewService(profileRepo, hasher, tokens)
	assistantSvc := assistantService.NewService()
	dashboardSvc := dashboardService.NewService(appointmentSvc, medicationSvc, sharingSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := profileSvc.Seed(ctx, cfg.Owner.Name, cfg.Owner.Email, cfg.Owner.Password, hasher); err != nil {
		log.Fatal(err, "failed to seed owner profile")
	}

	// Router and handlers.
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	r := router.New(authMiddleware, m, router.Config{
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:   cfg.RateLimit.Burst,
		CORS:             middleware.DefaultCORSConfig(),
	})

	r.Setup(
		authHandler.NewHandler(authSvc),
		[]router.Handler{
			appointmentHandler.NewHandler(appointmentSvc),
			medicationHandler.NewHandler(medicationSvc),
			diseaseHandler.NewHandler(diseaseSvc, recordSvc),
			recordHandler.NewHandler(recordSvc),
			profileHandler.NewHandler(profileSvc),
			assistantHandler.NewHandler(assistantSvc),
			dashboardHandler.NewHandler(dashboardSvc),
		},
		[]router.PublicHandler{
			sharingHandler.NewHandler(sharingSvc),
		},
	)

	// Outbox processor publishes mutation events to the broker.
	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
	}, log, m)
	go processor.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{"port": cfg.Server.Port}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
