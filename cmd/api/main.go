package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"jobbridge/internal/app"
	"jobbridge/internal/config"
	"jobbridge/internal/database"
	"jobbridge/internal/domain/event"
	apphttp "jobbridge/internal/http"
	"jobbridge/internal/http/handlers"
	"jobbridge/internal/http/metrics"
	httpmw "jobbridge/internal/http/middleware"
	"jobbridge/internal/http/response"
	"jobbridge/internal/maintenance"
	"jobbridge/internal/notify"
	"jobbridge/internal/observability"
	"jobbridge/internal/repository/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	db, err := database.NewPostgres(context.Background(), database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	var notifier event.Notifier = notify.Noop{}
	if cfg.NATSURL != "" {
		natsNotifier, err := notify.NewNATSNotifier(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn("notifications disabled, nats unreachable", "error", err)
		} else {
			defer natsNotifier.Close()
			notifier = natsNotifier
		}
	}

	candidateRepo := postgres.NewCandidateRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	placementRepo := postgres.NewPlacementRepository(db)

	quota := app.NewQuotaEnforcer(candidateRepo, cfg.FreeApplicationLimit)
	candidateService := app.NewCandidateService(candidateRepo)
	jobService := app.NewJobService(jobRepo)
	placementService := app.NewPlacementService(placementRepo, notifier)
	applicationService := app.NewApplicationService(applicationRepo, candidateRepo, jobRepo, quota, placementService, notifier)
	paymentService := app.NewPaymentService(paymentRepo, candidateRepo, notifier, cfg.PremiumDuration)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid REDIS_URL, using in-memory rate limiter", "error", err)
		} else {
			limiter = httpmw.NewRedisLimiter(redis.NewClient(opts), "jobbridge:rl")
		}
	}

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		CandidateHandler:   handlers.NewCandidateHandler(candidateService),
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter, collector, cfg.SubmitRateLimit, cfg.SubmitRateWindow),
		PaymentHandler:     handlers.NewPaymentHandler(paymentService),
		PlacementHandler:   handlers.NewPlacementHandler(placementService),
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		Metrics:            collector,
		Logger:             logger,
		RequestTimeout:     cfg.RequestTimeout,
	})

	sweeper := maintenance.NewPremiumSweeper(db, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every "+cfg.PremiumSweepInterval.String(), sweeper.Run); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
