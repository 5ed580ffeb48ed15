package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"dispatch/internal/app"
	"dispatch/internal/config"
	"dispatch/internal/handler"
	"dispatch/internal/maps"
	internalRedis "dispatch/internal/redis"
	"dispatch/internal/repository/postgres"
	"dispatch/internal/service"
)

func main() {
	cfg := config.Load()
	log := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()
	log.Info("connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("connected to Redis")
	} else {
		log.Warn("redis disabled: driver locks are process-local and nothing is cached")
	}

	server, err := wireServer(db, redisClient, nrApp, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to wire server")
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) (*http.Server, error) {
	d := cfg.Dispatch

	// Lock and cache stores.
	var lockStore internalRedis.LockStoreInterface = internalRedis.NewLocalLockStore()
	var slabCache internalRedis.SlabCacheInterface
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
		slabCache = internalRedis.NewCacheStore(redisClient, d.SlabCacheTTL)
	}

	// Repositories.
	store := postgres.NewStore(db)
	slabRepo := postgres.NewCommissionSlabRepository(db)

	// Distance collaborator.
	var distanceProvider service.DistanceProvider = unavailableDistance{}
	if cfg.Maps.APIKey != "" {
		p, err := maps.NewDistanceProvider(cfg.Maps.APIKey, cfg.Maps.Language)
		if err != nil {
			return nil, err
		}
		distanceProvider = p
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set: fare quotes are disabled")
	}

	// Services.
	locker := service.NewRetryingLocker(lockStore, d.LockTTL, d.LockRetryInterval, log)
	notifier := service.NewNotificationService(log.WithField("component", "notifications"))
	settlement := service.NewSettlementEngine(d.PenaltyFee)
	policy := service.NewCancellationPolicy(service.CancellationPolicyConfig{
		OngoingCharge:    d.OngoingCancellationCharge,
		ChargeCommission: d.CancellationCommission,
		DriverPenalty:    d.DriverCancellationPenalty,
	}, settlement)
	fares := service.NewFareCalculator(slabRepo, slabCache, store.Catalog(), settlement, log)
	distance := service.NewDistanceService(distanceProvider, store.Catalog(), d.DistanceTimeout)
	lifecycle := service.NewRideLifecycle(store, locker, fares, settlement, policy, notifier, d.OperationTimeout, log)
	matcher := service.NewRideMatcher(store, d.OperationTimeout)
	conflicts := service.NewConflictChecker(store.Rides())
	drivers := service.NewDriverService(store, locker, d.OperationTimeout, log)
	requests := service.NewRideRequestService(store, distance, fares, notifier, d.OperationTimeout, log)
	reports := service.NewReportService(store.Rides(), d.OperationTimeout)
	feedback := service.NewFeedbackService(store, notifier, d.OperationTimeout, log)
	catalog := service.NewCatalogService(store.Catalog(), fares, d.OperationTimeout, log)

	// Handlers.
	router := app.NewRouter(app.RouterDeps{
		RideRequestHandler: handler.NewRideRequestHandler(requests),
		DriverHandler:      handler.NewDriverHandler(drivers, matcher, lifecycle, conflicts, reports),
		RideHandler:        handler.NewRideHandler(lifecycle, reports),
		ReportHandler:      handler.NewReportHandler(reports),
		FeedbackHandler:    handler.NewFeedbackHandler(feedback),
		AdminHandler:       handler.NewAdminHandler(catalog),
		Access:             handler.NewAccess(drivers, reports, requests),
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
		Logger:             log,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
