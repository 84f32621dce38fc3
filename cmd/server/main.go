package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	syncapp "github.com/erp/addresssync/internal/application/addresssync"
	domain "github.com/erp/addresssync/internal/domain/addresssync"
	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/erp/addresssync/internal/infrastructure/cache"
	"github.com/erp/addresssync/internal/infrastructure/config"
	"github.com/erp/addresssync/internal/infrastructure/crm"
	"github.com/erp/addresssync/internal/infrastructure/event"
	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/erp/addresssync/internal/infrastructure/persistence"
	"github.com/erp/addresssync/internal/infrastructure/store"
	"github.com/erp/addresssync/internal/infrastructure/telemetry"
	"github.com/erp/addresssync/internal/interfaces/http/handler"
	"github.com/erp/addresssync/internal/interfaces/http/middleware"
	"github.com/erp/addresssync/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry comes up before everything else so startup logs and queries are exported
	providers, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		ExportLogs:        cfg.Telemetry.ExportLogs,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			baseLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	minLevel, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		minLevel = zapcore.InfoLevel
	}
	log := providers.BridgeLogger(baseLog, minLevel)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting address sync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", providers.Enabled()),
	)

	// Database
	gormLog := logger.NewGormLogger(log, cfg.Log.Level, 200*time.Millisecond)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.TraceDB {
		if err := telemetry.InstrumentDatabase(db.DB, providers.TracerProvider(), telemetry.DBTracingConfig{
			LogFullSQL: cfg.App.Env == "development",
		}); err != nil {
			log.Warn("Failed to instrument database", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Redis is optional: without it the relay is off and duplicate detection stays in memory
	var redisClient *redis.Client
	if cfg.Event.RelayEnabled || cfg.Event.IdempotencyBackend == "redis" {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing Redis", zap.Error(err))
				}
			}()
		}
	}

	// Repositories and reference data
	identityRepo := persistence.NewGormIdentityLinkRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB, map[string]bool{
		domain.SettingSyncContactAddress: cfg.Sync.DefaultEnabled,
	})
	settings := cache.NewCachedSettingsReader(settingsRepo, cfg.Sync.SettingsCacheTTL, log)

	tables, err := domain.LoadTables(context.Background(), persistence.NewGormReferenceDataRepository(db.DB))
	if err != nil {
		log.Fatal("Failed to load reference data", zap.Error(err))
	}
	log.Info("Reference data loaded",
		zap.Int("countries", tables.CountryCount()),
		zap.Int("state_provinces", tables.StateProvinceCount()),
	)

	locationTypes, err := domain.NewLocationTypeMap(cfg.Sync.BillingLocationTypeID, cfg.Sync.ShippingLocationTypeID)
	if err != nil {
		log.Fatal("Invalid location type mapping", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	storeClient := store.NewClient(cfg.Store, log)

	synchronizer, err := syncapp.NewSynchronizer(syncapp.Dependencies{
		Settings:      settings,
		Identities:    identityRepo,
		CRM:           crm.NewClient(cfg.CRM, log),
		Customers:     storeClient,
		Profiles:      storeClient,
		Tables:        tables,
		LocationTypes: locationTypes,
		Publisher:     eventBus,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("Failed to create synchronizer", zap.Error(err))
	}

	syncMetrics, err := telemetry.NewSyncMetrics(providers.Meter("addresssync"))
	if err != nil {
		log.Fatal("Failed to create sync metrics", zap.Error(err))
	}

	// Inbound handlers, guarded against redelivered webhooks
	idempotencyStore := cache.NewIdempotencyStore(cfg.Event, redisClient, log)
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()
	idempotencyConfig := shared.IdempotencyConfig{
		TTL:     cfg.Event.IdempotencyTTL,
		Enabled: cfg.Event.IdempotencyEnabled,
	}

	crmHandler := syncapp.NewCRMRecordChangedHandler(synchronizer, log, syncapp.WithObserver(syncMetrics))
	storeHandler := syncapp.NewStoreAddressSavedHandler(synchronizer, log, syncapp.WithObserver(syncMetrics))
	eventBus.Subscribe(event.NewIdempotentHandler(crmHandler, idempotencyStore, idempotencyConfig, log))
	eventBus.Subscribe(event.NewIdempotentHandler(storeHandler, idempotencyStore, idempotencyConfig, log))

	// Outbound relay of completion events
	if cfg.Event.RelayEnabled && redisClient != nil {
		serializer := event.NewEventSerializer()
		event.RegisterAllEvents(serializer)
		relay := event.NewRedisRelay(redisClient, cfg.Event.RelayChannel, serializer, event.RelayedEventTypes(), log)
		eventBus.Subscribe(relay)
		log.Info("Event relay enabled", zap.String("channel", cfg.Event.RelayChannel))
	}

	log.Info("Event handlers registered",
		zap.Strings("crm_events", crmHandler.EventTypes()),
		zap.Strings("store_events", storeHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: recovery, request logging, tracing, body limit, deadline
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName:    cfg.App.Name,
		Enabled:        providers.Enabled(),
		TracerProvider: providers.TracerProvider(),
	})...)
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.RequestTimeout(cfg.HTTP.WriteTimeout))

	health := handler.NewHealthHandler(2 * time.Second).
		AddCheck("database", db.Ping)
	if redisClient != nil {
		health.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	engine.GET("/health", health.Health)

	router.NewRouter(engine).
		Register(router.NewWebhookGroup(handler.NewWebhookHandler(eventBus), cfg.HTTP.WebhookSecret)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}

	hits, misses := settings.Stats()
	log.Info("Server exited gracefully",
		zap.Int64("settings_cache_hits", hits),
		zap.Int64("settings_cache_misses", misses),
	)
}
