package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/franchisemedia/adengine/internal/booking"
	"github.com/franchisemedia/adengine/internal/carousel"
	"github.com/franchisemedia/adengine/internal/geography"
	"github.com/franchisemedia/adengine/internal/identity"
	"github.com/franchisemedia/adengine/internal/pricing"
	"github.com/franchisemedia/adengine/pkg/cache"
	"github.com/franchisemedia/adengine/pkg/common"
	"github.com/franchisemedia/adengine/pkg/config"
	"github.com/franchisemedia/adengine/pkg/database"
	"github.com/franchisemedia/adengine/pkg/errors"
	"github.com/franchisemedia/adengine/pkg/eventbus"
	"github.com/franchisemedia/adengine/pkg/logger"
	"github.com/franchisemedia/adengine/pkg/middleware"
	"github.com/franchisemedia/adengine/pkg/ratelimit"
	redisclient "github.com/franchisemedia/adengine/pkg/redis"
)

const (
	serviceName = "adengine"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting ad engine",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	// Initialize Sentry for error tracking
	sentryConfig := &errors.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Server.Environment,
		Release:          cfg.Sentry.Release,
		ServerName:       serviceName,
		AttachStacktrace: true,
	}
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized")
	}

	if err := database.Migrate(&cfg.Database); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()
	logger.Info("Connected to redis")

	cacheManager := cache.NewManager(redisClient)

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(redisClient, cfg.RateLimit)
		logger.Info("Rate limiting enabled",
			zap.Int("limit", cfg.RateLimit.Limit),
			zap.Duration("window", cfg.RateLimit.Window()),
		)
	}

	var events eventbus.Publisher
	if cfg.NATS.Enabled {
		bus, err := eventbus.New(eventbus.Config{
			URL:        cfg.NATS.URL,
			Name:       serviceName,
			StreamName: cfg.NATS.Stream,
		})
		if err != nil {
			logger.Warn("Failed to connect to NATS, continuing without events", zap.Error(err))
		} else {
			defer bus.Close()
			events = bus
			logger.Info("Connected to NATS", zap.String("stream", cfg.NATS.Stream))
		}
	}

	geoRepo := geography.NewRepository(db)
	geoService := geography.NewService(geoRepo)
	geoHandler := geography.NewHandler(geoService)

	identityRepo := identity.NewRepository(db)
	identityService := identity.NewService(identityRepo)
	identityHandler := identity.NewHandler(identityService)

	pricingRepo := pricing.NewRepository(db)
	pricingService := pricing.NewService(
		pricingRepo,
		pricing.NewResolver(pricingRepo),
		pricing.NewCalculator(geoService),
		identityService,
	)
	pricingHandler := pricing.NewHandler(pricingService)

	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(bookingRepo, pricingService, identityService, events)
	bookingHandler := booking.NewHandler(bookingService)

	carouselRepo := carousel.NewRepository(db)
	carouselService := carousel.NewService(carouselRepo, cacheManager, bookingService, cfg.Carousel.CacheTTL())
	carouselHandler := carousel.NewHandler(carouselService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryWithSentry())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(cfg.Server.RequestTimeoutDuration()))
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))

	healthChecks := map[string]func() error{
		"database": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return db.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public display path: the carousel and click tracking carry no auth,
	// so the rate limiter sits here.
	public := router.Group("/api/v1")
	if limiter != nil {
		public.Use(middleware.RateLimit(limiter))
	}
	carouselHandler.RegisterRoutes(public)
	bookingHandler.RegisterPublicRoutes(public)
	geoHandler.RegisterRoutes(public)

	authed := router.Group("/api/v1", middleware.Auth(cfg.JWT.Secret))
	pricingHandler.RegisterRoutes(authed)
	bookingHandler.RegisterRoutes(authed)
	identityHandler.RegisterRoutes(authed)

	admin := router.Group("/api/v1/admin", middleware.Auth(cfg.JWT.Secret), middleware.RequireAdmin())
	pricingHandler.RegisterAdminRoutes(admin)
	bookingHandler.RegisterAdminRoutes(admin)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
