package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	httpmetrics "scoutIO/app/echo-server/metrics"
	"scoutIO/app/echo-server/router"
	"scoutIO/business/alternatives"
	"scoutIO/business/detect"
	"scoutIO/business/preference"
	"scoutIO/business/scrape"
	"scoutIO/business/session"
	"scoutIO/internal/cron"
	"scoutIO/internal/middleware"
	psqlRepo "scoutIO/internal/repository/postgres"
	redisRepo "scoutIO/internal/repository/redis"
	"scoutIO/internal/repository/scraper"
	"scoutIO/internal/rest"
	"scoutIO/pkg/config"
	"scoutIO/pkg/database"
	redisClient "scoutIO/pkg/database/redis"
	"scoutIO/pkg/logger"
	"scoutIO/pkg/metrics"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Scout.io", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisClient.CloseRedisClient(rdb)

	// Init repo
	sessionRepo := redisRepo.NewSessionRepository(rdb)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)
	jobRepo := psqlRepo.NewScrapeJobRepository(db)
	trackedRepo := psqlRepo.NewTrackedProductRepository(db)

	scraperClient := scraper.NewClient(scraper.Config{
		BaseURL:   cfg.Scraper.BaseURL,
		APIToken:  cfg.Scraper.APIToken,
		Username:  cfg.Scraper.Username,
		Password:  cfg.Scraper.Password,
		DatasetID: cfg.Scraper.DatasetID,
		Timeout:   cfg.Scraper.Timeout,
	})

	// Init service
	sessionService := session.NewSessionService(sessionRepo, session.Config{
		Secret:     cfg.JWT.SecretKey,
		TokenTTL:   cfg.JWT.TTL,
		SessionTTL: cfg.Redis.SessionTTL,
	})
	preferenceService := preference.NewPreferenceService(preferenceRepo)
	detectService := detect.NewDetectService(sessionService, trackedRepo)
	scrapeService := scrape.NewService(scraperClient, jobRepo, sessionService, scrape.Options{
		DatasetID:    cfg.Scraper.DatasetID,
		PollInterval: cfg.Scraper.PollInterval,
		JobDeadline:  cfg.Scraper.JobDeadline,
	})
	alternativesService := alternatives.NewAlternativesService(sessionService, preferenceService, trackedRepo)

	// Background jobs
	baseCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()

	janitor := scrape.NewJanitor(jobRepo, cfg.Cron.JanitorGrace)
	runner := cron.New(baseCtx)
	if cfg.Cron.Enabled {
		_, err := runner.Add("scrape-janitor", cfg.Cron.JanitorSpec, func(ctx context.Context) error {
			_, err := janitor.Sweep(ctx, time.Now())
			return err
		})
		if err != nil {
			logger.Fatal("Failed to schedule janitor", "spec", cfg.Cron.JanitorSpec, "error", err)
		}
		runner.Start()
	}

	// Init handler
	sessionHandler := rest.NewSessionHandler(sessionService)
	preferenceHandler := rest.NewPreferenceHandler(preferenceService)
	detectHandler := rest.NewDetectHandler(detectService)
	scrapeHandler := rest.NewScrapeHandler(scrapeService)
	alternativesHandler := rest.NewAlternativesHandler(alternativesService)
	healthHandler := rest.NewHealthHandler(map[string]rest.Pinger{
		"postgres": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
	})

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit("6M"))

	e.GET("/healthz", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey, sessionService)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupSessionRoutes(api, sessionHandler, authRequired)
	router.SetupPreferenceRoutes(api, preferenceHandler, authRequired)
	router.SetupDetectRoutes(api, detectHandler, authRequired)
	router.SetupScrapeRoutes(api, scrapeHandler, authRequired)
	router.SetupAlternativesRoutes(api, alternativesHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if cfg.Cron.Enabled {
		runner.Stop()
	}
	scrapeService.Close()

	logger.Info("Server stopped")
}
