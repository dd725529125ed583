package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-kstock-signals/internal/signal/catalyst"
	"golang-kstock-signals/internal/signal/config"
	"golang-kstock-signals/internal/signal/delivery/consumer"
	delivery "golang-kstock-signals/internal/signal/delivery/http"
	"golang-kstock-signals/internal/signal/delivery/notifier"
	_ "golang-kstock-signals/internal/signal/docs"
	"golang-kstock-signals/internal/signal/executor"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/internal/signal/service"
	"golang-kstock-signals/internal/signal/strategy"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/eventbus"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/postgres"
	"golang-kstock-signals/pkg/redis"
	"golang-kstock-signals/pkg/telegram"

	"google.golang.org/genai"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the signal service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Signal Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamSignalJobs, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	stocksRepo := repository.NewStocksRepository(db.DB)
	priceRepo := repository.NewStockPriceRepository(db.DB)
	eventRepo := repository.NewStockEventRepository(db.DB)
	flowRepo := repository.NewInvestorFlowRepository(db.DB)
	socialRepo := repository.NewSocialMentionRepository(db.DB)
	catalystRepo := repository.NewCatalystEventRepository(db.DB)
	ratioRepo := repository.NewFinancialRatioRepository(db.DB)
	briefingRepo := repository.NewSignalBriefingRepository(db.DB)
	naverRepo := repository.NewNaverFlowRepository(cfg, appLogger)
	feedRepo := repository.NewDisclosureFeedRepository(cfg, appLogger)

	// Initialize Gemini briefing repository
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
	}
	aiRepo, err := repository.NewGeminiBriefingRepository(cfg, appLogger, genAiClient)
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini briefing repository", logger.ErrorField(err))
	}

	// Initialize event bus and Telegram alerts
	bus := eventbus.New(appLogger)
	if cfg.Telegram.BotToken != "" {
		telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		notifier.NewTelegramNotifier(appLogger, telegramNotifier).Register(bus)
	} else {
		appLogger.Warn("Telegram bot token not configured, alerts disabled")
	}

	// Initialize catalyst lifecycle components
	detector := catalyst.NewDetector(cfg.Scoring, appLogger, priceRepo, eventRepo, catalystRepo)
	tracker := catalyst.NewTracker(cfg.Scoring, appLogger, priceRepo, flowRepo, eventRepo, catalystRepo)

	// Initialize services
	scannerSvc := service.NewScannerService(cfg.Scoring, appLogger, bus, stocksRepo, priceRepo, eventRepo, flowRepo, socialRepo)
	catalystSvc := service.NewCatalystService(appLogger, bus, detector, tracker, catalystRepo)
	valueSvc := service.NewValueService(cfg.Scoring, appLogger, ratioRepo, priceRepo)
	briefingSvc := service.NewBriefingService(appLogger, scannerSvc, catalystRepo, briefingRepo, aiRepo)
	collectorSvc := service.NewCollectorService(appLogger, stocksRepo, naverRepo, flowRepo, feedRepo, eventRepo)

	// Initialize strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewCatalystDetectStrategy(appLogger, catalystSvc),
		strategy.NewCatalystTrackStrategy(appLogger, catalystSvc),
		strategy.NewUniverseScanStrategy(appLogger, scannerSvc),
		strategy.NewFlowCollectStrategy(appLogger, collectorSvc),
		strategy.NewDisclosureSyncStrategy(appLogger, collectorSvc),
		strategy.NewValueScreenStrategy(appLogger, valueSvc),
	}

	// Initialize executor service and start the Redis consumer
	executorSvc := executor.NewService(cfg, redisClient.Client, appLogger, strategies)
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	if interval, err := time.ParseDuration(cfg.Scheduler.CheckHealthInterval); err == nil && interval > 0 {
		redisConsumer.RegisterTickerHandler(ctx, func(ctx context.Context) {
			pending, err := redisClient.XLen(ctx, common.RedisStreamSignalJobs).Result()
			if err != nil {
				appLogger.Error("Failed to read job stream depth", logger.ErrorField(err))
				return
			}
			appLogger.Info("Job stream depth", logger.Field("pending", pending))
		}, interval, 30*time.Second, "job-stream-health")
	}

	// Start cron scheduler
	schedulerSvc := service.NewSchedulerService(cfg, redisClient.Client, appLogger)
	if err := schedulerSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	signalHandler := delivery.NewSignalHandler(scannerSvc, catalystSvc, valueSvc, briefingSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	signalHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down signal service...")

	schedulerSvc.Stop()
	redisConsumer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Signal service stopped")
}

// @title KStock Signals API
// @version 1.0
// @description Korean equity market signal aggregation service.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "signal-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-signal.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing signal-service CLI: %s\n", err)
		os.Exit(1)
	}
}
