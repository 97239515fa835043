package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finwise/loancalc/internal/cache"
	"github.com/finwise/loancalc/internal/server"
	"github.com/finwise/loancalc/internal/tracing"
	"github.com/finwise/loancalc/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func initializeLogger(level, format string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}

func main() {
	// .env is optional; environment variables win when both are present.
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	logger, err := initializeLogger(level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing, err := tracing.Init("loancalc-server", version)
	if err != nil {
		logger.Fatal("failed to initialize tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	var responseCache cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		responseCache = cache.NewRedis(cfg.Cache.RedisAddr, cfg.CacheTTL())
		logger.Info("using redis response cache",
			zap.String("op", "main"),
			zap.String("addr", cfg.Cache.RedisAddr),
		)
	default:
		responseCache = cache.NewMemory()
	}

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: server.NewHandler(logger, responseCache, cfg, version),
	}

	go func() {
		logger.Info("starting server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down",
		zap.String("op", "main"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to shut down tracing",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
