package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lastmile/cmd"
	httpin "lastmile/internal/adapters/in/http"
	postgres_adapter "lastmile/internal/adapters/out/postgres"
	"lastmile/internal/pkg/logger"
	"lastmile/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	zapLogger, err := logger.InitLogger(configs.AppEnv, configs.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		zapLogger.Fatal("Failed to connect database", zap.Error(err))
	}
	if err = postgres_adapter.Migrate(gormDB); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	m := metrics.New("lastmile", prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	app := cmd.NewCompositionRoot(configs, gormDB, zapLogger, m)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		zapLogger.Fatal("Failed to start jobs", zap.Error(err))
	}
	defer jobManager.StopAll()

	startWebServer(&app, m, zapLogger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	config := cmd.Config{
		HTTPPort:           os.Getenv("HTTP_PORT"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          os.Getenv("DB_SSLMODE"),
		AppEnv:             os.Getenv("APP_ENV"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		MetricsRefreshSpec: os.Getenv("METRICS_REFRESH_SPEC"),
	}
	return config
}

func startWebServer(app *cmd.CompositionRoot, m *metrics.Metrics, zapLogger *zap.Logger, port string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		zapLogger.Fatal("Failed to load openapi document", zap.Error(err))
	}
	validator, err := httpin.RequestValidator(doc)
	if err != nil {
		zapLogger.Fatal("Failed to build request validator", zap.Error(err))
	}
	if err = httpin.RegisterSwaggerDoc(doc); err != nil {
		zapLogger.Fatal("Failed to register swagger document", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(logger.RequestIDMiddleware)
	e.Use(logger.Middleware(zapLogger))
	e.Use(m.Middleware)
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	httpin.RegisterHandlers(e, app.CreateServer())

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
