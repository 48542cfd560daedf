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

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/migrations"
	"fulfillment/internal/platform/logger"
	"fulfillment/internal/platform/observability"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	zl, err := logger.New(configs.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	instruments, shutdownTelemetry, err := observability.Init(ctx, configs.Observability(), zl)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			zl.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	gormDB, err := postgres.Connect(ctx, configs.DSN(), configs.DBOptions())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, zl)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs.HTTPPort, instruments, zl)
}

func startWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	port string,
	instruments *observability.Instruments,
	zl *zap.Logger,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = httpin.ErrorHandler(zl)

	telemetry, err := httpin.Telemetry(instruments.TracerProvider, instruments.MeterProvider)
	if err != nil {
		return err
	}
	e.Use(middleware.Recover(), telemetry)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	app.CreateHTTPServer().Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
