package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mergington-high/activities-api/internal/catalog"
	"github.com/mergington-high/activities-api/internal/di"
	"github.com/mergington-high/activities-api/internal/handler"
	"github.com/mergington-high/activities-api/pkg/config"
	"github.com/mergington-high/activities-api/pkg/logger"
	"github.com/mergington-high/activities-api/pkg/middleware"
	"github.com/mergington-high/activities-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(&logger.Config{
		Level:        cfg.Log.Level,
		ServiceName:  cfg.App.Name,
		Development:  cfg.IsDevelopment(),
		OutputPath:   cfg.Log.OutputPath,
		OTLPEnabled:  cfg.OTel.Enabled,
		OTLPEndpoint: cfg.OTel.CollectorAddr,
	}); err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		logger.Fatal("failed to initialize telemetry", zap.Error(err))
	}

	activities, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("failed to load activity catalog", zap.Error(err))
	}

	var auditDB *pgxpool.Pool
	if cfg.Audit.Enabled {
		auditDB, err = pgxpool.New(ctx, cfg.Audit.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to audit database", zap.Error(err))
		}
		defer auditDB.Close()
	}

	auditConfig := middleware.DefaultAuditConfig(auditDB)
	auditConfig.BufferSize = cfg.Audit.BufferSize
	auditConfig.FlushInterval = cfg.Audit.FlushInterval
	auditConfig.BatchSize = cfg.Audit.BatchSize

	container, err := di.NewContainer(&di.ContainerConfig{
		Catalog:     activities,
		AuditDB:     auditDB,
		AuditConfig: auditConfig,
	})
	if err != nil {
		logger.Fatal("failed to build container", zap.Error(err))
	}
	defer func() { _ = container.Close() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if cfg.Audit.Enabled {
		r.Use(middleware.Audit(container.AuditLogger))
	}

	handler.RegisterRoutes(r, container.ActivityHandler, container.HealthHandler, cfg.Server.StaticDir)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("activities API listening",
			zap.String("addr", cfg.Server.Addr()),
			zap.Int("activities", container.Store.Len()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", zap.Error(err))
	}
}
