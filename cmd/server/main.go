package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kanha-9770/bulkimport/internal/config"
	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/handler"
	"github.com/kanha-9770/bulkimport/internal/infrastructure/database"
	"github.com/kanha-9770/bulkimport/internal/logger"
	"github.com/kanha-9770/bulkimport/internal/metrics"
	"github.com/kanha-9770/bulkimport/internal/middleware"
	"github.com/kanha-9770/bulkimport/internal/processor"
	"github.com/kanha-9770/bulkimport/internal/repository"
	"github.com/kanha-9770/bulkimport/internal/service"
	"github.com/kanha-9770/bulkimport/internal/store"
	"github.com/kanha-9770/bulkimport/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize stores and repositories
	categoryStore := store.NewPostgresCategoryStore(pool)
	productStore := store.NewPostgresProductStore(pool)
	jobRepo := repository.NewPostgresJobRepository(pool)

	// Initialize pipeline stages
	v := validator.New()
	proc := processor.New(map[domain.EntityType]processor.Strategy{
		domain.EntityCategory: processor.NewCategoryStrategy(categoryStore),
		domain.EntityProduct:  processor.NewProductStrategy(productStore),
	})

	importService := service.NewImportService(v, proc, jobRepo, cfg.ImportTimeout)

	// Initialize handlers
	importHandler := handler.NewImportHandler(importService, cfg.MaxUploadBytes)
	catalogHandler := handler.NewCatalogHandler(categoryStore, productStore)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.POST("/preview", importHandler.PreviewImport)
			imports.GET("", importHandler.ListImports)
			imports.GET("/:id", importHandler.GetImport)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/categories", catalogHandler.ListCategories)
			catalog.GET("/products", catalogHandler.ListProducts)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
