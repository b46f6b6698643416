// Package main is the entry point for the tillbook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tillbook/internal/config"
	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/auth"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/documents/order"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/domain/expense"
	"tillbook/internal/domain/reports"
	"tillbook/internal/domain/settings"
	"tillbook/internal/infrastructure/backup"
	v1 "tillbook/internal/infrastructure/http/v1"
	"tillbook/internal/infrastructure/images"
	"tillbook/internal/infrastructure/storage/sqlite"
	"tillbook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tillbook server")

	// --- Store ---
	if applied, err := backup.ApplyStagedRestore(cfg.DBPath); err != nil {
		log.Fatalw("failed to apply staged restore", "error", err)
	} else if applied {
		log.Info("staged restore applied")
	}

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to open store", "error", err, "path", cfg.DBPath)
	}
	defer db.Close()
	log.Infow("store opened", "path", cfg.DBPath)

	txManager := sqlite.NewTxManager(db)

	// --- Repositories ---
	productRepo := sqlite.NewProductRepo(txManager)
	purchaseRepo := sqlite.NewPurchaseRepo(txManager)
	orderRepo := sqlite.NewOrderRepo(txManager)
	reportRepo := sqlite.NewReportRepo(txManager)
	settingsRepo := sqlite.NewSettingsRepo(txManager)
	userRepo := sqlite.NewUserRepo(txManager)
	activityRepo := sqlite.NewActivityRepo(txManager)
	expenseRepo := sqlite.NewExpenseRepo(txManager)

	// --- Infrastructure ---
	imageStore, err := images.NewStore(cfg.ImagesDir)
	if err != nil {
		log.Fatalw("failed to initialize image store", "error", err)
	}

	// --- Services ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))
	authService := auth.NewService(userRepo, jwtService, txManager)
	productService := product.NewService(productRepo, txManager, imageStore)
	purchaseService := purchase.NewService(purchaseRepo, productRepo, txManager)
	orderService := order.NewService(orderRepo, productRepo, txManager)
	reportService := reports.NewService(reportRepo)
	settingsService := settings.NewService(settingsRepo, txManager)
	expenseService := expense.NewService(expenseRepo)
	activityService := activity.NewService(activityRepo)
	backupService := backup.NewService(db, settingsService)
	maintenance := sqlite.NewMaintenance(txManager)

	// --- Backup scheduler ---
	schedulerCtx, stopScheduler := context.WithCancel(logger.WithLogger(ctx, log))
	defer stopScheduler()
	go backupService.RunScheduler(schedulerCtx, cfg.BackupInterval)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:          log,
		DB:              db,
		Maintenance:     maintenance,
		AuthService:     authService,
		ProductService:  productService,
		PurchaseService: purchaseService,
		OrderService:    orderService,
		ReportService:   reportService,
		SettingsService: settingsService,
		ExpenseService:  expenseService,
		ActivityService: activityService,
		BackupService:   backupService,
		ImageStore:      imageStore,
		Development:     cfg.Development,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
