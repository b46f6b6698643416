// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/auth"
	"tillbook/internal/domain/catalog/product"
	"tillbook/internal/domain/documents/order"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/domain/expense"
	"tillbook/internal/domain/reports"
	"tillbook/internal/domain/settings"
	"tillbook/internal/infrastructure/backup"
	"tillbook/internal/infrastructure/http/v1/handlers"
	"tillbook/internal/infrastructure/http/v1/middleware"
	"tillbook/internal/infrastructure/images"
	"tillbook/internal/infrastructure/storage/sqlite"
	"tillbook/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Logger *logger.Logger

	DB          *sqlite.DB
	Maintenance *sqlite.Maintenance

	AuthService     *auth.Service
	ProductService  *product.Service
	PurchaseService *purchase.Service
	OrderService    *order.Service
	ReportService   *reports.Service
	SettingsService *settings.Service
	ExpenseService  *expense.Service
	ActivityService *activity.Service
	BackupService   *backup.Service

	ImageStore *images.Store

	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(),
		middleware.Recovery(),
	)

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService, cfg.ActivityService)
	productHandler := handlers.NewProductHandler(base, cfg.ProductService, cfg.ImageStore, cfg.ActivityService)
	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.PurchaseService, cfg.ActivityService)
	orderHandler := handlers.NewOrderHandler(base, cfg.OrderService, cfg.ActivityService)
	reportHandler := handlers.NewReportHandler(base, cfg.ReportService)
	settingsHandler := handlers.NewSettingsHandler(base, cfg.SettingsService, cfg.ActivityService)
	expenseHandler := handlers.NewExpenseHandler(base, cfg.ExpenseService, cfg.ActivityService)
	activityHandler := handlers.NewActivityHandler(base, cfg.ActivityService)
	backupHandler := handlers.NewBackupHandler(base, cfg.BackupService, cfg.ActivityService)
	maintenanceHandler := handlers.NewMaintenanceHandler(base, cfg.Maintenance, cfg.ActivityService)
	healthHandler := handlers.NewHealthHandler(cfg.DB)

	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	api := router.Group("/api/v1")

	// Public: setup and login.
	api.GET("/auth/setup", authHandler.SetupRequired)
	api.POST("/auth/setup", authHandler.Setup)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.Auth(cfg.AuthService))
	{
		products := authed.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Create)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
			products.GET("/:id/images", productHandler.GetImage)
		}

		purchases := authed.Group("/purchases")
		{
			purchases.GET("", purchaseHandler.List)
			purchases.POST("", purchaseHandler.Create)
			purchases.GET("/:id", purchaseHandler.Get)
			purchases.PUT("/:id", purchaseHandler.Update)
			purchases.DELETE("/:id", purchaseHandler.Delete)
			purchases.GET("/:id/lines", purchaseHandler.GetLines)
		}

		orders := authed.Group("/orders")
		{
			orders.GET("", orderHandler.List)
			orders.POST("", orderHandler.Create)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id", orderHandler.Update)
			orders.DELETE("/:id", orderHandler.Delete)
			orders.GET("/:id/lines", orderHandler.GetLines)
		}

		rpt := authed.Group("/reports")
		{
			rpt.GET("/dashboard", reportHandler.Dashboard)
			rpt.GET("/sales", reportHandler.Sales)
			rpt.GET("/sales/export", reportHandler.ExportSales)
			rpt.GET("/inventory", reportHandler.Inventory)
			rpt.GET("/inventory/export", reportHandler.ExportInventory)
			rpt.GET("/stock-timeline/:id", reportHandler.StockTimeline)
			rpt.GET("/purchase-history/:id", reportHandler.PurchaseHistory)
		}

		expenses := authed.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		authed.GET("/settings", settingsHandler.Get)
		authed.POST("/users/password", authHandler.ChangePassword)
		authed.GET("/activity", activityHandler.List)

		admin := authed.Group("", middleware.RequireRole(auth.RoleAdmin))
		{
			admin.PUT("/settings", settingsHandler.Update)

			admin.GET("/users", authHandler.ListUsers)
			admin.POST("/users", authHandler.CreateUser)
			admin.DELETE("/users/:id", authHandler.DeleteUser)
			admin.PUT("/users/:id/role", authHandler.UpdateRole)

			admin.GET("/backups", backupHandler.List)
			admin.POST("/backups", backupHandler.Create)
			admin.POST("/backups/restore", backupHandler.Restore)
			admin.POST("/backups/prune", backupHandler.Prune)

			admin.POST("/maintenance/cleanup", maintenanceHandler.Cleanup)
		}
	}

	return router
}
