package router

import (
	"time"

	"localtrack/internal/backup"
	"localtrack/internal/config"
	"localtrack/internal/fuelsync"
	"localtrack/internal/handler"
	"localtrack/internal/logger"
	"localtrack/internal/middleware"
	"localtrack/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the store, synchronizer and backup service into the
// JSON API under /api.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger.WithComponent("http")), gin.Recovery())

	// the UI is served from its own origin on the same machine
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	st := store.New(db)
	sync := fuelsync.New(st)
	settings := cfg.Settings()

	api := r.Group("/api")

	expenseHandler := handler.NewExpenseHandler(st, sync)
	api.GET("/expenses", expenseHandler.ListExpenses)
	api.POST("/expenses", expenseHandler.CreateExpense)
	api.GET("/expenses/:id", expenseHandler.GetExpense)
	api.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	api.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	fuelHandler := handler.NewFuelHandler(st, sync, settings)
	api.GET("/fuel-logs", fuelHandler.ListFuelLogs)
	api.POST("/fuel-logs", fuelHandler.CreateFuelLog)
	api.DELETE("/fuel-logs/:id", fuelHandler.DeleteFuelLog)
	api.GET("/fuel/derive", fuelHandler.Derive)

	loanHandler := handler.NewLoanHandler(st)
	api.GET("/loans", loanHandler.ListLoans)
	api.POST("/loans", loanHandler.CreateLoan)
	api.GET("/loans/summary", loanHandler.Summary)
	api.GET("/loans/:id", loanHandler.GetLoan)
	api.POST("/loans/:id/close", loanHandler.CloseLoan)
	api.DELETE("/loans/:id", loanHandler.DeleteLoan)
	api.POST("/loans/:id/payments", loanHandler.AddPayment)

	deliveryHandler := handler.NewDeliveryHandler(st, settings)
	api.GET("/deliveries", deliveryHandler.ListDeliveries)
	api.GET("/deliveries/:date", deliveryHandler.GetDelivery)
	api.PUT("/deliveries/:date", deliveryHandler.UpsertDelivery)
	api.DELETE("/deliveries/:date", deliveryHandler.DeleteDelivery)

	statsHandler := handler.NewStatsHandler(st)
	api.GET("/stats", statsHandler.GetStats)

	api.GET("/categories", handler.ListCategories)
	api.GET("/settings", handler.GetSettings(settings))

	backupHandler := handler.NewBackupHandler(backup.New(st, cfg.Backup.Dir, cfg.Backup.Passphrase), sync)
	api.POST("/backups", backupHandler.CreateBackup)
	api.GET("/backups", backupHandler.ListBackups)
	api.POST("/backups/:name/restore", backupHandler.RestoreBackup)

	exportHandler := handler.NewExportHandler(st)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
