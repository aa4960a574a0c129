// Package routes defines the API routing configuration.
package routes

import (
	"pointbank/internal/handlers"
	"pointbank/internal/repositories"
	"pointbank/internal/services/ledger"
	"pointbank/internal/services/transfer"
	"pointbank/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	cacheSvc := repositories.CacheService

	userRepo := repositories.NewUserRepository(db, cacheSvc)
	transferRepo := repositories.NewTransferRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)

	userService := user.NewService(userRepo)
	ledgerService := ledger.NewService(ledgerRepo, userRepo, cacheSvc)
	transferService := transfer.NewService(
		transferRepo,
		ledgerRepo,
		userRepo,
		cacheSvc,
		&transfer.NoopMetricsCollector{},
	)

	userHandler := handlers.NewUserHandler(userService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	transferHandler := handlers.NewTransferHandler(transferService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	api.Post("/transfers", transferHandler.Create)
	api.Get("/transfers", transferHandler.List)
	api.Get("/transfers/:idemKey", transferHandler.Get)

	api.Post("/users", userHandler.Register)
	api.Get("/users", userHandler.List)
	api.Get("/users/:id", userHandler.Get)
	api.Put("/users/:id", userHandler.Update)
	api.Delete("/users/:id", userHandler.Delete)

	api.Get("/users/:id/balance", ledgerHandler.Balance)
	api.Get("/users/:id/ledger", ledgerHandler.History)
	api.Post("/users/:id/points", ledgerHandler.Adjust)
}
