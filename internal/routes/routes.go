// Package routes defines the API routing configuration.
// It wires repositories, services and handlers, and groups routes by the
// capability they require.
package routes

import (
	"cardbank/internal/handlers"
	"cardbank/internal/middleware"
	"cardbank/internal/repositories"
	"cardbank/internal/services/auth"
	"cardbank/internal/services/card"
	"cardbank/internal/services/transfer"
	"cardbank/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	cardRepo := repositories.NewCardRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)

	// Services
	authService := auth.NewService(userRepo)
	cardService := card.NewService(cardRepo, userRepo)
	transferService := transfer.NewService(cardRepo, userRepo)
	userService := user.NewService(userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userCardHandler := handlers.NewUserCardHandler(cardService, transferService)
	transferHandler := handlers.NewTransferHandler(transferService)
	adminCardHandler := handlers.NewAdminCardHandler(cardService)
	adminUserHandler := handlers.NewAdminUserHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Public endpoints
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Authenticated user endpoints
	userGroup := app.Group("/user", authMiddleware.Handler)

	cards := userGroup.Group("/cards")
	cards.Post("/create", userCardHandler.CreateCard)
	cards.Get("/", userCardHandler.GetCards)
	cards.Post("/block", userCardHandler.BlockCard)
	cards.Get("/:id/balance", userCardHandler.GetBalance)

	userGroup.Post("/transfer/transfer", transferHandler.Transfer)

	// Administrator endpoints
	admin := app.Group("/admin", authMiddleware.Handler, middleware.AdminRequired)

	adminCards := admin.Group("/cards")
	adminCards.Get("/", adminCardHandler.GetCards)
	adminCards.Get("/:id", adminCardHandler.GetCard)
	adminCards.Post("/user/:id", adminCardHandler.CreateCardForUser)
	adminCards.Get("/user/:id", adminCardHandler.GetUserCards)
	adminCards.Patch("/:id/block", adminCardHandler.BlockCard)
	adminCards.Patch("/:id/activate", adminCardHandler.ActivateCard)
	adminCards.Delete("/:id", adminCardHandler.DeleteCard)

	adminUsers := admin.Group("/users")
	adminUsers.Get("/", adminUserHandler.GetUsers)
	adminUsers.Get("/:id", adminUserHandler.GetUser)
	adminUsers.Put("/:id/roles", adminUserHandler.UpdateRoles)
	adminUsers.Delete("/:id", adminUserHandler.DeleteUser)
}
