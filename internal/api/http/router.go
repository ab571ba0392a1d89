package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	Cart           *handlers.CartHandler
	Orders         *handlers.OrdersHandler
	Reviews        *handlers.ReviewsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Handler())
	}

	api := app.Group("/api")
	protect := cfg.AuthMiddleware.Protect

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password/:token", cfg.Auth.ResetPassword)
	authGroup.Get("/verify-email/:token", cfg.Auth.VerifyEmail)
	authGroup.Post("/logout", protect, cfg.Auth.Logout)
	authGroup.Put("/update-password", protect, cfg.Auth.UpdatePassword)

	users := api.Group("/users", protect)
	users.Get("/profile", cfg.Users.GetProfile)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Put("/address", cfg.Users.UpsertAddress)
	users.Get("/admin/all", auth.RequireAdmin(), cfg.Users.ListUsers)
	users.Put("/:id/role", auth.RequireAdmin(), cfg.Users.UpdateRole)

	products := api.Group("/products")
	products.Get("/", cfg.Products.ListProducts)
	products.Get("/categories", cfg.Products.ListCategories)
	products.Get("/:id", cfg.Products.GetProduct)
	products.Get("/:id/reviews", cfg.Reviews.ListByProduct)
	products.Post("/:id/reviews", protect, cfg.Reviews.AddReview)
	products.Post("/", protect, auth.RequireAdmin(), cfg.Products.CreateProduct)
	products.Put("/:id", protect, auth.RequireAdmin(), cfg.Products.UpdateProduct)
	products.Delete("/:id", protect, auth.RequireAdmin(), cfg.Products.DeleteProduct)

	reviews := api.Group("/reviews", protect)
	reviews.Put("/:id", cfg.Reviews.UpdateReview)
	reviews.Delete("/:id", cfg.Reviews.DeleteReview)

	cart := api.Group("/cart", protect)
	cart.Get("/", cfg.Cart.GetCart)
	cart.Post("/", cfg.Cart.AddItem)
	cart.Delete("/", cfg.Cart.ClearCart)
	cart.Put("/:itemId", cfg.Cart.UpdateItem)
	cart.Delete("/:itemId", cfg.Cart.RemoveItem)

	orders := api.Group("/orders", protect)
	orders.Post("/", cfg.Orders.CreateOrder)
	orders.Get("/", cfg.Orders.ListOrders)
	orders.Get("/admin/all", auth.RequireAdmin(), cfg.Orders.ListAllOrders)
	orders.Get("/:id", cfg.Orders.GetOrder)
	orders.Put("/:id/status", auth.RequireAdmin(), cfg.Orders.UpdateStatus)

	admin := api.Group("/admin", protect, auth.RequireAdmin())
	admin.Get("/stats", cfg.Admin.Stats)
}
