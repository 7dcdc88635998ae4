package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/config"
	"github.com/example/bloomcart/internal/handlers"
	"github.com/example/bloomcart/internal/middleware"
	"github.com/example/bloomcart/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, telegram *services.TelegramService) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	passwordResetHandler := handlers.NewPasswordResetHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, telegram)
	voucherHandler := handlers.NewVoucherHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/forgot-password", passwordResetHandler.ForgotPassword)
	auth.Post("/verify-reset-code", passwordResetHandler.VerifyResetCode)
	auth.Post("/reset-password", passwordResetHandler.ResetPassword)

	// Public catalog
	products := api.Group("/products")
	productHandler.RegisterProductRoutes(products)

	vouchers := api.Group("/vouchers")
	vouchers.Get("/", voucherHandler.ListActiveVouchers)
	vouchers.Post("/validate", voucherHandler.ValidateVoucher)

	api.Get("/settings", settingsHandler.GetSettings)

	// Authenticated customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Post("/orders/:id/cancel", orderHandler.CancelOrder)
	protected.Post("/orders/:id/feedback", orderHandler.SubmitFeedback)
	protected.Post("/orders/:id/report", orderHandler.SubmitReport)

	protected.Get("/notifications", notificationHandler.ListUserNotifications)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())

	adminProducts := admin.Group("/products")
	productHandler.RegisterAdminProductRoutes(adminProducts)

	adminVouchers := admin.Group("/vouchers")
	adminVouchers.Get("/", voucherHandler.ListVouchers)
	adminVouchers.Post("/", voucherHandler.CreateVoucher)
	adminVouchers.Put("/:id", voucherHandler.UpdateVoucher)
	adminVouchers.Delete("/:id", voucherHandler.DeleteVoucher)

	admin.Get("/dashboard", adminHandler.DashboardStats)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Put("/orders/:id/reply", adminHandler.ReplyToFeedback)
	admin.Patch("/orders/:id/read", adminHandler.MarkOrderRead)
	admin.Get("/customers", adminHandler.ListCustomers)
	admin.Put("/settings", settingsHandler.UpdateSettings)

	admin.Get("/notifications", notificationHandler.ListAdminNotifications)
	admin.Patch("/notifications/read-all", notificationHandler.MarkAllNotificationsRead)
	admin.Patch("/notifications/:id/read", notificationHandler.MarkNotificationRead)
}
