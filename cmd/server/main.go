package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/bloomcart/internal/config"
	"github.com/example/bloomcart/internal/database"
	"github.com/example/bloomcart/internal/jobs"
	"github.com/example/bloomcart/internal/routes"
	"github.com/example/bloomcart/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)

	app := fiber.New(fiber.Config{
		AppName: "BloomCart Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, telegram)

	if cfg.LowStockEnabled {
		scheduler := jobs.StartLowStockScan(db, telegram, cfg.LowStockSchedule)
		defer scheduler.Stop()
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
