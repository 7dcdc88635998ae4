package jobs

import (
	"fmt"
	"log"

	"github.com/robfig/cron"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/services"
)

// StartLowStockScan schedules a periodic scan for products at or below their
// stock threshold and reports them to the admin inbox and chat. Returns the
// scheduler so the caller can stop it on shutdown.
func StartLowStockScan(db *gorm.DB, telegram *services.TelegramService, schedule string) *cron.Cron {
	c := cron.New()

	if err := c.AddFunc(schedule, func() {
		runLowStockScan(db, telegram)
	}); err != nil {
		log.Printf("[Jobs] Invalid low-stock schedule %q: %v", schedule, err)
		return c
	}

	c.Start()
	log.Printf("[Jobs] Low-stock scan scheduled: %s", schedule)
	return c
}

func runLowStockScan(db *gorm.DB, telegram *services.TelegramService) {
	var products []models.Product
	if err := db.Where("stock_status IN ?", []string{models.StockStatusLow, models.StockStatusOut}).
		Order("stock asc").
		Find(&products).Error; err != nil {
		log.Printf("[Jobs] Low-stock scan query failed: %v", err)
		return
	}

	if len(products) == 0 {
		return
	}

	items := make([]services.LowStockItem, 0, len(products))
	for _, p := range products {
		items = append(items, services.LowStockItem{
			Name:   p.Name,
			SKU:    p.SKU,
			Stock:  p.Stock,
			Status: p.StockStatus,
		})
	}

	notification := models.AdminNotification{
		Type:    models.NotificationLowStock,
		Message: lowStockMessage(len(products)),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("[Jobs] Low-stock inbox write failed: %v", err)
	}

	if err := telegram.NotifyLowStock(items); err != nil {
		log.Printf("[Jobs] Low-stock notification failed: %v", err)
	}
}

func lowStockMessage(count int) string {
	if count == 1 {
		return "1 product is at or below its stock threshold"
	}
	return fmt.Sprintf("%d products are at or below their stock threshold", count)
}
