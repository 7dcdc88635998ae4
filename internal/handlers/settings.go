package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/models"
)

// SettingsHandler serves the shop settings singleton.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// GetSettings returns the storefront settings, creating the row on first use.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.loadOrCreate()
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": settings})
}

// UpdateSettings replaces the storefront settings.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	settings, err := h.loadOrCreate()
	if err != nil {
		return err
	}

	var payload models.ShopSettings
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = settings.ID
	payload.CreatedAt = settings.CreatedAt

	if err := h.db.Save(&payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

func (h *SettingsHandler) loadOrCreate() (models.ShopSettings, error) {
	var settings models.ShopSettings
	err := h.db.First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return settings, err
	}

	settings = models.ShopSettings{ShopName: "BloomCart"}
	if err := h.db.Create(&settings).Error; err != nil {
		return settings, err
	}
	return settings, nil
}
