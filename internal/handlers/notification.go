package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/middleware"
	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/status"
	"github.com/example/bloomcart/internal/utils"
)

// NotificationHandler serves the customer notification feed and the admin
// inbox.
type NotificationHandler struct {
	db *gorm.DB
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// ListUserNotifications derives the notification feed from the user's orders.
// Each entry goes through the same status mapper as the order detail view, so
// the two surfaces always agree on the text.
func (h *NotificationHandler) ListUserNotifications(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	type feedEntry struct {
		OrderID     uuid.UUID      `json:"order_id"`
		OrderNumber string         `json:"order_number"`
		Status      string         `json:"status"`
		Message     status.Message `json:"message"`
		Timestamp   time.Time      `json:"timestamp"`
	}

	feed := make([]feedEntry, 0, len(orders))
	for _, order := range orders {
		feed = append(feed, feedEntry{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			Message:     status.Describe(order.Status, order.ItemNames()),
			Timestamp:   order.UpdatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    feed,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ListAdminNotifications returns the admin inbox, unread first.
func (h *NotificationHandler) ListAdminNotifications(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.AdminNotification{})
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var notifications []models.AdminNotification
	if err := query.Order("is_read asc, created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&notifications).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifications,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// MarkNotificationRead flags one admin notification as read.
func (h *NotificationHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// MarkAllNotificationsRead flags the whole admin inbox as read.
func (h *NotificationHandler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := h.db.Model(&models.AdminNotification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
