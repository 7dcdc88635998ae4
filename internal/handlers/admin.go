package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/status"
	"github.com/example/bloomcart/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Where("is_admin = ?", false).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var unreadOrders int64
	if err := h.db.Model(&models.Order{}).Where("is_read = ?", false).Count(&unreadOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Revenue excludes cancelled and refunded orders.
	var totalRevenue decimal.Decimal
	if err := h.db.Model(&models.Order{}).
		Where("status NOT IN ?", []string{status.Cancelled, status.Refunded}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue decimal.Decimal
	if err := h.db.Model(&models.Order{}).
		Where("status NOT IN ? AND placed_at::date = CURRENT_DATE", []string{status.Cancelled, status.Refunded}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	var lowStockCount int64
	if err := h.db.Model(&models.Product{}).
		Where("stock_status IN ?", []string{models.StockStatusLow, models.StockStatusOut}).
		Count(&lowStockCount).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":      totalUsers,
			"total_products":   totalProducts,
			"total_orders":     totalOrders,
			"unread_orders":    unreadOrders,
			"total_revenue":    totalRevenue,
			"today_revenue":    todayRevenue,
			"low_stock_count":  lowStockCount,
			"orders_by_status": ordersByStatus,
		},
	})
}

// ListAllOrders returns all orders with pagination, filtering, and user info.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus transitions an order through its lifecycle. The new
// status must be one of the nine defined values and terminal orders stay
// terminal.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !status.IsValid(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown order status")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if status.IsTerminal(order.Status) && order.Status != req.Status {
		return fiber.NewError(fiber.StatusConflict, "order is already in a terminal status")
	}

	updates := map[string]interface{}{
		"status":  req.Status,
		"is_read": true,
	}
	if req.Status == status.Cancelled && order.CancelledAt == nil {
		now := time.Now()
		updates["cancelled_at"] = &now
		updates["cancellation_reason"] = "Cancelled by the shop"
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}

		notification := statusChangeNotification(order, req.Status)
		return tx.Create(&notification).Error
	}); err != nil {
		return err
	}

	order.Status = req.Status

	return c.JSON(fiber.Map{
		"success":        true,
		"data":           fiber.Map{"id": order.ID, "status": order.Status},
		"status_message": status.Describe(order.Status, order.ItemNames()),
	})
}

// statusChangeNotification builds the inbox entry recorded alongside every
// admin status transition.
func statusChangeNotification(order models.Order, newStatus string) models.AdminNotification {
	return models.AdminNotification{
		Type:    models.NotificationStatusChange,
		OrderID: &order.ID,
		Message: fmt.Sprintf("Order %s moved to %s", order.OrderNumber, newStatus),
	}
}

type replyRequest struct {
	Reply string `json:"reply"`
}

// ReplyToFeedback stores the shop's reply to a customer's feedback.
func (h *AdminHandler) ReplyToFeedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req replyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Reply == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reply is required")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.FeedbackRating == nil {
		return fiber.NewError(fiber.StatusConflict, "order has no feedback to reply to")
	}

	if err := h.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("admin_reply", req.Reply).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "reply saved"})
}

// MarkOrderRead clears the admin-facing unread flag.
func (h *AdminHandler) MarkOrderRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Model(&models.Order{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListCustomers returns registered customers with order stats.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.User{}).Where("is_admin = ?", false)

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	if err := query.Select("id, first_name, last_name, email, phone, is_verified, created_at, updated_at").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&users).Error; err != nil {
		return err
	}

	type userStats struct {
		UserID     string          `json:"user_id"`
		OrderCount int64           `json:"order_count"`
		TotalSpent decimal.Decimal `json:"total_spent"`
	}

	var stats []userStats
	if err := h.db.Model(&models.Order{}).
		Select("user_id, count(*) as order_count, COALESCE(SUM(total_amount), 0) as total_spent").
		Group("user_id").
		Scan(&stats).Error; err != nil {
		return err
	}

	statsMap := make(map[string]userStats)
	for _, s := range stats {
		statsMap[s.UserID] = s
	}

	type userResponse struct {
		models.User
		OrderCount int64           `json:"order_count"`
		TotalSpent decimal.Decimal `json:"total_spent"`
	}

	result := make([]userResponse, len(users))
	for i, u := range users {
		result[i] = userResponse{User: u}
		if s, ok := statsMap[u.ID.String()]; ok {
			result[i].OrderCount = s.OrderCount
			result[i].TotalSpent = s.TotalSpent
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
