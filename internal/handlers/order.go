package handlers

import (
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/middleware"
	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/pricing"
	"github.com/example/bloomcart/internal/services"
	"github.com/example/bloomcart/internal/status"
	"github.com/example/bloomcart/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db       *gorm.DB
	telegram *services.TelegramService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, telegram *services.TelegramService) *OrderHandler {
	return &OrderHandler{db: db, telegram: telegram}
}

type orderItemRequest struct {
	ProductID     string `json:"product_id"`
	VariationName string `json:"variation_name"`
	Quantity      int    `json:"quantity"`
}

type createOrderRequest struct {
	CustomerName     string             `json:"customer_name"`
	CustomerEmail    string             `json:"customer_email"`
	CustomerPhone    string             `json:"customer_phone"`
	DeliveryAddress  string             `json:"delivery_address"`
	DeliveryOption   string             `json:"delivery_option"`
	DeliveryDate     string             `json:"delivery_date"`
	DeliveryTime     string             `json:"delivery_time"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentProofURL  string             `json:"payment_proof_url"`
	PaymentReference string             `json:"payment_reference"`
	VoucherCode      string             `json:"voucher_code"`
	Notes            string             `json:"notes"`
	Items            []orderItemRequest `json:"items"`
}

// CreateOrder places an order for the authenticated user. Prices are resolved
// from the catalog and all totals are computed server-side; the new-customer
// discount applies when the user has no prior orders.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "delivery address is required")
	}

	var priorOrders int64
	if err := h.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&priorOrders).Error; err != nil {
		return err
	}
	isNewCustomer := priorOrders == 0

	var voucher *models.Voucher
	if code := strings.TrimSpace(req.VoucherCode); code != "" {
		var v models.Voucher
		if err := h.db.Where("code = ? AND is_active = ?", code, true).First(&v).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusBadRequest, "invalid voucher code")
			}
			return err
		}
		voucher = &v
	}

	order := models.Order{
		UserID:           userID,
		Status:           status.Pending,
		PlacedAt:         time.Now(),
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryOption:   req.DeliveryOption,
		DeliveryDate:     req.DeliveryDate,
		DeliveryTime:     req.DeliveryTime,
		PaymentMethod:    req.PaymentMethod,
		PaymentProofURL:  req.PaymentProofURL,
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
		OrderNumber:      generateOrderNumber(),
	}

	var lines []pricing.Item

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, itemReq := range req.Items {
			if itemReq.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "item quantity must be positive")
			}

			productID, err := uuid.Parse(itemReq.ProductID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
			}

			var product models.Product
			if err := tx.Preload("Variations", func(db *gorm.DB) *gorm.DB {
				return db.Order("display_order asc")
			}).First(&product, "id = ?", productID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fiber.NewError(fiber.StatusBadRequest, "product not found")
				}
				return err
			}

			if len(product.Variations) == 0 {
				return fiber.NewError(fiber.StatusConflict, "product has no purchasable variation")
			}

			variation := product.Variations[0]
			if itemReq.VariationName != "" {
				found := false
				for _, v := range product.Variations {
					if v.Name == itemReq.VariationName {
						variation = v
						found = true
						break
					}
				}
				if !found {
					return fiber.NewError(fiber.StatusBadRequest, "unknown variation for product "+product.Name)
				}
			}

			if product.Stock < itemReq.Quantity {
				return fiber.NewError(fiber.StatusConflict, "insufficient stock for "+product.Name)
			}

			originalPrice := variation.Price
			unitPrice := originalPrice
			if isNewCustomer {
				unitPrice = pricing.NewCustomerPrice(originalPrice)
			}

			qty := decimal.NewFromInt(int64(itemReq.Quantity))
			order.Items = append(order.Items, models.OrderItem{
				ProductID:     &product.ID,
				ProductName:   product.Name,
				VariationName: variation.Name,
				Quantity:      itemReq.Quantity,
				OriginalPrice: originalPrice,
				UnitPrice:     unitPrice,
				LineTotal:     unitPrice.Mul(qty),
				ImageURL:      product.PrimaryImage(),
			})
			lines = append(lines, pricing.Item{
				OriginalPrice: originalPrice,
				Quantity:      int64(itemReq.Quantity),
			})

			product.Stock -= itemReq.Quantity
			product.Recalculate()
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Updates(map[string]interface{}{
					"stock":        product.Stock,
					"stock_status": product.StockStatus,
				}).Error; err != nil {
				return err
			}
		}

		var priceVoucher *pricing.Voucher
		if voucher != nil {
			priceVoucher = &pricing.Voucher{
				Code:         voucher.Code,
				Discount:     voucher.Discount,
				FreeShipping: voucher.FreeShipping,
			}
			order.VoucherCode = voucher.Code
		}

		totals := pricing.ComputeOrderTotals(lines, req.DeliveryOption, isNewCustomer, priceVoucher)
		order.OriginalSubtotal = totals.OriginalSubtotal
		order.Subtotal = totals.Subtotal
		order.DeliveryFee = totals.DeliveryFee
		order.NewCustomerDiscount = totals.NewCustomerDiscount
		order.VoucherDiscount = totals.VoucherDiscount
		order.TotalAmount = totals.Total

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		notification := models.AdminNotification{
			Type:    models.NotificationNewOrder,
			OrderID: &order.ID,
			Message: fmt.Sprintf("New order %s from %s (%s)", order.OrderNumber, order.CustomerName, pricing.FormatAmount(order.TotalAmount)),
		}
		return tx.Create(&notification).Error
	}); err != nil {
		return err
	}

	go h.notifyNewOrder(order)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                    order.ID,
			"order_number":          order.OrderNumber,
			"status":                order.Status,
			"placed_at":             order.PlacedAt,
			"original_subtotal":     order.OriginalSubtotal,
			"subtotal":              order.Subtotal,
			"delivery_fee":          order.DeliveryFee,
			"new_customer_discount": order.NewCustomerDiscount,
			"voucher_discount":      order.VoucherDiscount,
			"total":                 order.TotalAmount,
			"total_display":         pricing.FormatAmount(order.TotalAmount),
		},
	})
}

func (h *OrderHandler) notifyNewOrder(order models.Order) {
	items := make([]services.OrderItemNotification, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, services.OrderItemNotification{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		})
	}

	err := h.telegram.NotifyNewOrder(services.OrderNotification{
		OrderNumber:    order.OrderNumber,
		Items:          items,
		TotalAmount:    order.TotalAmount,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		PaymentMethod:  order.PaymentMethod,
		DeliveryOption: order.DeliveryOption,
	})
	if err != nil {
		log.Printf("[Order] Telegram notification failed for %s: %v", order.OrderNumber, err)
	}
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("user_id = ?", userID).Model(&models.Order{})

	if s := c.Query("status"); s != "" {
		query = query.Where("status = ?", s)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
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

// GetOrder returns a single order for the authenticated user, along with its
// display message and whether it can still be cancelled.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"data":                 order,
		"status_message":       status.Describe(order.Status, order.ItemNames()),
		"cancellable":          status.IsCancellable(order.Status, order.PlacedAt, time.Now()),
		"cancellation_reasons": status.CancellationReasons,
	})
}

type cancelOrderRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// CancelOrder cancels an order while it is still inside the cancellation
// window. The reason must be one of the fixed picks, or "Other" with
// non-empty details.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req cancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	reason := strings.TrimSpace(req.Reason)
	switch {
	case reason == status.ReasonOther:
		details := strings.TrimSpace(req.Details)
		if details == "" {
			return fiber.NewError(fiber.StatusBadRequest, "details are required when reason is Other")
		}
		reason = details
	case status.IsListedCancellationReason(reason):
		// keep as picked
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid cancellation reason")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !status.IsCancellable(order.Status, order.PlacedAt, time.Now()) {
		return fiber.NewError(fiber.StatusConflict, "order can no longer be cancelled")
	}

	// The status guard repeats the eligibility check inside the update so a
	// concurrent admin transition cannot be overwritten with Cancelled.
	now := time.Now()
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status IN ?", order.ID, status.CancellableFrom).
			Updates(map[string]interface{}{
				"status":              status.Cancelled,
				"cancellation_reason": reason,
				"cancelled_at":        &now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "order can no longer be cancelled")
		}

		notification := models.AdminNotification{
			Type:    models.NotificationOrderCancelled,
			OrderID: &order.ID,
			Message: fmt.Sprintf("Order %s cancelled by customer: %s", order.OrderNumber, reason),
		}
		return tx.Create(&notification).Error
	}); err != nil {
		return err
	}

	go func() {
		if err := h.telegram.NotifyOrderCancelled(order.OrderNumber, order.CustomerName, reason); err != nil {
			log.Printf("[Order] Telegram cancellation notice failed for %s: %v", order.OrderNumber, err)
		}
	}()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":                  order.ID,
			"status":              status.Cancelled,
			"cancellation_reason": reason,
			"cancelled_at":        now,
		},
	})
}

type feedbackRequest struct {
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

// SubmitFeedback attaches a rating and comment to a delivered order.
func (h *OrderHandler) SubmitFeedback(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if order.Status != status.Delivered {
		return fiber.NewError(fiber.StatusConflict, "feedback is only accepted for delivered orders")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"feedback_rating":    req.Rating,
				"feedback_text":      req.Text,
				"feedback_image_url": req.ImageURL,
			}).Error; err != nil {
			return err
		}

		notification := models.AdminNotification{
			Type:    models.NotificationOrderFeedback,
			OrderID: &order.ID,
			Message: fmt.Sprintf("Feedback on order %s: %d/5", order.OrderNumber, req.Rating),
		}
		return tx.Create(&notification).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "feedback submitted"})
}

type reportRequest struct {
	Category string `json:"category"`
}

// SubmitReport files a complaint, damage, or refund report against an order.
func (h *OrderHandler) SubmitReport(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req reportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Category {
	case models.ReportComplaint, models.ReportDamage, models.ReportRefund:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "invalid report category")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	now := time.Now()
	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"report_category": req.Category,
				"reported_at":     &now,
			}).Error; err != nil {
			return err
		}

		notification := models.AdminNotification{
			Type:    models.NotificationOrderReport,
			OrderID: &order.ID,
			Message: fmt.Sprintf("%s report filed for order %s", req.Category, order.OrderNumber),
		}
		return tx.Create(&notification).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "report submitted"})
}

// generateOrderNumber derives a short order reference from a fresh UUID so
// concurrent checkouts never collide on the order_number unique index.
func generateOrderNumber() string {
	id := uuid.New()
	return "#" + strings.ToUpper(hex.EncodeToString(id[:6]))
}
