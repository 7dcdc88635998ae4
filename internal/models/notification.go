package models

import "github.com/google/uuid"

// Admin notification types.
const (
	NotificationNewOrder       = "new_order"
	NotificationStatusChange   = "status_change"
	NotificationOrderCancelled = "order_cancelled"
	NotificationOrderReport    = "order_report"
	NotificationOrderFeedback  = "order_feedback"
	NotificationLowStock       = "low_stock"
)

// AdminNotification is an inbox entry for events that need admin attention.
type AdminNotification struct {
	BaseModel
	Type    string     `json:"type"`
	OrderID *uuid.UUID `gorm:"type:uuid" json:"order_id"`
	Order   *Order     `json:"order,omitempty"`
	Message string     `json:"message"`
	IsRead  bool       `json:"is_read"`
}
