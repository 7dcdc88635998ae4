package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report categories a customer may file against an order.
const (
	ReportComplaint = "Complaint"
	ReportDamage    = "Damage"
	ReportRefund    = "Refund"
)

// Order is a placed checkout with its full price breakdown and lifecycle
// fields. Status values live in the status package.
type Order struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User        *User     `json:"user,omitempty"`
	OrderNumber string    `gorm:"uniqueIndex" json:"order_number"`
	Status      string    `json:"status"`
	PlacedAt    time.Time `json:"placed_at"`

	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	DeliveryAddress string `json:"delivery_address"`

	Items []OrderItem `json:"items,omitempty"`

	OriginalSubtotal    decimal.Decimal `gorm:"type:numeric" json:"original_subtotal"`
	Subtotal            decimal.Decimal `gorm:"type:numeric" json:"subtotal"`
	DeliveryFee         decimal.Decimal `gorm:"type:numeric" json:"delivery_fee"`
	NewCustomerDiscount decimal.Decimal `gorm:"type:numeric" json:"new_customer_discount"`
	VoucherDiscount     decimal.Decimal `gorm:"type:numeric" json:"voucher_discount"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric" json:"total_amount"`
	VoucherCode         string          `json:"voucher_code"`

	DeliveryOption string `json:"delivery_option"`
	DeliveryDate   string `json:"delivery_date"`
	DeliveryTime   string `json:"delivery_time"`

	PaymentMethod    string `json:"payment_method"`
	PaymentProofURL  string `json:"payment_proof_url"`
	PaymentReference string `json:"payment_reference"`

	Notes string `json:"notes"`

	CancellationReason string     `json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	FeedbackRating   *int   `json:"feedback_rating"`
	FeedbackText     string `json:"feedback_text"`
	FeedbackImageURL string `json:"feedback_image_url"`
	AdminReply       string `json:"admin_reply"`

	ReportCategory string     `json:"report_category"`
	ReportedAt     *time.Time `json:"reported_at"`

	// Admin-facing unread flag.
	IsRead bool `json:"is_read"`
}

// OrderItem is a checkout line frozen at purchase time.
type OrderItem struct {
	BaseModel
	OrderID       uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	ProductID     *uuid.UUID      `gorm:"type:uuid" json:"product_id"`
	ProductName   string          `json:"product_name"`
	VariationName string          `json:"variation_name"`
	Quantity      int             `json:"quantity"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric" json:"original_price"`
	UnitPrice     decimal.Decimal `gorm:"type:numeric" json:"unit_price"`
	LineTotal     decimal.Decimal `gorm:"type:numeric" json:"line_total"`
	ImageURL      string          `json:"image_url"`
}

// ItemNames returns the item names in line order, for status messages.
func (o *Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		names = append(names, item.ProductName)
	}
	return names
}
