package models

import "github.com/shopspring/decimal"

// Voucher is a code-based percentage discount. FreeShipping is stored but
// does not currently zero the delivery fee.
type Voucher struct {
	BaseModel
	Code         string          `gorm:"uniqueIndex" json:"code"`
	Description  string          `json:"description"`
	Discount     decimal.Decimal `gorm:"type:numeric" json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
	IsActive     bool            `json:"is_active"`
}
