package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// DefaultMinStock is applied when a product is saved without a threshold.
const DefaultMinStock = 10

// MaxProductImages caps the image gallery; the first URL is the primary image.
const MaxProductImages = 3

// Stock statuses derived from stock vs min stock.
const (
	StockStatusIn  = "InStock"
	StockStatusLow = "LowStock"
	StockStatusOut = "OutOfStock"
)

// Product is a catalog entry with at least one priced variation.
type Product struct {
	BaseModel
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `gorm:"index" json:"category"`
	SKU         string             `gorm:"uniqueIndex" json:"sku"`
	MinPrice    decimal.Decimal    `gorm:"type:numeric" json:"min_price"`
	MaxPrice    decimal.Decimal    `gorm:"type:numeric" json:"max_price"`
	Stock       int                `json:"stock"`
	MinStock    int                `json:"min_stock"`
	StockStatus string             `json:"stock_status"`
	ImageURLs   pq.StringArray     `gorm:"type:text[]" json:"image_urls"`
	Variations  []ProductVariation `json:"variations,omitempty"`
}

// ProductVariation is a named price point, e.g. bouquet size "Small".
type ProductVariation struct {
	BaseModel
	ProductID    uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric" json:"price"`
	DisplayOrder int             `json:"display_order"`
}

// Recalculate refreshes the derived price range and stock status. Must run
// whenever variations, stock, or min stock change.
func (p *Product) Recalculate() {
	if p.MinStock <= 0 {
		p.MinStock = DefaultMinStock
	}

	switch {
	case p.Stock <= 0:
		p.StockStatus = StockStatusOut
	case p.Stock <= p.MinStock:
		p.StockStatus = StockStatusLow
	default:
		p.StockStatus = StockStatusIn
	}

	if len(p.Variations) == 0 {
		return
	}

	min := p.Variations[0].Price
	max := p.Variations[0].Price
	for _, v := range p.Variations[1:] {
		if v.Price.LessThan(min) {
			min = v.Price
		}
		if v.Price.GreaterThan(max) {
			max = v.Price
		}
	}
	p.MinPrice = min
	p.MaxPrice = max
}

// PrimaryImage returns the first gallery URL, or empty when there is none.
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
