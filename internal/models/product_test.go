package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/bloomcart/internal/models"
)

func variation(name string, price int64) models.ProductVariation {
	return models.ProductVariation{Name: name, Price: decimal.NewFromInt(price)}
}

func TestRecalculateStockStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		stock    int
		minStock int
		want     string
	}{
		{"zero stock", 0, 10, models.StockStatusOut},
		{"negative stock", -3, 10, models.StockStatusOut},
		{"at threshold", 10, 10, models.StockStatusLow},
		{"below threshold", 4, 10, models.StockStatusLow},
		{"above threshold", 11, 10, models.StockStatusIn},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := models.Product{Stock: tc.stock, MinStock: tc.minStock}
			p.Recalculate()
			assert.Equal(t, tc.want, p.StockStatus)
		})
	}
}

func TestRecalculateDefaultMinStock(t *testing.T) {
	t.Parallel()

	p := models.Product{Stock: 5}
	p.Recalculate()
	assert.Equal(t, models.DefaultMinStock, p.MinStock)
	assert.Equal(t, models.StockStatusLow, p.StockStatus)
}

func TestRecalculatePriceRange(t *testing.T) {
	t.Parallel()

	p := models.Product{
		Stock: 20,
		Variations: []models.ProductVariation{
			variation("Medium", 750),
			variation("Small", 500),
			variation("Large", 1200),
		},
	}
	p.Recalculate()

	assert.True(t, p.MinPrice.Equal(decimal.NewFromInt(500)), p.MinPrice.String())
	assert.True(t, p.MaxPrice.Equal(decimal.NewFromInt(1200)), p.MaxPrice.String())
	assert.True(t, p.MinPrice.LessThanOrEqual(p.MaxPrice))
}

func TestRecalculateSingleVariation(t *testing.T) {
	t.Parallel()

	p := models.Product{Stock: 20, Variations: []models.ProductVariation{variation("Only", 350)}}
	p.Recalculate()

	assert.True(t, p.MinPrice.Equal(p.MaxPrice))
	assert.True(t, p.MinPrice.Equal(decimal.NewFromInt(350)))
}

func TestPrimaryImage(t *testing.T) {
	t.Parallel()

	p := models.Product{}
	assert.Equal(t, "", p.PrimaryImage())

	p.ImageURLs = []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	assert.Equal(t, "https://cdn.example.com/a.jpg", p.PrimaryImage())
}

func TestItemNames(t *testing.T) {
	t.Parallel()

	order := models.Order{
		Items: []models.OrderItem{
			{ProductName: "Rose Bouquet"},
			{ProductName: "Lily Arrangement"},
		},
	}
	assert.Equal(t, []string{"Rose Bouquet", "Lily Arrangement"}, order.ItemNames())

	empty := models.Order{}
	assert.Empty(t, empty.ItemNames())
}
