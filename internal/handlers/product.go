package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/pricing"
	"github.com/example/bloomcart/internal/utils"
)

// ProductHandler manages product CRUD.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts returns paginated products with optional filters.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Product{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if stockStatus := c.Query("stock_status"); stockStatus != "" {
		query = query.Where("stock_status = ?", stockStatus)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?", q, q, q)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("max_price >= ?", val)
		}
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("min_price <= ?", val)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := query.Preload("Variations", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).
		Limit(pg.Limit).Offset(pg.Offset).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct loads a product with its variations.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Variations", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order asc")
	}).First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type variationRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type productRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	SKU         string             `json:"sku"`
	Stock       int                `json:"stock"`
	MinStock    int                `json:"min_stock"`
	ImageURLs   []string           `json:"image_urls"`
	Variations  []variationRequest `json:"variations"`
}

func buildProductFromRequest(req productRequest) (models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return models.Product{}, errors.New("name is required")
	}
	if strings.TrimSpace(req.SKU) == "" {
		return models.Product{}, errors.New("sku is required")
	}
	if len(req.Variations) == 0 {
		return models.Product{}, errors.New("at least one variation is required")
	}
	if len(req.ImageURLs) > models.MaxProductImages {
		return models.Product{}, errors.New("at most 3 image urls are allowed")
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		ImageURLs:   pq.StringArray(req.ImageURLs),
	}

	for idx, v := range req.Variations {
		if strings.TrimSpace(v.Name) == "" {
			return models.Product{}, errors.New("variation name is required")
		}
		product.Variations = append(product.Variations, models.ProductVariation{
			Name:         v.Name,
			Price:        pricing.FromFloat(v.Price),
			DisplayOrder: idx,
		})
	}

	product.Recalculate()
	return product, nil
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct updates an existing product and replaces its variations.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.Preload("Variations").First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	product, err := buildProductFromRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariation{}).Error; err != nil {
			return err
		}

		for i := range product.Variations {
			product.Variations[i].ProductID = product.ID
		}

		if err := tx.Model(&existing).Omit("ID", "CreatedAt").Updates(map[string]interface{}{
			"name":         product.Name,
			"description":  product.Description,
			"category":     product.Category,
			"sku":          product.SKU,
			"stock":        product.Stock,
			"min_stock":    product.MinStock,
			"min_price":    product.MinPrice,
			"max_price":    product.MaxPrice,
			"stock_status": product.StockStatus,
			"image_urls":   product.ImageURLs,
		}).Error; err != nil {
			return err
		}

		return tx.Create(&product.Variations).Error
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product and its variations.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type stockRequest struct {
	Stock    *int `json:"stock"`
	MinStock *int `json:"min_stock"`
}

// UpdateStock adjusts stock levels and rederives the stock status.
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req stockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Stock == nil && req.MinStock == nil {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}
	product.Recalculate()

	if err := h.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"stock":        product.Stock,
			"min_stock":    product.MinStock,
			"stock_status": product.StockStatus,
		}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// RegisterProductRoutes attaches public product routes.
func (h *ProductHandler) RegisterProductRoutes(router fiber.Router) {
	router.Get("/", h.ListProducts)
	router.Get("/:id", h.GetProduct)
}

// RegisterAdminProductRoutes attaches admin product routes.
func (h *ProductHandler) RegisterAdminProductRoutes(router fiber.Router) {
	router.Post("/", h.CreateProduct)
	router.Put("/:id", h.UpdateProduct)
	router.Delete("/:id", h.DeleteProduct)
	router.Patch("/:id/stock", h.UpdateStock)
}
