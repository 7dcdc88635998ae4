package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/pricing"
)

// VoucherHandler manages voucher endpoints.
type VoucherHandler struct {
	db *gorm.DB
}

// NewVoucherHandler constructs VoucherHandler.
func NewVoucherHandler(db *gorm.DB) *VoucherHandler {
	return &VoucherHandler{db: db}
}

// ListActiveVouchers returns the vouchers customers may apply.
func (h *VoucherHandler) ListActiveVouchers(c *fiber.Ctx) error {
	var vouchers []models.Voucher
	if err := h.db.Where("is_active = ?", true).
		Order("created_at asc").
		Find(&vouchers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": vouchers})
}

type validateVoucherRequest struct {
	Code string `json:"code"`
}

// ValidateVoucher checks a code and returns the voucher when applicable.
func (h *VoucherHandler) ValidateVoucher(c *fiber.Ctx) error {
	var req validateVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	var voucher models.Voucher
	if err := h.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "voucher not found")
		}
		return err
	}

	if !voucher.IsActive {
		return fiber.NewError(fiber.StatusBadRequest, "voucher is no longer active")
	}

	return c.JSON(fiber.Map{"success": true, "data": voucher})
}

type voucherRequest struct {
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	Discount     float64 `json:"discount"`
	FreeShipping bool    `json:"free_shipping"`
	IsActive     bool    `json:"is_active"`
}

// ListVouchers returns every voucher, active or not, for the dashboard.
func (h *VoucherHandler) ListVouchers(c *fiber.Ctx) error {
	var vouchers []models.Voucher
	if err := h.db.Order("created_at asc").Find(&vouchers).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": vouchers})
}

// CreateVoucher persists a new voucher.
func (h *VoucherHandler) CreateVoucher(c *fiber.Ctx) error {
	var req voucherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Code) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	voucher := models.Voucher{
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:  req.Description,
		Discount:     pricing.FromFloat(req.Discount),
		FreeShipping: req.FreeShipping,
		IsActive:     req.IsActive,
	}

	if err := h.db.Create(&voucher).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": voucher})
}

// UpdateVoucher updates an existing voucher.
func (h *VoucherHandler) UpdateVoucher(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var voucher models.Voucher
	if err := h.db.First(&voucher, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "voucher not found")
		}
		return err
	}

	var req voucherRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Code) != "" {
		voucher.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	voucher.Description = req.Description
	voucher.Discount = pricing.FromFloat(req.Discount)
	voucher.FreeShipping = req.FreeShipping
	voucher.IsActive = req.IsActive

	if err := h.db.Save(&voucher).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": voucher})
}

// DeleteVoucher removes a voucher.
func (h *VoucherHandler) DeleteVoucher(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Voucher{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
