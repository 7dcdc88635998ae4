package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Delivery options offered at checkout.
const (
	DeliveryStandard = "Standard"
	DeliverySameDay  = "Same-Day Delivery"
	DeliveryPreOrder = "Pre-Order Exclusive"
	DeliveryNextDay  = "Next-Day Specials"
)

var (
	standardFee = decimal.NewFromInt(5)
	expressFee  = decimal.NewFromInt(10)

	// First-time customers get a flat 5% off every item.
	newCustomerRate = decimal.NewFromFloat(0.95)

	hundred = decimal.NewFromInt(100)
)

// Item is a single checkout line.
type Item struct {
	OriginalPrice decimal.Decimal
	Quantity      int64
}

// Voucher is a code-based discount applied at checkout.
type Voucher struct {
	Code         string
	Discount     decimal.Decimal // percent off the subtotal
	FreeShipping bool
}

// Totals is the full price breakdown for an order.
type Totals struct {
	OriginalSubtotal    decimal.Decimal
	Subtotal            decimal.Decimal
	NewCustomerDiscount decimal.Decimal
	DeliveryFee         decimal.Decimal
	VoucherDiscount     decimal.Decimal
	Total               decimal.Decimal
}

// ComputeOrderTotals computes the price breakdown for a cart. All arithmetic
// stays in decimal until display; nothing is rounded in between. The total is
// not clamped: a voucher larger than the order yields a negative total.
func ComputeOrderTotals(items []Item, deliveryOption string, isNewCustomer bool, voucher *Voucher) Totals {
	t := Totals{
		OriginalSubtotal:    decimal.Zero,
		Subtotal:            decimal.Zero,
		NewCustomerDiscount: decimal.Zero,
		VoucherDiscount:     decimal.Zero,
	}

	for _, item := range items {
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		q := decimal.NewFromInt(qty)

		unit := item.OriginalPrice
		price := unit
		if isNewCustomer {
			price = unit.Mul(newCustomerRate)
		}

		t.OriginalSubtotal = t.OriginalSubtotal.Add(unit.Mul(q))
		t.Subtotal = t.Subtotal.Add(price.Mul(q))
	}

	if isNewCustomer {
		t.NewCustomerDiscount = t.OriginalSubtotal.Sub(t.Subtotal)
	}

	t.DeliveryFee = DeliveryFee(deliveryOption)

	if voucher != nil {
		t.VoucherDiscount = t.Subtotal.Mul(voucher.Discount).Div(hundred)
		// FreeShipping is stored on the voucher but does not reduce the
		// delivery fee; pending a product decision.
	}

	t.Total = t.Subtotal.Add(t.DeliveryFee).Sub(t.VoucherDiscount)
	return t
}

// NewCustomerPrice returns the unit price after the first-order discount.
func NewCustomerPrice(original decimal.Decimal) decimal.Decimal {
	return original.Mul(newCustomerRate)
}

// DeliveryFee returns the flat fee for a delivery option. Standard delivery
// costs 5.00; every other option is 10.00.
func DeliveryFee(option string) decimal.Decimal {
	if option == DeliveryStandard {
		return standardFee
	}
	return expressFee
}

// FromFloat converts a float amount coming off the wire into a decimal,
// treating NaN and infinities as zero instead of letting them poison totals.
func FromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// FormatAmount renders an amount with the peso sign and exactly two fraction
// digits.
func FormatAmount(d decimal.Decimal) string {
	return "₱" + d.StringFixed(2)
}
