package pricing_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/example/bloomcart/internal/pricing"
)

func item(price float64, qty int64) pricing.Item {
	return pricing.Item{OriginalPrice: decimal.NewFromFloat(price), Quantity: qty}
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestComputeOrderTotalsReturningCustomer(t *testing.T) {
	t.Parallel()

	totals := pricing.ComputeOrderTotals(
		[]pricing.Item{item(250, 1), item(499.5, 3)},
		pricing.DeliveryStandard, false, nil)

	assert.True(t, totals.Subtotal.Equal(totals.OriginalSubtotal))
	assertAmount(t, "0", totals.NewCustomerDiscount)
	assertAmount(t, "1748.5", totals.Subtotal)
	assertAmount(t, "5", totals.DeliveryFee)
	assertAmount(t, "1753.5", totals.Total)
}

func TestComputeOrderTotalsNewCustomer(t *testing.T) {
	t.Parallel()

	totals := pricing.ComputeOrderTotals(
		[]pricing.Item{item(500, 2)},
		pricing.DeliverySameDay, true, nil)

	assertAmount(t, "1000", totals.OriginalSubtotal)
	assertAmount(t, "950", totals.Subtotal)
	assertAmount(t, "50", totals.NewCustomerDiscount)
	assertAmount(t, "10", totals.DeliveryFee)
	assertAmount(t, "0", totals.VoucherDiscount)
	assertAmount(t, "960", totals.Total)

	assert.True(t, totals.Subtotal.Equal(totals.OriginalSubtotal.Mul(decimal.NewFromFloat(0.95))))
	assert.True(t, totals.NewCustomerDiscount.Equal(totals.OriginalSubtotal.Sub(totals.Subtotal)))
}

func TestComputeOrderTotalsWithVoucher(t *testing.T) {
	t.Parallel()

	voucher := &pricing.Voucher{Code: "WELCOME10", Discount: decimal.NewFromInt(10)}
	totals := pricing.ComputeOrderTotals(
		[]pricing.Item{item(500, 2)},
		pricing.DeliverySameDay, true, voucher)

	assertAmount(t, "95", totals.VoucherDiscount)
	assertAmount(t, "865", totals.Total)
}

func TestComputeOrderTotalsNegativeTotal(t *testing.T) {
	t.Parallel()

	// A voucher larger than the order is allowed to push the total below
	// zero; nothing clamps it.
	voucher := &pricing.Voucher{Code: "BIG", Discount: decimal.NewFromInt(200)}
	totals := pricing.ComputeOrderTotals(
		[]pricing.Item{item(100, 1)},
		pricing.DeliveryStandard, false, voucher)

	assertAmount(t, "200", totals.VoucherDiscount)
	assertAmount(t, "-95", totals.Total)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.DeliveryFee).Sub(totals.VoucherDiscount)))
}

func TestComputeOrderTotalsFreeShippingInert(t *testing.T) {
	t.Parallel()

	voucher := &pricing.Voucher{Code: "FREESHIP", Discount: decimal.Zero, FreeShipping: true}
	totals := pricing.ComputeOrderTotals(
		[]pricing.Item{item(300, 1)},
		pricing.DeliveryStandard, false, voucher)

	assertAmount(t, "5", totals.DeliveryFee)
	assertAmount(t, "305", totals.Total)
}

func TestComputeOrderTotalsEmptyCart(t *testing.T) {
	t.Parallel()

	totals := pricing.ComputeOrderTotals(nil, pricing.DeliveryStandard, true, nil)

	assertAmount(t, "0", totals.OriginalSubtotal)
	assertAmount(t, "0", totals.Subtotal)
	assertAmount(t, "0", totals.NewCustomerDiscount)
	assertAmount(t, "5", totals.Total)
}

func TestDeliveryFee(t *testing.T) {
	t.Parallel()

	assertAmount(t, "5", pricing.DeliveryFee(pricing.DeliveryStandard))
	assertAmount(t, "10", pricing.DeliveryFee(pricing.DeliverySameDay))
	assertAmount(t, "10", pricing.DeliveryFee(pricing.DeliveryPreOrder))
	assertAmount(t, "10", pricing.DeliveryFee(pricing.DeliveryNextDay))
	assertAmount(t, "10", pricing.DeliveryFee("something else"))
}

func TestFromFloat(t *testing.T) {
	t.Parallel()

	assertAmount(t, "12.5", pricing.FromFloat(12.5))
	assertAmount(t, "0", pricing.FromFloat(math.NaN()))
	assertAmount(t, "0", pricing.FromFloat(math.Inf(1)))
	assertAmount(t, "0", pricing.FromFloat(math.Inf(-1)))
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "₱960.00", pricing.FormatAmount(decimal.NewFromInt(960)))
	assert.Equal(t, "₱1748.50", pricing.FormatAmount(decimal.RequireFromString("1748.5")))
	assert.Equal(t, "₱0.00", pricing.FormatAmount(decimal.Zero))
	assert.Equal(t, "₱-95.00", pricing.FormatAmount(decimal.NewFromInt(-95)))
}
