package status_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/bloomcart/internal/status"
)

func TestDescribeKnownStatuses(t *testing.T) {
	t.Parallel()

	for _, s := range status.All {
		msg := status.Describe(s, []string{"Red Rose Bouquet"})
		assert.NotEmpty(t, msg.Title, "status %s", s)
		assert.NotEmpty(t, msg.Body, "status %s", s)
		assert.NotEmpty(t, msg.Icon, "status %s", s)
		assert.NotEmpty(t, msg.Color, "status %s", s)
		assert.Contains(t, msg.Body, `"Red Rose Bouquet"`, "status %s", s)
		assert.NotContains(t, msg.Body, "more)", "single-item body must not count extras for %s", s)
	}
}

func TestDescribeUnknownStatusFallsBack(t *testing.T) {
	t.Parallel()

	msg := status.Describe("UnknownStatus", nil)
	assert.Equal(t, "Order Update", msg.Title)
	assert.Contains(t, msg.Body, "your items")
	assert.NotEmpty(t, msg.Icon)
	assert.NotEmpty(t, msg.Color)
}

func TestDescribeAdditionalItems(t *testing.T) {
	t.Parallel()

	msg := status.Describe(status.Pending, []string{"Tulip Bundle", "Sunflower Jar", "Peony Box"})
	assert.Contains(t, msg.Body, `"Tulip Bundle"`)
	assert.Contains(t, msg.Body, "(+2 more)")
}

func TestDescribeDeterministic(t *testing.T) {
	t.Parallel()

	// The notification feed and the order detail view call this with the
	// same inputs and must render identical text.
	items := []string{"Orchid Pot", "Daisy Wrap"}
	first := status.Describe(status.OutForDelivery, items)
	second := status.Describe(status.OutForDelivery, items)
	assert.Equal(t, first, second)
}

func TestIsCancellable(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.True(t, status.IsCancellable(status.Pending, now.Add(-9*time.Minute-59*time.Second), now))
	assert.True(t, status.IsCancellable(status.Processing, now.Add(-time.Minute), now))

	// The boundary is strict: exactly ten minutes is too late.
	assert.False(t, status.IsCancellable(status.Pending, now.Add(-status.CancellationWindow), now))
	assert.False(t, status.IsCancellable(status.Pending, now.Add(-10*time.Minute-time.Second), now))

	assert.False(t, status.IsCancellable(status.Shipped, now, now))
	assert.False(t, status.IsCancellable(status.Confirmed, now, now))
	assert.False(t, status.IsCancellable(status.Pending, time.Time{}, now))
}

// The SQL status guard on cancellation updates must agree with IsCancellable
// for every status.
func TestCancellableFromMatchesIsCancellable(t *testing.T) {
	t.Parallel()

	now := time.Now()

	listed := make(map[string]bool)
	for _, s := range status.CancellableFrom {
		listed[s] = true
	}

	for _, s := range status.All {
		assert.Equal(t, listed[s], status.IsCancellable(s, now, now), "status %s", s)
	}
	assert.ElementsMatch(t, []string{status.Pending, status.Processing}, status.CancellableFrom)
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range status.All {
		assert.True(t, status.IsValid(s))
	}
	assert.False(t, status.IsValid("pending"))
	assert.False(t, status.IsValid(""))
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, status.IsTerminal(status.Delivered))
	assert.True(t, status.IsTerminal(status.Cancelled))
	assert.True(t, status.IsTerminal(status.Refunded))
	assert.False(t, status.IsTerminal(status.Pending))
	assert.False(t, status.IsTerminal(status.OutForDelivery))
}

func TestCancellationReasons(t *testing.T) {
	t.Parallel()

	assert.Len(t, status.CancellationReasons, 4)
	for _, r := range status.CancellationReasons {
		assert.True(t, status.IsListedCancellationReason(r))
	}
	assert.False(t, status.IsListedCancellationReason(status.ReasonOther))
	assert.False(t, status.IsListedCancellationReason("whatever"))
}
