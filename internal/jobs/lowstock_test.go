package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowStockMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 product is at or below its stock threshold", lowStockMessage(1))
	assert.Equal(t, "3 products are at or below their stock threshold", lowStockMessage(3))
}
