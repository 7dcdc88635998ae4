package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/example/bloomcart/internal/models"
	"github.com/example/bloomcart/internal/status"
)

func TestStatusChangeNotification(t *testing.T) {
	t.Parallel()

	order := models.Order{OrderNumber: "#A1B2C3D4E5F6"}
	order.ID = uuid.New()

	n := statusChangeNotification(order, status.Shipped)

	assert.Equal(t, models.NotificationStatusChange, n.Type)
	assert.NotNil(t, n.OrderID)
	assert.Equal(t, order.ID, *n.OrderID)
	assert.Contains(t, n.Message, order.OrderNumber)
	assert.Contains(t, n.Message, status.Shipped)
	assert.False(t, n.IsRead)
}
