package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/bloomcart/internal/pricing"
)

// TelegramService handles sending notifications to the admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// OrderNotification contains order data for the new-order message.
type OrderNotification struct {
	OrderNumber    string
	Items          []OrderItemNotification
	TotalAmount    decimal.Decimal
	CustomerName   string
	CustomerPhone  string
	PaymentMethod  string
	DeliveryOption string
}

// OrderItemNotification contains a single line of the order.
type OrderItemNotification struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// NotifyNewOrder sends a new-order message to the admin chat.
func (s *TelegramService) NotifyNewOrder(order OrderNotification) error {
	if s.adminChatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   %d x %s = %s\n",
			i+1,
			item.Name,
			item.Quantity,
			pricing.FormatAmount(item.Price),
			pricing.FormatAmount(itemTotal),
		))
	}

	message := fmt.Sprintf(`<b>🌸 NEW ORDER</b>
<b>📋 Order:</b> %s
<b>👤 Customer:</b> %s
<b>📞 Phone:</b> %s
<b>📦 Items:</b>
%s
<b>💰 Total:</b> %s
<b>💳 Payment:</b> %s
<b>🚚 Delivery:</b> %s
━━━━━━━━━━━━━━━━━━`,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerPhone,
		itemsList.String(),
		pricing.FormatAmount(order.TotalAmount),
		order.PaymentMethod,
		order.DeliveryOption,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// NotifyOrderCancelled sends a cancellation message to the admin chat.
func (s *TelegramService) NotifyOrderCancelled(orderNumber, customerName, reason string) error {
	if s.adminChatID == "" {
		return nil
	}

	message := fmt.Sprintf(`<b>❌ ORDER CANCELLED</b>
<b>📋 Order:</b> %s
<b>👤 Customer:</b> %s
<b>📝 Reason:</b> %s
━━━━━━━━━━━━━━━━━━`,
		orderNumber,
		customerName,
		reason,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}

// LowStockItem is a product running low for the stock alert.
type LowStockItem struct {
	Name   string
	SKU    string
	Stock  int
	Status string
}

// NotifyLowStock sends a low-stock digest to the admin chat.
func (s *TelegramService) NotifyLowStock(items []LowStockItem) error {
	if s.adminChatID == "" || len(items) == 0 {
		return nil
	}

	var list strings.Builder
	for i, item := range items {
		list.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s) — %d left [%s]\n",
			i+1, item.Name, item.SKU, item.Stock, item.Status))
	}

	message := fmt.Sprintf(`<b>⚠️ LOW STOCK ALERT</b>
%s━━━━━━━━━━━━━━━━━━`, list.String())

	return s.SendToAdmin(strings.TrimSpace(message))
}
