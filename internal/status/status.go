package status

import (
	"fmt"
	"time"
)

// Order lifecycle statuses.
const (
	Pending        = "Pending"
	Processing     = "Processing"
	Confirmed      = "Confirmed"
	Ready          = "Ready"
	Shipped        = "Shipped"
	OutForDelivery = "Out for Delivery"
	Delivered      = "Delivered"
	Cancelled      = "Cancelled"
	Refunded       = "Refunded"
)

// All lists every valid order status.
var All = []string{
	Pending,
	Processing,
	Confirmed,
	Ready,
	Shipped,
	OutForDelivery,
	Delivered,
	Cancelled,
	Refunded,
}

// IsValid reports whether s is a recognized order status.
func IsValid(s string) bool {
	for _, v := range All {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether an order in status s can still change.
func IsTerminal(s string) bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// Message is the display payload for an order status, shared by the
// notification feed and the order detail view.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type entry struct {
	title    string
	template string
	icon     string
	color    string
}

var table = map[string]entry{
	Pending:        {"Order Placed", `Your order for "%s"%s has been placed and is awaiting confirmation.`, "hourglass-outline", "#F59E0B"},
	Confirmed:      {"Order Confirmed", `Your order for "%s"%s has been confirmed by the shop.`, "checkmark-circle-outline", "#10B981"},
	Processing:     {"Preparing Your Order", `Our florists are now preparing "%s"%s.`, "flower-outline", "#8B5CF6"},
	Ready:          {"Order Ready", `Your order for "%s"%s is packed and ready to go.`, "cube-outline", "#06B6D4"},
	OutForDelivery: {"Out for Delivery", `Your order for "%s"%s is on its way to you.`, "bicycle-outline", "#3B82F6"},
	Shipped:        {"Order Shipped", `Your order for "%s"%s has been handed to the courier.`, "send-outline", "#6366F1"},
	Delivered:      {"Order Delivered", `Your order for "%s"%s has been delivered. Enjoy your flowers!`, "checkmark-done-outline", "#22C55E"},
	Cancelled:      {"Order Cancelled", `Your order for "%s"%s has been cancelled.`, "close-circle-outline", "#EF4444"},
	Refunded:       {"Order Refunded", `Your order for "%s"%s has been refunded.`, "cash-outline", "#14B8A6"},
}

var fallback = entry{"Order Update", `There is an update on your order for "%s"%s.`, "notifications-outline", "#6B7280"}

// Describe maps an order status and its item names to a display message.
// Unrecognized statuses degrade to a generic update message; it never fails.
func Describe(status string, itemNames []string) Message {
	e, ok := table[status]
	if !ok {
		e = fallback
	}

	name := "your items"
	suffix := ""
	if len(itemNames) > 0 {
		name = itemNames[0]
		if extra := len(itemNames) - 1; extra > 0 {
			suffix = fmt.Sprintf(" (+%d more)", extra)
		}
	}

	return Message{
		Title: e.title,
		Body:  fmt.Sprintf(e.template, name, suffix),
		Icon:  e.icon,
		Color: e.color,
	}
}

// CancellationWindow is how long after placement a customer may still cancel.
const CancellationWindow = 10 * time.Minute

// CancellableFrom lists the statuses a customer cancellation may start from.
// Status guards in SQL updates use the same list as IsCancellable.
var CancellableFrom = []string{Pending, Processing}

// IsCancellable reports whether an order can still be cancelled by its owner:
// it must be Pending or Processing and strictly inside the window. An order
// with no placement time is never cancellable.
func IsCancellable(status string, placedAt, now time.Time) bool {
	if placedAt.IsZero() {
		return false
	}
	cancellable := false
	for _, s := range CancellableFrom {
		if s == status {
			cancellable = true
			break
		}
	}
	if !cancellable {
		return false
	}
	return now.Sub(placedAt) < CancellationWindow
}

// ReasonOther marks a free-text cancellation reason; the text is required.
const ReasonOther = "Other"

// CancellationReasons is the fixed list offered to customers.
var CancellationReasons = []string{
	"Changed my mind",
	"Ordered the wrong item",
	"Found a better price elsewhere",
	"Delivery would take too long",
}

// IsListedCancellationReason reports whether reason is one of the fixed picks.
func IsListedCancellationReason(reason string) bool {
	for _, r := range CancellationReasons {
		if r == reason {
			return true
		}
	}
	return false
}
