package order

import "time"

// Event types published to the order event topic.
const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
	EventSynced        = "order.synced"
)

// Event is the change notification emitted when an order is created,
// transitions status, or lands through a sync run.
type Event struct {
	Type           string
	OrderID        string
	Channel        string
	PaymentStatus  string
	DeliveryStatus string
	OrderStatus    string
	TotalAmount    float64
	OccurredAt     time.Time
}

// NewEvent snapshots the order's current state.
func NewEvent(eventType string, o *Order, occurredAt time.Time) Event {
	return Event{
		Type:           eventType,
		OrderID:        o.OrderID,
		Channel:        o.Channel,
		PaymentStatus:  o.PaymentStatus,
		DeliveryStatus: o.DeliveryStatus,
		OrderStatus:    o.OrderStatus,
		TotalAmount:    o.TotalAmount.InexactFloat64(),
		OccurredAt:     occurredAt,
	}
}
