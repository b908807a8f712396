package order

// Payment status values stored on orders.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Delivery status values. The update endpoints only accept the three
// transitions the storefront uses; READY is set by mark-fulfilled.
const (
	DeliveryNotShipped = "NOT_SHIPPED"
	DeliveryReady      = "READY"
	DeliveryShipped    = "SHIPPED"
	DeliveryCompleted  = "COMPLETED"
)

// Order status shorthand codes.
const (
	StatusApproved  = "APPR"
	StatusPending   = "PEND"
	StatusCompleted = "COMPLETED"
)

// Sales channels.
const (
	ChannelOffline = "offline"
	ChannelWix     = "wix"
)

// Payment types.
const (
	PaymentTypeOnline = "online"
)

// Serial assignment summary values.
const (
	SerialNone     = "none"
	SerialPartial  = "partial"
	SerialComplete = "complete"
)

var allowedDeliveryStatuses = map[string]struct{}{
	DeliveryNotShipped: {},
	DeliveryShipped:    {},
	DeliveryCompleted:  {},
}

// ValidDeliveryStatus reports whether s may be set through the
// delivery-status update endpoints.
func ValidDeliveryStatus(s string) bool {
	_, ok := allowedDeliveryStatuses[s]
	return ok
}

// TogglePayment flips payment status between pending and paid and keeps
// the order status code in step.
func TogglePayment(paymentStatus string) (payment, status string) {
	if paymentStatus == PaymentPaid {
		return PaymentPending, StatusPending
	}
	return PaymentPaid, StatusApproved
}
