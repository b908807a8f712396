package avro

import (
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
)

// ToOrderEventNative converts an order event to the goavro-native map.
// Union values must be wrapped as map[string]interface{}{"type": value}.
func ToOrderEventNative(ev order.Event) map[string]interface{} {
	out := map[string]interface{}{
		"event_type":  ev.Type,
		"order_id":    ev.OrderID,
		"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339),
	}

	setString := func(key, value string) {
		if value != "" {
			out[key] = map[string]interface{}{"string": value}
		} else {
			out[key] = nil
		}
	}

	setString("channel", ev.Channel)
	setString("payment_status", ev.PaymentStatus)
	setString("delivery_status", ev.DeliveryStatus)
	setString("order_status", ev.OrderStatus)

	if ev.TotalAmount != 0 {
		out["total_amount"] = map[string]interface{}{"double": ev.TotalAmount}
	} else {
		out["total_amount"] = nil
	}

	return out
}
