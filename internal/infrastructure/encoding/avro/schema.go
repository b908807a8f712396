package avro

// OrderEventSchema is the Avro schema for order change events. Optional
// fields use ["null", type] unions so producers can omit them.
const OrderEventSchema = `{
	"type": "record",
	"name": "OrderEvent",
	"namespace": "com.fastorderlogic.order",
	"fields": [
		{"name": "event_type", "type": "string"},
		{"name": "order_id", "type": "string"},
		{"name": "channel", "type": ["null", "string"], "default": null},
		{"name": "payment_status", "type": ["null", "string"], "default": null},
		{"name": "delivery_status", "type": ["null", "string"], "default": null},
		{"name": "order_status", "type": ["null", "string"], "default": null},
		{"name": "total_amount", "type": ["null", "double"], "default": null},
		{"name": "occurred_at", "type": "string"}
	]
}`
