package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests served",
	},
		[]string{"method", "path", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests",
	},
		[]string{"method", "path"},
	)

	SyncOrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wix_sync_orders_total",
		Help: "Orders seen by the Wix sync, by outcome",
	},
		[]string{"status"},
	)

	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "wix_sync_duration_seconds",
		Help: "Duration of full Wix sync runs",
	})

	KafkaMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kafka_messages_total",
		Help: "Kafka records produced and consumed, by direction and status",
	},
		[]string{"direction", "status"},
	)

	InvoicesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zoho_invoices_created_total",
		Help: "Invoices successfully raised in Zoho Books",
	})
)
