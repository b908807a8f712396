package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
	"github.com/farrdeeen/FastOrderLogic/pkg/metrics"
)

// RawOrderHandler processes one raw Wix order payload off the topic.
type RawOrderHandler interface {
	HandleRawOrder(ctx context.Context, payload []byte) error
}

// OrderConsumer feeds raw order payloads from Kafka into the sync
// pipeline, giving ingested orders a replayable path into the store.
type OrderConsumer struct {
	reader  *kafkago.Reader
	handler RawOrderHandler
	log     logger.Logger
}

func NewOrderConsumer(cfg config.KafkaConfig, handler RawOrderHandler, log logger.Logger) *OrderConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.OrderTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &OrderConsumer{
		reader:  reader,
		handler: handler,
		log:     log,
	}
}

// Start blocks until ctx is cancelled or the reader fails. A payload
// that cannot be processed is logged and skipped, matching the
// per-order isolation of the HTTP sync path.
func (c *OrderConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.handler.HandleRawOrder(ctx, msg.Value); err != nil {
			c.log.Error("raw order processing failed",
				logger.String("key", string(msg.Key)),
				logger.Error(err),
			)
			metrics.KafkaMessagesTotal.WithLabelValues("consumed", "error").Inc()
			continue
		}
		metrics.KafkaMessagesTotal.WithLabelValues("consumed", "ok").Inc()
	}
}

func (c *OrderConsumer) Close() {
	_ = c.reader.Close()
}
