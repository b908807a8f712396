package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/farrdeeen/FastOrderLogic/internal/config"
	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/encoding/avro"
	"github.com/farrdeeen/FastOrderLogic/pkg/metrics"
)

// Producer publishes raw Wix order payloads to the order topic and
// Avro-encoded change events to the event topic.
type Producer struct {
	client     *kgo.Client
	orderTopic string
	eventTopic string
	encoder    *avro.Encoder
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	log.Printf("[Kafka Producer] Connecting to brokers: %v", cfg.Brokers)
	log.Printf("[Kafka Producer] Order topic: %s, event topic: %s", cfg.OrderTopic, cfg.EventTopic)

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.OrderTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		log.Printf("[Kafka Producer] Failed to create client: %v", err)
		panic(fmt.Errorf("create kafka producer: %w", err))
	}

	encoder, err := avro.NewEncoder(avro.OrderEventSchema)
	if err != nil {
		panic(fmt.Errorf("create event encoder: %w", err))
	}

	return &Producer{
		client:     client,
		orderTopic: cfg.OrderTopic,
		eventTopic: cfg.EventTopic,
		encoder:    encoder,
	}
}

// PublishRawOrder ships one raw Wix order JSON payload.
func (p *Producer) PublishRawOrder(ctx context.Context, payload []byte) error {
	if len(payload) == 0 {
		return fmt.Errorf("payload is empty")
	}
	return p.produce(ctx, p.orderTopic, []byte(uuid.NewString()), payload)
}

// PublishEvent ships one Avro-encoded order event keyed by order id.
func (p *Producer) PublishEvent(ctx context.Context, ev domain.Event) error {
	binary, err := p.encoder.EncodeNative(avro.ToOrderEventNative(ev))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.produce(ctx, p.eventTopic, []byte(ev.OrderID), binary)
}

func (p *Producer) produce(ctx context.Context, topic string, key, value []byte) error {
	rec := &kgo.Record{
		Topic:     topic,
		Key:       key,
		Value:     value,
		Timestamp: time.Now().UTC(),
	}

	results := p.client.ProduceSync(ctx, rec)
	if err := results.FirstErr(); err != nil {
		log.Printf("[Kafka Producer] Failed to publish to topic %s: %v", topic, err)
		metrics.KafkaMessagesTotal.WithLabelValues("produced", "error").Inc()
		return fmt.Errorf("publish to kafka topic %s: %w", topic, err)
	}
	metrics.KafkaMessagesTotal.WithLabelValues("produced", "ok").Inc()
	return nil
}

func (p *Producer) Close(ctx context.Context) error {
	log.Printf("[Kafka Producer] Closing producer")
	p.client.Close()
	return nil
}
