package main

import (
	"context"
	"log"

	"github.com/farrdeeen/FastOrderLogic/internal/application/ingest"
	"github.com/farrdeeen/FastOrderLogic/internal/config"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/http/wix"
	kafkainfra "github.com/farrdeeen/FastOrderLogic/internal/infrastructure/messaging/kafka"
	"github.com/farrdeeen/FastOrderLogic/internal/infrastructure/persistence/postgres"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// Fetches the full Wix order feed and republishes each raw payload to
// the order topic. The API process consumes the topic and performs the
// idempotent upsert, so this can be run repeatedly or on a schedule.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if cfg.Wix.APIKey == "" || cfg.Wix.SiteID == "" {
		log.Fatal("WIX_API_KEY / WIX_SITE_ID are required")
	}

	zlog, err := logger.NewZapLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(cfg.DB)
	if err != nil {
		zlog.Fatal("postgres connection failed", logger.Error(err))
	}
	defer pool.Close()

	producer := kafkainfra.NewProducer(cfg.Kafka)
	defer producer.Close(ctx)

	client := wix.NewClient(cfg.Wix, zlog)
	svc := ingest.NewService(client, producer, postgres.NewSyncStateRepository(pool), zlog)

	n, err := svc.Run(ctx)
	if err != nil {
		zlog.Fatal("ingest run failed", logger.Error(err))
	}
	zlog.Info("ingest finished",
		logger.Int("published", n),
		logger.String("topic", cfg.Kafka.OrderTopic),
	)
}
