package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

// SyncSource keys the incremental cursor in sync_state.
const SyncSource = "wix"

// OrderFetcher abstracts the Wix client.
type OrderFetcher interface {
	QueryAllOrders(ctx context.Context) ([]json.RawMessage, error)
	QueryOrdersUpdatedSince(ctx context.Context, since time.Time) ([]json.RawMessage, error)
}

// Publisher ships raw order payloads to the order topic.
type Publisher interface {
	PublishRawOrder(ctx context.Context, payload []byte) error
}

// Service pulls the remote order feed and republishes it through Kafka
// so the sync pipeline has a durable, replayable input.
type Service struct {
	fetcher   OrderFetcher
	publisher Publisher
	syncState repository.SyncStateRepository
	log       logger.Logger
}

func NewService(fetcher OrderFetcher, publisher Publisher, syncState repository.SyncStateRepository, log logger.Logger) *Service {
	return &Service{
		fetcher:   fetcher,
		publisher: publisher,
		syncState: syncState,
		log:       log,
	}
}

// Run fetches the remote orders updated since the stored cursor and
// publishes each raw payload; the first run walks the whole feed. The
// downstream upsert is idempotent, so republishing already-synced
// orders is harmless.
func (s *Service) Run(ctx context.Context) (int, error) {
	last, err := s.syncState.LastSyncedAt(ctx, SyncSource)
	if err != nil {
		return 0, fmt.Errorf("read sync cursor: %w", err)
	}

	// The next cursor is the fetch start, so orders updated mid-run
	// land in the following window instead of being lost.
	windowStart := time.Now().UTC()

	var orders []json.RawMessage
	if last.IsZero() {
		orders, err = s.fetcher.QueryAllOrders(ctx)
	} else {
		s.log.Info("incremental ingest run", logger.String("updated_since", last.Format(time.RFC3339)))
		orders, err = s.fetcher.QueryOrdersUpdatedSince(ctx, last)
	}
	if err != nil {
		return 0, fmt.Errorf("fetch orders: %w", err)
	}

	count := 0
	for _, raw := range orders {
		if !json.Valid(raw) {
			continue
		}
		if err := s.publisher.PublishRawOrder(ctx, raw); err != nil {
			return count, fmt.Errorf("publish order #%d: %w", count, err)
		}
		count++
	}

	if err := s.syncState.SetLastSyncedAt(ctx, SyncSource, windowStart); err != nil {
		return count, fmt.Errorf("store sync cursor: %w", err)
	}

	s.log.Info("ingest run finished", logger.Int("published", count))
	return count, nil
}
