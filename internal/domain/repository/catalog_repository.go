package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
)

type ProductRepository interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, productID int64) (*catalog.Product, error)
	// Details resolves the GST rate through the HSN table.
	Details(ctx context.Context, productID int64) (*catalog.ProductDetails, error)

	FindBySKU(ctx context.Context, sku string) (*catalog.Product, error)
	// FindByWixID matches the remote catalog item id against sku_id or the
	// textual product id.
	FindByWixID(ctx context.Context, wixProductID string) (*catalog.Product, error)
	// FindByName matches case-insensitively, exact before LIKE.
	FindByName(ctx context.Context, name string) (*catalog.Product, error)

	// CreateAuto inserts a minimal product row for an unmapped remote item.
	CreateAuto(ctx context.Context, name, description string, categoryID int64, sku string) (*catalog.Product, error)
	// EnsureUnknownFallback returns the shared "Unknown Product (auto)" row,
	// creating it on first use.
	EnsureUnknownFallback(ctx context.Context, categoryID int64) (*catalog.Product, error)

	// LatestSellingPrice reads the newest inbound device_transaction price
	// for a SKU; zero when none recorded.
	LatestSellingPrice(ctx context.Context, sku string) (decimal.Decimal, error)
}

type StateRepository interface {
	List(ctx context.Context) ([]catalog.State, error)
	// FindIDByName matches case-insensitively, exact before LIKE; 0 when
	// not found.
	FindIDByName(ctx context.Context, name string) (int64, error)
}

// SyncStateRepository persists the incremental sync cursor per source.
type SyncStateRepository interface {
	LastSyncedAt(ctx context.Context, source string) (time.Time, error)
	SetLastSyncedAt(ctx context.Context, source string, t time.Time) error
}
