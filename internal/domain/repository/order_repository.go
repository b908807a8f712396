package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
)

type OrderRepository interface {
	// Create inserts the order and its items atomically.
	Create(ctx context.Context, o *order.Order) error
	Get(ctx context.Context, orderID string) (*order.Order, error)
	Exists(ctx context.Context, orderID string) (bool, error)
	List(ctx context.Context, filter order.ListFilter) ([]order.Order, error)
	ListIDs(ctx context.Context) ([]string, error)

	// NextOrderIndex returns MAX(order_index)+1, or the current unix time
	// when the table is empty.
	NextOrderIndex(ctx context.Context) (int64, error)

	SetPaymentStatus(ctx context.Context, orderID, paymentStatus, orderStatus string) error
	SetDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) error
	SetShipped(ctx context.Context, orderID, awb string) error
	SetOrderStatus(ctx context.Context, orderID, orderStatus string) error
	SetInvoiceNumber(ctx context.Context, orderID, invoiceNumber string) error
	SetRemarks(ctx context.Context, orderID, remarks string) error

	// ReplaceItems deletes and reinserts the order's items (force resync
	// and reconcile fix mode).
	ReplaceItems(ctx context.Context, orderID string, items []order.Item) error
	UpdateTotals(ctx context.Context, orderID string, totalItems int, subtotal, totalAmount decimal.Decimal, paymentStatus string, updatedAt time.Time) error
}

type SerialNumberRepository interface {
	ListByOrder(ctx context.Context, orderID string) ([]order.ItemSerials, error)
	// CountsByOrder maps item_id to the number of serials assigned.
	CountsByOrder(ctx context.Context, orderID string) (map[int64]int, error)
	// Replace swaps the full serial set of one item.
	Replace(ctx context.Context, itemID int64, serials []string) error
}
