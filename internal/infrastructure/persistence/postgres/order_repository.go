package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `order_id, customer_id, offline_customer_id, address_id, total_items,
	subtotal, gst, delivery_charge, total_amount, channel, payment_status,
	delivery_status, order_status, awb_number, payment_type, order_index,
	upload_wbn, invoice_number, remarks, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.CustomerID,
		&o.OfflineCustomerID,
		&o.AddressID,
		&o.TotalItems,
		&o.Subtotal,
		&o.GST,
		&o.DeliveryCharge,
		&o.TotalAmount,
		&o.Channel,
		&o.PaymentStatus,
		&o.DeliveryStatus,
		&o.OrderStatus,
		&o.AWBNumber,
		&o.PaymentType,
		&o.OrderIndex,
		&o.UploadWBN,
		&o.InvoiceNumber,
		&o.Remarks,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, query,
		o.OrderID,
		o.CustomerID,
		o.OfflineCustomerID,
		o.AddressID,
		o.TotalItems,
		o.Subtotal,
		o.GST,
		o.DeliveryCharge,
		o.TotalAmount,
		o.Channel,
		o.PaymentStatus,
		o.DeliveryStatus,
		o.OrderStatus,
		o.AWBNumber,
		o.PaymentType,
		o.OrderIndex,
		o.UploadWBN,
		o.InvoiceNumber,
		o.Remarks,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return err
	}

	if err := insertItems(ctx, tx, o.OrderID, o.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.Item) error {
	const query = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, it := range items {
		if _, err := tx.Exec(ctx, query, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = items[orderID]
	return o, nil
}

func (r *OrderRepository) Exists(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1);`, orderID).Scan(&exists)
	return exists, err
}

func (r *OrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.PaymentStatus != "" {
		add("payment_status = $%d", filter.PaymentStatus)
	}
	if filter.DeliveryStatus != "" {
		add("delivery_status = $%d", filter.DeliveryStatus)
	}
	if filter.Channel != "" {
		add("channel = $%d", filter.Channel)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(order_id ILIKE $%d OR payment_status ILIKE $%d OR delivery_status ILIKE $%d OR COALESCE(awb_number, '') ILIKE $%d)",
			n, n, n, n))
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.OrderID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].OrderID]
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.Item, error) {
	const query = `
		SELECT oi.item_id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price, oi.total_price
		FROM order_items oi
		LEFT JOIN products p ON p.product_id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.item_id;
	`
	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.Item)
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ItemID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_id FROM orders;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *OrderRepository) NextOrderIndex(ctx context.Context) (int64, error) {
	var max int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(order_index), 0) FROM orders;`).Scan(&max)
	if err != nil {
		return 0, err
	}
	if max == 0 {
		return time.Now().Unix(), nil
	}
	return max + 1, nil
}

func (r *OrderRepository) update(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) SetPaymentStatus(ctx context.Context, orderID, paymentStatus, orderStatus string) error {
	return r.update(ctx,
		`UPDATE orders SET payment_status = $2, order_status = $3, updated_at = NOW() WHERE order_id = $1;`,
		orderID, paymentStatus, orderStatus)
}

func (r *OrderRepository) SetDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) error {
	return r.update(ctx,
		`UPDATE orders SET delivery_status = $2, updated_at = NOW() WHERE order_id = $1;`,
		orderID, deliveryStatus)
}

func (r *OrderRepository) SetShipped(ctx context.Context, orderID, awb string) error {
	return r.update(ctx,
		`UPDATE orders SET delivery_status = $2, awb_number = $3, updated_at = NOW() WHERE order_id = $1;`,
		orderID, domain.DeliveryShipped, awb)
}

func (r *OrderRepository) SetOrderStatus(ctx context.Context, orderID, orderStatus string) error {
	return r.update(ctx,
		`UPDATE orders SET order_status = $2, updated_at = NOW() WHERE order_id = $1;`,
		orderID, orderStatus)
}

func (r *OrderRepository) SetInvoiceNumber(ctx context.Context, orderID, invoiceNumber string) error {
	return r.update(ctx,
		`UPDATE orders SET invoice_number = $2, updated_at = NOW() WHERE order_id = $1;`,
		orderID, invoiceNumber)
}

func (r *OrderRepository) SetRemarks(ctx context.Context, orderID, remarks string) error {
	return r.update(ctx,
		`UPDATE orders SET remarks = $2, updated_at = NOW() WHERE order_id = $1;`,
		orderID, remarks)
}

func (r *OrderRepository) ReplaceItems(ctx context.Context, orderID string, items []domain.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1;`, orderID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, orderID, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdateTotals(ctx context.Context, orderID string, totalItems int, subtotal, totalAmount decimal.Decimal, paymentStatus string, updatedAt time.Time) error {
	return r.update(ctx, `
		UPDATE orders
		SET total_items = $2, subtotal = $3, total_amount = $4, payment_status = $5, updated_at = $6
		WHERE order_id = $1;`,
		orderID, totalItems, subtotal, totalAmount, paymentStatus, updatedAt)
}

type SerialNumberRepository struct {
	pool *pgxpool.Pool
}

func NewSerialNumberRepository(pool *pgxpool.Pool) *SerialNumberRepository {
	return &SerialNumberRepository{pool: pool}
}

func (r *SerialNumberRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.ItemSerials, error) {
	const query = `
		SELECT oi.item_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, sn.sr_number
		FROM order_items oi
		LEFT JOIN products p ON p.product_id = oi.product_id
		LEFT JOIN serial_numbers sn ON sn.item_id = oi.item_id
		WHERE oi.order_id = $1
		ORDER BY oi.item_id, sn.serial_id;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ItemSerials
	index := make(map[int64]int)
	for rows.Next() {
		var (
			itemID    int64
			productID *int64
			name      string
			quantity  int
			serial    *string
		)
		if err := rows.Scan(&itemID, &productID, &name, &quantity, &serial); err != nil {
			return nil, err
		}

		i, ok := index[itemID]
		if !ok {
			result = append(result, domain.ItemSerials{
				ItemID:      itemID,
				ProductID:   productID,
				ProductName: name,
				Quantity:    quantity,
				Serials:     []string{},
			})
			i = len(result) - 1
			index[itemID] = i
		}
		if serial != nil && *serial != "" {
			result[i].Serials = append(result[i].Serials, *serial)
		}
	}
	return result, rows.Err()
}

func (r *SerialNumberRepository) CountsByOrder(ctx context.Context, orderID string) (map[int64]int, error) {
	const query = `
		SELECT oi.item_id, COUNT(sn.serial_id)
		FROM order_items oi
		LEFT JOIN serial_numbers sn ON sn.item_id = oi.item_id
		WHERE oi.order_id = $1
		GROUP BY oi.item_id;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var itemID int64
		var n int
		if err := rows.Scan(&itemID, &n); err != nil {
			return nil, err
		}
		counts[itemID] = n
	}
	return counts, rows.Err()
}

func (r *SerialNumberRepository) Replace(ctx context.Context, itemID int64, serials []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM serial_numbers WHERE item_id = $1;`, itemID); err != nil {
		return err
	}
	for _, s := range serials {
		if _, err := tx.Exec(ctx, `INSERT INTO serial_numbers (item_id, sr_number) VALUES ($1, $2);`, itemID, s); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
