package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateSchema bootstraps every table the backend uses. Statements are
// idempotent so startup can always run this.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state (
			state_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			abbreviation TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS customer (
			customer_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			mobile TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			gst_number TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS offline_customer (
			customer_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			mobile TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			gst_number TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS address (
			address_id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT REFERENCES customer(customer_id),
			offline_customer_id BIGINT REFERENCES offline_customer(customer_id),
			name TEXT NOT NULL DEFAULT '',
			mobile TEXT NOT NULL DEFAULT '',
			pincode TEXT NOT NULL DEFAULT '',
			locality TEXT NOT NULL DEFAULT '',
			address_line TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state_id BIGINT NOT NULL REFERENCES state(state_id),
			landmark TEXT NOT NULL DEFAULT '',
			alternate_phone TEXT NOT NULL DEFAULT '',
			address_type TEXT NOT NULL DEFAULT 'shipping',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (customer_id IS NOT NULL OR offline_customer_id IS NOT NULL)
		)`,
		`CREATE TABLE IF NOT EXISTS hsn (
			hsn_id BIGSERIAL PRIMARY KEY,
			code TEXT NOT NULL,
			gst_rate NUMERIC NOT NULL DEFAULT 18
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category_id BIGINT NOT NULL DEFAULT 0,
			product_type TEXT NOT NULL DEFAULT '',
			sku_id TEXT NOT NULL DEFAULT '',
			zoho_sku TEXT NOT NULL DEFAULT '',
			hsn_id BIGINT REFERENCES hsn(hsn_id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			customer_id BIGINT REFERENCES customer(customer_id),
			offline_customer_id BIGINT REFERENCES offline_customer(customer_id),
			address_id BIGINT NOT NULL REFERENCES address(address_id),
			total_items INT NOT NULL DEFAULT 0,
			subtotal NUMERIC NOT NULL DEFAULT 0,
			gst NUMERIC NOT NULL DEFAULT 0,
			delivery_charge NUMERIC NOT NULL DEFAULT 0,
			total_amount NUMERIC NOT NULL DEFAULT 0,
			channel TEXT NOT NULL DEFAULT 'offline',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			delivery_status TEXT NOT NULL DEFAULT 'NOT_SHIPPED',
			order_status TEXT NOT NULL DEFAULT 'PEND',
			awb_number TEXT,
			payment_type TEXT NOT NULL DEFAULT 'online',
			order_index BIGINT NOT NULL UNIQUE,
			upload_wbn TEXT,
			invoice_number TEXT,
			remarks TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (customer_id IS NOT NULL OR offline_customer_id IS NOT NULL)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			item_id BIGSERIAL PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_id BIGINT REFERENCES products(product_id),
			model_id BIGINT,
			color_id BIGINT,
			quantity INT NOT NULL DEFAULT 1,
			unit_price NUMERIC NOT NULL DEFAULT 0,
			total_price NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS serial_numbers (
			serial_id BIGSERIAL PRIMARY KEY,
			item_id BIGINT NOT NULL REFERENCES order_items(item_id) ON DELETE CASCADE,
			sr_number TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS device_transaction (
			txn_id BIGSERIAL PRIMARY KEY,
			sku_id TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			in_out SMALLINT NOT NULL DEFAULT 1,
			create_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sync_state (
			source TEXT PRIMARY KEY,
			last_synced_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_serial_numbers_item_id ON serial_numbers (item_id)`,
		`CREATE INDEX IF NOT EXISTS idx_device_transaction_sku ON device_transaction (sku_id, create_date DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
