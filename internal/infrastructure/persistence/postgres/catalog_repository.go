package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `product_id, name, description, category_id, product_type, sku_id, zoho_sku, hsn_id, created_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.CategoryID,
		&p.ProductType,
		&p.SKUID,
		&p.ZohoSKU,
		&p.HSNID,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1;`, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return p, err
}

func (r *ProductRepository) Details(ctx context.Context, productID int64) (*domain.ProductDetails, error) {
	var d domain.ProductDetails
	err := r.pool.QueryRow(ctx, `
		SELECT p.product_id, p.name, p.sku_id, COALESCE(h.gst_rate, 18)
		FROM products p
		LEFT JOIN hsn h ON h.hsn_id = p.hsn_id
		WHERE p.product_id = $1;`, productID,
	).Scan(&d.ProductID, &d.Name, &d.SKUID, &d.GSTPercent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ProductRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE LOWER(sku_id) = LOWER($1) OR LOWER(zoho_sku) = LOWER($1)
		ORDER BY product_id
		LIMIT 1;`, sku)
}

func (r *ProductRepository) FindByWixID(ctx context.Context, wixProductID string) (*domain.Product, error) {
	if wixProductID == "" {
		return nil, nil
	}
	return r.findOne(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE sku_id = $1 OR product_id::TEXT = $1
		ORDER BY product_id
		LIMIT 1;`, wixProductID)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	p, err := r.findOne(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE LOWER(name) = LOWER($1)
		ORDER BY product_id
		LIMIT 1;`, name)
	if err != nil || p != nil {
		return p, err
	}
	return r.findOne(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY product_id
		LIMIT 1;`, name)
}

func (r *ProductRepository) CreateAuto(ctx context.Context, name, description string, categoryID int64, sku string) (*domain.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, category_id, sku_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+productColumns+`;`,
		name, description, categoryID, sku))
	return p, err
}

func (r *ProductRepository) EnsureUnknownFallback(ctx context.Context, categoryID int64) (*domain.Product, error) {
	const fallbackName = "Unknown Product (auto)"

	p, err := r.FindByName(ctx, fallbackName)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	return r.CreateAuto(ctx, fallbackName, "Placeholder for unmapped sync items", categoryID, "")
}

func (r *ProductRepository) LatestSellingPrice(ctx context.Context, sku string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT price FROM device_transaction
		WHERE sku_id = $1 AND in_out = 1
		ORDER BY create_date DESC
		LIMIT 1;`, sku).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	return price, err
}

type StateRepository struct {
	pool *pgxpool.Pool
}

func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return &StateRepository{pool: pool}
}

func (r *StateRepository) List(ctx context.Context) ([]domain.State, error) {
	rows, err := r.pool.Query(ctx, `SELECT state_id, name, abbreviation FROM state ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []domain.State
	for rows.Next() {
		var s domain.State
		if err := rows.Scan(&s.StateID, &s.Name, &s.Abbreviation); err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	return states, rows.Err()
}

func (r *StateRepository) FindIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT state_id FROM state WHERE LOWER(name) = LOWER($1) LIMIT 1;`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = r.pool.QueryRow(ctx,
		`SELECT state_id FROM state WHERE name ILIKE '%' || $1 || '%' ORDER BY state_id LIMIT 1;`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return id, err
}

type SyncStateRepository struct {
	pool *pgxpool.Pool
}

func NewSyncStateRepository(pool *pgxpool.Pool) *SyncStateRepository {
	return &SyncStateRepository{pool: pool}
}

func (r *SyncStateRepository) LastSyncedAt(ctx context.Context, source string) (time.Time, error) {
	var t time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT last_synced_at FROM sync_state WHERE source = $1;`, source).Scan(&t)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, nil
	}
	return t, err
}

func (r *SyncStateRepository) SetLastSyncedAt(ctx context.Context, source string, t time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sync_state (source, last_synced_at)
		VALUES ($1, $2)
		ON CONFLICT (source) DO UPDATE SET last_synced_at = EXCLUDED.last_synced_at;`,
		source, t)
	return err
}
