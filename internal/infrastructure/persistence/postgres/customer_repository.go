package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func customerTable(custType string) (string, error) {
	switch custType {
	case domain.TypeOnline:
		return "customer", nil
	case domain.TypeOffline:
		return "offline_customer", nil
	default:
		return "", fmt.Errorf("unknown customer type %q", custType)
	}
}

func (r *CustomerRepository) CreateWithAddress(ctx context.Context, c *domain.Customer, a *domain.Address) (int64, error) {
	table, err := customerTable(c.Type)
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var customerID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO `+table+` (name, mobile, email, gst_number)
		VALUES ($1, $2, $3, $4)
		RETURNING customer_id;`,
		c.Name, c.Mobile, c.Email, c.GSTNumber,
	).Scan(&customerID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrAlreadyExists
		}
		return 0, err
	}

	if a != nil {
		if c.Type == domain.TypeOnline {
			a.CustomerID = &customerID
			a.OfflineCustomerID = nil
		} else {
			a.OfflineCustomerID = &customerID
			a.CustomerID = nil
		}
		if _, err := insertAddress(ctx, tx, a); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return customerID, nil
}

func (r *CustomerRepository) FindOnline(ctx context.Context, mobile, email string) (*domain.Customer, error) {
	for _, probe := range []struct{ column, value string }{
		{"mobile", mobile},
		{"email", email},
	} {
		if probe.value == "" {
			continue
		}
		c, err := r.findOne(ctx, `
			SELECT customer_id, name, mobile, email, gst_number, created_at
			FROM customer WHERE `+probe.column+` = $1 LIMIT 1;`, probe.value)
		if err != nil {
			return nil, err
		}
		if c != nil {
			c.Type = domain.TypeOnline
			return c, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.CustomerID, &c.Name, &c.Mobile, &c.Email, &c.GSTNumber, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) FillMissing(ctx context.Context, customerID int64, name, mobile, email string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE customer
		SET name = COALESCE(NULLIF(name, ''), $2),
			mobile = COALESCE(NULLIF(mobile, ''), $3),
			email = COALESCE(NULLIF(email, ''), $4)
		WHERE customer_id = $1;`,
		customerID, name, mobile, email)
	return err
}

func (r *CustomerRepository) FindOfflineByMobile(ctx context.Context, mobile string) (*domain.Customer, error) {
	if mobile == "" {
		return nil, nil
	}
	c, err := r.findOne(ctx, `
		SELECT customer_id, name, mobile, email, gst_number, created_at
		FROM offline_customer WHERE mobile = $1 LIMIT 1;`, mobile)
	if err != nil {
		return nil, err
	}
	if c != nil {
		c.Type = domain.TypeOffline
	}
	return c, nil
}

func (r *CustomerRepository) CreateOffline(ctx context.Context, name, mobile, email string) (int64, error) {
	var customerID int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO offline_customer (name, mobile, email)
		VALUES ($1, $2, $3)
		RETURNING customer_id;`,
		name, mobile, email,
	).Scan(&customerID)
	if isUniqueViolation(err) {
		return 0, repository.ErrAlreadyExists
	}
	return customerID, err
}

// MaxSyntheticMobile scans the synthetic zero-padded mobile range
// assigned to contacts that arrived without a phone number. Nine
// leading zeros keep real numbers that merely start with 0 out of the
// sequence.
func (r *CustomerRepository) MaxSyntheticMobile(ctx context.Context) (int64, error) {
	var max int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(mobile::BIGINT), 0)
		FROM offline_customer
		WHERE mobile ~ '^0{9}[0-9]+';`).Scan(&max)
	return max, err
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	const query = `
		SELECT customer_id, 'online' AS type, name, mobile, email, gst_number, created_at FROM customer
		UNION ALL
		SELECT customer_id, 'offline' AS type, name, mobile, email, gst_number, created_at FROM offline_customer
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.Type, &c.Name, &c.Mobile, &c.Email, &c.GSTNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Get(ctx context.Context, custType string, customerID int64) (*domain.Customer, error) {
	table, err := customerTable(custType)
	if err != nil {
		return nil, err
	}
	c, err := r.findOne(ctx, `
		SELECT customer_id, name, mobile, email, gst_number, created_at
		FROM `+table+` WHERE customer_id = $1;`, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, repository.ErrNotFound
	}
	c.Type = custType
	return c, nil
}

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

const addressColumns = `address_id, customer_id, offline_customer_id, name, mobile, pincode,
	locality, address_line, city, state_id, landmark, alternate_phone,
	address_type, is_available, created_at, updated_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.AddressID,
		&a.CustomerID,
		&a.OfflineCustomerID,
		&a.Name,
		&a.Mobile,
		&a.Pincode,
		&a.Locality,
		&a.AddressLine,
		&a.City,
		&a.StateID,
		&a.Landmark,
		&a.AlternatePhone,
		&a.AddressType,
		&a.IsAvailable,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func insertAddress(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, a *domain.Address) (int64, error) {
	var addressID int64
	err := q.QueryRow(ctx, `
		INSERT INTO address (customer_id, offline_customer_id, name, mobile, pincode, locality,
			address_line, city, state_id, landmark, alternate_phone, address_type,
			is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING address_id;`,
		a.CustomerID, a.OfflineCustomerID, a.Name, a.Mobile, a.Pincode, a.Locality,
		a.AddressLine, a.City, a.StateID, a.Landmark, a.AlternatePhone, a.AddressType,
		a.IsAvailable, a.CreatedAt, a.UpdatedAt,
	).Scan(&addressID)
	return addressID, err
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) (int64, error) {
	return insertAddress(ctx, r.pool, a)
}

func (r *AddressRepository) Get(ctx context.Context, addressID int64) (*domain.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM address WHERE address_id = $1;`, addressID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return a, err
}

func (r *AddressRepository) FindMatch(ctx context.Context, addressLine, mobile, pincode, city string) (*domain.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM address
		WHERE ($1 = '' OR LOWER(address_line) = LOWER($1))
		  AND ($2 = '' OR mobile = $2)
		  AND ($3 = '' OR pincode = $3)
		  AND ($4 = '' OR LOWER(city) = LOWER($4))
		ORDER BY address_id DESC
		LIMIT 1;`,
		addressLine, mobile, pincode, city))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AddressRepository) ListForCustomer(ctx context.Context, custType string, customerID int64) ([]domain.Address, error) {
	column := "customer_id"
	if custType == domain.TypeOffline {
		column = "offline_customer_id"
	} else if custType != domain.TypeOnline {
		return nil, fmt.Errorf("unknown customer type %q", custType)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+addressColumns+` FROM address
		WHERE `+column+` = $1 AND is_available
		ORDER BY created_at DESC;`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, *a)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) LatestForCustomer(ctx context.Context, customerID int64) (*domain.Address, error) {
	a, err := scanAddress(r.pool.QueryRow(ctx, `
		SELECT `+addressColumns+` FROM address
		WHERE customer_id = $1 OR offline_customer_id = $1
		ORDER BY created_at DESC
		LIMIT 1;`, customerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *AddressRepository) UpdateContact(ctx context.Context, addressID int64, name, mobile, pincode, addressLine, city string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE address
		SET name = $2, mobile = $3, pincode = $4, address_line = $5, city = $6, updated_at = NOW()
		WHERE address_id = $1;`,
		addressID, name, mobile, pincode, addressLine, city)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
