package repository

import (
	"context"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
)

type CustomerRepository interface {
	// CreateWithAddress inserts a customer of the given type and its first
	// address in one transaction, returning the new customer id.
	CreateWithAddress(ctx context.Context, c *customer.Customer, a *customer.Address) (int64, error)

	// FindOnline looks up an online customer by mobile, then by email.
	FindOnline(ctx context.Context, mobile, email string) (*customer.Customer, error)
	// FillMissing updates only the empty fields of an online customer.
	FillMissing(ctx context.Context, customerID int64, name, mobile, email string) error

	FindOfflineByMobile(ctx context.Context, mobile string) (*customer.Customer, error)
	CreateOffline(ctx context.Context, name, mobile, email string) (int64, error)
	// MaxSyntheticMobile returns the highest synthetic (zero-prefixed)
	// mobile sequence value in offline_customer, 0 when none exist.
	MaxSyntheticMobile(ctx context.Context) (int64, error)

	ListAll(ctx context.Context) ([]customer.Customer, error)
	Get(ctx context.Context, custType string, customerID int64) (*customer.Customer, error)
}

type AddressRepository interface {
	Create(ctx context.Context, a *customer.Address) (int64, error)
	Get(ctx context.Context, addressID int64) (*customer.Address, error)
	// FindMatch locates an existing address by line/mobile/pincode/city,
	// empty arguments matching anything.
	FindMatch(ctx context.Context, addressLine, mobile, pincode, city string) (*customer.Address, error)
	ListForCustomer(ctx context.Context, custType string, customerID int64) ([]customer.Address, error)
	LatestForCustomer(ctx context.Context, customerID int64) (*customer.Address, error)
	UpdateContact(ctx context.Context, addressID int64, name, mobile, pincode, addressLine, city string) error
}
