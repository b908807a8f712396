package customer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/pkg/logger"
)

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logger.Field)  { m.Called(msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logger.Field)  { m.Called(msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logger.Field) { m.Called(msg, fields) }

func (m *MockLogger) WithContext(ctx context.Context) logger.Logger {
	m.Called(ctx)
	return m
}

func (m *MockLogger) WithFields(fields ...logger.Field) logger.Logger {
	m.Called(fields)
	return m
}

func (m *MockLogger) Sync() error {
	args := m.Called()
	return args.Error(0)
}

func newQuietLogger() *MockLogger {
	l := new(MockLogger)
	l.On("Debug", mock.Anything, mock.Anything).Return().Maybe()
	l.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	l.On("Warn", mock.Anything, mock.Anything).Return().Maybe()
	l.On("Error", mock.Anything, mock.Anything).Return().Maybe()
	return l
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) CreateWithAddress(ctx context.Context, c *customer.Customer, a *customer.Address) (int64, error) {
	args := m.Called(ctx, c, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepo) FindOnline(ctx context.Context, mobile, email string) (*customer.Customer, error) {
	args := m.Called(ctx, mobile, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) FillMissing(ctx context.Context, customerID int64, name, mobile, email string) error {
	args := m.Called(ctx, customerID, name, mobile, email)
	return args.Error(0)
}

func (m *MockCustomerRepo) FindOfflineByMobile(ctx context.Context, mobile string) (*customer.Customer, error) {
	args := m.Called(ctx, mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) CreateOffline(ctx context.Context, name, mobile, email string) (int64, error) {
	args := m.Called(ctx, name, mobile, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepo) MaxSyntheticMobile(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepo) ListAll(ctx context.Context) ([]customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Get(ctx context.Context, custType string, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, custType, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockAddressRepo struct {
	mock.Mock
}

func (m *MockAddressRepo) Create(ctx context.Context, a *customer.Address) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepo) Get(ctx context.Context, addressID int64) (*customer.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepo) FindMatch(ctx context.Context, addressLine, mobile, pincode, city string) (*customer.Address, error) {
	args := m.Called(ctx, addressLine, mobile, pincode, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepo) ListForCustomer(ctx context.Context, custType string, customerID int64) ([]customer.Address, error) {
	args := m.Called(ctx, custType, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Address), args.Error(1)
}

func (m *MockAddressRepo) LatestForCustomer(ctx context.Context, customerID int64) (*customer.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepo) UpdateContact(ctx context.Context, addressID int64, name, mobile, pincode, addressLine, city string) error {
	args := m.Called(ctx, addressID, name, mobile, pincode, addressLine, city)
	return args.Error(0)
}

type MockStateRepo struct {
	mock.Mock
}

func (m *MockStateRepo) List(ctx context.Context) ([]catalog.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.State), args.Error(1)
}

func (m *MockStateRepo) FindIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
