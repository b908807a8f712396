package wixsync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
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

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) QueryOrders(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockFetcher) QueryAllOrders(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockFetcher) FetchOrderNumber(ctx context.Context, orderID string) string {
	args := m.Called(ctx, orderID)
	return args.String(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(ctx context.Context, ev order.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepo) Get(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepo) Exists(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) List(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepo) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOrderRepo) NextOrderIndex(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepo) SetPaymentStatus(ctx context.Context, orderID, paymentStatus, orderStatus string) error {
	args := m.Called(ctx, orderID, paymentStatus, orderStatus)
	return args.Error(0)
}

func (m *MockOrderRepo) SetDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) error {
	args := m.Called(ctx, orderID, deliveryStatus)
	return args.Error(0)
}

func (m *MockOrderRepo) SetShipped(ctx context.Context, orderID, awb string) error {
	args := m.Called(ctx, orderID, awb)
	return args.Error(0)
}

func (m *MockOrderRepo) SetOrderStatus(ctx context.Context, orderID, orderStatus string) error {
	args := m.Called(ctx, orderID, orderStatus)
	return args.Error(0)
}

func (m *MockOrderRepo) SetInvoiceNumber(ctx context.Context, orderID, invoiceNumber string) error {
	args := m.Called(ctx, orderID, invoiceNumber)
	return args.Error(0)
}

func (m *MockOrderRepo) SetRemarks(ctx context.Context, orderID, remarks string) error {
	args := m.Called(ctx, orderID, remarks)
	return args.Error(0)
}

func (m *MockOrderRepo) ReplaceItems(ctx context.Context, orderID string, items []order.Item) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderRepo) UpdateTotals(ctx context.Context, orderID string, totalItems int, subtotal, totalAmount decimal.Decimal, paymentStatus string, updatedAt time.Time) error {
	args := m.Called(ctx, orderID, totalItems, subtotal, totalAmount, paymentStatus, updatedAt)
	return args.Error(0)
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

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepo) Get(ctx context.Context, productID int64) (*catalog.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) Details(ctx context.Context, productID int64) (*catalog.ProductDetails, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductDetails), args.Error(1)
}

func (m *MockProductRepo) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) FindByWixID(ctx context.Context, wixProductID string) (*catalog.Product, error) {
	args := m.Called(ctx, wixProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) CreateAuto(ctx context.Context, name, description string, categoryID int64, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, name, description, categoryID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) EnsureUnknownFallback(ctx context.Context, categoryID int64) (*catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepo) LatestSellingPrice(ctx context.Context, sku string) (decimal.Decimal, error) {
	args := m.Called(ctx, sku)
	return args.Get(0).(decimal.Decimal), args.Error(1)
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
