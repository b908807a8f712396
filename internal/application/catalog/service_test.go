package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
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

func newTestService(t *testing.T) (*Service, *MockProductRepo, *MockStateRepo) {
	t.Helper()
	products := new(MockProductRepo)
	states := new(MockStateRepo)
	return NewService(products, states, new(MockLogger)), products, states
}

func TestProducts(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("List", mock.Anything).Return([]catalog.Product{
		{ProductID: 4, Name: "GT06N Tracker", SKUID: "GT06N", CreatedAt: time.Now()},
	}, nil)

	list, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GT06N", list[0].SKUID)
}

func TestProductDetails(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("Details", mock.Anything, int64(4)).Return(&catalog.ProductDetails{
		ProductID:  4,
		Name:       "GT06N Tracker",
		SKUID:      "GT06N",
		GSTPercent: decimal.NewFromInt(18),
	}, nil)

	d, err := svc.ProductDetails(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, d.GSTPercent.Equal(decimal.NewFromInt(18)))
}

func TestProductDetails_NotFound(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("Details", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.ProductDetails(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLatestSellingPrice(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("LatestSellingPrice", mock.Anything, "GT06N").
		Return(decimal.NewFromFloat(1450.50), nil)

	price, err := svc.LatestSellingPrice(context.Background(), "GT06N")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(1450.50)))

	_, err = svc.LatestSellingPrice(context.Background(), "")
	assert.Error(t, err)
}

func TestProductPrice(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("Get", mock.Anything, int64(4)).
		Return(&catalog.Product{ProductID: 4, SKUID: "GT06N"}, nil)
	products.On("LatestSellingPrice", mock.Anything, "GT06N").
		Return(decimal.NewFromInt(1450), nil)

	price, err := svc.ProductPrice(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1450)))
}

func TestProductPrice_NoSKU(t *testing.T) {
	svc, products, _ := newTestService(t)

	products.On("Get", mock.Anything, int64(5)).
		Return(&catalog.Product{ProductID: 5}, nil)

	price, err := svc.ProductPrice(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestStates(t *testing.T) {
	svc, _, states := newTestService(t)

	states.On("List", mock.Anything).Return([]catalog.State{
		{StateID: 14, Name: "Maharashtra", Abbreviation: "MH"},
	}, nil)

	list, err := svc.States(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MH", list[0].Abbreviation)
}
