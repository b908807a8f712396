package wixsync

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farrdeeen/FastOrderLogic/internal/domain/catalog"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/customer"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/order"
	"github.com/farrdeeen/FastOrderLogic/internal/domain/repository"
)

// matchingAddress mirrors the shipping address in paidOrderJSON.
func matchingAddress() *customer.Address {
	return &customer.Address{
		AddressID:   55,
		Mobile:      "919876543210",
		Pincode:     "411001",
		AddressLine: "12 MG Road",
		City:        "Pune",
	}
}

func TestRecover_ReportsMissingOrders(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	remote := []json.RawMessage{
		json.RawMessage(`{"id": "uuid-1", "number": "10042"}`),
		json.RawMessage(`{"id": "uuid-2", "number": "10043"}`),
		json.RawMessage(`{"id": "uuid-3", "number": "10044"}`),
	}
	m.fetcher.On("QueryAllOrders", ctx).Return(remote, nil)
	m.orders.On("ListIDs", ctx).Return([]string{"10042", "0926531403"}, nil)

	result, err := svc.Recover(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, result.RemoteCount)
	assert.Equal(t, 2, result.LocalCount)
	assert.Equal(t, 2, result.MissingCount)
	assert.Equal(t, []string{"10043", "10044"}, result.MissingIDs)
	assert.Len(t, result.Samples, 2)
}

func TestReconcile_DetectsDriftReadOnly(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.products.On("FindBySKU", ctx, "GT06N").Return(&catalog.Product{ProductID: 3}, nil)

	stored := &order.Order{
		OrderID:       "10042",
		AddressID:     55,
		TotalItems:    2,
		Subtotal:      decimal.NewFromInt(2900),
		TotalAmount:   decimal.NewFromInt(2900),
		PaymentStatus: order.PaymentPending,
		Items: []order.Item{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(1450)},
		},
	}
	m.orders.On("Get", ctx, "10042").Return(stored, nil)
	m.addresses.On("Get", ctx, int64(55)).Return(matchingAddress(), nil)

	result, err := svc.Reconcile(ctx, false)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	require.Len(t, result.Drifted, 1)
	assert.ElementsMatch(t,
		[]string{"subtotal", "total_amount", "payment_status", "items"},
		result.Drifted[0].Fields)
	assert.False(t, result.Drifted[0].Fixed)
	assert.Equal(t, 0, result.Fixed)
	m.orders.AssertNotCalled(t, "ReplaceItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_FixPatchesDriftedOrder(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.products.On("FindBySKU", ctx, "GT06N").Return(&catalog.Product{ProductID: 3}, nil)

	stored := &order.Order{
		OrderID:       "10042",
		AddressID:     55,
		TotalItems:    1,
		Subtotal:      decimal.NewFromInt(1500),
		TotalAmount:   decimal.NewFromInt(1500),
		PaymentStatus: order.PaymentPaid,
		Items: []order.Item{
			{Quantity: 1, UnitPrice: decimal.NewFromInt(1500)},
		},
	}
	m.orders.On("Get", ctx, "10042").Return(stored, nil)
	m.addresses.On("Get", ctx, int64(55)).Return(matchingAddress(), nil)
	m.orders.On("ReplaceItems", ctx, "10042", mock.Anything).Return(nil)
	m.orders.On("UpdateTotals", ctx, "10042", 2,
		mock.Anything, mock.Anything, order.PaymentPaid, mock.Anything).Return(nil)

	result, err := svc.Reconcile(ctx, true)

	require.NoError(t, err)
	require.Len(t, result.Drifted, 1)
	assert.True(t, result.Drifted[0].Fixed)
	assert.Equal(t, 1, result.Fixed)
	m.orders.AssertExpectations(t)
}

func TestReconcile_InSyncOrderHasNoDrift(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.products.On("FindBySKU", ctx, "GT06N").Return(&catalog.Product{ProductID: 3}, nil)

	stored := &order.Order{
		OrderID:       "10042",
		AddressID:     55,
		TotalItems:    2,
		Subtotal:      decimal.NewFromInt(3000),
		TotalAmount:   decimal.NewFromInt(3000),
		PaymentStatus: order.PaymentPaid,
		Items: []order.Item{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
	}
	m.orders.On("Get", ctx, "10042").Return(stored, nil)
	m.addresses.On("Get", ctx, int64(55)).Return(matchingAddress(), nil)

	result, err := svc.Reconcile(ctx, true)

	require.NoError(t, err)
	assert.Empty(t, result.Drifted)
	assert.Equal(t, 0, result.Fixed)
}

func TestReconcile_DetectsAddressDrift(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.products.On("FindBySKU", ctx, "GT06N").Return(&catalog.Product{ProductID: 3}, nil)

	// Totals, payment and items all match; only the shipping address
	// moved on the remote order.
	stored := &order.Order{
		OrderID:       "10042",
		AddressID:     55,
		TotalItems:    2,
		Subtotal:      decimal.NewFromInt(3000),
		TotalAmount:   decimal.NewFromInt(3000),
		PaymentStatus: order.PaymentPaid,
		Items: []order.Item{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
	}
	m.orders.On("Get", ctx, "10042").Return(stored, nil)
	old := matchingAddress()
	old.AddressLine = "8 FC Road"
	old.Pincode = "411004"
	m.addresses.On("Get", ctx, int64(55)).Return(old, nil)

	result, err := svc.Reconcile(ctx, false)

	require.NoError(t, err)
	require.Len(t, result.Drifted, 1)
	assert.Equal(t, []string{"address"}, result.Drifted[0].Fields)
	assert.False(t, result.Drifted[0].Fixed)
	m.addresses.AssertNotCalled(t, "UpdateContact",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_FixPatchesAddressDrift(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.products.On("FindBySKU", ctx, "GT06N").Return(&catalog.Product{ProductID: 3}, nil)

	stored := &order.Order{
		OrderID:       "10042",
		AddressID:     55,
		TotalItems:    2,
		Subtotal:      decimal.NewFromInt(3000),
		TotalAmount:   decimal.NewFromInt(3000),
		PaymentStatus: order.PaymentPaid,
		Items: []order.Item{
			{Quantity: 2, UnitPrice: decimal.NewFromInt(1500)},
		},
	}
	m.orders.On("Get", ctx, "10042").Return(stored, nil)
	old := matchingAddress()
	old.AddressLine = "8 FC Road"
	m.addresses.On("Get", ctx, int64(55)).Return(old, nil)
	m.orders.On("ReplaceItems", ctx, "10042", mock.Anything).Return(nil)
	m.orders.On("UpdateTotals", ctx, "10042", 2,
		mock.Anything, mock.Anything, order.PaymentPaid, mock.Anything).Return(nil)
	m.addresses.On("UpdateContact", ctx, int64(55),
		"Asha Patil", "919876543210", "411001", "12 MG Road", "Pune").Return(nil)

	result, err := svc.Reconcile(ctx, true)

	require.NoError(t, err)
	require.Len(t, result.Drifted, 1)
	assert.True(t, result.Drifted[0].Fixed)
	assert.Equal(t, 1, result.Fixed)
	m.addresses.AssertExpectations(t)
}

func TestReconcile_SkipsRemoteOnlyOrders(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{json.RawMessage(paidOrderJSON)}, nil)
	m.orders.On("Get", ctx, "10042").Return(nil, repository.ErrNotFound)

	result, err := svc.Reconcile(ctx, true)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Checked)
	assert.Empty(t, result.Drifted)
}
