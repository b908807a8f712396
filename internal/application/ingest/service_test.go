package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) QueryAllOrders(ctx context.Context) ([]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockFetcher) QueryOrdersUpdatedSince(ctx context.Context, since time.Time) ([]json.RawMessage, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRawOrder(ctx context.Context, payload []byte) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockSyncState struct {
	mock.Mock
}

func (m *MockSyncState) LastSyncedAt(ctx context.Context, source string) (time.Time, error) {
	args := m.Called(ctx, source)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockSyncState) SetLastSyncedAt(ctx context.Context, source string, t time.Time) error {
	args := m.Called(ctx, source, t)
	return args.Error(0)
}

func newMocks() (*MockFetcher, *MockPublisher, *MockSyncState, *MockLogger) {
	log := new(MockLogger)
	log.On("Info", mock.Anything, mock.Anything).Return().Maybe()
	return new(MockFetcher), new(MockPublisher), new(MockSyncState), log
}

func TestRun_PublishesValidPayloads(t *testing.T) {
	fetcher, publisher, syncState, log := newMocks()
	svc := NewService(fetcher, publisher, syncState, log)
	ctx := context.Background()

	syncState.On("LastSyncedAt", ctx, SyncSource).Return(time.Time{}, nil)
	fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{
		json.RawMessage(`{"id": "1"}`),
		json.RawMessage(`not json`),
		json.RawMessage(`{"id": "2"}`),
	}, nil)
	publisher.On("PublishRawOrder", ctx, mock.Anything).Return(nil)
	syncState.On("SetLastSyncedAt", ctx, SyncSource, mock.Anything).Return(nil)

	count, err := svc.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	publisher.AssertNumberOfCalls(t, "PublishRawOrder", 2)
	syncState.AssertExpectations(t)
}

func TestRun_UsesIncrementalWindowAfterFirstRun(t *testing.T) {
	fetcher, publisher, syncState, log := newMocks()
	svc := NewService(fetcher, publisher, syncState, log)
	ctx := context.Background()

	cursor := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	syncState.On("LastSyncedAt", ctx, SyncSource).Return(cursor, nil)
	fetcher.On("QueryOrdersUpdatedSince", ctx, cursor).Return([]json.RawMessage{
		json.RawMessage(`{"id": "3"}`),
	}, nil)
	publisher.On("PublishRawOrder", ctx, mock.Anything).Return(nil)
	syncState.On("SetLastSyncedAt", ctx, SyncSource, mock.MatchedBy(func(t time.Time) bool {
		return t.After(cursor)
	})).Return(nil)

	count, err := svc.Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	fetcher.AssertNotCalled(t, "QueryAllOrders", mock.Anything)
	syncState.AssertExpectations(t)
}

func TestRun_StopsOnPublishError(t *testing.T) {
	fetcher, publisher, syncState, log := newMocks()
	svc := NewService(fetcher, publisher, syncState, log)
	ctx := context.Background()

	syncState.On("LastSyncedAt", ctx, SyncSource).Return(time.Time{}, nil)
	fetcher.On("QueryAllOrders", ctx).Return([]json.RawMessage{
		json.RawMessage(`{"id": "1"}`),
		json.RawMessage(`{"id": "2"}`),
	}, nil)
	publisher.On("PublishRawOrder", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	count, err := svc.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, 0, count)
	syncState.AssertNotCalled(t, "SetLastSyncedAt", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_FetchError(t *testing.T) {
	fetcher, publisher, syncState, log := newMocks()
	svc := NewService(fetcher, publisher, syncState, log)
	ctx := context.Background()

	syncState.On("LastSyncedAt", ctx, SyncSource).Return(time.Time{}, nil)
	fetcher.On("QueryAllOrders", ctx).Return(nil, errors.New("api unavailable"))

	_, err := svc.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch orders")
	publisher.AssertNotCalled(t, "PublishRawOrder", mock.Anything, mock.Anything)
}
