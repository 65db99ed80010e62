package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"refnet-client/internal/order"
)

// --- Mocks ---

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckUser(ctx context.Context, email string) (order.Customer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(order.Customer), args.Error(1)
}

func (m *MockService) CustomerOrders(ctx context.Context, userID uint) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockService) RequestedServices(ctx context.Context, userID uint) ([]order.ServiceRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.ServiceRequest), args.Error(1)
}

func (m *MockService) SubmitFeedback(ctx context.Context, fb order.Feedback) (FeedbackResult, error) {
	args := m.Called(ctx, fb)
	return args.Get(0).(FeedbackResult), args.Error(1)
}

func (m *MockService) Orders(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockService) Drivers(ctx context.Context) ([]order.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Driver), args.Error(1)
}

func (m *MockService) AssignDriver(ctx context.Context, orderID string, driverID uint) error {
	args := m.Called(ctx, orderID, driverID)
	return args.Error(0)
}

// fakeStore is an in-memory Store standing in for redis.
type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return data, nil
}

func (s *fakeStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	s.data[key] = data
	return nil
}

func (s *fakeStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// --- Tests ---

func TestCached_Orders(t *testing.T) {
	ctx := context.Background()
	orders := []order.Order{{OrderID: "ORD002", PaymentStatus: order.PaymentCompleted}}

	t.Run("MissThenHit", func(t *testing.T) {
		svc := new(MockService)
		store := newFakeStore()
		cached := NewCached(svc, store)

		svc.On("Orders", ctx).Return(orders, nil).Once()

		got, err := cached.Orders(ctx)
		require.NoError(t, err)
		assert.Equal(t, orders, got)

		// Second read must come from the store, not the backend.
		got, err = cached.Orders(ctx)
		require.NoError(t, err)
		assert.Equal(t, orders, got)

		svc.AssertExpectations(t)
	})

	t.Run("BackendError", func(t *testing.T) {
		svc := new(MockService)
		cached := NewCached(svc, newFakeStore())

		svc.On("Orders", ctx).Return(nil, errors.New("backend down"))

		_, err := cached.Orders(ctx)
		assert.Error(t, err)
	})

	t.Run("CorruptEntryFallsThrough", func(t *testing.T) {
		svc := new(MockService)
		store := newFakeStore()
		store.data[ordersCacheKey] = []byte("{not json")
		cached := NewCached(svc, store)

		svc.On("Orders", ctx).Return(orders, nil).Once()

		got, err := cached.Orders(ctx)
		require.NoError(t, err)
		assert.Equal(t, orders, got)
		svc.AssertExpectations(t)
	})
}

func TestCached_Drivers(t *testing.T) {
	ctx := context.Background()
	drivers := []order.Driver{{ID: 1, FullName: "Driver A"}}

	svc := new(MockService)
	store := newFakeStore()
	cached := NewCached(svc, store)

	svc.On("Drivers", ctx).Return(drivers, nil).Once()

	got, err := cached.Drivers(ctx)
	require.NoError(t, err)
	assert.Equal(t, drivers, got)

	got, err = cached.Drivers(ctx)
	require.NoError(t, err)
	assert.Equal(t, drivers, got)

	svc.AssertExpectations(t)
}

func TestCached_AssignDriverInvalidates(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessDropsOrders", func(t *testing.T) {
		svc := new(MockService)
		store := newFakeStore()
		store.data[ordersCacheKey] = []byte(`[]`)
		store.data[driversCacheKey] = []byte(`[]`)
		cached := NewCached(svc, store)

		svc.On("AssignDriver", ctx, "ORD002", uint(2)).Return(nil)

		require.NoError(t, cached.AssignDriver(ctx, "ORD002", 2))

		_, ordersCachedStill := store.data[ordersCacheKey]
		_, driversCachedStill := store.data[driversCacheKey]
		assert.False(t, ordersCachedStill)
		assert.True(t, driversCachedStill)
	})

	t.Run("FailureKeepsCache", func(t *testing.T) {
		svc := new(MockService)
		store := newFakeStore()
		store.data[ordersCacheKey] = []byte(`[]`)
		cached := NewCached(svc, store)

		svc.On("AssignDriver", ctx, "ORD002", uint(2)).Return(errors.New("conflict"))

		assert.Error(t, cached.AssignDriver(ctx, "ORD002", 2))
		_, still := store.data[ordersCacheKey]
		assert.True(t, still)
	})
}
