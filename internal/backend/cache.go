package backend

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"refnet-client/internal/logger"
	"refnet-client/internal/order"
)

const (
	ordersCacheKey  = "dispatch:orders"
	driversCacheKey = "dispatch:drivers"
	cacheTTL        = 30 * time.Second
)

// Store is the small slice of a cache the decorator needs. Implemented by
// RedisStore in production and by in-memory fakes in tests.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.rdb.Get(ctx, key).Bytes()
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Cached is a read-through decorator over the dispatcher's list reads.
// Orders and Drivers are served from the store while fresh; AssignDriver
// drops the orders entry so the next read reflects the assignment.
// Cache failures are logged and fall through to the backend.
type Cached struct {
	Service
	store Store
}

func NewCached(svc Service, store Store) *Cached {
	return &Cached{Service: svc, store: store}
}

func (c *Cached) Orders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if c.lookup(ctx, ordersCacheKey, &orders) {
		return orders, nil
	}

	orders, err := c.Service.Orders(ctx)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, ordersCacheKey, orders)
	return orders, nil
}

func (c *Cached) Drivers(ctx context.Context) ([]order.Driver, error) {
	var drivers []order.Driver
	if c.lookup(ctx, driversCacheKey, &drivers) {
		return drivers, nil
	}

	drivers, err := c.Service.Drivers(ctx)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, driversCacheKey, drivers)
	return drivers, nil
}

func (c *Cached) AssignDriver(ctx context.Context, orderID string, driverID uint) error {
	if err := c.Service.AssignDriver(ctx, orderID, driverID); err != nil {
		return err
	}

	if err := c.store.Del(ctx, ordersCacheKey); err != nil {
		logger.FromCtx(ctx).Warn("failed to invalidate orders cache", zap.Error(err))
	}

	return nil
}

func (c *Cached) lookup(ctx context.Context, key string, out interface{}) bool {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.FromCtx(ctx).Warn("discarding corrupt cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}

	return true
}

func (c *Cached) fill(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.store.Set(ctx, key, data, cacheTTL); err != nil {
		logger.FromCtx(ctx).Warn("failed to fill cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
