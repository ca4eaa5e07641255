package eventhandlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"orders/internal/core/application/contracts"
	"orders/internal/core/application/eventbus"
	"orders/internal/core/application/eventhandlers"
	"orders/internal/core/application/ordercache"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) error {
	raw, ok := c.data[key]
	if !ok {
		return ports.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *memCache) Remove(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *memCache) TimeToLive(_ context.Context, _ string) (*time.Duration, error) {
	return nil, nil
}

func (c *memCache) HashGet(_ context.Context, _, _ string, _ any) error {
	return ports.ErrCacheMiss
}

func (c *memCache) HashSet(_ context.Context, _, _ string, _ any, _ time.Duration) error {
	return nil
}

func (c *memCache) HashRemove(_ context.Context, _, _ string) error {
	return nil
}

func (c *memCache) Flush(_ context.Context) error {
	c.data = make(map[string][]byte)
	return nil
}

func (c *memCache) Size(_ context.Context) (int64, error) {
	return int64(len(c.data)), nil
}

type fixture struct {
	cache    *memCache
	registry *eventbus.Registry
}

func newFixture() fixture {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := newMemCache()
	layer := ordercache.NewLayer(cache, logger)
	registry := eventbus.NewRegistry(logger)
	eventhandlers.NewCacheInvalidator(layer, logger).Register(registry)
	return fixture{cache: cache, registry: registry}
}

func (f fixture) seed(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, f.cache.Set(context.Background(), key, "stale", 0))
	}
}

func (f fixture) has(t *testing.T, key string) bool {
	t.Helper()
	ok, err := f.cache.Exists(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func marshal(t *testing.T, event any) []byte {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}

func TestCacheInvalidator_OrderCreated_DropsSummaryKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	otherCustomerID := kernel.NewUUID()
	f.seed(t,
		ordercache.CustomerSummaryKey(customerID),
		ordercache.VendorSummaryKey(vendorID),
		ordercache.AllSummaryKey(),
		ordercache.CustomerSummaryKey(otherCustomerID),
	)

	event := contracts.OrderCreated{
		OrderID:    uuid.New(),
		CustomerID: customerID.Bytes(),
		VendorID:   vendorID.Bytes(),
	}
	event.EventType = contracts.OrderCreatedEventType

	err := f.registry.Dispatch(ctx, contracts.OrderCreatedEventType, marshal(t, event))
	require.NoError(t, err)

	assert.False(t, f.has(t, ordercache.CustomerSummaryKey(customerID)))
	assert.False(t, f.has(t, ordercache.VendorSummaryKey(vendorID)))
	assert.False(t, f.has(t, ordercache.AllSummaryKey()))
	assert.True(t, f.has(t, ordercache.CustomerSummaryKey(otherCustomerID)))
}

func TestCacheInvalidator_OrderStatusChanged_DropsDetailAndSummaryKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	orderID := kernel.NewUUID()
	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()
	f.seed(t,
		ordercache.DetailKey(orderID),
		ordercache.DetailKey(otherOrderID),
		ordercache.CustomerSummaryKey(customerID),
		ordercache.VendorSummaryKey(vendorID),
		ordercache.AllSummaryKey(),
	)

	event := contracts.OrderStatusChanged{
		OrderID:        orderID.Bytes(),
		CustomerID:     customerID.Bytes(),
		VendorID:       vendorID.Bytes(),
		PreviousStatus: "Pending",
		NewStatus:      "Confirmed",
	}
	event.EventType = contracts.OrderStatusChangedEventType

	err := f.registry.Dispatch(ctx, contracts.OrderStatusChangedEventType, marshal(t, event))
	require.NoError(t, err)

	assert.False(t, f.has(t, ordercache.DetailKey(orderID)))
	assert.False(t, f.has(t, ordercache.CustomerSummaryKey(customerID)))
	assert.False(t, f.has(t, ordercache.VendorSummaryKey(vendorID)))
	assert.False(t, f.has(t, ordercache.AllSummaryKey()))
	assert.True(t, f.has(t, ordercache.DetailKey(otherOrderID)))
}

func TestCacheInvalidator_MalformedPayload_IsDroppedWithoutError(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, ordercache.AllSummaryKey())

	err := f.registry.Dispatch(ctx, contracts.OrderCreatedEventType, []byte("{not json"))
	require.NoError(t, err)
	assert.True(t, f.has(t, ordercache.AllSummaryKey()))

	err = f.registry.Dispatch(ctx, contracts.OrderStatusChangedEventType, []byte("{not json"))
	require.NoError(t, err)
	assert.True(t, f.has(t, ordercache.AllSummaryKey()))
}

func TestCacheInvalidator_ZeroReferenceIDs_AreDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.seed(t, ordercache.AllSummaryKey())

	event := contracts.OrderCreated{OrderID: uuid.New()}
	event.EventType = contracts.OrderCreatedEventType

	err := f.registry.Dispatch(ctx, contracts.OrderCreatedEventType, marshal(t, event))
	require.NoError(t, err)
	assert.True(t, f.has(t, ordercache.AllSummaryKey()))
}
