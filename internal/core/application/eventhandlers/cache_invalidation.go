// Package eventhandlers contains the subscribers this service registers on
// its own integration event feed. Replicas of the order service consume the
// feed to keep their cache coherent with writes committed elsewhere: the
// local write path already invalidates its own cache, so these handlers exist
// for every other instance sharing the cache namespace view.
package eventhandlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"orders/internal/core/application/contracts"
	"orders/internal/core/application/eventbus"
	"orders/internal/core/application/ordercache"
	"orders/internal/core/domain/model/kernel"
)

// CacheInvalidator drops cached projections when an order event arrives.
// Invalidation is idempotent, so the feed's at-least-once delivery needs no
// dedup here.
type CacheInvalidator struct {
	cache  *ordercache.Layer
	logger *slog.Logger
}

// NewCacheInvalidator creates the invalidation subscriber.
func NewCacheInvalidator(cache *ordercache.Layer, logger *slog.Logger) *CacheInvalidator {
	return &CacheInvalidator{
		cache:  cache,
		logger: logger.With("component", "cache_invalidator"),
	}
}

// Register subscribes the invalidation handlers on the registry.
func (ci *CacheInvalidator) Register(registry *eventbus.Registry) {
	registry.Subscribe(contracts.OrderCreatedEventType, ci.HandleOrderCreated)
	registry.Subscribe(contracts.OrderStatusChangedEventType, ci.HandleOrderStatusChanged)
}

// HandleOrderCreated invalidates the summary lists a new order appears in.
func (ci *CacheInvalidator) HandleOrderCreated(ctx context.Context, payload []byte) error {
	var event contracts.OrderCreated
	if err := json.Unmarshal(payload, &event); err != nil {
		// A malformed payload never becomes parseable; drop it instead of
		// letting the feed redeliver forever.
		ci.logger.ErrorContext(ctx, "Dropping malformed OrderCreated payload", "error", err)
		return nil
	}

	customerID, vendorID, err := referenceIDs(event.CustomerID[:], event.VendorID[:])
	if err != nil {
		ci.logger.ErrorContext(ctx, "Dropping OrderCreated with invalid reference IDs",
			"orderId", event.OrderID.String(), "error", err)
		return nil
	}

	return ci.cache.InvalidateSummaries(ctx, customerID, vendorID)
}

// HandleOrderStatusChanged invalidates the order's detail projection and the
// summary lists its status shows up in.
func (ci *CacheInvalidator) HandleOrderStatusChanged(ctx context.Context, payload []byte) error {
	var event contracts.OrderStatusChanged
	if err := json.Unmarshal(payload, &event); err != nil {
		ci.logger.ErrorContext(ctx, "Dropping malformed OrderStatusChanged payload", "error", err)
		return nil
	}

	orderID, err := kernel.UUIDFromBytes(event.OrderID[:])
	if err != nil {
		ci.logger.ErrorContext(ctx, "Dropping OrderStatusChanged with invalid order ID", "error", err)
		return nil
	}
	customerID, vendorID, err := referenceIDs(event.CustomerID[:], event.VendorID[:])
	if err != nil {
		ci.logger.ErrorContext(ctx, "Dropping OrderStatusChanged with invalid reference IDs",
			"orderId", event.OrderID.String(), "error", err)
		return nil
	}

	if err = ci.cache.InvalidateDetail(ctx, orderID); err != nil {
		return err
	}
	return ci.cache.InvalidateSummaries(ctx, customerID, vendorID)
}

func referenceIDs(customer, vendor []byte) (kernel.UUID, kernel.UUID, error) {
	customerID, err := kernel.UUIDFromBytes(customer)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	vendorID, err := kernel.UUIDFromBytes(vendor)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return customerID, vendorID, nil
}
