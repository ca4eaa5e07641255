// Package ordercache is the cache-consistency layer between the read/write
// path and the raw cache. It owns the key scheme, the per-projection TTLs,
// and the invalidation contract.
//
// Consistency contract: every mutation invalidates the affected order's
// detail key plus the three base summary keys (customer, vendor, all) — not
// every parameterized page/filter combination. A list cached under a
// non-default key can therefore stay stale until its own TTL expires:
// summary results are stale by at most SummaryTTL relative to the last write
// on the same filter; detail results are never stale past the write's own
// invalidation.
//
// Reads fail open: a cache error is treated as a miss so the store remains
// reachable when the cache is down. Writes and removals fail closed: a
// dropped invalidation could leave a key stale for an unbounded time, so
// those errors surface to the caller as UnavailableError.
package ordercache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// Projection TTLs. Details live longer than summaries because a detail key
// is invalidated exactly on every write to its order, while summaries rely
// on the bounded-staleness contract above.
const (
	DetailTTL  = 10 * time.Minute
	SummaryTTL = 5 * time.Minute
)

// Layer wraps a ports.Cache with the order key scheme and TTL policy.
type Layer struct {
	cache  ports.Cache
	logger *slog.Logger
}

// NewLayer creates the cache-consistency layer over a raw cache.
func NewLayer(cache ports.Cache, logger *slog.Logger) *Layer {
	return &Layer{
		cache:  cache,
		logger: logger.With("component", "ordercache"),
	}
}

// GetDetail probes the detail projection for an order, reading into dest.
// Returns false on miss. Cache failures are logged and reported as misses.
func (l *Layer) GetDetail(ctx context.Context, orderID kernel.UUID, dest any) bool {
	return l.get(ctx, DetailKey(orderID), dest)
}

// SetDetail caches the detail projection for an order with DetailTTL.
func (l *Layer) SetDetail(ctx context.Context, orderID kernel.UUID, value any) error {
	if err := l.cache.Set(ctx, DetailKey(orderID), value, DetailTTL); err != nil {
		return errs.NewUnavailableError("cache", err)
	}
	return nil
}

// GetSummaries probes a summary list under its parameterized key, reading
// into dest. Returns false on miss. Cache failures are logged and reported
// as misses.
func (l *Layer) GetSummaries(ctx context.Context, key string, dest any) bool {
	return l.get(ctx, key, dest)
}

// SetSummaries caches a summary list under its parameterized key with SummaryTTL.
func (l *Layer) SetSummaries(ctx context.Context, key string, value any) error {
	if err := l.cache.Set(ctx, key, value, SummaryTTL); err != nil {
		return errs.NewUnavailableError("cache", err)
	}
	return nil
}

// InvalidateDetail removes the detail key for one order.
func (l *Layer) InvalidateDetail(ctx context.Context, orderID kernel.UUID) error {
	if err := l.cache.Remove(ctx, DetailKey(orderID)); err != nil {
		return errs.NewUnavailableError("cache", err)
	}
	return nil
}

// InvalidateSummaries removes the three base summary keys affected by a
// write against the given customer and vendor. Parameterized list keys are
// left to expire under SummaryTTL.
func (l *Layer) InvalidateSummaries(ctx context.Context, customerID, vendorID kernel.UUID) error {
	for _, key := range []string{
		CustomerSummaryKey(customerID),
		VendorSummaryKey(vendorID),
		AllSummaryKey(),
	} {
		if err := l.cache.Remove(ctx, key); err != nil {
			return errs.NewUnavailableError("cache", err)
		}
	}
	return nil
}

func (l *Layer) get(ctx context.Context, key string, dest any) bool {
	err := l.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		l.logger.WarnContext(ctx, "Cache read failed, treating as miss", "key", key, "error", err)
	}
	return false
}
