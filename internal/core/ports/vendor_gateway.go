package ports

import (
	"context"

	"orders/internal/core/domain/model/kernel"
)

// VendorInfo is the vendor snapshot returned by the external vendors service.
type VendorInfo struct {
	ID       kernel.UUID
	Name     string
	Email    string
	IsActive bool
}

// VendorGateway resolves vendor identity and activity status from the
// external vendors service. Vendors are not owned by this service.
type VendorGateway interface {
	// GetByID returns the vendor snapshot, or (nil, nil) when the vendor does
	// not exist. Transport and availability failures return an
	// UnavailableError-classed error, distinct from absence, so callers can
	// decide whether to fail or retry.
	GetByID(ctx context.Context, id kernel.UUID) (*VendorInfo, error)
}
