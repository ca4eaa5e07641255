// Package vendorapi resolves vendors from the external vendors service over
// HTTP. Absence (404) and unavailability are distinct outcomes: commands need
// to refuse a missing vendor but may want to retry a down service.
package vendorapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// vendorResponse mirrors the vendors service wire format.
type vendorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

// Gateway implements the VendorGateway port against the vendors service
// REST API.
type Gateway struct {
	client  *http.Client
	baseURL string
}

// NewGateway creates a gateway for the vendors service at baseURL.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
	}
}

// GetByID returns the vendor snapshot, or (nil, nil) when the vendor does
// not exist.
func (g *Gateway) GetByID(ctx context.Context, id kernel.UUID) (*ports.VendorInfo, error) {
	url := fmt.Sprintf("%s/api/vendors/%s", g.baseURL, id.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.NewUnavailableError("vendors service", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errs.NewUnavailableError("vendors service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload vendorResponse
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.NewUnavailableError("vendors service", err)
	}

	vendorID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return nil, errs.NewUnavailableError("vendors service", err)
	}

	return &ports.VendorInfo{
		ID:       vendorID,
		Name:     payload.Name,
		Email:    payload.Email,
		IsActive: payload.IsActive,
	}, nil
}
