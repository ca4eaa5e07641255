package commands

import (
	"context"
	"encoding/json"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/google/uuid"
)

// buildDetail assembles the refreshed detail projection returned by every
// command. Customer and vendor lookups degrade to placeholders on failure:
// the mutation has already committed, so a broken reference must not turn a
// successful write into an error.
func buildDetail(
	ctx context.Context,
	customers ports.CustomerRepository,
	vendors ports.VendorGateway,
	o *order.Order,
) *queries.OrderDetailResponse {
	cust, err := customers.GetByID(ctx, o.CustomerID())
	if err != nil {
		cust = nil
	}

	vendor, err := vendors.GetByID(ctx, o.VendorID())
	if err != nil {
		vendor = nil
	}

	resp := queries.NewOrderDetailResponse(o, cust, vendor)
	return &resp
}

// addOutboxEvent serializes an integration event and stores it as an outbox
// row in the current transaction. eventID and eventType come from the event's
// envelope so the relay can route without parsing the payload.
func addOutboxEvent(ctx context.Context, outbox ports.OutboxRepository, eventID uuid.UUID, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Add(ctx, ports.OutboxMessage{
		ID:        eventID,
		EventType: eventType,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
}
