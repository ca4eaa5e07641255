// Package contracts defines the integration events this service publishes.
// An integration event is an immutable fact about a committed state change,
// delivered to other services through the message feed. Delivery is
// at-least-once and unordered: consumers must tolerate duplicates and must
// not assume events for the same order arrive in commit order.
package contracts

import (
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type discriminators. They double as routing keys on the feed.
const (
	OrderCreatedEventType       = "OrderCreated"
	OrderStatusChangedEventType = "OrderStatusChanged"
)

// IntegrationEvent is the envelope embedded in every published event.
// EventType is the discriminator consumers dispatch on.
type IntegrationEvent struct {
	EventID    uuid.UUID `json:"eventId"`
	OccurredAt time.Time `json:"occurredAt"`
	EventType  string    `json:"eventType"`
}

func newIntegrationEvent(eventType string) IntegrationEvent {
	return IntegrationEvent{
		EventID:    uuid.New(),
		OccurredAt: time.Now().UTC(),
		EventType:  eventType,
	}
}

// OrderCreated announces a newly committed order.
type OrderCreated struct {
	IntegrationEvent

	OrderID     uuid.UUID       `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	CustomerID  uuid.UUID       `json:"customerId"`
	VendorID    uuid.UUID       `json:"vendorId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
}

// NewOrderCreated builds the event from a freshly persisted order.
func NewOrderCreated(o *order.Order) OrderCreated {
	return OrderCreated{
		IntegrationEvent: newIntegrationEvent(OrderCreatedEventType),
		OrderID:          o.ID().Bytes(),
		OrderNumber:      o.OrderNumber(),
		CustomerID:       o.CustomerID().Bytes(),
		VendorID:         o.VendorID().Bytes(),
		TotalAmount:      o.TotalAmount().Decimal(),
		ItemCount:        o.ItemCount(),
	}
}

// OrderStatusChanged announces a committed status transition.
type OrderStatusChanged struct {
	IntegrationEvent

	OrderID        uuid.UUID `json:"orderId"`
	OrderNumber    string    `json:"orderNumber"`
	CustomerID     uuid.UUID `json:"customerId"`
	VendorID       uuid.UUID `json:"vendorId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
}

// NewOrderStatusChanged builds the event from a persisted order and the
// status it held before the transition.
func NewOrderStatusChanged(o *order.Order, previous order.Status) OrderStatusChanged {
	return OrderStatusChanged{
		IntegrationEvent: newIntegrationEvent(OrderStatusChangedEventType),
		OrderID:          o.ID().Bytes(),
		OrderNumber:      o.OrderNumber(),
		CustomerID:       o.CustomerID().Bytes(),
		VendorID:         o.VendorID().Bytes(),
		PreviousStatus:   previous.String(),
		NewStatus:        o.Status().String(),
	}
}
