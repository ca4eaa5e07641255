package contracts_test

import (
	"encoding/json"
	"testing"

	"orders/internal/core/application/contracts"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildConfirmedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "")
	require.NoError(t, err)

	price, err := kernel.NewMoneyFromString("12.50")
	require.NoError(t, err)
	_, err = o.AddItem(kernel.NewUUID(), "Widget", 2, price)
	require.NoError(t, err)
	return o
}

func TestNewOrderCreated(t *testing.T) {
	o := buildConfirmedOrder(t)

	evt := contracts.NewOrderCreated(o)

	assert.Equal(t, contracts.OrderCreatedEventType, evt.EventType)
	assert.NotEqual(t, uuid.Nil, evt.EventID)
	assert.False(t, evt.OccurredAt.IsZero())
	assert.Equal(t, o.ID().Bytes(), evt.OrderID)
	assert.Equal(t, o.OrderNumber(), evt.OrderNumber)
	assert.Equal(t, "25", evt.TotalAmount.String())
	assert.Equal(t, 1, evt.ItemCount)
}

func TestNewOrderStatusChanged(t *testing.T) {
	o := buildConfirmedOrder(t)
	previous := o.Status()
	require.NoError(t, o.Confirm())

	evt := contracts.NewOrderStatusChanged(o, previous)

	assert.Equal(t, contracts.OrderStatusChangedEventType, evt.EventType)
	assert.Equal(t, "Pending", evt.PreviousStatus)
	assert.Equal(t, "Confirmed", evt.NewStatus)
	assert.Equal(t, o.ID().Bytes(), evt.OrderID)
	assert.Equal(t, o.CustomerID().Bytes(), evt.CustomerID)
	assert.Equal(t, o.VendorID().Bytes(), evt.VendorID)
}

func TestEventEnvelope_JSONDiscriminator(t *testing.T) {
	o := buildConfirmedOrder(t)
	evt := contracts.NewOrderCreated(o)

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var envelope contracts.IntegrationEvent
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, contracts.OrderCreatedEventType, envelope.EventType)
	assert.Equal(t, evt.EventID, envelope.EventID)
}
