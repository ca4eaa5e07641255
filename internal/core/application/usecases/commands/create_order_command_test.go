package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	customerID := kernel.NewUUID()
	vendorID := kernel.NewUUID()
	items := []commands.OrderItemInput{
		{ProductID: kernel.NewUUID(), ProductName: "Widget", Quantity: 2, UnitPrice: kernel.Zero()},
	}

	t.Run("constructs_valid_command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(customerID, vendorID, "leave at dock", items)
		require.NoError(t, err)

		assert.True(t, cmd.CustomerID().IsEqual(customerID))
		assert.True(t, cmd.VendorID().IsEqual(vendorID))
		assert.Equal(t, "leave at dock", cmd.Notes())
		assert.Len(t, cmd.Items(), 1)
		require.NoError(t, cmd.Validate())
	})

	t.Run("rejects_invalid_references", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewCreateOrderCommand(zero, vendorID, "", items)
		require.Error(t, err)

		_, err = commands.NewCreateOrderCommand(customerID, zero, "", items)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validate", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.Error(t, cmd.Validate())
	})
}
