package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	tenantID := kernel.NewUUID()
	id := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(tenantID, id, "01310-100",
		kernel.WeightFromGrams(2500), kernel.MoneyFromCents(15990), order.Address{City: "São Paulo"})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, tenantID, cmd.TenantID())
	assert.Equal(t, "01310100", cmd.PostalCode().String())
	assert.Equal(t, kernel.WeightFromGrams(2500), cmd.Weight())
	assert.Equal(t, "São Paulo", cmd.Address().City)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.UUID{}, "01310-100", 0, 0, order.Address{})

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_InvalidPostalCode(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "ABC", 0, 0, order.Address{})

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCreateOrderCommand_NegativeAmounts(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), "01310-100", -1, -1, order.Address{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrWeightIsInvalid)
	assert.ErrorIs(t, err, commands.ErrOrderValueIsInvalid)
}

func TestCreateOrderCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CreateOrderCommand

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
