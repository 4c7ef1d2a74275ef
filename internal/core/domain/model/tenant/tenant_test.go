package tenant_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/tenant"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	minOrders := 3
	minValue := kernel.MoneyFromCents(50000)

	tn, err := tenant.NewTenant(kernel.NewUUID(), " Acme ", tenant.Policy{MinOrders: &minOrders, MinValue: &minValue})

	require.NoError(t, err)
	assert.Equal(t, "Acme", tn.Name())
	assert.Equal(t, 3, *tn.Policy().MinOrders)
	assert.Nil(t, tn.Policy().MaxFreightPercentage)
}

func TestPolicy_Validate(t *testing.T) {
	negative := -1
	pct := -0.5
	weight := kernel.WeightFromGrams(-10)

	err := tenant.Policy{MinOrders: &negative, MaxFreightPercentage: &pct, MinWeight: &weight}.Validate()

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "min orders")
	assert.Contains(t, err.Error(), "max freight percentage")
	assert.Contains(t, err.Error(), "min weight")

	require.NoError(t, tenant.Policy{}.Validate())
}
