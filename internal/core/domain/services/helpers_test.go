package services_test

import (
	"testing"

	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, postalCode string, grams, cents int64) *order.Order {
	t.Helper()
	code, err := kernel.NewPostalCode(postalCode)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), code,
		kernel.WeightFromGrams(grams), kernel.MoneyFromCents(cents), order.Address{})
	require.NoError(t, err)
	return o
}

func newTable(t *testing.T) pricing.Table {
	t.Helper()
	mk := func(from, to string, cents int64) *pricing.Direction {
		f, err := kernel.NewPostalCode(from)
		require.NoError(t, err)
		tt, err := kernel.NewPostalCode(to)
		require.NoError(t, err)
		d, err := pricing.NewDirection(kernel.NewUUID(), kernel.NewUUID(), from, f, tt, kernel.MoneyFromCents(cents))
		require.NoError(t, err)
		return d
	}
	return pricing.NewTable([]*pricing.Direction{
		mk("01000-000", "01999-999", 1000),
		mk("02000-000", "02999-999", 1800),
		mk("03000-000", "03999-999", 500),
	})
}

func newCategory(t *testing.T, cents int64) *fleet.Category {
	t.Helper()
	c, err := fleet.NewCategory(kernel.NewUUID(), kernel.NewUUID(), "Van", kernel.MoneyFromCents(cents))
	require.NoError(t, err)
	return c
}
