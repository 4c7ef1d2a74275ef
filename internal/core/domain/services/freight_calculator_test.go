package services_test

import (
	"testing"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestFreightCalculator_Calculate(t *testing.T) {
	calc := services.NewFreightCalculator()
	table := newTable(t)
	van := newCategory(t, 8000)

	t.Run("should use the most expensive region plus base rate", func(t *testing.T) {
		orders := []*order.Order{
			newOrder(t, "01310-100", 1000, 1000),
			newOrder(t, "02100-000", 1000, 1000),
			newOrder(t, "03100-000", 1000, 1000),
		}

		assert.Equal(t, kernel.MoneyFromCents(1800+8000), calc.Calculate(orders, table, van))
	})

	t.Run("should treat missing category as zero", func(t *testing.T) {
		orders := []*order.Order{newOrder(t, "01310-100", 1000, 1000)}

		assert.Equal(t, kernel.MoneyFromCents(1000), calc.Calculate(orders, table, nil))
	})

	t.Run("should price unmatched regions at zero", func(t *testing.T) {
		orders := []*order.Order{newOrder(t, "99999-999", 1000, 1000)}

		assert.Equal(t, kernel.MoneyFromCents(8000), calc.Calculate(orders, table, van))
		assert.Equal(t, kernel.Money(0), calc.Calculate(nil, table, nil))
	})
}

func TestFreightCalculator_Monotonicity(t *testing.T) {
	calc := services.NewFreightCalculator()
	table := newTable(t)
	van := newCategory(t, 8000)

	orders := []*order.Order{newOrder(t, "01310-100", 1000, 1000)}
	base := calc.Calculate(orders, table, van)

	t.Run("cheaper region leaves freight unchanged", func(t *testing.T) {
		withCheaper := append(append([]*order.Order{}, orders...), newOrder(t, "03500-000", 1000, 1000))

		assert.Equal(t, base, calc.Calculate(withCheaper, table, van))
	})

	t.Run("pricier region adds exactly the difference", func(t *testing.T) {
		withPricier := append(append([]*order.Order{}, orders...), newOrder(t, "02500-000", 1000, 1000))

		assert.Equal(t, base+kernel.MoneyFromCents(1800-1000), calc.Calculate(withPricier, table, van))
	})
}
