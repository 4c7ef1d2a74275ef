package services

import (
	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pricing"
)

// FreightCalculator prices a route by the single most expensive region it
// touches plus the base rate of the vehicle category.
//
// Example usage:
//
//	calc := services.NewFreightCalculator()
//	freight := calc.Calculate(orders, pricing.NewTable(directions), category)
type FreightCalculator struct{}

func NewFreightCalculator() FreightCalculator {
	return FreightCalculator{}
}

// Calculate returns max(surcharge of each order) + category base rate.
// A nil category contributes zero, as does an empty order set.
func (FreightCalculator) Calculate(orders []*order.Order, table pricing.Table, category *fleet.Category) kernel.Money {
	var maxSurcharge kernel.Money
	for _, o := range orders {
		if s := table.Resolve(o.PostalCode()); s > maxSurcharge {
			maxSurcharge = s
		}
	}

	if category == nil {
		return maxSurcharge
	}
	return maxSurcharge + category.BaseRate()
}
