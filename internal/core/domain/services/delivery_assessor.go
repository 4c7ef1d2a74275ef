package services

import (
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/pricing"
	"lastmile/internal/core/domain/model/tenant"
)

// Assessment is everything a route caches about its order set.
type Assessment struct {
	Totals   delivery.Totals
	Freight  kernel.Money
	Decision Decision
}

// DeliveryAssessor runs the freight calculator and the approval policy over a
// candidate order set. Handlers call it on create and after every change to
// the composition or assignment of an open route.
type DeliveryAssessor struct {
	freight FreightCalculator
	policy  ApprovalPolicy
}

func NewDeliveryAssessor() DeliveryAssessor {
	return DeliveryAssessor{
		freight: NewFreightCalculator(),
		policy:  NewApprovalPolicy(),
	}
}

func (a DeliveryAssessor) Assess(
	orders []*order.Order,
	table pricing.Table,
	category *fleet.Category,
	policy tenant.Policy,
) Assessment {
	totals := SumTotals(orders)
	freight := a.freight.Calculate(orders, table, category)

	return Assessment{
		Totals:   totals,
		Freight:  freight,
		Decision: a.policy.Evaluate(policy, totals, freight),
	}
}

// SumTotals adds up the weight, value and count of orders.
func SumTotals(orders []*order.Order) delivery.Totals {
	var totals delivery.Totals
	for _, o := range orders {
		totals.Weight += o.Weight()
		totals.Value += o.Value()
	}
	totals.OrderCount = len(orders)
	return totals
}
