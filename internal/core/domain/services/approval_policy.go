package services

import (
	"fmt"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/tenant"
)

// Decision is the outcome of an approval evaluation. Reasons holds one
// human-readable entry per violated threshold, in a fixed rule order.
type Decision struct {
	NeedsApproval bool
	Reasons       []string
}

// ApprovalPolicy decides whether a route must wait for a manager.
//
// Rules, each enforced only when the tenant configured it:
//   - freight above MaxFreightPercentage of the total value (skipped when the value is zero)
//   - total value below MinValue
//   - total weight below MinWeight
//   - order count below MinOrders
type ApprovalPolicy struct{}

func NewApprovalPolicy() ApprovalPolicy {
	return ApprovalPolicy{}
}

func (ApprovalPolicy) Evaluate(policy tenant.Policy, totals delivery.Totals, freight kernel.Money) Decision {
	reasons := make([]string, 0, 4)

	if policy.MaxFreightPercentage != nil && totals.Value > 0 {
		pct := freight.PercentageOf(totals.Value)
		if pct > *policy.MaxFreightPercentage {
			reasons = append(reasons, fmt.Sprintf(
				"freight is %.2f%% of the route value, above the maximum of %.2f%%",
				pct, *policy.MaxFreightPercentage))
		}
	}
	if policy.MinValue != nil && totals.Value < *policy.MinValue {
		reasons = append(reasons, fmt.Sprintf(
			"route value %s is below the minimum of %s", totals.Value, *policy.MinValue))
	}
	if policy.MinWeight != nil && totals.Weight < *policy.MinWeight {
		reasons = append(reasons, fmt.Sprintf(
			"route weight %s is below the minimum of %s", totals.Weight, *policy.MinWeight))
	}
	if policy.MinOrders != nil && totals.OrderCount < *policy.MinOrders {
		reasons = append(reasons, fmt.Sprintf(
			"route has %d orders, below the minimum of %d", totals.OrderCount, *policy.MinOrders))
	}

	return Decision{
		NeedsApproval: len(reasons) > 0,
		Reasons:       reasons,
	}
}
