package commands

import (
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

// OrderRef names an order to place on a route and its optional manual position.
type OrderRef struct {
	OrderID  kernel.UUID
	Sequence *int
}

func validateOrderRefs(refs []OrderRef) error {
	if len(refs) == 0 {
		return errs.NewValueIsRequiredError("orders")
	}

	seen := make(map[kernel.UUID]struct{}, len(refs))
	for _, ref := range refs {
		if err := ref.OrderID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("order id", err)
		}
		if _, dup := seen[ref.OrderID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"orders",
				fmt.Errorf("order %s is listed more than once", ref.OrderID),
			)
		}
		seen[ref.OrderID] = struct{}{}

		if ref.Sequence != nil && *ref.Sequence < 1 {
			return errs.NewValueIsOutOfRangeError("sequence", *ref.Sequence, 1, "unbounded")
		}
	}
	return nil
}

func orderRefIDs(refs []OrderRef) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.OrderID)
	}
	return ids
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
