package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCountDeliveriesByStatusQueryIsNotConstructed = errors.New(
		"CountDeliveriesByStatusQuery must be created via NewCountDeliveriesByStatusQuery constructor",
	)
)

// CountDeliveriesByStatusQuery counts routes per status. Without a tenant it
// counts across all tenants, which is what the backlog gauge reports.
type CountDeliveriesByStatusQuery struct {
	tenantID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCountDeliveriesByStatusQuery(tenantID *kernel.UUID) (CountDeliveriesByStatusQuery, error) {
	if tenantID != nil {
		if err := requireID("tenant id", *tenantID); err != nil {
			return CountDeliveriesByStatusQuery{}, err
		}
	}

	return CountDeliveriesByStatusQuery{tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

func (q CountDeliveriesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountDeliveriesByStatusQueryIsNotConstructed)
}

func (q CountDeliveriesByStatusQuery) TenantID() *kernel.UUID {
	return q.tenantID
}

// StatusCount is the number of routes in one status.
type StatusCount struct {
	Status delivery.Status
	Count  int64
}
