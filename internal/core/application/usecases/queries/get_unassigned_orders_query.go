package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
		"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
	)
)

// GetUnassignedOrdersQuery retrieves the orders of a tenant that sit on no route,
// the pool a dispatcher builds new routes from.
//
// Example:
//
//	query, err := NewGetUnassignedOrdersQuery(tenantID)
//	if err != nil {
//	    return err
//	}
//	backlog, err := NewGetUnassignedOrdersQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get unassigned orders: %w", err)
//	}
//	fmt.Printf("%d orders waiting for a route\n", len(backlog))
type GetUnassignedOrdersQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query scoped to one tenant.
func NewGetUnassignedOrdersQuery(tenantID kernel.UUID) (GetUnassignedOrdersQuery, error) {
	if err := requireID("tenant id", tenantID); err != nil {
		return GetUnassignedOrdersQuery{}, err
	}

	return GetUnassignedOrdersQuery{tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignedOrdersQueryIsNotConstructed if validation fails.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

func (q GetUnassignedOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}
