// Package ports defines the repository interfaces the delivery lifecycle
// handlers depend on. Every method is tenant scoped: an entity of another
// tenant is reported as not found.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for route aggregates.
type DeliveryRepository interface {
	// Add persists a new route. A second open route for the same driver is
	// rejected by the store and surfaced as errs.ConflictError.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists status, assignment, note and cached aggregates.
	// A driver reassignment that would give the driver two open routes is
	// surfaced as errs.ConflictError.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Delete removes the route row. Orders, ledger entries and payment links
	// must have been detached or deleted first.
	Delete(ctx context.Context, aggregate *delivery.Delivery) error

	// Get returns errs.ObjectNotFoundError when the route does not exist in the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error)

	// LockDriver serializes route assignment for one driver until the
	// surrounding transaction ends.
	LockDriver(ctx context.Context, tenantID, driverID kernel.UUID) error

	// HasOpenForDriver reports whether the driver already has a route awaiting
	// approval or active, ignoring the route excludeID when it is not nil.
	HasOpenForDriver(ctx context.Context, tenantID, driverID kernel.UUID, excludeID *kernel.UUID) (bool, error)
}
