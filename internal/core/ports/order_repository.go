package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a freshly imported order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, route assignment, sequence, timestamps and failure info.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when the order does not exist in the tenant.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetManyForUpdate loads the given orders and locks their rows until the
	// transaction ends. Ids that do not exist in the tenant are silently
	// skipped; callers compare the result with the request.
	GetManyForUpdate(ctx context.Context, tenantID kernel.UUID, ids []kernel.UUID) ([]*order.Order, error)

	// GetByDelivery returns the orders on a route ordered by sequence (unset
	// last) and then by id, locking them until the transaction ends.
	GetByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) ([]*order.Order, error)
}
