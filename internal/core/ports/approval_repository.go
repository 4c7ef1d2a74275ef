package ports

import (
	"context"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/kernel"
)

// ApprovalLedger is the append-only store of route decisions.
type ApprovalLedger interface {
	Append(ctx context.Context, entry *approval.Entry) error

	// ListByDelivery returns the entries of a route, newest first.
	ListByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) ([]*approval.Entry, error)

	// DeleteByDelivery is used only when the route itself is deleted.
	DeleteByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) error
}
