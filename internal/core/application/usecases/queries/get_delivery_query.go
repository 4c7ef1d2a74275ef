package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery reads one route of a tenant.
type GetDeliveryQuery struct {
	tenantID   kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryQuery(tenantID, deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("delivery id", deliveryID),
	); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		tenantID:   tenantID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

func (q GetDeliveryQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
