package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrApproveDeliveryCommandIsNotConstructed = errors.New(
		"ApproveDeliveryCommand must be created via NewApproveDeliveryCommand constructor",
	)
)

// ApproveDeliveryCommand releases a route awaiting approval to its driver.
type ApproveDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	actorID    kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveDeliveryCommand(tenantID, actorID, deliveryID kernel.UUID) (ApproveDeliveryCommand, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("delivery id", deliveryID),
	); err != nil {
		return ApproveDeliveryCommand{}, err
	}

	return ApproveDeliveryCommand{
		tenantID:   tenantID,
		actorID:    actorID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrApproveDeliveryCommandIsNotConstructed)
}

func (c ApproveDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c ApproveDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c ApproveDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}
