package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrRejectDeliveryCommandIsNotConstructed = errors.New(
		"RejectDeliveryCommand must be created via NewRejectDeliveryCommand constructor",
	)
)

// RejectDeliveryCommand refuses a route awaiting approval. The reason is
// mandatory and stored in the ledger.
type RejectDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	actorID    kernel.UUID
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewRejectDeliveryCommand(tenantID, actorID, deliveryID kernel.UUID, reason string) (RejectDeliveryCommand, error) {
	reason = strings.TrimSpace(reason)

	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("delivery id", deliveryID),
		reasonErr,
	); err != nil {
		return RejectDeliveryCommand{}, err
	}

	return RejectDeliveryCommand{
		tenantID:   tenantID,
		actorID:    actorID,
		deliveryID: deliveryID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RejectDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRejectDeliveryCommandIsNotConstructed)
}

func (c RejectDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c RejectDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c RejectDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c RejectDeliveryCommand) Reason() string {
	return c.reason
}
