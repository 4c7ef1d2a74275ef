package commands

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
		"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
	)
	ErrDeliveryPatchIsEmpty = errs.NewValueIsRequiredError("at least one field to update")
)

// DeliveryPatch lists the changes requested for a route. Nil fields are left
// untouched; a non-nil Orders replaces the whole order set.
type DeliveryPatch struct {
	DriverID  *kernel.UUID
	VehicleID *kernel.UUID
	Note      *string
	StartDate *time.Time
	Orders    []OrderRef
	Status    *delivery.Status
}

// OnlyNote reports whether the patch changes nothing but the note.
func (p DeliveryPatch) OnlyNote() bool {
	return p.DriverID == nil && p.VehicleID == nil && p.StartDate == nil && p.Orders == nil && p.Status == nil
}

func (p DeliveryPatch) isEmpty() bool {
	return p.OnlyNote() && p.Note == nil
}

func (p DeliveryPatch) validate() error {
	if p.isEmpty() {
		return ErrDeliveryPatchIsEmpty
	}

	var errList []error
	if p.DriverID != nil {
		errList = append(errList, requireID("driver id", *p.DriverID))
	}
	if p.VehicleID != nil {
		errList = append(errList, requireID("vehicle id", *p.VehicleID))
	}
	if p.StartDate != nil && p.StartDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("start date"))
	}
	if p.Orders != nil {
		errList = append(errList, validateOrderRefs(p.Orders))
	}
	if p.Status != nil {
		errList = append(errList, validateRequestedStatus(*p.Status))
	}
	return errors.Join(errList...)
}

// Finished and Rejected are reached only through order updates and Reject.
func validateRequestedStatus(s delivery.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("a delivery cannot be set to %s through an update", s),
		)
	}
	return nil
}

// UpdateDeliveryCommand applies a DeliveryPatch to a route.
//
// Example:
//
//	note := "call before arriving"
//	cmd, err := NewUpdateDeliveryCommand(tenantID, actorID, deliveryID, DeliveryPatch{Note: &note})
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	tenantID   kernel.UUID
	actorID    kernel.UUID
	deliveryID kernel.UUID
	patch      DeliveryPatch

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryCommand(
	tenantID, actorID, deliveryID kernel.UUID,
	patch DeliveryPatch,
) (UpdateDeliveryCommand, error) {
	if err := errors.Join(
		requireID("tenant id", tenantID),
		requireID("actor id", actorID),
		requireID("delivery id", deliveryID),
		patch.validate(),
	); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	patch.Orders = slices.Clone(patch.Orders)

	return UpdateDeliveryCommand{
		tenantID:   tenantID,
		actorID:    actorID,
		deliveryID: deliveryID,
		patch:      patch,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

func (c UpdateDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c UpdateDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c UpdateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c UpdateDeliveryCommand) Patch() DeliveryPatch {
	return c.patch
}
