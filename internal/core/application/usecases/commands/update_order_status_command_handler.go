package commands

import (
	"context"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a driver transition and finishes the
// route when its last open order reaches a terminal status.
//
// All orders of the route are locked before the transition is applied, so two
// drivers' final updates cannot both miss the finalization.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderStatusUoWFactory
	clock      func() time.Time
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderStatusUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}
	if o.DeliveryID() == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is %s and not on any delivery", o.ID(), o.Status()),
		)
	}

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.TenantID(), *o.DeliveryID())
	if err != nil {
		return err
	}
	if d.Status() != delivery.Active {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("delivery %s is %s, expected %s", d.ID(), d.Status(), delivery.Active),
		)
	}
	if !d.IsDrivenBy(cmd.DriverID()) {
		return errs.NewPermissionDeniedError(cmd.DriverID(),
			fmt.Sprintf("delivery %s is assigned to another driver", d.ID()))
	}

	siblings, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}

	var target *order.Order
	allTerminal := true
	for _, s := range siblings {
		if s.IsEqual(o) {
			target = s
			continue
		}
		if !s.Status().IsTerminal() {
			allTerminal = false
		}
	}
	if target == nil {
		return errs.NewConflictError("order", o.ID(), "order left the delivery while it was being updated")
	}

	at := h.clock()
	if err = target.ChangeStatus(cmd.Status(), at, cmd.FailureReason(), cmd.FailureCode()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}

	if allTerminal && target.Status().IsTerminal() {
		if err = d.Finish(at); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
