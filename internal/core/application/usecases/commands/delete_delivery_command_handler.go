package commands

import (
	"context"
	"fmt"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// DeleteDeliveryCommandHandler deletes a route.
//
// An Active route may only be deleted once none of its orders is EnRoute or
// InDelivery, and a route linked to a settled payment is never deleted. Every
// order is returned to Unassigned before the route row goes away.
type DeleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteDeliveryCommandHandler(uowFactory UoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}

	if d.Status() == delivery.Active {
		for _, o := range orders {
			if o.Status() == order.EnRoute || o.Status() == order.InDelivery {
				return errs.NewValueIsInvalidErrorWithCause(
					"delivery status",
					fmt.Errorf("delivery %s is %s and order %s is still %s", d.ID(), d.Status(), o.ID(), o.Status()),
				)
			}
		}
	}

	paymentRepo := uow.PaymentRepository()
	settled, err := paymentRepo.HasSettled(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}
	if settled {
		return errs.NewConflictError("delivery", d.ID(), "delivery is linked to a settled payment")
	}

	for _, o := range orders {
		o.Detach()
	}
	if err = updateOrders(ctx, orderRepo, orders); err != nil {
		return err
	}
	if err = paymentRepo.DeleteByDelivery(ctx, cmd.TenantID(), d.ID()); err != nil {
		return err
	}
	if err = uow.ApprovalLedger().DeleteByDelivery(ctx, cmd.TenantID(), d.ID()); err != nil {
		return err
	}
	if err = deliveryRepo.Delete(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
