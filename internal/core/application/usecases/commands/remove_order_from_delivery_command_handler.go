package commands

import (
	"context"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// RemoveOrderFromDeliveryCommandHandler releases one order and reassesses the
// route exactly like UpdateDeliveryCommandHandler does. The last order of a
// route cannot be removed; delete the route instead.
type RemoveOrderFromDeliveryCommandHandler struct {
	uowFactory UoWFactory
	assessor   services.DeliveryAssessor
	clock      func() time.Time
}

func NewRemoveOrderFromDeliveryCommandHandler(uowFactory UoWFactory) RemoveOrderFromDeliveryCommandHandler {
	return RemoveOrderFromDeliveryCommandHandler{
		uowFactory: uowFactory,
		assessor:   services.NewDeliveryAssessor(),
		clock:      time.Now,
	}
}

func (h *RemoveOrderFromDeliveryCommandHandler) Handle(ctx context.Context, cmd RemoveOrderFromDeliveryCommand) error {
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

	tn, err := uow.TenantRepository().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.TenantID(), cmd.DeliveryID())
	if err != nil {
		return err
	}
	if d.Status().IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("delivery %s is %s and its orders can no longer change", d.ID(), d.Status()),
		)
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}

	var target *order.Order
	remaining := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID().IsEqual(cmd.OrderID()) {
			target = o
			continue
		}
		remaining = append(remaining, o)
	}

	if target == nil {
		if _, err = orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID()); err != nil {
			return err
		}
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is not on delivery %s", cmd.OrderID(), d.ID()),
		)
	}
	if len(remaining) == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %s is the last one on delivery %s, delete the delivery instead", target.ID(), d.ID()),
		)
	}
	if err = target.Release(); err != nil {
		return err
	}

	assessment, err := assessRoute(ctx, uow, h.assessor, tn.Policy(), d.TenantID(), d.VehicleID(), remaining)
	if err != nil {
		return err
	}

	entry, err := applyAssessment(d, remaining, assessment, cmd.ActorID(), h.clock())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, target); err != nil {
		return err
	}
	if entry != nil {
		if err = updateOrders(ctx, orderRepo, remaining); err != nil {
			return err
		}
		if err = uow.ApprovalLedger().Append(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
