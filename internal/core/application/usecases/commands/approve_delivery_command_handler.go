package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// ApproveDeliveryCommandHandler moves a route from AwaitingApproval to Active,
// puts its pending orders EnRoute and appends an approval to the ledger.
type ApproveDeliveryCommandHandler struct {
	uowFactory ApprovalUoWFactory
	clock      func() time.Time
}

func NewApproveDeliveryCommandHandler(uowFactory ApprovalUoWFactory) ApproveDeliveryCommandHandler {
	return ApproveDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

func (h *ApproveDeliveryCommandHandler) Handle(ctx context.Context, cmd ApproveDeliveryCommand) error {
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

	at := h.clock()
	if err = d.Approve(at); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}

	pending := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() != order.AwaitingRouteApproval {
			continue
		}
		if err = o.Approve(); err != nil {
			return err
		}
		pending = append(pending, o)
	}

	entry, err := approval.NewEntry(kernel.NewUUID(), d.ID(), d.TenantID(), cmd.ActorID(), approval.Approved, "", at)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}
	if err = updateOrders(ctx, orderRepo, pending); err != nil {
		return err
	}
	if err = uow.ApprovalLedger().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
