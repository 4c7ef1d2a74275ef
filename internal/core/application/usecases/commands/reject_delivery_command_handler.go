package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/kernel"
)

// RejectDeliveryCommandHandler moves a route from AwaitingApproval to Rejected
// and returns every one of its orders to Unassigned with no route or sequence.
type RejectDeliveryCommandHandler struct {
	uowFactory ApprovalUoWFactory
	clock      func() time.Time
}

func NewRejectDeliveryCommandHandler(uowFactory ApprovalUoWFactory) RejectDeliveryCommandHandler {
	return RejectDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

func (h *RejectDeliveryCommandHandler) Handle(ctx context.Context, cmd RejectDeliveryCommand) error {
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
	if err = d.Reject(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Detach()
	}

	entry, err := approval.NewEntry(
		kernel.NewUUID(), d.ID(), d.TenantID(), cmd.ActorID(),
		approval.Rejected, cmd.Reason(), h.clock(),
	)
	if err != nil {
		return err
	}

	if err = updateOrders(ctx, orderRepo, orders); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}
	if err = uow.ApprovalLedger().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
