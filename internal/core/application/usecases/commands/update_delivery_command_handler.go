package commands

import (
	"context"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/pkg/errs"
)

// UpdateDeliveryCommandHandler edits a route.
//
// Business rules:
//   - Finished and Rejected routes only accept a note change
//   - a new driver must be free (same lock and check as create)
//   - added orders must be Unassigned; removed orders must not have been started
//   - after a change of composition or assignment the route is reassessed, and
//     an Active route that now breaks a threshold goes back to approval
//   - Active -> AwaitingApproval is a manual hold; AwaitingApproval -> Active
//     is only possible through ApproveDeliveryCommand
type UpdateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	assessor   services.DeliveryAssessor
	clock      func() time.Time
}

func NewUpdateDeliveryCommandHandler(uowFactory UoWFactory) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		assessor:   services.NewDeliveryAssessor(),
		clock:      time.Now,
	}
}

func (h *UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
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

	patch := cmd.Patch()
	if d.Status().IsTerminal() {
		if !patch.OnlyNote() {
			return errs.NewValueIsInvalidErrorWithCause(
				"delivery status",
				fmt.Errorf("delivery %s is %s: only the note can be changed", d.ID(), d.Status()),
			)
		}
		d.EditNote(*patch.Note)
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	hold, err := statusChange(d, patch.Status)
	if err != nil {
		return err
	}

	assignmentChanged, err := h.reassign(ctx, uow, d, patch)
	if err != nil {
		return err
	}

	if patch.Note != nil {
		d.EditNote(*patch.Note)
	}
	if patch.StartDate != nil {
		if err = d.SetStartDate(*patch.StartDate); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetByDelivery(ctx, cmd.TenantID(), d.ID())
	if err != nil {
		return err
	}

	onRoute, released, compositionChanged := current, []*order.Order(nil), false
	if patch.Orders != nil {
		onRoute, released, compositionChanged, err = replaceOrders(ctx, uow, d, current, patch.Orders)
		if err != nil {
			return err
		}
	}

	at := h.clock()
	var entries []*approval.Entry

	if assignmentChanged || compositionChanged {
		assessment, assessErr := assessRoute(ctx, uow, h.assessor, tn.Policy(), d.TenantID(), d.VehicleID(), onRoute)
		if assessErr != nil {
			return assessErr
		}
		entry, applyErr := applyAssessment(d, onRoute, assessment, cmd.ActorID(), at)
		if applyErr != nil {
			return applyErr
		}
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	if hold && d.Status() == delivery.Active {
		entry, holdErr := holdRoute(d, onRoute, cmd.ActorID(), manualHoldReason, at)
		if holdErr != nil {
			return holdErr
		}
		entries = append(entries, entry)
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}
	if err = updateOrders(ctx, orderRepo, released); err != nil {
		return err
	}
	if err = updateOrders(ctx, orderRepo, onRoute); err != nil {
		return err
	}
	for _, entry := range entries {
		if err = uow.ApprovalLedger().Append(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// statusChange reports whether the requested status asks for a manual hold.
func statusChange(d *delivery.Delivery, requested *delivery.Status) (bool, error) {
	if requested == nil || *requested == d.Status() {
		return false, nil
	}
	if *requested == delivery.AwaitingApproval && d.Status() == delivery.Active {
		return true, nil
	}
	return false, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("delivery %s cannot move from %s to %s through an update, use approve",
			d.ID(), d.Status(), *requested),
	)
}

func (h *UpdateDeliveryCommandHandler) reassign(
	ctx context.Context,
	uow UoW,
	d *delivery.Delivery,
	patch DeliveryPatch,
) (bool, error) {
	driverID, vehicleID := d.DriverID(), d.VehicleID()
	changed := false

	if patch.DriverID != nil && !patch.DriverID.IsEqual(driverID) {
		if _, err := uow.FleetRepository().GetDriver(ctx, d.TenantID(), *patch.DriverID); err != nil {
			return false, err
		}
		id := d.ID()
		if err := ensureDriverFree(ctx, uow.DeliveryRepository(), d.TenantID(), *patch.DriverID, &id); err != nil {
			return false, err
		}
		driverID = *patch.DriverID
		changed = true
	}

	if patch.VehicleID != nil && !patch.VehicleID.IsEqual(vehicleID) {
		if _, err := uow.FleetRepository().GetVehicle(ctx, d.TenantID(), *patch.VehicleID); err != nil {
			return false, err
		}
		vehicleID = *patch.VehicleID
		changed = true
	}

	if !changed {
		return false, nil
	}
	return true, d.Reassign(driverID, vehicleID)
}

// replaceOrders turns the current order set into the requested one. It
// returns the new set in request order, the orders released from the route and
// whether membership changed at all.
func replaceOrders(
	ctx context.Context,
	uow UoW,
	d *delivery.Delivery,
	current []*order.Order,
	refs []OrderRef,
) ([]*order.Order, []*order.Order, bool, error) {
	requested := make(map[kernel.UUID]OrderRef, len(refs))
	for _, ref := range refs {
		requested[ref.OrderID] = ref
	}

	kept := make(map[kernel.UUID]*order.Order, len(current))
	var released []*order.Order
	for _, o := range current {
		if _, ok := requested[o.ID()]; ok {
			kept[o.ID()] = o
			continue
		}
		if !o.Status().IsOnRoute() {
			return nil, nil, false, errs.NewValueIsInvalidErrorWithCause(
				"orders",
				fmt.Errorf("order %s is %s and cannot be removed from delivery %s", o.ID(), o.Status(), d.ID()),
			)
		}
		if err := o.Release(); err != nil {
			return nil, nil, false, err
		}
		released = append(released, o)
	}

	var addedIDs []kernel.UUID
	for _, ref := range refs {
		if _, ok := kept[ref.OrderID]; !ok {
			addedIDs = append(addedIDs, ref.OrderID)
		}
	}

	added := map[kernel.UUID]*order.Order{}
	if len(addedIDs) > 0 {
		orders, err := loadUnassignedOrders(ctx, uow.OrderRepository(), d.TenantID(), addedIDs)
		if err != nil {
			return nil, nil, false, err
		}
		joining, statusErr := d.OrderStatus()
		if statusErr != nil {
			return nil, nil, false, statusErr
		}
		pending := joining == order.AwaitingRouteApproval
		for _, o := range orders {
			if err = o.AssignTo(d.ID(), pending, requested[o.ID()].Sequence); err != nil {
				return nil, nil, false, err
			}
			added[o.ID()] = o
		}
	}

	onRoute := make([]*order.Order, 0, len(refs))
	for _, ref := range refs {
		if o, ok := kept[ref.OrderID]; ok {
			if err := o.SetSequence(ref.Sequence); err != nil {
				return nil, nil, false, err
			}
			onRoute = append(onRoute, o)
			continue
		}
		onRoute = append(onRoute, added[ref.OrderID])
	}

	return onRoute, released, len(released) > 0 || len(added) > 0, nil
}
