package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/tenant"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// manualHoldReason is recorded when a manager puts an active route back on hold.
const manualHoldReason = "route put on hold by a manager"

type assessmentUoW interface {
	FleetRepoFactory
	PricingRepoFactory
}

// assessRoute loads the pricing inputs of a route and runs the assessor.
// An uncategorized or missing vehicle contributes no base rate.
func assessRoute(
	ctx context.Context,
	uow assessmentUoW,
	assessor services.DeliveryAssessor,
	policy tenant.Policy,
	tenantID, vehicleID kernel.UUID,
	orders []*order.Order,
) (services.Assessment, error) {
	table, err := uow.PricingRepository().GetTable(ctx, tenantID)
	if err != nil {
		return services.Assessment{}, err
	}

	category, err := vehicleCategory(ctx, uow.FleetRepository(), tenantID, vehicleID)
	if err != nil {
		return services.Assessment{}, err
	}

	return assessor.Assess(orders, table, category, policy), nil
}

func vehicleCategory(
	ctx context.Context,
	fleetRepo ports.FleetRepository,
	tenantID, vehicleID kernel.UUID,
) (*fleet.Category, error) {
	vehicle, err := fleetRepo.GetVehicle(ctx, tenantID, vehicleID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if vehicle.CategoryID() == nil {
		return nil, nil
	}

	category, err := fleetRepo.GetCategory(ctx, tenantID, *vehicle.CategoryID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return category, err
}

// applyAssessment stores the new aggregates on d. An active route left with
// only terminal orders is finished. Otherwise an active route that now breaks
// a threshold goes back to AwaitingApproval together with its EnRoute orders,
// and a re-approval entry carrying the reasons is returned for the ledger.
func applyAssessment(
	d *delivery.Delivery,
	orders []*order.Order,
	a services.Assessment,
	actorID kernel.UUID,
	at time.Time,
) (*approval.Entry, error) {
	if err := d.ApplyAssessment(a.Totals, a.Freight); err != nil {
		return nil, err
	}
	if d.Status() != delivery.Active {
		return nil, nil
	}
	if allTerminal(orders) {
		return nil, d.Finish(at)
	}
	if !a.Decision.NeedsApproval {
		return nil, nil
	}
	return holdRoute(d, orders, actorID, strings.Join(a.Decision.Reasons, "; "), at)
}

func allTerminal(orders []*order.Order) bool {
	if len(orders) == 0 {
		return false
	}
	for _, o := range orders {
		if !o.Status().IsTerminal() {
			return false
		}
	}
	return true
}

// holdRoute moves an active route and its EnRoute orders back to approval.
func holdRoute(
	d *delivery.Delivery,
	orders []*order.Order,
	actorID kernel.UUID,
	reason string,
	at time.Time,
) (*approval.Entry, error) {
	if err := d.RequireReapproval(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Status() != order.EnRoute {
			continue
		}
		if err := o.RequireApproval(); err != nil {
			return nil, err
		}
	}

	return approval.NewEntry(
		kernel.NewUUID(), d.ID(), d.TenantID(), actorID,
		approval.ReapprovalRequired, reason, at,
	)
}

// ensureDriverFree takes the driver lock and fails with a conflict when the
// driver already has an open route other than excludeID.
func ensureDriverFree(
	ctx context.Context,
	deliveries ports.DeliveryRepository,
	tenantID, driverID kernel.UUID,
	excludeID *kernel.UUID,
) error {
	if err := deliveries.LockDriver(ctx, tenantID, driverID); err != nil {
		return err
	}

	busy, err := deliveries.HasOpenForDriver(ctx, tenantID, driverID, excludeID)
	if err != nil {
		return err
	}
	if busy {
		return errs.NewConflictError("driver", driverID, "driver already has a delivery awaiting approval or active")
	}
	return nil
}

// loadUnassignedOrders locks the requested orders and checks that all of them
// exist in the tenant and are free to be placed on a route.
func loadUnassignedOrders(
	ctx context.Context,
	orders ports.OrderRepository,
	tenantID kernel.UUID,
	ids []kernel.UUID,
) ([]*order.Order, error) {
	found, err := orders.GetManyForUpdate(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]*order.Order, len(found))
	for _, o := range found {
		byID[o.ID()] = o
	}

	var missing []string
	result := make([]*order.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := byID[id]
		if !ok {
			missing = append(missing, id.String())
			continue
		}
		if o.Status() != order.Unassigned {
			return nil, errs.NewConflictError("order", id,
				fmt.Sprintf("order is %s, expected %s", o.Status(), order.Unassigned))
		}
		result = append(result, o)
	}
	if len(missing) > 0 {
		return nil, errs.NewObjectNotFoundError("orders", strings.Join(missing, ", "))
	}

	return result, nil
}

func updateOrders(ctx context.Context, repo ports.OrderRepository, orders []*order.Order) error {
	for _, o := range orders {
		if err := repo.Update(ctx, o); err != nil {
			return err
		}
	}
	return nil
}
