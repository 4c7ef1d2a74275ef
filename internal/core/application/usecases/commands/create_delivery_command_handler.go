package commands

import (
	"context"
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"

	"github.com/jinzhu/now"
)

// CreateDeliveryResult is the created route plus the approval decision taken for it.
type CreateDeliveryResult struct {
	Delivery      *delivery.Delivery
	NeedsApproval bool
	Reasons       []string
}

// CreateDeliveryCommandHandler builds a route from unassigned orders.
//
// The driver lock and the row locks on the requested orders are held until
// commit, so two concurrent requests for the same driver or the same order
// cannot both succeed.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	assessor   services.DeliveryAssessor
	clock      func() time.Time
}

func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		assessor:   services.NewDeliveryAssessor(),
		clock:      time.Now,
	}
}

// Handle checks the tenant, driver, vehicle and orders, prices the route,
// evaluates the tenant policy and persists the route with its orders.
func (h *CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryCommand,
) (CreateDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateDeliveryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tn, err := uow.TenantRepository().Get(ctx, cmd.TenantID())
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	fleetRepo := uow.FleetRepository()
	if _, err = fleetRepo.GetDriver(ctx, cmd.TenantID(), cmd.DriverID()); err != nil {
		return CreateDeliveryResult{}, err
	}
	if _, err = fleetRepo.GetVehicle(ctx, cmd.TenantID(), cmd.VehicleID()); err != nil {
		return CreateDeliveryResult{}, err
	}

	deliveryRepo := uow.DeliveryRepository()
	if err = ensureDriverFree(ctx, deliveryRepo, cmd.TenantID(), cmd.DriverID(), nil); err != nil {
		return CreateDeliveryResult{}, err
	}

	orderRepo := uow.OrderRepository()
	orders, err := loadUnassignedOrders(ctx, orderRepo, cmd.TenantID(), orderRefIDs(cmd.Orders()))
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	assessment, err := assessRoute(ctx, uow, h.assessor, tn.Policy(), cmd.TenantID(), cmd.VehicleID(), orders)
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	at := h.clock()
	startDate := now.With(at).BeginningOfDay()
	if cmd.StartDate() != nil {
		startDate = *cmd.StartDate()
	}

	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		cmd.TenantID(),
		cmd.DriverID(),
		cmd.VehicleID(),
		startDate,
		cmd.Note(),
		assessment.Totals,
		assessment.Freight,
		assessment.Decision.NeedsApproval,
		at,
	)
	if err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = deliveryRepo.Add(ctx, d); err != nil {
		return CreateDeliveryResult{}, err
	}

	for i, o := range orders {
		if err = o.AssignTo(d.ID(), assessment.Decision.NeedsApproval, cmd.Orders()[i].Sequence); err != nil {
			return CreateDeliveryResult{}, err
		}
	}
	if err = updateOrders(ctx, orderRepo, orders); err != nil {
		return CreateDeliveryResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateDeliveryResult{}, err
	}

	return CreateDeliveryResult{
		Delivery:      d,
		NeedsApproval: assessment.Decision.NeedsApproval,
		Reasons:       assessment.Decision.Reasons,
	}, nil
}
