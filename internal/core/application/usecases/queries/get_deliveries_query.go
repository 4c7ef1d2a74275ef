package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetDeliveriesQueryIsNotConstructed = errors.New(
		"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
	)
)

// GetDeliveriesQuery lists the routes of a tenant, optionally narrowed to one
// status or one driver. Routes come back newest start date first.
//
// Example:
//
//	active := delivery.Active
//	query, err := NewGetDeliveriesQuery(tenantID, &active, nil)
//	if err != nil {
//	    return err
//	}
//	routes, err := NewGetDeliveriesQueryHandler(db).Handle(ctx, query)
type GetDeliveriesQuery struct {
	tenantID kernel.UUID
	status   *delivery.Status
	driverID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveriesQuery(tenantID kernel.UUID, status *delivery.Status, driverID *kernel.UUID) (GetDeliveriesQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetDeliveriesQuery{}, err
		}
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("driver id", err)
		}
	}

	return GetDeliveriesQuery{
		tenantID: tenantID,
		status:   status,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

func (q GetDeliveriesQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetDeliveriesQuery) Status() *delivery.Status {
	return q.status
}

func (q GetDeliveriesQuery) DriverID() *kernel.UUID {
	return q.driverID
}
