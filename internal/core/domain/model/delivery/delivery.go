package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Totals are the route aggregates recomputed whenever the order set changes.
type Totals struct {
	Weight     kernel.Weight
	Value      kernel.Money
	OrderCount int
}

// Delivery is a route: one driver and one vehicle carrying a batch of orders.
// It is an aggregate root for its status, assignment and cached aggregates;
// the orders themselves are separate aggregates referencing the route by id.
//
// Business rules:
//   - Finished and Rejected routes only accept note edits
//   - Totals and freight are replaced as a whole by ApplyAssessment
//   - ReleasedAt is set the first time the route becomes Active
//   - EndedAt is set when the route is finished
type Delivery struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	driverID  kernel.UUID
	vehicleID kernel.UUID

	status     Status
	startDate  time.Time
	releasedAt *time.Time
	endedAt    *time.Time
	note       string

	totals  Totals
	freight kernel.Money

	createdAt time.Time

	guard guard.ConstructorGuard
}

// State is the full persisted shape of a Delivery, used by RestoreDelivery.
type State struct {
	ID         kernel.UUID
	TenantID   kernel.UUID
	DriverID   kernel.UUID
	VehicleID  kernel.UUID
	Status     Status
	StartDate  time.Time
	ReleasedAt *time.Time
	EndedAt    *time.Time
	Note       string
	Totals     Totals
	Freight    kernel.Money
	CreatedAt  time.Time
}

// NewDelivery creates a route in AwaitingApproval when needsApproval is set,
// otherwise in Active with ReleasedAt stamped at creation.
//
// Example:
//
//	d, err := delivery.NewDelivery(kernel.NewUUID(), tenantID, driverID, vehicleID,
//	    now.BeginningOfDay(), "", assessment.Totals, assessment.Freight,
//	    assessment.Decision.NeedsApproval, time.Now())
func NewDelivery(
	id, tenantID, driverID, vehicleID kernel.UUID,
	startDate time.Time,
	note string,
	totals Totals,
	freight kernel.Money,
	needsApproval bool,
	at time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:    Active,
		startDate: startDate,
		note:      strings.TrimSpace(note),
		createdAt: at,
		guard:     guard.NewConstructorGuard(),
	}
	if needsApproval {
		d.status = AwaitingApproval
	} else {
		d.releasedAt = &at
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setAssignment(driverID, vehicleID),
		d.setStartDate(startDate),
		d.setAggregates(totals, freight),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery rebuilds a route from persistence.
func RestoreDelivery(s State) (*Delivery, error) {
	d := &Delivery{
		releasedAt: s.ReleasedAt,
		endedAt:    s.EndedAt,
		note:       s.Note,
		createdAt:  s.CreatedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setTenantID(s.TenantID),
		d.setAssignment(s.DriverID, s.VehicleID),
		d.setStartDate(s.StartDate),
		d.setAggregates(s.Totals, s.Freight),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = s.Status

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) TenantID() kernel.UUID {
	return d.tenantID
}

func (d *Delivery) DriverID() kernel.UUID {
	return d.driverID
}

func (d *Delivery) VehicleID() kernel.UUID {
	return d.vehicleID
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) StartDate() time.Time {
	return d.startDate
}

func (d *Delivery) ReleasedAt() *time.Time {
	return d.releasedAt
}

func (d *Delivery) EndedAt() *time.Time {
	return d.endedAt
}

func (d *Delivery) Note() string {
	return d.note
}

func (d *Delivery) Totals() Totals {
	return d.totals
}

func (d *Delivery) Freight() kernel.Money {
	return d.freight
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// IsDrivenBy reports whether driverID is the route's assigned driver.
func (d *Delivery) IsDrivenBy(driverID kernel.UUID) bool {
	return d.driverID.IsEqual(driverID)
}

// OrderStatus is the status orders take when they join this route.
func (d *Delivery) OrderStatus() (order.Status, error) {
	status, err := d.status.OrderStatus()
	if err != nil {
		return order.Unknown, d.wrap(err)
	}
	return status, nil
}

// Approve releases an AwaitingApproval route to its driver.
func (d *Delivery) Approve(at time.Time) error {
	next, err := d.status.Approve()
	if err != nil {
		return d.wrap(err)
	}
	d.status = next
	d.releasedAt = &at
	return nil
}

func (d *Delivery) Reject() error {
	next, err := d.status.Reject()
	if err != nil {
		return d.wrap(err)
	}
	d.status = next
	return nil
}

// Finish closes an Active route once every order is terminal.
func (d *Delivery) Finish(at time.Time) error {
	next, err := d.status.Finish()
	if err != nil {
		return d.wrap(err)
	}
	d.status = next
	d.endedAt = &at
	return nil
}

// RequireReapproval sends an Active route back to its manager.
func (d *Delivery) RequireReapproval() error {
	next, err := d.status.RequireReapproval()
	if err != nil {
		return d.wrap(err)
	}
	d.status = next
	return nil
}

// Reassign changes the driver and vehicle of an open route.
func (d *Delivery) Reassign(driverID, vehicleID kernel.UUID) error {
	if err := d.ensureOpen("reassign"); err != nil {
		return err
	}
	return d.setAssignment(driverID, vehicleID)
}

// EditNote is accepted in every status.
func (d *Delivery) EditNote(note string) {
	d.note = strings.TrimSpace(note)
}

func (d *Delivery) SetStartDate(startDate time.Time) error {
	if err := d.ensureOpen("change start date of"); err != nil {
		return err
	}
	return d.setStartDate(startDate)
}

// ApplyAssessment replaces the cached aggregates and freight of an open route.
func (d *Delivery) ApplyAssessment(totals Totals, freight kernel.Money) error {
	if err := d.ensureOpen("recompute"); err != nil {
		return err
	}
	return d.setAggregates(totals, freight)
}

func (d *Delivery) ensureOpen(action string) error {
	if d.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("cannot %s delivery %s: it is %s", action, d.id, d.status),
		)
	}
	return nil
}

func (d *Delivery) wrap(err error) error {
	return fmt.Errorf("delivery %s: %w", d.id, err)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	d.tenantID = tenantID
	return nil
}

func (d *Delivery) setAssignment(driverID, vehicleID kernel.UUID) error {
	if err := errors.Join(
		requireID("driver id", driverID),
		requireID("vehicle id", vehicleID),
	); err != nil {
		return err
	}
	d.driverID = driverID
	d.vehicleID = vehicleID
	return nil
}

func (d *Delivery) setStartDate(startDate time.Time) error {
	if startDate.IsZero() {
		return errs.NewValueIsRequiredError("start date")
	}
	d.startDate = startDate
	return nil
}

func (d *Delivery) setAggregates(totals Totals, freight kernel.Money) error {
	if totals.Weight.IsNegative() || totals.Value.IsNegative() || totals.OrderCount < 0 || freight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery totals",
			fmt.Errorf("weight %s, value %s, %d orders and freight %s must not be negative",
				totals.Weight, totals.Value, totals.OrderCount, freight),
		)
	}
	d.totals = totals
	d.freight = freight
	return nil
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
