package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Address is the free-text destination of an order. Only the postal code takes
// part in pricing; the rest is carried for the driver.
type Address struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
}

// Order is a single shipment. It is the aggregate root for its own status,
// route assignment and delivery timestamps.
//
// Invariants:
//   - belongs to exactly one tenant
//   - has a delivery id iff its status is not Unassigned
//   - a DeliveryFailed order always has a failure reason
//   - weight and value are never negative
type Order struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	postalCode kernel.PostalCode
	weight     kernel.Weight
	value      kernel.Money
	address    Address

	status     Status
	deliveryID *kernel.UUID
	sequence   *int

	startedAt     *time.Time
	completedAt   *time.Time
	failureCode   string
	failureReason string

	isConstructed bool
}

// State is the full persisted shape of an Order, used by RestoreOrder.
type State struct {
	ID            kernel.UUID
	TenantID      kernel.UUID
	PostalCode    kernel.PostalCode
	Weight        kernel.Weight
	Value         kernel.Money
	Address       Address
	Status        Status
	DeliveryID    *kernel.UUID
	Sequence      *int
	StartedAt     *time.Time
	CompletedAt   *time.Time
	FailureCode   string
	FailureReason string
}

// NewOrder creates an Unassigned order, as the import pipeline does.
//
// Example:
//
//	code, _ := kernel.NewPostalCode("01310-100")
//	o, err := order.NewOrder(kernel.NewUUID(), tenantID, code,
//	    kernel.WeightFromGrams(2500), kernel.MoneyFromCents(15990), order.Address{City: "São Paulo"})
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	postalCode kernel.PostalCode,
	weight kernel.Weight,
	value kernel.Money,
	address Address,
) (*Order, error) {
	o := &Order{
		status:        Unassigned,
		address:       address,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setPostalCode(postalCode),
		o.setWeight(weight),
		o.setValue(value),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence, re-checking every invariant.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		address:       s.Address,
		sequence:      s.Sequence,
		startedAt:     s.StartedAt,
		completedAt:   s.CompletedAt,
		failureCode:   s.FailureCode,
		failureReason: s.FailureReason,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setTenantID(s.TenantID),
		o.setPostalCode(s.PostalCode),
		o.setWeight(s.Weight),
		o.setValue(s.Value),
		o.setStatus(s.Status, s.DeliveryID),
	); err != nil {
		return nil, err
	}

	if o.status == DeliveryFailed && o.failureReason == "" {
		return nil, errs.NewValueIsRequiredError("failure reason")
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

func (o *Order) PostalCode() kernel.PostalCode {
	return o.postalCode
}

func (o *Order) Weight() kernel.Weight {
	return o.weight
}

func (o *Order) Value() kernel.Money {
	return o.value
}

func (o *Order) Address() Address {
	return o.address
}

func (o *Order) Status() Status {
	return o.status
}

// DeliveryID returns the owning route, or nil for unassigned orders.
func (o *Order) DeliveryID() *kernel.UUID {
	return o.deliveryID
}

// Sequence returns the manual position inside the route, if one was given.
func (o *Order) Sequence() *int {
	return o.sequence
}

func (o *Order) StartedAt() *time.Time {
	return o.startedAt
}

func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *Order) FailureCode() string {
	return o.failureCode
}

func (o *Order) FailureReason() string {
	return o.failureReason
}

// BelongsTo reports whether the order is attached to the given route.
func (o *Order) BelongsTo(deliveryID kernel.UUID) bool {
	return o.deliveryID != nil && o.deliveryID.IsEqual(deliveryID)
}

// AssignTo places an unassigned order on a route. routePending selects
// AwaitingRouteApproval over EnRoute. Timestamps and failure fields left over
// from an earlier route are cleared.
func (o *Order) AssignTo(deliveryID kernel.UUID, routePending bool, sequence *int) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	if o.status != Unassigned {
		return errs.NewConflictError("order", o.id, fmt.Sprintf("order is %s, expected %s", o.status, Unassigned))
	}
	if err := validateSequence(sequence); err != nil {
		return err
	}

	newStatus, err := o.status.Assign(routePending)
	if err != nil {
		return o.wrap(err)
	}

	o.status = newStatus
	o.deliveryID = &deliveryID
	o.sequence = sequence
	o.clearProgress()
	return nil
}

// SetSequence changes the manual position of an order already on a route.
func (o *Order) SetSequence(sequence *int) error {
	if err := validateSequence(sequence); err != nil {
		return err
	}
	o.sequence = sequence
	return nil
}

// Approve moves the order along with its route approval.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return o.wrap(err)
	}
	o.status = newStatus
	return nil
}

// RequireApproval parks an EnRoute order while its route waits for re-approval.
func (o *Order) RequireApproval() error {
	newStatus, err := o.status.RequireApproval()
	if err != nil {
		return o.wrap(err)
	}
	o.status = newStatus
	return nil
}

// Release returns a not-yet-started order to Unassigned and detaches it from its route.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return o.wrap(err)
	}
	o.status = newStatus
	o.detach()
	return nil
}

// Detach unconditionally returns the order to Unassigned. It is reserved for
// route deletion, which has already checked that no delivery is in progress.
func (o *Order) Detach() {
	o.status = Unassigned
	o.detach()
}

// ChangeStatus applies a driver-requested transition.
//
// Entering InDelivery stamps StartedAt and clears failure info. Entering a
// terminal status stamps CompletedAt and backfills StartedAt when the driver
// never reported a start. DeliveryFailed requires failureReason; failureCode is
// optional.
//
// Example:
//
//	if err := o.ChangeStatus(order.DeliveryFailed, time.Now(), "recipient absent", "R01"); err != nil {
//	    return err
//	}
func (o *Order) ChangeStatus(next Status, at time.Time, failureReason, failureCode string) error {
	if err := o.status.ValidateTransition(next); err != nil {
		return o.wrap(err)
	}

	failureReason = strings.TrimSpace(failureReason)
	if next == DeliveryFailed && failureReason == "" {
		return errs.NewValueIsRequiredErrorWithCause(
			"failureReason",
			fmt.Errorf("order %s cannot be marked %s without a reason", o.id, DeliveryFailed),
		)
	}

	switch next {
	case InDelivery:
		o.startedAt = &at
		o.completedAt = nil
		o.failureCode = ""
		o.failureReason = ""
	case Delivered, DeliveryFailed:
		o.completedAt = &at
		if o.startedAt == nil {
			o.startedAt = &at
		}
		if next == DeliveryFailed {
			o.failureReason = failureReason
			o.failureCode = strings.TrimSpace(failureCode)
		} else {
			o.failureReason = ""
			o.failureCode = ""
		}
	default:
	}

	o.status = next
	return nil
}

func (o *Order) detach() {
	o.deliveryID = nil
	o.sequence = nil
	o.clearProgress()
}

func (o *Order) clearProgress() {
	o.startedAt = nil
	o.completedAt = nil
	o.failureCode = ""
	o.failureReason = ""
}

func (o *Order) wrap(err error) error {
	return fmt.Errorf("order %s: %w", o.id, err)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant id", err)
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setPostalCode(code kernel.PostalCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.postalCode = code
	return nil
}

func (o *Order) setWeight(weight kernel.Weight) error {
	if weight.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("weight is invalid", fmt.Errorf("%s is negative", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setValue(value kernel.Money) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("value is invalid", fmt.Errorf("%s is negative", value))
	}
	o.value = value
	return nil
}

func (o *Order) setStatus(status Status, deliveryID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Unassigned && deliveryID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order cannot reference delivery %s", status, deliveryID),
		)
	}
	if status != Unassigned && deliveryID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must reference a delivery", status),
		)
	}
	o.status = status
	o.deliveryID = deliveryID
	return nil
}

func validateSequence(sequence *int) error {
	if sequence != nil && *sequence < 1 {
		return errs.NewValueIsOutOfRangeError("sequence", *sequence, 1, "unbounded")
	}
	return nil
}
