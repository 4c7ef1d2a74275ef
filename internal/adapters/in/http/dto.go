package http

import (
	"time"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
}

type NewOrder struct {
	ID          *openapi_types.UUID `json:"id,omitempty"`
	PostalCode  string              `json:"postalCode"`
	WeightGrams int64               `json:"weightGrams"`
	ValueCents  int64               `json:"valueCents"`
	Address     Address             `json:"address"`
}

type OrderStatusChange struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Code   string `json:"code,omitempty"`
}

type OrderRef struct {
	OrderID  openapi_types.UUID `json:"orderId"`
	Sequence *int               `json:"sequence,omitempty"`
}

type NewDelivery struct {
	DriverID  openapi_types.UUID `json:"driverId"`
	VehicleID openapi_types.UUID `json:"vehicleId"`
	Orders    []OrderRef         `json:"orders"`
	Note      string             `json:"note,omitempty"`
	StartDate *time.Time         `json:"startDate,omitempty"`
}

type DeliveryPatch struct {
	DriverID  *openapi_types.UUID `json:"driverId,omitempty"`
	VehicleID *openapi_types.UUID `json:"vehicleId,omitempty"`
	Note      *string             `json:"note,omitempty"`
	StartDate *time.Time          `json:"startDate,omitempty"`
	Status    *string             `json:"status,omitempty"`
	Orders    []OrderRef          `json:"orders,omitempty"`
}

type Rejection struct {
	Reason string `json:"reason"`
}

type CreatedDelivery struct {
	Delivery      Delivery `json:"delivery"`
	NeedsApproval bool     `json:"needsApproval"`
	Reasons       []string `json:"reasons"`
}

type Order struct {
	ID            openapi_types.UUID `json:"id"`
	PostalCode    string             `json:"postalCode"`
	WeightGrams   int64              `json:"weightGrams"`
	ValueCents    int64              `json:"valueCents"`
	Address       Address            `json:"address"`
	Status        string             `json:"status"`
	StatusLabel   string             `json:"statusLabel"`
	Sequence      *int               `json:"sequence"`
	StartedAt     *time.Time         `json:"startedAt"`
	CompletedAt   *time.Time         `json:"completedAt"`
	FailureCode   string             `json:"failureCode,omitempty"`
	FailureReason string             `json:"failureReason,omitempty"`
}

type Approval struct {
	ID        openapi_types.UUID `json:"id"`
	ActorID   openapi_types.UUID `json:"actorId"`
	Action    string             `json:"action"`
	Reason    string             `json:"reason,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Delivery struct {
	ID               openapi_types.UUID `json:"id"`
	DriverID         openapi_types.UUID `json:"driverId"`
	VehicleID        openapi_types.UUID `json:"vehicleId"`
	Status           string             `json:"status"`
	StatusLabel      string             `json:"statusLabel"`
	StartDate        time.Time          `json:"startDate"`
	ReleasedAt       *time.Time         `json:"releasedAt"`
	EndedAt          *time.Time         `json:"endedAt"`
	Note             string             `json:"note"`
	TotalWeightGrams int64              `json:"totalWeightGrams"`
	TotalValueCents  int64              `json:"totalValueCents"`
	OrderCount       int                `json:"orderCount"`
	FreightCents     int64              `json:"freightCents"`
	CreatedAt        time.Time          `json:"createdAt"`
	Orders           []Order            `json:"orders"`
	Approvals        []Approval         `json:"approvals"`
}

func (a Address) toDomain() order.Address {
	return order.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

func addressFromDomain(a order.Address) Address {
	return Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
	}
}

// toOrderRefs keeps a nil slice nil so that an absent "orders" field leaves the
// order set untouched.
func toOrderRefs(refs []OrderRef) ([]commands.OrderRef, error) {
	if refs == nil {
		return nil, nil
	}

	result := make([]commands.OrderRef, 0, len(refs))
	for _, ref := range refs {
		id, err := idFromBody("order id", ref.OrderID)
		if err != nil {
			return nil, err
		}
		result = append(result, commands.OrderRef{OrderID: id, Sequence: ref.Sequence})
	}
	return result, nil
}

// idFromBody reports the nil UUID as a missing field.
func idFromBody(name string, raw openapi_types.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return id, nil
}

func optionalID(name string, raw *openapi_types.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent field
	}
	id, err := idFromBody(name, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func orderFromView(v queries.OrderView) Order {
	return Order{
		ID:            v.ID.Bytes(),
		PostalCode:    v.PostalCode.String(),
		WeightGrams:   v.Weight.Grams(),
		ValueCents:    v.Value.Cents(),
		Address:       addressFromDomain(v.Address),
		Status:        v.Status.String(),
		StatusLabel:   v.Status.Label(),
		Sequence:      v.Sequence,
		StartedAt:     v.StartedAt,
		CompletedAt:   v.CompletedAt,
		FailureCode:   v.FailureCode,
		FailureReason: v.FailureReason,
	}
}

func deliveryFromView(v queries.DeliveryView) Delivery {
	orders := make([]Order, 0, len(v.Orders))
	for _, o := range v.Orders {
		orders = append(orders, orderFromView(o))
	}

	approvals := make([]Approval, 0, len(v.Approvals))
	for _, a := range v.Approvals {
		approvals = append(approvals, Approval{
			ID:        a.ID.Bytes(),
			ActorID:   a.ActorID.Bytes(),
			Action:    a.Action.String(),
			Reason:    a.Reason,
			CreatedAt: a.CreatedAt,
		})
	}

	return Delivery{
		ID:               v.ID.Bytes(),
		DriverID:         v.DriverID.Bytes(),
		VehicleID:        v.VehicleID.Bytes(),
		Status:           v.Status.String(),
		StatusLabel:      v.Status.Label(),
		StartDate:        v.StartDate,
		ReleasedAt:       v.ReleasedAt,
		EndedAt:          v.EndedAt,
		Note:             v.Note,
		TotalWeightGrams: v.TotalWeight.Grams(),
		TotalValueCents:  v.TotalValue.Cents(),
		OrderCount:       v.OrderCount,
		FreightCents:     v.Freight.Cents(),
		CreatedAt:        v.CreatedAt,
		Orders:           orders,
		Approvals:        approvals,
	}
}

// deliveryFromAggregate renders a freshly created route, which has no ledger
// entries yet and whose orders the caller already knows.
func deliveryFromAggregate(d *delivery.Delivery) Delivery {
	totals := d.Totals()
	return Delivery{
		ID:               d.ID().Bytes(),
		DriverID:         d.DriverID().Bytes(),
		VehicleID:        d.VehicleID().Bytes(),
		Status:           d.Status().String(),
		StatusLabel:      d.Status().Label(),
		StartDate:        d.StartDate(),
		ReleasedAt:       d.ReleasedAt(),
		EndedAt:          d.EndedAt(),
		Note:             d.Note(),
		TotalWeightGrams: totals.Weight.Grams(),
		TotalValueCents:  totals.Value.Cents(),
		OrderCount:       totals.OrderCount,
		FreightCents:     d.Freight().Cents(),
		CreatedAt:        d.CreatedAt(),
		Orders:           []Order{},
		Approvals:        []Approval{},
	}
}
