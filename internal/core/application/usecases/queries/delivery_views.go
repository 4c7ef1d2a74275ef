// Package queries holds the read side: tenant-scoped route listings, a single
// route with its orders and ledger, the unassigned backlog and status counts.
// Handlers read with plain SQL and take no locks.
package queries

import (
	"context"
	"database/sql"
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DeliveryView is a route as returned by GetDeliveries and GetDelivery.
// Orders are sorted by sequence, unset last, then by id. Approvals are newest first.
type DeliveryView struct {
	ID          kernel.UUID
	DriverID    kernel.UUID
	VehicleID   kernel.UUID
	Status      delivery.Status
	StartDate   time.Time
	ReleasedAt  *time.Time
	EndedAt     *time.Time
	Note        string
	TotalWeight kernel.Weight
	TotalValue  kernel.Money
	OrderCount  int
	Freight     kernel.Money
	CreatedAt   time.Time
	Orders      []OrderView
	Approvals   []ApprovalView
}

// OrderView is an order as listed under its route or in the unassigned backlog.
type OrderView struct {
	ID            kernel.UUID
	PostalCode    kernel.PostalCode
	Weight        kernel.Weight
	Value         kernel.Money
	Address       order.Address
	Status        order.Status
	Sequence      *int
	StartedAt     *time.Time
	CompletedAt   *time.Time
	FailureCode   string
	FailureReason string
}

type ApprovalView struct {
	ID        kernel.UUID
	ActorID   kernel.UUID
	Action    approval.Action
	Reason    string
	CreatedAt time.Time
}

const deliveryColumns = `
	id, driver_id, vehicle_id, status, start_date, released_at, ended_at, note,
	total_weight_grams, total_value_cents, order_count, freight_cents, created_at`

const orderColumns = `
	id, postal_code, weight_grams, value_cents,
	address_street, address_number, address_complement, address_district, address_city, address_state,
	status, sequence, started_at, completed_at, failure_code, failure_reason`

func scanDelivery(rows *sql.Rows) (DeliveryView, error) {
	var (
		view                    DeliveryView
		id, driverID, vehicleID uuid.UUID
		status                  int
		weightGrams, valueCents int64
		freightCents            int64
		releasedAt, endedAt     *time.Time
	)

	err := rows.Scan(
		&id, &driverID, &vehicleID, &status, &view.StartDate, &releasedAt, &endedAt, &view.Note,
		&weightGrams, &valueCents, &view.OrderCount, &freightCents, &view.CreatedAt,
	)
	if err != nil {
		return DeliveryView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return DeliveryView{}, err
	}
	if view.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return DeliveryView{}, err
	}
	if view.VehicleID, err = kernel.UUIDFromBytes(vehicleID[:]); err != nil {
		return DeliveryView{}, err
	}

	view.Status = delivery.Status(status)
	view.ReleasedAt = releasedAt
	view.EndedAt = endedAt
	view.TotalWeight = kernel.WeightFromGrams(weightGrams)
	view.TotalValue = kernel.MoneyFromCents(valueCents)
	view.Freight = kernel.MoneyFromCents(freightCents)
	view.Orders = []OrderView{}
	view.Approvals = []ApprovalView{}

	return view, nil
}

// scanOrder reads orderColumns, optionally preceded by the route id when
// withDelivery is set.
func scanOrder(rows *sql.Rows, withDelivery bool) (OrderView, uuid.UUID, error) {
	var (
		view        OrderView
		id          uuid.UUID
		deliveryID  uuid.UUID
		postalCode  int64
		weightGrams int64
		valueCents  int64
		status      int
		sequence    *int64
	)

	dest := []any{
		&id, &postalCode, &weightGrams, &valueCents,
		&view.Address.Street, &view.Address.Number, &view.Address.Complement,
		&view.Address.District, &view.Address.City, &view.Address.State,
		&status, &sequence, &view.StartedAt, &view.CompletedAt, &view.FailureCode, &view.FailureReason,
	}
	if withDelivery {
		dest = append([]any{&deliveryID}, dest...)
	}

	if err := rows.Scan(dest...); err != nil {
		return OrderView{}, uuid.Nil, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, uuid.Nil, err
	}
	if view.PostalCode, err = kernel.PostalCodeFromNumber(uint32(postalCode)); err != nil { //nolint:gosec // stored from a uint32
		return OrderView{}, uuid.Nil, err
	}

	view.Weight = kernel.WeightFromGrams(weightGrams)
	view.Value = kernel.MoneyFromCents(valueCents)
	view.Status = order.Status(status)
	if sequence != nil {
		seq := int(*sequence)
		view.Sequence = &seq
	}

	return view, deliveryID, nil
}

// attachDetails loads the orders and ledger entries of the given routes in two
// round trips and attaches them in place.
func attachDetails(ctx context.Context, db *gorm.DB, tenantID kernel.UUID, views []DeliveryView) error {
	if len(views) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]int, len(views))
	ids := make([]string, 0, len(views))
	for i, v := range views {
		index[v.ID.Bytes()] = i
		ids = append(ids, v.ID.String())
	}

	if err := attachOrders(ctx, db, tenantID, ids, index, views); err != nil {
		return err
	}
	return attachApprovals(ctx, db, tenantID, ids, index, views)
}

func attachOrders(
	ctx context.Context,
	db *gorm.DB,
	tenantID kernel.UUID,
	ids []string,
	index map[uuid.UUID]int,
	views []DeliveryView,
) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT delivery_id, `+orderColumns+`
		FROM orders
		WHERE tenant_id = ? AND delivery_id = ANY(CAST(? AS uuid[]))
		ORDER BY delivery_id, sequence ASC NULLS LAST, id
	`, tenantID.Bytes(), pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		view, deliveryID, scanErr := scanOrder(rows, true)
		if scanErr != nil {
			return scanErr
		}
		i := index[deliveryID]
		views[i].Orders = append(views[i].Orders, view)
	}

	return rows.Err()
}

func attachApprovals(
	ctx context.Context,
	db *gorm.DB,
	tenantID kernel.UUID,
	ids []string,
	index map[uuid.UUID]int,
	views []DeliveryView,
) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT id, delivery_id, actor_id, action, reason, created_at
		FROM delivery_approvals
		WHERE tenant_id = ? AND delivery_id = ANY(CAST(? AS uuid[]))
		ORDER BY created_at DESC, id
	`, tenantID.Bytes(), pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view                  ApprovalView
			id, deliveryID, actor uuid.UUID
			action                int
		)
		if err = rows.Scan(&id, &deliveryID, &actor, &action, &view.Reason, &view.CreatedAt); err != nil {
			return err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return err
		}
		if view.ActorID, err = kernel.UUIDFromBytes(actor[:]); err != nil {
			return err
		}
		view.Action = approval.Action(action)

		i := index[deliveryID]
		views[i].Approvals = append(views[i].Approvals, view)
	}

	return rows.Err()
}
