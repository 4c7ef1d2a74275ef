package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler reads route listings with their orders and ledger.
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle returns the matching routes ordered by start date, then creation time,
// both descending. An empty result is an empty slice.
func (h GetDeliveriesQueryHandler) Handle(ctx context.Context, query GetDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := []string{"tenant_id = ?"}
	args := []any{query.TenantID().Bytes()}
	if status := query.Status(); status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, int(*status))
	}
	if driverID := query.DriverID(); driverID != nil {
		conditions = append(conditions, "driver_id = ?")
		args = append(args, driverID.Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY start_date DESC, created_at DESC, id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]DeliveryView, 0)
	for rows.Next() {
		view, scanErr := scanDelivery(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachDetails(ctx, h.db, query.TenantID(), views); err != nil {
		return nil, err
	}

	return views, nil
}
