package queries

import (
	"context"

	"lastmile/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

type CountDeliveriesByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountDeliveriesByStatusQueryHandler(db *gorm.DB) CountDeliveriesByStatusQueryHandler {
	return CountDeliveriesByStatusQueryHandler{db: db}
}

// Handle returns one entry per status in declaration order, zero included.
func (h CountDeliveriesByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountDeliveriesByStatusQuery,
) ([]StatusCount, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `SELECT status, COUNT(*) FROM deliveries`
	var args []any
	if tenantID := query.TenantID(); tenantID != nil {
		stmt += ` WHERE tenant_id = ?`
		args = append(args, tenantID.Bytes())
	}
	stmt += ` GROUP BY status`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[delivery.Status]int64)
	for rows.Next() {
		var status int
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		totals[delivery.Status(status)] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]StatusCount, 0, len(delivery.Statuses()))
	for _, status := range delivery.Statuses() {
		counts = append(counts, StatusCount{Status: status, Count: totals[status]})
	}

	return counts, nil
}
