package queries

import (
	"context"

	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns the route or an ObjectNotFoundError when the tenant has no
// route with that id.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return DeliveryView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE tenant_id = ? AND id = ?
	`, query.TenantID().Bytes(), query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return DeliveryView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return DeliveryView{}, err
		}
		return DeliveryView{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
	}

	view, err := scanDelivery(rows)
	if err != nil {
		return DeliveryView{}, err
	}
	if err = rows.Close(); err != nil {
		return DeliveryView{}, err
	}

	views := []DeliveryView{view}
	if err = attachDetails(ctx, h.db, query.TenantID(), views); err != nil {
		return DeliveryView{}, err
	}

	return views[0], nil
}
