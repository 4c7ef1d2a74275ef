package paymentrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// HasSettled reports whether any payment linked to the route was settled.
func (r *GormPaymentRepository) HasSettled(ctx context.Context, tenantID, deliveryID kernel.UUID) (bool, error) {
	if err := errors.Join(tenantID.Validate(), deliveryID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("tenant_id = ? AND delivery_id = ? AND settled", tenantID.Bytes(), deliveryID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// DeleteByDelivery drops the unsettled payment links of a route being deleted.
func (r *GormPaymentRepository) DeleteByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), deliveryID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND delivery_id = ?", tenantID.Bytes(), deliveryID.Bytes()).
		Delete(&PaymentDTO{}).Error
}
