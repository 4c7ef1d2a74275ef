package approvalrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormApprovalLedger implements ApprovalLedger using GORM.
type GormApprovalLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormApprovalLedger(db *gorm.DB, tracker aggregateTracker) *GormApprovalLedger {
	return &GormApprovalLedger{
		db:      db,
		tracker: tracker,
	}
}

// Append inserts one entry.
func (l *GormApprovalLedger) Append(ctx context.Context, entry *approval.Entry) error {
	if entry == nil {
		return errors.New("approval entry is nil")
	}

	dto := fromDomain(entry)
	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	l.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

// ListByDelivery returns the route's entries, newest first.
func (l *GormApprovalLedger) ListByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) ([]*approval.Entry, error) {
	if err := errors.Join(tenantID.Validate(), deliveryID.Validate()); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := l.db.WithContext(ctx).
		Where("tenant_id = ? AND delivery_id = ?", tenantID.Bytes(), deliveryID.Bytes()).
		Order("created_at DESC").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*approval.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// DeleteByDelivery drops the route's history. Only route deletion calls it.
func (l *GormApprovalLedger) DeleteByDelivery(ctx context.Context, tenantID, deliveryID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), deliveryID.Validate()); err != nil {
		return err
	}

	return l.db.WithContext(ctx).
		Where("tenant_id = ? AND delivery_id = ?", tenantID.Bytes(), deliveryID.Bytes()).
		Delete(&EntryDTO{}).Error
}
