package pricingrepo

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pricing"

	"gorm.io/gorm"
)

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db *gorm.DB
}

func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// GetTable loads every direction of the tenant. A tenant without directions
// gets an empty table, which resolves every postal code to zero.
func (r *GormPricingRepository) GetTable(ctx context.Context, tenantID kernel.UUID) (pricing.Table, error) {
	if err := tenantID.Validate(); err != nil {
		return pricing.Table{}, err
	}

	var dtos []DirectionDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID.Bytes()).
		Order("from_code").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return pricing.Table{}, err
	}

	directions := make([]*pricing.Direction, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return pricing.Table{}, err
		}
		directions = append(directions, d)
	}

	return pricing.NewTable(directions), nil
}
