// Package pricingrepo reads a tenant's pricing directions.
package pricingrepo

import (
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/pricing"

	"github.com/google/uuid"
)

// DirectionDTO stores an inclusive postal code range as numbers, so range
// lookups and ordering happen on integers.
type DirectionDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Region         string    `gorm:"type:varchar(255)"`
	FromCode       int64     `gorm:"not null"`
	ToCode         int64     `gorm:"not null"`
	SurchargeCents int64     `gorm:"not null;default:0"`
}

func (DirectionDTO) TableName() string {
	return "pricing_directions"
}

func toDomain(dto DirectionDTO) (*pricing.Direction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	from, err := kernel.PostalCodeFromNumber(uint32(dto.FromCode)) //nolint:gosec // range checked by the constructor
	if err != nil {
		return nil, err
	}
	to, err := kernel.PostalCodeFromNumber(uint32(dto.ToCode)) //nolint:gosec // range checked by the constructor
	if err != nil {
		return nil, err
	}

	return pricing.NewDirection(id, tenantID, dto.Region, from, to, kernel.MoneyFromCents(dto.SurchargeCents))
}
