// Package tenantrepo reads tenants and their approval thresholds.
package tenantrepo

import (
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/tenant"

	"github.com/google/uuid"
)

// TenantDTO keeps each threshold nullable: NULL means not enforced.
type TenantDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"type:varchar(255);not null"`
	MaxFreightPercentage *float64
	MinValueCents        *int64
	MinWeightGrams       *int64
	MinOrders            *int
}

func (TenantDTO) TableName() string {
	return "tenants"
}

func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	policy := tenant.Policy{
		MaxFreightPercentage: dto.MaxFreightPercentage,
		MinOrders:            dto.MinOrders,
	}
	if dto.MinValueCents != nil {
		value := kernel.MoneyFromCents(*dto.MinValueCents)
		policy.MinValue = &value
	}
	if dto.MinWeightGrams != nil {
		weight := kernel.WeightFromGrams(*dto.MinWeightGrams)
		policy.MinWeight = &weight
	}

	return tenant.NewTenant(id, dto.Name, policy)
}
