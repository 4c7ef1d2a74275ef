// Package fleetrepo reads the drivers, vehicles and vehicle categories a route
// is assigned to. The rows are owned by fleet management; this service never
// writes them.
package fleetrepo

import (
	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DriverDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

type VehicleDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Plate      string     `gorm:"type:varchar(16);not null"`
	CategoryID *uuid.UUID `gorm:"type:uuid"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

// CategoryDTO carries the base rate added to every route's freight.
type CategoryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	BaseRateCents int64     `gorm:"not null;default:0"`
}

func (CategoryDTO) TableName() string {
	return "vehicle_categories"
}

func identity(id, tenantID uuid.UUID) (kernel.UUID, kernel.UUID, error) {
	domainID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	domainTenantID, err := kernel.UUIDFromBytes(tenantID[:])
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return domainID, domainTenantID, nil
}

func driverToDomain(dto DriverDTO) (*fleet.Driver, error) {
	id, tenantID, err := identity(dto.ID, dto.TenantID)
	if err != nil {
		return nil, err
	}
	return fleet.NewDriver(id, tenantID, dto.Name)
}

func vehicleToDomain(dto VehicleDTO) (*fleet.Vehicle, error) {
	id, tenantID, err := identity(dto.ID, dto.TenantID)
	if err != nil {
		return nil, err
	}

	var categoryID *kernel.UUID
	if dto.CategoryID != nil {
		cID, categoryErr := kernel.UUIDFromBytes((*dto.CategoryID)[:])
		if categoryErr != nil {
			return nil, categoryErr
		}
		categoryID = &cID
	}

	return fleet.NewVehicle(id, tenantID, dto.Plate, categoryID)
}

func categoryToDomain(dto CategoryDTO) (*fleet.Category, error) {
	id, tenantID, err := identity(dto.ID, dto.TenantID)
	if err != nil {
		return nil, err
	}
	return fleet.NewCategory(id, tenantID, dto.Name, kernel.MoneyFromCents(dto.BaseRateCents))
}
