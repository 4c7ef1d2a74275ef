package fleetrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/fleet"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFleetRepository implements FleetRepository using GORM.
type GormFleetRepository struct {
	db *gorm.DB
}

func NewGormFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

func (r *GormFleetRepository) GetDriver(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Driver, error) {
	var dto DriverDTO
	if err := r.first(ctx, &dto, "driver", tenantID, id); err != nil {
		return nil, err
	}
	return driverToDomain(dto)
}

func (r *GormFleetRepository) GetVehicle(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Vehicle, error) {
	var dto VehicleDTO
	if err := r.first(ctx, &dto, "vehicle", tenantID, id); err != nil {
		return nil, err
	}
	return vehicleToDomain(dto)
}

func (r *GormFleetRepository) GetCategory(ctx context.Context, tenantID, id kernel.UUID) (*fleet.Category, error) {
	var dto CategoryDTO
	if err := r.first(ctx, &dto, "vehicle category", tenantID, id); err != nil {
		return nil, err
	}
	return categoryToDomain(dto)
}

func (r *GormFleetRepository) first(ctx context.Context, dest any, name string, tenantID, id kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).First(dest, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(name, id.String())
	}
	return err
}
