package deliveryrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM route repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves every mutable column of an existing route.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("*").
		Omit("id", "tenant_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, aggregate)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the route row.
func (r *GormDeliveryRepository) Delete(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", aggregate.ID().Bytes(), aggregate.TenantID().Bytes()).
		Delete(&DeliveryDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route by ID within the tenant.
func (r *GormDeliveryRepository) Get(ctx context.Context, tenantID, id kernel.UUID) (*delivery.Delivery, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// LockDriver takes a transaction-scoped advisory lock keyed by tenant and
// driver. Outside a transaction the lock is released immediately.
func (r *GormDeliveryRepository) LockDriver(ctx context.Context, tenantID, driverID kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	key := tenantID.String() + ":" + driverID.String()
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

// HasOpenForDriver reports whether the driver holds a route awaiting approval or active.
func (r *GormDeliveryRepository) HasOpenForDriver(
	ctx context.Context,
	tenantID, driverID kernel.UUID,
	excludeID *kernel.UUID,
) (bool, error) {
	if err := errors.Join(tenantID.Validate(), driverID.Validate()); err != nil {
		return false, err
	}

	query := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("tenant_id = ? AND driver_id = ? AND status IN ?",
			tenantID.Bytes(), driverID.Bytes(), openStatuses())
	if excludeID != nil {
		query = query.Where("id <> ?", excludeID.Bytes())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func openStatuses() []int {
	return []int{int(delivery.AwaitingApproval), int(delivery.Active)}
}

// translate turns a violation of the one-open-route index into a conflict.
func translate(err error, aggregate *delivery.Delivery) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == OneOpenPerDriverIndex {
		return errs.NewConflictError("driver", aggregate.DriverID(),
			"driver already has a delivery awaiting approval or active")
	}
	return err
}
