// Package deliveryrepo provides data transfer objects and mapping functions for route persistence.
// The cached totals and freight live on the route row so listings never
// have to aggregate the orders table.
package deliveryrepo

import (
	"time"

	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// OneOpenPerDriverIndex is the partial unique index that keeps a driver on at
// most one route awaiting approval or active. It is created by postgres.Migrate.
const OneOpenPerDriverIndex = "deliveries_one_open_per_driver"

// DeliveryDTO represents the database structure for persisting route aggregates.
type DeliveryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID `gorm:"type:uuid;not null;index:idx_deliveries_tenant_status,priority:1"`
	DriverID         uuid.UUID `gorm:"type:uuid;not null;index"`
	VehicleID        uuid.UUID `gorm:"type:uuid;not null"`
	Status           int       `gorm:"type:smallint;not null;index:idx_deliveries_tenant_status,priority:2"`
	StartDate        time.Time `gorm:"not null"`
	ReleasedAt       *time.Time
	EndedAt          *time.Time
	Note             string `gorm:"type:text"`
	TotalWeightGrams int64  `gorm:"not null"`
	TotalValueCents  int64  `gorm:"not null"`
	OrderCount       int    `gorm:"not null"`
	FreightCents     int64  `gorm:"not null"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for route entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	totals := aggregate.Totals()

	return DeliveryDTO{
		ID:               aggregate.ID().Bytes(),
		TenantID:         aggregate.TenantID().Bytes(),
		DriverID:         aggregate.DriverID().Bytes(),
		VehicleID:        aggregate.VehicleID().Bytes(),
		Status:           int(aggregate.Status()),
		StartDate:        aggregate.StartDate(),
		ReleasedAt:       aggregate.ReleasedAt(),
		EndedAt:          aggregate.EndedAt(),
		Note:             aggregate.Note(),
		TotalWeightGrams: totals.Weight.Grams(),
		TotalValueCents:  totals.Value.Cents(),
		OrderCount:       totals.OrderCount,
		FreightCents:     aggregate.Freight().Cents(),
		CreatedAt:        aggregate.CreatedAt(),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.TenantID, dto.DriverID, dto.VehicleID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return delivery.RestoreDelivery(delivery.State{
		ID:         ids[0],
		TenantID:   ids[1],
		DriverID:   ids[2],
		VehicleID:  ids[3],
		Status:     delivery.Status(dto.Status),
		StartDate:  dto.StartDate,
		ReleasedAt: dto.ReleasedAt,
		EndedAt:    dto.EndedAt,
		Note:       dto.Note,
		Totals: delivery.Totals{
			Weight:     kernel.WeightFromGrams(dto.TotalWeightGrams),
			Value:      kernel.MoneyFromCents(dto.TotalValueCents),
			OrderCount: dto.OrderCount,
		},
		Freight:   kernel.MoneyFromCents(dto.FreightCents),
		CreatedAt: dto.CreatedAt,
	})
}
