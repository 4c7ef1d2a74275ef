// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Orders are indexed by tenant and by route so that route reads and the
// unassigned backlog stay cheap.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_orders_tenant_status,priority:1"`
	DeliveryID    *uuid.UUID `gorm:"type:uuid;index"`
	PostalCode    int64      `gorm:"not null"`
	WeightGrams   int64      `gorm:"not null"`
	ValueCents    int64      `gorm:"not null"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Status        int        `gorm:"not null;index:idx_orders_tenant_status,priority:2"`
	Sequence      *int
	StartedAt     *time.Time
	CompletedAt   *time.Time
	FailureCode   string
	FailureReason string
	CreatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the delivery address embedded in the order row.
type AddressDTO struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var deliveryID *uuid.UUID
	if id := aggregate.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	address := aggregate.Address()

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		TenantID:    aggregate.TenantID().Bytes(),
		DeliveryID:  deliveryID,
		PostalCode:  int64(aggregate.PostalCode().Number()),
		WeightGrams: aggregate.Weight().Grams(),
		ValueCents:  aggregate.Value().Cents(),
		Address: AddressDTO{
			Street:     address.Street,
			Number:     address.Number,
			Complement: address.Complement,
			District:   address.District,
			City:       address.City,
			State:      address.State,
		},
		Status:        int(aggregate.Status()),
		Sequence:      aggregate.Sequence(),
		StartedAt:     aggregate.StartedAt(),
		CompletedAt:   aggregate.CompletedAt(),
		FailureCode:   aggregate.FailureCode(),
		FailureReason: aggregate.FailureReason(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, which rejects rows
// whose status and route reference disagree.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}
		deliveryID = &dID
	}

	postalCode, err := kernel.PostalCodeFromNumber(uint32(dto.PostalCode)) //nolint:gosec // stored from a uint32
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:         id,
		TenantID:   tenantID,
		PostalCode: postalCode,
		Weight:     kernel.WeightFromGrams(dto.WeightGrams),
		Value:      kernel.MoneyFromCents(dto.ValueCents),
		Address: order.Address{
			Street:     dto.Address.Street,
			Number:     dto.Address.Number,
			Complement: dto.Address.Complement,
			District:   dto.Address.District,
			City:       dto.Address.City,
			State:      dto.Address.State,
		},
		Status:        order.Status(dto.Status),
		DeliveryID:    deliveryID,
		Sequence:      dto.Sequence,
		StartedAt:     dto.StartedAt,
		CompletedAt:   dto.CompletedAt,
		FailureCode:   dto.FailureCode,
		FailureReason: dto.FailureReason,
	})
}
