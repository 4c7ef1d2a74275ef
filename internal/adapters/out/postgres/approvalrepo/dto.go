// Package approvalrepo persists the approval ledger. Rows are only ever
// inserted, or deleted together with their route.
package approvalrepo

import (
	"time"

	"lastmile/internal/core/domain/model/approval"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is one ledger row.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index:idx_delivery_approvals_route,priority:1"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index:idx_delivery_approvals_route,priority:2"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Action     int       `gorm:"type:smallint;not null"`
	Reason     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for ledger entries.
func (EntryDTO) TableName() string {
	return "delivery_approvals"
}

func fromDomain(entry *approval.Entry) EntryDTO {
	return EntryDTO{
		ID:         entry.ID().Bytes(),
		TenantID:   entry.TenantID().Bytes(),
		DeliveryID: entry.DeliveryID().Bytes(),
		ActorID:    entry.ActorID().Bytes(),
		Action:     int(entry.Action()),
		Reason:     entry.Reason(),
		CreatedAt:  entry.CreatedAt(),
	}
}

func toDomain(dto EntryDTO) (*approval.Entry, error) {
	ids := make([]kernel.UUID, 0, 4)
	for _, raw := range []uuid.UUID{dto.ID, dto.DeliveryID, dto.TenantID, dto.ActorID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return approval.NewEntry(ids[0], ids[1], ids[2], ids[3], approval.Action(dto.Action), dto.Reason, dto.CreatedAt)
}
