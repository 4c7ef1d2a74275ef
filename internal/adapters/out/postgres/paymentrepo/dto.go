// Package paymentrepo is the narrow view this service has of the payables
// linked to routes. Settlement itself happens elsewhere.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents int64     `gorm:"not null"`
	Settled     bool      `gorm:"not null;default:false"`
	SettledAt   *time.Time
}

func (PaymentDTO) TableName() string {
	return "delivery_payments"
}
