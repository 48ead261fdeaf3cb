package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaidSettlement is a persisted confirmation that a computed settlement
// instruction has been fulfilled. The creditor (ToUser) records it; deleting
// it undoes the mark. The composite unique index deduplicates concurrent
// confirmations of the same instruction at the storage level.
type PaidSettlement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TripID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_paid_once" json:"trip_id"`
	FromUserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_paid_once" json:"from_user_id"`
	FromUser   User      `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_paid_once" json:"to_user_id"`
	ToUser     User      `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
	Amount     float64   `gorm:"type:decimal(12,2);not null;uniqueIndex:idx_paid_once" json:"amount"`
	Currency   string    `gorm:"default:USD;size:3;uniqueIndex:idx_paid_once" json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *PaidSettlement) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RecordPaymentRequest marks one instruction of the trip's plan as paid.
// The current user must be the instruction's creditor; from_user_id is the
// debtor who paid them.
type RecordPaymentRequest struct {
	FromUserID string  `json:"from_user_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Currency   string  `json:"currency"`
}
