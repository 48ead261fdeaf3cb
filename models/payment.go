package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// DirectPayment is a trip-independent debt declared by the creditor
// (ToUser): "this person owes me money". Only the creditor can mark it
// paid; the creator can delete it while pending, the creditor once paid.
type DirectPayment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FromUserID  uuid.UUID `gorm:"type:uuid;index" json:"from_user_id"`
	FromUser    User      `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUserID    uuid.UUID `gorm:"type:uuid;index" json:"to_user_id"`
	ToUser      User      `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
	CreatorID   uuid.UUID `gorm:"type:uuid" json:"creator_id"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    string    `gorm:"default:USD;size:3" json:"currency"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Status      string    `gorm:"default:pending;size:20" json:"status"` // pending, paid
	CreatedAt   time.Time `json:"created_at"`
}

func (p *DirectPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CreateDirectPaymentRequest struct {
	FromUserID  string  `json:"from_user_id" binding:"required"` // who owes you
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}
