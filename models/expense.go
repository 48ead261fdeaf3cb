package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TripID      uuid.UUID `gorm:"type:uuid;index" json:"trip_id"`
	Trip        Trip      `gorm:"foreignKey:TripID" json:"-"`
	PaidBy      uuid.UUID `gorm:"type:uuid" json:"paid_by"`
	Payer       User      `gorm:"foreignKey:PaidBy" json:"payer,omitempty"`
	Description string    `gorm:"not null;size:255" json:"description"`
	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    string    `gorm:"default:USD;size:3" json:"currency"`
	Notes       string    `json:"notes,omitempty"`
	ExpenseDate time.Time `gorm:"type:date;default:CURRENT_DATE" json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	Notes       string  `json:"notes"`
	ExpenseDate string  `json:"expense_date"` // YYYY-MM-DD
}

type UpdateExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Notes       string  `json:"notes"`
}

// Response
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	PaidBy      uuid.UUID `json:"paid_by"`
	PayerName   string    `json:"payer_name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Notes       string    `json:"notes,omitempty"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
}
