package models

import "github.com/google/uuid"

// PlanItem is one settlement instruction rendered for the client.
// In gross mode Paid reflects the persisted checklist state; in net mode
// every remaining item is unpaid by construction.
type PlanItem struct {
	From     uuid.UUID `json:"from"`
	FromName string    `json:"from_name"`
	To       uuid.UUID `json:"to"`
	ToName   string    `json:"to_name"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	Paid     bool      `json:"paid"`
}

// CurrencyPlan groups the instructions of one currency. Currencies are
// settled independently and never combined.
type CurrencyPlan struct {
	Currency string     `json:"currency"`
	Items    []PlanItem `json:"items"`
}

// TripPlanResponse is returned for GET /api/trips/:id/plan
type TripPlanResponse struct {
	TripID   uuid.UUID      `json:"trip_id"`
	TripName string         `json:"trip_name"`
	Mode     string         `json:"mode"`
	Plans    []CurrencyPlan `json:"plans"`
}

// TripDebtView is one trip's outstanding obligation involving the current
// user, shown in the wallet. Amount is signed: positive = owed to you.
type TripDebtView struct {
	TripID    uuid.UUID `json:"trip_id"`
	TripName  string    `json:"trip_name"`
	OtherID   uuid.UUID `json:"other_user_id"`
	OtherName string    `json:"other_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

// WalletResponse is returned for GET /api/balance
type WalletResponse struct {
	Balances  map[string]float64 `json:"balances"` // per currency, signed
	TripDebts []TripDebtView     `json:"trip_debts"`
}
