// Package settlement is the ledger balancing and settlement-planning
// engine: weighted balance computation, greedy minimum-transaction debt
// matching, reconciliation against recorded payments, and cross-trip
// aggregation. Everything here is a pure function over snapshots the
// caller has already fetched; the package never touches the database.
package settlement

import "github.com/google/uuid"

const (
	// Epsilon is the zero tolerance for balance comparisons. Balances
	// within Epsilon of zero are treated as settled.
	Epsilon = 0.01

	// PaidTolerance is how far a recorded payment's amount may drift from
	// a computed instruction's amount and still count as the same
	// instruction. Recomputed instructions have no stable identity, so
	// matching is by value.
	PaidTolerance = 0.05
)

// Expense is the slice of an expense record the engine needs.
type Expense struct {
	PayerID  uuid.UUID
	Amount   float64
	Currency string
}

// Instruction is a computed payment recommendation: FromID (debtor) pays
// ToID (creditor) Amount in Currency.
type Instruction struct {
	FromID   uuid.UUID
	FromName string
	ToID     uuid.UUID
	ToName   string
	Amount   float64
	Currency string
}

// PaidRecord is a persisted confirmation that an instruction was fulfilled.
type PaidRecord struct {
	FromID   uuid.UUID
	ToID     uuid.UUID
	Amount   float64
	Currency string
}

// Roster resolves member IDs to display names. The viewing user is always
// rendered as "You"; unknown members fall back to a truncated identifier.
type Roster struct {
	Self  uuid.UUID
	Names map[uuid.UUID]string
}

func (r Roster) DisplayName(id uuid.UUID) string {
	if id == r.Self {
		return "You"
	}
	if name, ok := r.Names[id]; ok && name != "" {
		return name
	}
	return id.String()[:5]
}
