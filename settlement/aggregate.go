package settlement

import "github.com/google/uuid"

// TripContribution carries one trip's net-mode plan into the cross-trip
// aggregate. Instructions not touching the member are skipped here, so the
// caller may pass the whole plan.
type TripContribution struct {
	TripID       uuid.UUID
	Instructions []Instruction
}

// DirectPayment is the slice of a direct payment record the engine needs.
// Status uses the caller's vocabulary; only "pending" payments count.
type DirectPayment struct {
	FromID   uuid.UUID
	ToID     uuid.UUID
	Amount   float64
	Currency string
	Status   string
}

// AggregateBalances combines a member's trip settlement plans with their
// pending direct payments into one signed total per currency. Owing
// contributes negatively, being owed positively; paid direct payments are
// already resolved and contribute nothing. Currencies are never summed
// together, and a currency with no contributions is absent from the
// result, distinct from a present zero, which means "activity that
// settled out exactly".
func AggregateBalances(trips []TripContribution, direct []DirectPayment, self uuid.UUID) map[string]float64 {
	totals := make(map[string]float64)

	for _, trip := range trips {
		for _, inst := range trip.Instructions {
			if inst.FromID == self {
				totals[inst.Currency] -= inst.Amount
			}
			if inst.ToID == self {
				totals[inst.Currency] += inst.Amount
			}
		}
	}

	for _, p := range direct {
		if p.Status != "pending" {
			continue
		}
		if p.ToID == self {
			totals[p.Currency] += p.Amount
		}
		if p.FromID == self {
			totals[p.Currency] -= p.Amount
		}
	}

	return totals
}
