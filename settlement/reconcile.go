package settlement

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Mode selects whether recorded payments are folded into a plan.
type Mode int

const (
	// ModeNet folds every recorded payment into the balances before
	// matching, so the plan lists only what is still outstanding.
	ModeNet Mode = iota

	// ModeGross ignores recorded payments and replays the full historical
	// plan, for rendering a checklist of paid and unpaid items.
	ModeGross
)

func (m Mode) String() string {
	if m == ModeGross {
		return "gross"
	}
	return "net"
}

// ParseMode maps the query-string value to a Mode. Empty defaults to net.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "net":
		return ModeNet, nil
	case "gross":
		return ModeGross, nil
	default:
		return ModeNet, fmt.Errorf("unknown plan mode %q", s)
	}
}

// Plan computes the settlement instructions for one currency's expenses.
// In net mode each paid record shrinks the debtor's debt and the
// creditor's credit before matching; in gross mode records are ignored.
// Records in a different currency never touch this batch's balances.
func Plan(batch CurrencyBatch, members []uuid.UUID, weights map[uuid.UUID]float64, paid []PaidRecord, roster Roster, mode Mode) []Instruction {
	balances := Allocate(batch, members, weights)
	if balances == nil {
		return nil
	}

	if mode == ModeNet {
		for _, p := range paid {
			if p.Currency != batch.Currency {
				continue
			}
			if _, ok := balances[p.FromID]; ok {
				balances[p.FromID] += p.Amount
			}
			if _, ok := balances[p.ToID]; ok {
				balances[p.ToID] -= p.Amount
			}
		}
	}

	return Match(balances, batch.Currency, roster)
}

// ChecklistItem is a gross-plan instruction with its persisted paid state.
type ChecklistItem struct {
	Instruction
	Paid bool
}

// BuildChecklist flags each gross instruction as paid when a recorded
// payment matches it by (from, to, currency) and amount within
// PaidTolerance. Matching is by value because instructions carry no stable
// identity across recomputations; each record is consumed at most once, so
// two equal debts need two confirmations. Equal-amount debts between the
// same pair remain indistinguishable and match in plan order.
func BuildChecklist(gross []Instruction, paid []PaidRecord) []ChecklistItem {
	used := make([]bool, len(paid))
	items := make([]ChecklistItem, 0, len(gross))

	for _, inst := range gross {
		item := ChecklistItem{Instruction: inst}
		for i, p := range paid {
			if used[i] {
				continue
			}
			if p.FromID == inst.FromID && p.ToID == inst.ToID &&
				p.Currency == inst.Currency &&
				math.Abs(p.Amount-inst.Amount) <= PaidTolerance {
				item.Paid = true
				used[i] = true
				break
			}
		}
		items = append(items, item)
	}

	return items
}

// FindPaidRecord reports whether records already contain a payment
// matching (from, to, currency, amount±PaidTolerance). Callers use it to
// keep mark-as-paid idempotent: confirming an already-confirmed
// instruction is rejected before a duplicate record is written.
func FindPaidRecord(records []PaidRecord, fromID, toID uuid.UUID, amount float64, currency string) bool {
	for _, p := range records {
		if p.FromID == fromID && p.ToID == toID && p.Currency == currency &&
			math.Abs(p.Amount-amount) <= PaidTolerance {
			return true
		}
	}
	return false
}
