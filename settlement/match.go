package settlement

import (
	"sort"

	"github.com/google/uuid"
)

type memberBalance struct {
	ID     uuid.UUID
	Amount float64
}

// Match turns signed balances into an ordered list of payment
// instructions that drive every balance to within Epsilon of zero.
//
// Greedy pairing: debtors sorted most-negative first, creditors sorted
// most-positive first, then a two-pointer sweep settles
// min(|debt|, credit) at each step. Largest obligations are matched first,
// which keeps the transaction count low for typical distributions (though
// it is not provably minimal). Ties break on member ID so the output is
// reproducible across recomputations.
func Match(balances map[uuid.UUID]float64, currency string, roster Roster) []Instruction {
	var debtors, creditors []memberBalance
	for id, bal := range balances {
		switch {
		case bal < -Epsilon:
			debtors = append(debtors, memberBalance{id, bal})
		case bal > Epsilon:
			creditors = append(creditors, memberBalance{id, bal})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Amount != debtors[j].Amount {
			return debtors[i].Amount < debtors[j].Amount
		}
		return debtors[i].ID.String() < debtors[j].ID.String()
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].Amount != creditors[j].Amount {
			return creditors[i].Amount > creditors[j].Amount
		}
		return creditors[i].ID.String() < creditors[j].ID.String()
	})

	var instructions []Instruction
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := -debtor.Amount
		if creditor.Amount < amount {
			amount = creditor.Amount
		}

		instructions = append(instructions, Instruction{
			FromID:   debtor.ID,
			FromName: roster.DisplayName(debtor.ID),
			ToID:     creditor.ID,
			ToName:   roster.DisplayName(creditor.ID),
			Amount:   amount,
			Currency: currency,
		})

		creditor.Amount -= amount
		debtor.Amount += amount

		if creditor.Amount < Epsilon {
			i++
		}
		if debtor.Amount > -Epsilon {
			j++
		}
	}

	return instructions
}
