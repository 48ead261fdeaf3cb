package settlement

import (
	"sort"

	"github.com/google/uuid"
)

// CurrencyBatch holds the expenses of exactly one currency. Allocation is
// only defined per currency; build batches with PartitionByCurrency
// instead of passing a mixed list.
type CurrencyBatch struct {
	Currency string
	Expenses []Expense
}

// PartitionByCurrency splits a mixed expense list into per-currency
// batches, ordered by currency code for deterministic output.
func PartitionByCurrency(expenses []Expense) []CurrencyBatch {
	byCurrency := make(map[string][]Expense)
	for _, e := range expenses {
		byCurrency[e.Currency] = append(byCurrency[e.Currency], e)
	}

	currencies := make([]string, 0, len(byCurrency))
	for c := range byCurrency {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	batches := make([]CurrencyBatch, 0, len(currencies))
	for _, c := range currencies {
		batches = append(batches, CurrencyBatch{Currency: c, Expenses: byCurrency[c]})
	}
	return batches
}

// Allocate computes each member's signed net balance for one currency's
// expenses: positive = owed money, negative = owes money. Weights default
// to 1 for members absent from the map. Payers who are no longer members
// are still credited for what they paid.
//
// An empty roster or a total weight of zero means no balances are
// computable; Allocate returns nil and the caller surfaces an empty plan.
func Allocate(batch CurrencyBatch, members []uuid.UUID, weights map[uuid.UUID]float64) map[uuid.UUID]float64 {
	if len(members) == 0 {
		return nil
	}

	var totalWeight float64
	resolved := make(map[uuid.UUID]float64, len(members))
	for _, m := range members {
		w := 1.0
		if mw, ok := weights[m]; ok {
			w = mw
		}
		resolved[m] = w
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil
	}

	balances := make(map[uuid.UUID]float64, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	for _, e := range batch.Expenses {
		balances[e.PayerID] += e.Amount
		for _, m := range members {
			balances[m] -= e.Amount * resolved[m] / totalWeight
		}
	}

	return balances
}
