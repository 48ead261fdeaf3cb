package settlement

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateWeightedScenario(t *testing.T) {
	// One expense of 100 paid by Alice, weights {Alice:1, Bob:1, Carol:2}.
	batch := CurrencyBatch{
		Currency: "USD",
		Expenses: []Expense{{PayerID: alice, Amount: 100, Currency: "USD"}},
	}
	members := []uuid.UUID{alice, bob, carol}
	weights := map[uuid.UUID]float64{carol: 2}

	balances := Allocate(batch, members, weights)
	require.NotNil(t, balances)

	assert.InDelta(t, 75, balances[alice], Epsilon)
	assert.InDelta(t, -25, balances[bob], Epsilon)
	assert.InDelta(t, -50, balances[carol], Epsilon)
}

func TestAllocateWeightProportionality(t *testing.T) {
	// Shares must be amount*w/(w1+w2) to full float precision.
	batch := CurrencyBatch{
		Currency: "EUR",
		Expenses: []Expense{{PayerID: alice, Amount: 90, Currency: "EUR"}},
	}
	members := []uuid.UUID{alice, bob}
	weights := map[uuid.UUID]float64{alice: 3, bob: 7}

	balances := Allocate(batch, members, weights)
	require.NotNil(t, balances)

	assert.Equal(t, 90.0-90.0*3.0/10.0, balances[alice])
	assert.Equal(t, -90.0*7.0/10.0, balances[bob])
}

func TestAllocateConservation(t *testing.T) {
	tests := []struct {
		name     string
		expenses []Expense
		weights  map[uuid.UUID]float64
	}{
		{
			name: "equal weights",
			expenses: []Expense{
				{PayerID: alice, Amount: 33.33, Currency: "USD"},
				{PayerID: bob, Amount: 12.5, Currency: "USD"},
				{PayerID: carol, Amount: 99.99, Currency: "USD"},
			},
		},
		{
			name: "uneven weights",
			expenses: []Expense{
				{PayerID: alice, Amount: 10.01, Currency: "USD"},
				{PayerID: dave, Amount: 0.07, Currency: "USD"},
			},
			weights: map[uuid.UUID]float64{alice: 0.5, bob: 2.5, carol: 1.25},
		},
		{
			name: "member with zero weight",
			expenses: []Expense{
				{PayerID: bob, Amount: 250, Currency: "USD"},
			},
			weights: map[uuid.UUID]float64{dave: 0},
		},
	}

	members := []uuid.UUID{alice, bob, carol, dave}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := Allocate(CurrencyBatch{Currency: "USD", Expenses: tt.expenses}, members, tt.weights)
			require.NotNil(t, balances)

			var sum float64
			for _, bal := range balances {
				sum += bal
			}
			assert.InDelta(t, 0, sum, Epsilon, "balances must conserve to zero")
		})
	}
}

func TestAllocateUndefinedRoster(t *testing.T) {
	batch := CurrencyBatch{
		Currency: "USD",
		Expenses: []Expense{{PayerID: alice, Amount: 10, Currency: "USD"}},
	}

	assert.Nil(t, Allocate(batch, nil, nil), "empty roster has no balances")

	zeroWeights := map[uuid.UUID]float64{alice: 0, bob: 0}
	assert.Nil(t, Allocate(batch, []uuid.UUID{alice, bob}, zeroWeights),
		"zero total weight has no balances")
}

func TestAllocateCreditsDepartedPayer(t *testing.T) {
	// Dave paid but has since left the trip; his credit survives.
	batch := CurrencyBatch{
		Currency: "USD",
		Expenses: []Expense{{PayerID: dave, Amount: 60, Currency: "USD"}},
	}
	members := []uuid.UUID{alice, bob, carol}

	balances := Allocate(batch, members, nil)
	require.NotNil(t, balances)

	assert.InDelta(t, 60, balances[dave], Epsilon)
	assert.InDelta(t, -20, balances[alice], Epsilon)
	assert.InDelta(t, -20, balances[bob], Epsilon)
	assert.InDelta(t, -20, balances[carol], Epsilon)
}

func TestPartitionByCurrency(t *testing.T) {
	expenses := []Expense{
		{PayerID: alice, Amount: 10, Currency: "USD"},
		{PayerID: bob, Amount: 20, Currency: "EUR"},
		{PayerID: carol, Amount: 30, Currency: "USD"},
	}

	batches := PartitionByCurrency(expenses)
	require.Len(t, batches, 2)

	// Deterministic ordering by currency code.
	assert.Equal(t, "EUR", batches[0].Currency)
	assert.Len(t, batches[0].Expenses, 1)
	assert.Equal(t, "USD", batches[1].Currency)
	assert.Len(t, batches[1].Expenses, 2)

	for _, b := range batches {
		for _, e := range b.Expenses {
			assert.Equal(t, b.Currency, e.Currency)
		}
	}
}

func TestAllocateNoExpenses(t *testing.T) {
	balances := Allocate(CurrencyBatch{Currency: "USD"}, []uuid.UUID{alice, bob}, nil)
	require.NotNil(t, balances)
	for _, bal := range balances {
		assert.True(t, math.Abs(bal) <= Epsilon)
	}
}
