package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTripAndDirect(t *testing.T) {
	// Bob owes Alice 10 USD in one trip; Carol owes Alice a pending 20 USD
	// direct payment. Alice is the creditor of both: +10 +20 = +30.
	trips := []TripContribution{{
		TripID: uuid.New(),
		Instructions: []Instruction{
			{FromID: bob, ToID: alice, Amount: 10, Currency: "USD"},
		},
	}}
	direct := []DirectPayment{
		{FromID: carol, ToID: alice, Amount: 20, Currency: "USD", Status: "pending"},
	}

	assert.InDelta(t, 30, AggregateBalances(trips, direct, alice)["USD"], Epsilon)
	assert.InDelta(t, -10, AggregateBalances(trips, direct, bob)["USD"], Epsilon)
	assert.InDelta(t, -20, AggregateBalances(trips, direct, carol)["USD"], Epsilon)
}

func TestAggregateDirectOffsetsTripDebt(t *testing.T) {
	// X is owed a pending 20 USD by Y and owes Y 10 USD in a trip: +10.
	x, y := alice, bob
	trips := []TripContribution{{
		TripID: uuid.New(),
		Instructions: []Instruction{
			{FromID: x, ToID: y, Amount: 10, Currency: "USD"},
		},
	}}
	direct := []DirectPayment{
		{FromID: y, ToID: x, Amount: 20, Currency: "USD", Status: "pending"},
	}

	totals := AggregateBalances(trips, direct, x)
	assert.InDelta(t, 10, totals["USD"], Epsilon)
}

func TestAggregatePaidDirectPaymentsIgnored(t *testing.T) {
	direct := []DirectPayment{
		{FromID: bob, ToID: alice, Amount: 50, Currency: "USD", Status: "paid"},
	}

	totals := AggregateBalances(nil, direct, alice)
	_, present := totals["USD"]
	assert.False(t, present, "resolved payments contribute nothing")
}

func TestAggregateCurrenciesStaySeparate(t *testing.T) {
	trips := []TripContribution{
		{
			TripID: uuid.New(),
			Instructions: []Instruction{
				{FromID: bob, ToID: alice, Amount: 10, Currency: "USD"},
				{FromID: alice, ToID: carol, Amount: 40, Currency: "EUR"},
			},
		},
		{
			TripID: uuid.New(),
			Instructions: []Instruction{
				{FromID: alice, ToID: dave, Amount: 5, Currency: "USD"},
			},
		},
	}

	totals := AggregateBalances(trips, nil, alice)
	require.Len(t, totals, 2)
	assert.InDelta(t, 5, totals["USD"], Epsilon)
	assert.InDelta(t, -40, totals["EUR"], Epsilon)
	_, present := totals["INR"]
	assert.False(t, present, "untouched currencies are absent, not zero")
}

func TestAggregateExactlySettledStaysPresent(t *testing.T) {
	// Contributions that cancel out leave an explicit zero entry; the
	// caller can tell "settled" from "no activity".
	trips := []TripContribution{{
		TripID: uuid.New(),
		Instructions: []Instruction{
			{FromID: alice, ToID: bob, Amount: 15, Currency: "GBP"},
		},
	}}
	direct := []DirectPayment{
		{FromID: bob, ToID: alice, Amount: 15, Currency: "GBP", Status: "pending"},
	}

	totals := AggregateBalances(trips, direct, alice)
	got, present := totals["GBP"]
	require.True(t, present)
	assert.InDelta(t, 0, got, Epsilon)
}

func TestAggregateSkipsUnrelatedInstructions(t *testing.T) {
	trips := []TripContribution{{
		TripID: uuid.New(),
		Instructions: []Instruction{
			{FromID: bob, ToID: carol, Amount: 99, Currency: "USD"},
		},
	}}

	assert.Empty(t, AggregateBalances(trips, nil, alice))
}
