package settlement

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWeightedScenario(t *testing.T) {
	// Balances from the weighted scenario: A=75, B=-25, C=-50.
	balances := map[uuid.UUID]float64{alice: 75, bob: -25, carol: -50}

	instructions := Match(balances, "USD", testRoster(uuid.Nil))
	require.Len(t, instructions, 2)

	// Carol carries the larger debt, so she is matched first.
	assert.Equal(t, carol, instructions[0].FromID)
	assert.Equal(t, alice, instructions[0].ToID)
	assert.InDelta(t, 50, instructions[0].Amount, Epsilon)

	assert.Equal(t, bob, instructions[1].FromID)
	assert.Equal(t, alice, instructions[1].ToID)
	assert.InDelta(t, 25, instructions[1].Amount, Epsilon)
}

func TestMatchCompleteness(t *testing.T) {
	tests := []struct {
		name     string
		balances map[uuid.UUID]float64
	}{
		{
			name:     "two creditors two debtors",
			balances: map[uuid.UUID]float64{alice: 40, bob: 35, carol: -60, dave: -15},
		},
		{
			name:     "single creditor",
			balances: map[uuid.UUID]float64{alice: 99.99, bob: -33.33, carol: -33.33, dave: -33.33},
		},
		{
			name:     "fractional drift",
			balances: map[uuid.UUID]float64{alice: 10.005, bob: -5.0025, carol: -5.0025},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instructions := Match(tt.balances, "USD", testRoster(uuid.Nil))

			for _, inst := range instructions {
				assert.Greater(t, inst.Amount, 0.0, "no instruction may be non-positive")
			}

			remaining := applyInstructions(tt.balances, instructions)
			for id, bal := range remaining {
				assert.InDeltaf(t, 0, bal, Epsilon, "member %s not settled", id)
			}
		})
	}
}

func TestMatchDropsSettledMembers(t *testing.T) {
	balances := map[uuid.UUID]float64{
		alice: 20,
		bob:   -20,
		carol: 0.005, // within epsilon, already settled
	}

	instructions := Match(balances, "USD", testRoster(uuid.Nil))
	require.Len(t, instructions, 1)
	for _, inst := range instructions {
		assert.NotEqual(t, carol, inst.FromID)
		assert.NotEqual(t, carol, inst.ToID)
	}
}

func TestMatchDeterministicTieBreak(t *testing.T) {
	// Bob and Carol owe the same amount; order falls back to member ID.
	balances := map[uuid.UUID]float64{alice: 50, bob: -25, carol: -25}

	first := Match(balances, "USD", testRoster(uuid.Nil))
	for i := 0; i < 10; i++ {
		again := Match(map[uuid.UUID]float64{alice: 50, bob: -25, carol: -25}, "USD", testRoster(uuid.Nil))
		assert.Equal(t, first, again)
	}

	require.Len(t, first, 2)
	assert.Equal(t, bob, first[0].FromID, "bob's ID sorts before carol's")
	assert.Equal(t, carol, first[1].FromID)
}

func TestMatchEmptyWhenSettled(t *testing.T) {
	balances := map[uuid.UUID]float64{alice: 0.002, bob: -0.002}
	assert.Empty(t, Match(balances, "USD", testRoster(uuid.Nil)))
	assert.Empty(t, Match(nil, "USD", testRoster(uuid.Nil)))
}

func TestMatchNameResolution(t *testing.T) {
	stranger := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	balances := map[uuid.UUID]float64{bob: 30, stranger: -30}

	instructions := Match(balances, "USD", testRoster(bob))
	require.Len(t, instructions, 1)

	assert.Equal(t, "You", instructions[0].ToName, "the caller is rendered as You")
	assert.Equal(t, "99999", instructions[0].FromName, "unknown members fall back to a truncated id")
}

func TestMatchAmountsRebuildBalances(t *testing.T) {
	// Summing instruction amounts per member reconstructs the original
	// balance of every participant.
	balances := map[uuid.UUID]float64{alice: 70, bob: 30, carol: -45, dave: -55}
	instructions := Match(balances, "USD", testRoster(uuid.Nil))

	rebuilt := make(map[uuid.UUID]float64)
	for _, inst := range instructions {
		rebuilt[inst.ToID] += inst.Amount
		rebuilt[inst.FromID] -= inst.Amount
	}

	for id, bal := range balances {
		assert.True(t, math.Abs(rebuilt[id]-bal) <= Epsilon, "member %s: got %v want %v", id, rebuilt[id], bal)
	}
}
