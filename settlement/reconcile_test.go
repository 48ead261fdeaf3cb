package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightedScenario() (CurrencyBatch, []uuid.UUID, map[uuid.UUID]float64) {
	batch := CurrencyBatch{
		Currency: "USD",
		Expenses: []Expense{{PayerID: alice, Amount: 100, Currency: "USD"}},
	}
	members := []uuid.UUID{alice, bob, carol}
	weights := map[uuid.UUID]float64{carol: 2}
	return batch, members, weights
}

func TestPlanNetFoldsPaidRecords(t *testing.T) {
	batch, members, weights := weightedScenario()
	paid := []PaidRecord{{FromID: carol, ToID: alice, Amount: 50, Currency: "USD"}}

	net := Plan(batch, members, weights, paid, testRoster(uuid.Nil), ModeNet)
	require.Len(t, net, 1, "only Bob's debt remains")
	assert.Equal(t, bob, net[0].FromID)
	assert.Equal(t, alice, net[0].ToID)
	assert.InDelta(t, 25, net[0].Amount, Epsilon)
}

func TestPlanGrossIgnoresPaidRecords(t *testing.T) {
	batch, members, weights := weightedScenario()
	paid := []PaidRecord{{FromID: carol, ToID: alice, Amount: 50, Currency: "USD"}}

	gross := Plan(batch, members, weights, paid, testRoster(uuid.Nil), ModeGross)
	require.Len(t, gross, 2, "gross plan replays the full history")

	checklist := BuildChecklist(gross, paid)
	require.Len(t, checklist, 2)
	assert.True(t, checklist[0].Paid, "Carol's instruction is flagged paid")
	assert.Equal(t, carol, checklist[0].FromID)
	assert.False(t, checklist[1].Paid)
	assert.Equal(t, bob, checklist[1].FromID)
}

func TestPlanFullSettlementLeavesNothing(t *testing.T) {
	// Recording a payment for every gross instruction empties the net plan.
	batch, members, weights := weightedScenario()
	gross := Plan(batch, members, weights, nil, testRoster(uuid.Nil), ModeGross)
	require.NotEmpty(t, gross)

	var paid []PaidRecord
	for _, inst := range gross {
		paid = append(paid, PaidRecord{
			FromID:   inst.FromID,
			ToID:     inst.ToID,
			Amount:   inst.Amount,
			Currency: inst.Currency,
		})
	}

	net := Plan(batch, members, weights, paid, testRoster(uuid.Nil), ModeNet)
	assert.Empty(t, net)

	checklist := BuildChecklist(gross, paid)
	for _, item := range checklist {
		assert.True(t, item.Paid)
	}
}

func TestPlanNetNeverExceedsGross(t *testing.T) {
	batch := CurrencyBatch{
		Currency: "USD",
		Expenses: []Expense{
			{PayerID: alice, Amount: 120, Currency: "USD"},
			{PayerID: bob, Amount: 40, Currency: "USD"},
		},
	}
	members := []uuid.UUID{alice, bob, carol, dave}
	paid := []PaidRecord{
		{FromID: carol, ToID: alice, Amount: 15, Currency: "USD"},
		{FromID: dave, ToID: alice, Amount: 40, Currency: "USD"},
	}

	owedBy := func(plan []Instruction) map[uuid.UUID]float64 {
		totals := make(map[uuid.UUID]float64)
		for _, inst := range plan {
			totals[inst.FromID] += inst.Amount
		}
		return totals
	}

	grossOwed := owedBy(Plan(batch, members, nil, paid, testRoster(uuid.Nil), ModeGross))
	netOwed := owedBy(Plan(batch, members, nil, paid, testRoster(uuid.Nil), ModeNet))

	for id, gross := range grossOwed {
		assert.LessOrEqual(t, netOwed[id], gross+Epsilon,
			"folding payments must never increase member %s's debt", id)
	}
}

func TestPlanIgnoresOtherCurrencyRecords(t *testing.T) {
	batch, members, weights := weightedScenario()
	paid := []PaidRecord{{FromID: carol, ToID: alice, Amount: 50, Currency: "EUR"}}

	net := Plan(batch, members, weights, paid, testRoster(uuid.Nil), ModeNet)
	assert.Len(t, net, 2, "a EUR record must not reduce USD debts")
}

func TestPlanUndefinedRoster(t *testing.T) {
	batch, _, _ := weightedScenario()
	assert.Nil(t, Plan(batch, nil, nil, nil, testRoster(uuid.Nil), ModeNet))

	zero := map[uuid.UUID]float64{alice: 0, bob: 0, carol: 0}
	assert.Nil(t, Plan(batch, []uuid.UUID{alice, bob, carol}, zero, nil, testRoster(uuid.Nil), ModeGross))
}

func TestBuildChecklistConsumesRecordOnce(t *testing.T) {
	// Two equal debts between the same pair, one recorded payment: only
	// the first instruction is flagged.
	inst := Instruction{FromID: bob, ToID: alice, Amount: 25, Currency: "USD"}
	gross := []Instruction{inst, inst}
	paid := []PaidRecord{{FromID: bob, ToID: alice, Amount: 25, Currency: "USD"}}

	checklist := BuildChecklist(gross, paid)
	require.Len(t, checklist, 2)
	assert.True(t, checklist[0].Paid)
	assert.False(t, checklist[1].Paid)
}

func TestBuildChecklistTolerance(t *testing.T) {
	gross := []Instruction{{FromID: bob, ToID: alice, Amount: 25, Currency: "USD"}}

	within := []PaidRecord{{FromID: bob, ToID: alice, Amount: 25.05, Currency: "USD"}}
	assert.True(t, BuildChecklist(gross, within)[0].Paid)

	outside := []PaidRecord{{FromID: bob, ToID: alice, Amount: 25.06, Currency: "USD"}}
	assert.False(t, BuildChecklist(gross, outside)[0].Paid)

	wrongPair := []PaidRecord{{FromID: carol, ToID: alice, Amount: 25, Currency: "USD"}}
	assert.False(t, BuildChecklist(gross, wrongPair)[0].Paid)
}

func TestFindPaidRecord(t *testing.T) {
	records := []PaidRecord{{FromID: bob, ToID: alice, Amount: 25, Currency: "USD"}}

	assert.True(t, FindPaidRecord(records, bob, alice, 25.04, "USD"))
	assert.False(t, FindPaidRecord(records, bob, alice, 25.10, "USD"))
	assert.False(t, FindPaidRecord(records, bob, alice, 25, "EUR"))
	assert.False(t, FindPaidRecord(records, alice, bob, 25, "USD"))
	assert.False(t, FindPaidRecord(nil, bob, alice, 25, "USD"))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeNet},
		{input: "net", want: ModeNet},
		{input: "gross", want: ModeGross},
		{input: "GROSS", wantErr: true},
		{input: "all", wantErr: true},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, mode, "input %q", tt.input)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "net", ModeNet.String())
	assert.Equal(t, "gross", ModeGross.String())
}
