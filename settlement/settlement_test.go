package settlement

import (
	"github.com/google/uuid"
)

// Fixed member IDs so failures print stable values.
var (
	alice = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bob   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	carol = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	dave  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func testRoster(self uuid.UUID) Roster {
	return Roster{
		Self: self,
		Names: map[uuid.UUID]string{
			alice: "Alice",
			bob:   "Bob",
			carol: "Carol",
			dave:  "Dave",
		},
	}
}

// applyInstructions replays a plan against balances the way a real
// payment would: the debtor's balance rises, the creditor's falls.
func applyInstructions(balances map[uuid.UUID]float64, instructions []Instruction) map[uuid.UUID]float64 {
	result := make(map[uuid.UUID]float64, len(balances))
	for id, bal := range balances {
		result[id] = bal
	}
	for _, inst := range instructions {
		result[inst.FromID] += inst.Amount
		result[inst.ToID] -= inst.Amount
	}
	return result
}
