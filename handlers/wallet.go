package handlers

import (
	"net/http"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/settlement"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/balance: the cross-trip wallet. Every trip the user belongs
// to contributes its net plan; pending direct payments are layered on top.
// Totals are kept per currency and never converted.
func GetWallet(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var memberships []models.TripMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	var contributions []settlement.TripContribution
	var debts []models.TripDebtView
	otherIDs := make(map[uuid.UUID]bool)

	for _, m := range memberships {
		ledger, err := loadTripLedger(m.TripID)
		if err != nil {
			continue
		}
		roster := services.BuildRoster(userID, ledger.rosterIDs())

		for _, batch := range settlement.PartitionByCurrency(ledger.Expenses) {
			instructions := settlement.Plan(batch, ledger.Members, ledger.Weights, ledger.Paid, roster, settlement.ModeNet)

			contributions = append(contributions, settlement.TripContribution{
				TripID:       m.TripID,
				Instructions: instructions,
			})

			for _, inst := range instructions {
				switch userID {
				case inst.FromID:
					debts = append(debts, models.TripDebtView{
						TripID:    m.TripID,
						TripName:  ledger.Trip.Name,
						OtherID:   inst.ToID,
						OtherName: inst.ToName,
						Amount:    -utils.RoundToTwo(inst.Amount),
						Currency:  inst.Currency,
					})
					otherIDs[inst.ToID] = true
				case inst.ToID:
					debts = append(debts, models.TripDebtView{
						TripID:    m.TripID,
						TripName:  ledger.Trip.Name,
						OtherID:   inst.FromID,
						OtherName: inst.FromName,
						Amount:    utils.RoundToTwo(inst.Amount),
						Currency:  inst.Currency,
					})
					otherIDs[inst.FromID] = true
				}
			}
		}
	}

	var payments []models.DirectPayment
	database.DB.Where("from_user_id = ? OR to_user_id = ?", userID, userID).Find(&payments)

	direct := make([]settlement.DirectPayment, 0, len(payments))
	for _, p := range payments {
		direct = append(direct, settlement.DirectPayment{
			FromID:   p.FromUserID,
			ToID:     p.ToUserID,
			Amount:   p.Amount,
			Currency: p.Currency,
			Status:   p.Status,
		})
	}

	// Attach avatars for the counterparties shown in the debt list
	avatars := loadAvatars(otherIDs)
	for i := range debts {
		debts[i].AvatarURL = avatars[debts[i].OtherID]
	}

	response := models.WalletResponse{
		Balances:  settlement.AggregateBalances(contributions, direct, userID),
		TripDebts: debts,
	}
	if response.TripDebts == nil {
		response.TripDebts = []models.TripDebtView{}
	}

	utils.SuccessResponse(c, http.StatusOK, "", response)
}

func loadAvatars(ids map[uuid.UUID]bool) map[uuid.UUID]string {
	avatars := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return avatars
	}
	list := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	var users []models.User
	database.DB.Select("id", "avatar_url").Where("id IN ?", list).Find(&users)
	for _, u := range users {
		avatars[u.ID] = u.AvatarURL
	}
	return avatars
}
