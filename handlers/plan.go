package handlers

import (
	"fmt"
	"net/http"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/settlement"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// tripLedger is the snapshot of everything the engine needs for one trip.
type tripLedger struct {
	Trip     models.Trip
	Members  []uuid.UUID
	Weights  map[uuid.UUID]float64
	Expenses []settlement.Expense
	Paid     []settlement.PaidRecord
}

func loadTripLedger(tripID uuid.UUID) (tripLedger, error) {
	var ledger tripLedger

	if err := database.DB.First(&ledger.Trip, tripID).Error; err != nil {
		return ledger, err
	}

	var memberRows []models.TripMember
	database.DB.Where("trip_id = ?", tripID).Find(&memberRows)
	ledger.Weights = make(map[uuid.UUID]float64, len(memberRows))
	for _, m := range memberRows {
		ledger.Members = append(ledger.Members, m.UserID)
		ledger.Weights[m.UserID] = m.Weight
	}

	var expenses []models.Expense
	database.DB.Where("trip_id = ?", tripID).Find(&expenses)
	for _, e := range expenses {
		ledger.Expenses = append(ledger.Expenses, settlement.Expense{
			PayerID:  e.PaidBy,
			Amount:   e.Amount,
			Currency: e.Currency,
		})
	}

	var records []models.PaidSettlement
	database.DB.Where("trip_id = ?", tripID).Find(&records)
	for _, r := range records {
		ledger.Paid = append(ledger.Paid, settlement.PaidRecord{
			FromID:   r.FromUserID,
			ToID:     r.ToUserID,
			Amount:   r.Amount,
			Currency: r.Currency,
		})
	}

	return ledger, nil
}

// rosterIDs collects everyone who can show up in a plan: current members
// plus historical payers who have since left.
func (l tripLedger) rosterIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(l.Members))
	ids := make([]uuid.UUID, 0, len(l.Members))
	for _, m := range l.Members {
		seen[m] = true
		ids = append(ids, m)
	}
	for _, e := range l.Expenses {
		if !seen[e.PayerID] {
			seen[e.PayerID] = true
			ids = append(ids, e.PayerID)
		}
	}
	return ids
}

// GET /api/trips/:id/plan?mode=net|gross
//
// Net mode returns only the outstanding instructions. Gross mode replays
// the full plan with each item flagged paid or open, for the checklist.
func GetTripPlan(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Forbidden(c, "You are not a member of this trip")
		return
	}

	mode, err := settlement.ParseMode(c.Query("mode"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	ledger, err := loadTripLedger(tripID)
	if err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	roster := services.BuildRoster(userID, ledger.rosterIDs())

	response := models.TripPlanResponse{
		TripID:   tripID,
		TripName: ledger.Trip.Name,
		Mode:     mode.String(),
		Plans:    []models.CurrencyPlan{},
	}

	for _, batch := range settlement.PartitionByCurrency(ledger.Expenses) {
		instructions := settlement.Plan(batch, ledger.Members, ledger.Weights, ledger.Paid, roster, mode)

		plan := models.CurrencyPlan{Currency: batch.Currency, Items: []models.PlanItem{}}
		if mode == settlement.ModeGross {
			for _, item := range settlement.BuildChecklist(instructions, ledger.Paid) {
				plan.Items = append(plan.Items, planItem(item.Instruction, item.Paid))
			}
		} else {
			for _, inst := range instructions {
				plan.Items = append(plan.Items, planItem(inst, false))
			}
		}

		response.Plans = append(response.Plans, plan)
	}

	utils.SuccessResponse(c, http.StatusOK, "", response)
}

// POST /api/trips/:id/plan/paid: the creditor confirms an instruction
// was fulfilled. Rejected when an equivalent record already exists, so a
// double-tap cannot shrink the debt twice.
func MarkInstructionPaid(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Forbidden(c, "You are not a member of this trip")
		return
	}

	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	fromID, err := uuid.Parse(req.FromUserID)
	if err != nil {
		utils.BadRequest(c, "Invalid from_user_id")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	ledger, err := loadTripLedger(tripID)
	if err != nil {
		utils.NotFound(c, "Trip not found")
		return
	}

	if settlement.FindPaidRecord(ledger.Paid, fromID, userID, req.Amount, currency) {
		utils.Conflict(c, "This payment is already marked as paid")
		return
	}

	record := models.PaidSettlement{
		TripID:     tripID,
		FromUserID: fromID,
		ToUserID:   userID, // only the creditor can confirm
		Amount:     req.Amount,
		Currency:   currency,
	}

	if err := database.DB.Create(&record).Error; err != nil {
		utils.InternalError(c, "Failed to record payment")
		return
	}

	// Log activity and notify the debtor
	var creditor, debtor models.User
	database.DB.First(&creditor, userID)
	database.DB.First(&debtor, fromID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "settlement_paid",
		ReferenceID: record.ID,
		Description: fmt.Sprintf("%s received %s %.2f from %s", creditor.Name, currency, req.Amount, debtor.Name),
	})

	go services.GetNotificationService().NotifySettlementPaid(record, creditor, debtor, ledger.Trip)

	utils.SuccessResponse(c, http.StatusCreated, "Payment recorded", record)
}

// DELETE /api/trips/:id/plan/paid/:sid: the creditor undoes their mark.
func UnmarkInstructionPaid(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	recordID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		utils.BadRequest(c, "Invalid settlement ID")
		return
	}

	var record models.PaidSettlement
	if err := database.DB.Where("id = ? AND trip_id = ?", recordID, tripID).First(&record).Error; err != nil {
		utils.NotFound(c, "Paid settlement not found")
		return
	}

	if record.ToUserID != userID {
		utils.Forbidden(c, "Only the receiver can undo this payment")
		return
	}

	database.DB.Delete(&record)

	var creditor, debtor models.User
	database.DB.First(&creditor, userID)
	database.DB.First(&debtor, record.FromUserID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "settlement_unpaid",
		ReferenceID: record.ID,
		Description: fmt.Sprintf("%s unmarked a %s %.2f payment from %s", creditor.Name, record.Currency, record.Amount, debtor.Name),
	})

	utils.SuccessResponse(c, http.StatusOK, "Payment unmarked", nil)
}

// GET /api/trips/:id/settlements: the raw paid-settlement records
func GetTripSettlements(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	if !isMember(tripID, userID) {
		utils.Forbidden(c, "You are not a member of this trip")
		return
	}

	var records []models.PaidSettlement
	database.DB.Where("trip_id = ?", tripID).
		Preload("FromUser").Preload("ToUser").
		Order("created_at DESC").
		Find(&records)

	utils.SuccessResponse(c, http.StatusOK, "", records)
}

func planItem(inst settlement.Instruction, paid bool) models.PlanItem {
	return models.PlanItem{
		From:     inst.FromID,
		FromName: inst.FromName,
		To:       inst.ToID,
		ToName:   inst.ToName,
		Amount:   utils.RoundToTwo(inst.Amount),
		Currency: inst.Currency,
		Paid:     paid,
	}
}
