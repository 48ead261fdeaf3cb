package handlers

import (
	"fmt"
	"net/http"
	"time"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/trips/:id/expenses
func CreateExpense(c *gin.Context) {
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

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Parse expense date
	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err == nil {
			expenseDate = parsed
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	expense := models.Expense{
		TripID:      tripID,
		PaidBy:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Notes:       req.Notes,
		ExpenseDate: expenseDate,
	}

	if err := database.DB.Create(&expense).Error; err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	// Log activity
	var payer models.User
	database.DB.First(&payer, userID)
	var trip models.Trip
	database.DB.First(&trip, tripID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "expense_added",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s added \"%s\" (%s %.2f)", payer.Name, expense.Description, expense.Currency, expense.Amount),
	})

	// Send notifications asynchronously
	go notifyTripMembers(expense, payer, trip)

	utils.SuccessResponse(c, http.StatusCreated, "Expense added", buildExpenseResponse(expense.ID))
}

// GET /api/trips/:id/expenses
func GetTripExpenses(c *gin.Context) {
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

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var expenses []models.Expense
	database.DB.Where("trip_id = ?", tripID).
		Order("expense_date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	var responses []models.ExpenseResponse
	for _, e := range expenses {
		responses = append(responses, buildExpenseResponse(e.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/expenses/:id
func GetExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isMember(expense.TripID, userID) {
		utils.Forbidden(c, "You are not a member of this trip")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", buildExpenseResponse(expenseID))
}

// PUT /api/expenses/:id: only the payer may edit their expense
func UpdateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if expense.PaidBy != userID {
		utils.Forbidden(c, "Only the payer can edit this expense")
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Amount < 0 {
		utils.BadRequest(c, "Amount must be positive")
		return
	}

	updates := map[string]interface{}{}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if req.Currency != "" {
		updates["currency"] = req.Currency
	}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}

	database.DB.Model(&expense).Updates(updates)

	// Log activity
	var editor models.User
	database.DB.First(&editor, userID)

	database.DB.Create(&models.Activity{
		TripID:      expense.TripID,
		UserID:      userID,
		Type:        "expense_updated",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s updated \"%s\"", editor.Name, expense.Description),
	})

	utils.SuccessResponse(c, http.StatusOK, "Expense updated", buildExpenseResponse(expense.ID))
}

// DELETE /api/expenses/:id: only the payer may delete their expense
func DeleteExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if expense.PaidBy != userID {
		utils.Forbidden(c, "Only the payer can delete this expense")
		return
	}

	// Log before deleting
	var deleter models.User
	database.DB.First(&deleter, userID)

	database.DB.Create(&models.Activity{
		TripID:      expense.TripID,
		UserID:      userID,
		Type:        "expense_deleted",
		Description: fmt.Sprintf("%s deleted \"%s\" (%s %.2f)", deleter.Name, expense.Description, expense.Currency, expense.Amount),
	})

	database.DB.Delete(&expense)

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}

// notifyTripMembers fans an expense notification out to the other members.
func notifyTripMembers(expense models.Expense, payer models.User, trip models.Trip) {
	var memberRows []models.TripMember
	database.DB.Where("trip_id = ?", expense.TripID).Find(&memberRows)

	var memberIDs []uuid.UUID
	for _, m := range memberRows {
		memberIDs = append(memberIDs, m.UserID)
	}

	var members []models.User
	if len(memberIDs) > 0 {
		database.DB.Where("id IN ?", memberIDs).Find(&members)
	}

	services.GetNotificationService().NotifyExpenseAdded(expense, members, payer, trip)
}

// Build expense response with payer name
func buildExpenseResponse(expenseID uuid.UUID) models.ExpenseResponse {
	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		return models.ExpenseResponse{}
	}

	var payer models.User
	database.DB.First(&payer, expense.PaidBy)

	return models.ExpenseResponse{
		ID:          expense.ID,
		TripID:      expense.TripID,
		PaidBy:      expense.PaidBy,
		PayerName:   payer.Name,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Notes:       expense.Notes,
		ExpenseDate: expense.ExpenseDate,
		CreatedAt:   expense.CreatedAt,
	}
}
