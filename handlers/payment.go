package handlers

import (
	"net/http"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateDirectPayment handles POST /api/payments. The caller is the
// creditor: they declare that from_user_id owes them money outside any trip.
func CreateDirectPayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateDirectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	fromID, err := uuid.Parse(req.FromUserID)
	if err != nil {
		utils.BadRequest(c, "Invalid from_user_id")
		return
	}
	if fromID == userID {
		utils.BadRequest(c, "You cannot request a payment from yourself")
		return
	}

	var debtor models.User
	if err := database.DB.First(&debtor, fromID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := models.DirectPayment{
		FromUserID:  fromID,
		ToUserID:    userID,
		CreatorID:   userID,
		Amount:      req.Amount,
		Currency:    currency,
		Description: req.Description,
		Status:      models.PaymentStatusPending,
	}

	if err := database.DB.Create(&payment).Error; err != nil {
		utils.InternalError(c, "Failed to create payment")
		return
	}

	var creditor models.User
	database.DB.First(&creditor, userID)
	go services.GetNotificationService().NotifyPaymentRequested(payment, creditor, debtor)

	utils.SuccessResponse(c, http.StatusCreated, "Payment request created", payment)
}

// GetDirectPayments handles GET /api/payments: every direct payment the
// user is on either side of, newest first.
func GetDirectPayments(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var payments []models.DirectPayment
	database.DB.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Preload("FromUser").Preload("ToUser").
		Order("created_at DESC").
		Find(&payments)

	utils.SuccessResponse(c, http.StatusOK, "", payments)
}

// MarkDirectPaymentPaid handles PUT /api/payments/:id/paid. Only the
// creditor can confirm the money arrived.
func MarkDirectPaymentPaid(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.DirectPayment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	if payment.ToUserID != userID {
		utils.Forbidden(c, "Only the receiver can mark this payment as paid")
		return
	}
	if payment.Status == models.PaymentStatusPaid {
		utils.Conflict(c, "Payment is already marked as paid")
		return
	}

	payment.Status = models.PaymentStatusPaid
	database.DB.Save(&payment)

	utils.SuccessResponse(c, http.StatusOK, "Payment marked as paid", payment)
}

// DeleteDirectPayment handles DELETE /api/payments/:id. A pending payment
// can be withdrawn by whoever created it; a paid one is history the
// creditor may clear.
func DeleteDirectPayment(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid payment ID")
		return
	}

	var payment models.DirectPayment
	if err := database.DB.First(&payment, paymentID).Error; err != nil {
		utils.NotFound(c, "Payment not found")
		return
	}

	switch payment.Status {
	case models.PaymentStatusPending:
		if payment.CreatorID != userID {
			utils.Forbidden(c, "Only the creator can delete a pending payment")
			return
		}
	case models.PaymentStatusPaid:
		if payment.ToUserID != userID {
			utils.Forbidden(c, "Only the receiver can delete a paid payment")
			return
		}
	default:
		utils.Forbidden(c, "This payment cannot be deleted")
		return
	}

	database.DB.Delete(&payment)
	utils.SuccessResponse(c, http.StatusOK, "Payment deleted", nil)
}
