package handlers

import (
	"fmt"
	"net/http"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/services"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/trips
func CreateTrip(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	trip := models.Trip{
		Name:      req.Name,
		CreatedBy: userID,
	}

	if err := database.DB.Create(&trip).Error; err != nil {
		utils.InternalError(c, "Failed to create trip")
		return
	}

	// Add creator as admin member
	database.DB.Create(&models.TripMember{
		TripID: trip.ID,
		UserID: userID,
		Role:   "admin",
		Weight: 1,
	})

	// Add other members if provided
	for _, memberInput := range req.Members {
		memberUUID, err := uuid.Parse(memberInput)
		if err != nil {
			// Might be an email, try to find user
			var user models.User
			if dbErr := database.DB.Where("email = ?", memberInput).First(&user).Error; dbErr == nil {
				memberUUID = user.ID
			} else {
				// Send invitation
				go services.InviteToTrip(trip.ID, userID, memberInput, "")
				continue
			}
		}

		if memberUUID != userID {
			database.DB.Create(&models.TripMember{
				TripID: trip.ID,
				UserID: memberUUID,
				Role:   "member",
				Weight: 1,
			})
		}
	}

	// Log activity
	var creator models.User
	database.DB.First(&creator, userID)
	database.DB.Create(&models.Activity{
		TripID:      trip.ID,
		UserID:      userID,
		Type:        "trip_created",
		ReferenceID: trip.ID,
		Description: fmt.Sprintf("%s created trip \"%s\"", creator.Name, trip.Name),
	})

	response := buildTripResponse(trip.ID)
	utils.SuccessResponse(c, http.StatusCreated, "Trip created", response)
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var memberships []models.TripMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	var tripIDs []uuid.UUID
	for _, m := range memberships {
		tripIDs = append(tripIDs, m.TripID)
	}

	var trips []models.Trip
	if len(tripIDs) > 0 {
		database.DB.Where("id IN ?", tripIDs).Order("created_at DESC").Find(&trips)
	}

	var responses []models.TripResponse
	for _, t := range trips {
		responses = append(responses, buildTripResponse(t.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "", buildTripResponse(tripID))
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
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

	var req struct {
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}

	database.DB.Model(&models.Trip{}).Where("id = ?", tripID).Updates(updates)

	utils.SuccessResponse(c, http.StatusOK, "Trip updated", buildTripResponse(tripID))
}

// PUT /api/trips/:id/weights: sparse update of member cost-share weights
func UpdateWeights(c *gin.Context) {
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

	var req models.UpdateWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	for memberID, weight := range req.Weights {
		if weight < 0 {
			utils.BadRequest(c, fmt.Sprintf("weight for %s must be non-negative", memberID))
			return
		}
	}

	for memberID, weight := range req.Weights {
		memberUUID, err := uuid.Parse(memberID)
		if err != nil {
			utils.BadRequest(c, fmt.Sprintf("invalid member ID: %s", memberID))
			return
		}

		result := database.DB.Model(&models.TripMember{}).
			Where("trip_id = ? AND user_id = ?", tripID, memberUUID).
			Update("weight", weight)
		if result.RowsAffected == 0 {
			utils.BadRequest(c, fmt.Sprintf("%s is not a member of this trip", memberID))
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Weights updated", buildTripResponse(tripID))
}

// POST /api/trips/:id/members
func AddMember(c *gin.Context) {
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

	var req models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var targetUser models.User
	found := false

	if req.UserID != "" {
		memberUUID, _ := uuid.Parse(req.UserID)
		if err := database.DB.First(&targetUser, memberUUID).Error; err == nil {
			found = true
		}
	}

	if !found && req.Email != "" {
		if err := database.DB.Where("email = ?", req.Email).First(&targetUser).Error; err == nil {
			found = true
		}
	}

	if !found && req.Phone != "" {
		if err := database.DB.Where("phone = ?", req.Phone).First(&targetUser).Error; err == nil {
			found = true
		}
	}

	if found {
		// Check if already a member
		var existing models.TripMember
		if err := database.DB.Where("trip_id = ? AND user_id = ?", tripID, targetUser.ID).First(&existing).Error; err == nil {
			utils.BadRequest(c, "User is already a member of this trip")
			return
		}

		database.DB.Create(&models.TripMember{
			TripID: tripID,
			UserID: targetUser.ID,
			Role:   "member",
			Weight: 1,
		})

		var adder models.User
		database.DB.First(&adder, userID)
		var trip models.Trip
		database.DB.First(&trip, tripID)

		database.DB.Create(&models.Activity{
			TripID:      tripID,
			UserID:      userID,
			Type:        "member_joined",
			Description: fmt.Sprintf("%s added %s to %s", adder.Name, targetUser.Name, trip.Name),
		})

		go services.GetNotificationService().NotifyMemberAdded(trip, adder, targetUser)

		utils.SuccessResponse(c, http.StatusOK, "Member added", targetUser.ToResponse())
	} else {
		// User not registered: send invitation
		go services.InviteToTrip(tripID, userID, req.Email, req.Phone)
		utils.SuccessResponse(c, http.StatusOK, "Invitation sent", nil)
	}
}

// DELETE /api/trips/:id/members/:uid
func RemoveMember(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid trip ID")
		return
	}

	memberUID, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		utils.BadRequest(c, "Invalid user ID")
		return
	}

	// Only admin or self can remove
	var membership models.TripMember
	database.DB.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&membership)
	if membership.Role != "admin" && userID != memberUID {
		utils.Forbidden(c, "Only admins can remove other members")
		return
	}

	database.DB.Where("trip_id = ? AND user_id = ?", tripID, memberUID).Delete(&models.TripMember{})

	var removedUser models.User
	database.DB.First(&removedUser, memberUID)
	var trip models.Trip
	database.DB.First(&trip, tripID)

	database.DB.Create(&models.Activity{
		TripID:      tripID,
		UserID:      userID,
		Type:        "member_left",
		Description: fmt.Sprintf("%s left %s", removedUser.Name, trip.Name),
	})

	utils.SuccessResponse(c, http.StatusOK, "Member removed", nil)
}

// POST /api/trips/:id/invite
func InviteToTripHandler(c *gin.Context) {
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

	var req models.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Email == "" && req.Phone == "" {
		utils.BadRequest(c, "Email or phone required")
		return
	}

	go services.InviteToTrip(tripID, userID, req.Email, req.Phone)

	utils.SuccessResponse(c, http.StatusOK, "Invitation sent", nil)
}

// Helper: check trip membership
func isMember(tripID, userID uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.TripMember{}).Where("trip_id = ? AND user_id = ?", tripID, userID).Count(&count)
	return count > 0
}

// Helper: build full trip response with members and weights
func buildTripResponse(tripID uuid.UUID) models.TripResponse {
	var trip models.Trip
	database.DB.First(&trip, tripID)

	var members []models.TripMember
	database.DB.Where("trip_id = ?", tripID).Find(&members)

	var memberResponses []models.TripMemberResponse
	for _, m := range members {
		var user models.User
		database.DB.First(&user, m.UserID)
		memberResponses = append(memberResponses, models.TripMemberResponse{
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			AvatarURL: user.AvatarURL,
			Role:      m.Role,
			Weight:    m.Weight,
			JoinedAt:  m.JoinedAt,
		})
	}

	return models.TripResponse{
		ID:        trip.ID,
		Name:      trip.Name,
		ImageURL:  trip.ImageURL,
		CreatedBy: trip.CreatedBy,
		Members:   memberResponses,
		CreatedAt: trip.CreatedAt,
	}
}
