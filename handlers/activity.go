package handlers

import (
	"net/http"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActivityFeed handles GET /api/activity: recent activity across all
// trips the user belongs to, with trip names attached.
func GetActivityFeed(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var memberships []models.TripMember
	database.DB.Where("user_id = ?", userID).Find(&memberships)

	if len(memberships) == 0 {
		utils.SuccessResponse(c, http.StatusOK, "", []models.Activity{})
		return
	}

	tripIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		tripIDs = append(tripIDs, m.TripID)
	}

	var activities []models.Activity
	database.DB.Where("trip_id IN ?", tripIDs).
		Preload("User").
		Order("created_at DESC").
		Offset(pagination.Offset()).Limit(pagination.Limit).
		Find(&activities)

	attachTripNames(activities, tripIDs)

	utils.SuccessResponse(c, http.StatusOK, "", activities)
}

// GetTripActivity handles GET /api/trips/:id/activity
func GetTripActivity(c *gin.Context) {
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

	var activities []models.Activity
	database.DB.Where("trip_id = ?", tripID).
		Preload("User").
		Order("created_at DESC").
		Offset(pagination.Offset()).Limit(pagination.Limit).
		Find(&activities)

	utils.SuccessResponse(c, http.StatusOK, "", activities)
}

func attachTripNames(activities []models.Activity, tripIDs []uuid.UUID) {
	var trips []models.Trip
	database.DB.Select("id", "name").Where("id IN ?", tripIDs).Find(&trips)

	names := make(map[uuid.UUID]string, len(trips))
	for _, t := range trips {
		names[t.ID] = t.Name
	}
	for i := range activities {
		activities[i].TripName = names[activities[i].TripID]
	}
}
