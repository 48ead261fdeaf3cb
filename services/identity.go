package services

import (
	"context"
	"time"
	"tripsplit-backend/database"
	"tripsplit-backend/models"
	"tripsplit-backend/settlement"

	"github.com/google/uuid"
)

const nameCacheTTL = time.Hour

// ResolveNames maps user IDs to display names, going through the Redis
// cache when available and falling back to the database. IDs that resolve
// to nothing are simply omitted; the engine's Roster degrades them to a
// truncated identifier rather than erroring.
func ResolveNames(ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	var misses []uuid.UUID

	if database.Redis != nil {
		ctx := context.Background()
		for _, id := range ids {
			val, err := database.Redis.Get(ctx, nameCacheKey(id)).Result()
			if err == nil && val != "" {
				names[id] = val
			} else {
				misses = append(misses, id)
			}
		}
	} else {
		misses = ids
	}

	if len(misses) > 0 {
		var users []models.User
		database.DB.Where("id IN ?", misses).Find(&users)
		for _, u := range users {
			names[u.ID] = u.Name
			if database.Redis != nil {
				database.Redis.Set(context.Background(), nameCacheKey(u.ID), u.Name, nameCacheTTL)
			}
		}
	}

	return names
}

// InvalidateName drops a cached display name after a profile update.
func InvalidateName(id uuid.UUID) {
	if database.Redis != nil {
		database.Redis.Del(context.Background(), nameCacheKey(id))
	}
}

func nameCacheKey(id uuid.UUID) string {
	return "user:name:" + id.String()
}

// BuildRoster assembles the engine's name resolver for a request: the
// viewing user plus everyone who can appear in the plan.
func BuildRoster(self uuid.UUID, ids []uuid.UUID) settlement.Roster {
	return settlement.Roster{
		Self:  self,
		Names: ResolveNames(ids),
	}
}
