package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Trip struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string       `gorm:"not null;size:100" json:"name"`
	ImageURL  string       `json:"image_url,omitempty"`
	CreatedBy uuid.UUID    `gorm:"type:uuid" json:"created_by"`
	Creator   User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members   []TripMember `gorm:"foreignKey:TripID" json:"members,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TripMember carries the member's cost-share weight alongside the
// membership row. Weight defaults to 1 and must be >= 0; a member with
// weight 0 shares none of the expenses but can still be a payer.
type TripMember struct {
	TripID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"trip_id"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     string    `gorm:"default:member;size:20" json:"role"` // admin, member
	Weight   float64   `gorm:"default:1" json:"weight"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Request structs
type CreateTripRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members"` // list of user IDs or emails
}

type AddMemberRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// UpdateWeightsRequest is a sparse weight map; members absent from the
// map keep their current weight.
type UpdateWeightsRequest struct {
	Weights map[string]float64 `json:"weights" binding:"required"`
}

// Response structs
type TripResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	ImageURL  string               `json:"image_url,omitempty"`
	CreatedBy uuid.UUID            `json:"created_by"`
	Members   []TripMemberResponse `json:"members"`
	CreatedAt time.Time            `json:"created_at"`
}

type TripMemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	Weight    float64   `json:"weight"`
	JoinedAt  time.Time `json:"joined_at"`
}
