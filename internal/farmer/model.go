package farmer

import (
	"time"

	"github.com/krishiconnect/krishi-backend/internal/auth"
	"gorm.io/datatypes"
)

type FarmerDetails struct {
	ID                   uint                        `gorm:"primaryKey" json:"id"`
	UserID               uint                        `gorm:"not null;uniqueIndex" json:"user_id"`
	User                 *auth.User                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PhoneNumber          *string                     `gorm:"size:20" json:"phone_number"`
	LandHandlingCapacity int                         `gorm:"not null" json:"land_handling_capacity"`
	PreferredLocations   datatypes.JSONSlice[string] `json:"preferred_locations"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

func (FarmerDetails) TableName() string { return "farmer_details" }
