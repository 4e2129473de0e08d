package landlord

import (
	"time"

	"github.com/krishiconnect/krishi-backend/internal/auth"
	"gorm.io/datatypes"
)

type LandlordDetails struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	UserID      uint                        `gorm:"not null;uniqueIndex" json:"user_id"`
	User        *auth.User                  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	PhoneNumber *string                     `gorm:"size:20" json:"phone_number"`
	SoilType    string                      `gorm:"size:100;not null" json:"soil_type"`
	Acres       int                         `gorm:"not null" json:"acres"`
	Location    string                      `gorm:"size:255;not null;index" json:"location"`
	ImagesList  datatypes.JSONSlice[string] `json:"images_list"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (LandlordDetails) TableName() string { return "landlord_details" }
