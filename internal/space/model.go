package space

import (
	"time"

	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/farmer"
	"github.com/krishiconnect/krishi-backend/internal/landlord"
	"gorm.io/datatypes"
)

// Space is an admin-made pairing of one farmer and one landlord.
type Space struct {
	ID          uint                      `gorm:"primaryKey" json:"id"`
	FarmerID    uint                      `gorm:"not null;index" json:"farmer_id"`
	Farmer      *farmer.FarmerDetails     `gorm:"foreignKey:FarmerID;constraint:OnDelete:RESTRICT" json:"farmer,omitempty"`
	LandlordID  uint                      `gorm:"not null;index" json:"landlord_id"`
	Landlord    *landlord.LandlordDetails `gorm:"foreignKey:LandlordID;constraint:OnDelete:RESTRICT" json:"landlord,omitempty"`
	AdminID     uint                      `gorm:"not null;index" json:"admin_id"`
	Admin       *auth.User                `gorm:"foreignKey:AdminID" json:"-"`
	Description string                    `gorm:"type:text" json:"description"`
	Progress    datatypes.JSON            `json:"progress"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

func (Space) TableName() string { return "spaces" }

// FarmerUserID is the user id behind the farmer profile. Requires Farmer
// to be loaded.
func (s *Space) FarmerUserID() uint {
	if s.Farmer == nil {
		return 0
	}
	return s.Farmer.UserID
}

func (s *Space) LandlordUserID() uint {
	if s.Landlord == nil {
		return 0
	}
	return s.Landlord.UserID
}

// Participants returns the farmer and landlord user ids.
func (s *Space) Participants() []uint {
	return []uint{s.FarmerUserID(), s.LandlordUserID()}
}

// CanView reports whether the caller may read the space.
func (s *Space) CanView(a auth.Actor) bool {
	if a.IsAdmin() {
		return true
	}
	switch a.Role {
	case auth.RoleFarmer:
		return s.FarmerUserID() == a.UserID
	case auth.RoleLandlord:
		return s.LandlordUserID() == a.UserID
	}
	return false
}
