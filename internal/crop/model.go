package crop

import (
	"time"

	"github.com/krishiconnect/krishi-backend/internal/space"
	"gorm.io/datatypes"
)

// Step is one cultivation step. Proofs holds the uploaded proof URLs in
// upload order.
type Step struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Proofs      []string `json:"proofs"`
}

type Crop struct {
	ID        uint                      `gorm:"primaryKey" json:"id"`
	CropName  string                    `gorm:"size:150;not null" json:"crop_name"`
	Duration  string                    `gorm:"size:100;not null" json:"duration"`
	Steps     datatypes.JSONSlice[Step] `json:"steps"`
	SpaceID   *uint                     `gorm:"index" json:"space_id"`
	Space     *space.Space              `gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

func (Crop) TableName() string { return "crops" }

type Proof struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FileURL    string    `gorm:"size:500;not null" json:"file_url"`
	CropID     uint      `gorm:"not null;index" json:"crop_id"`
	Crop       *Crop     `gorm:"foreignKey:CropID;constraint:OnDelete:CASCADE" json:"-"`
	StepIndex  int       `gorm:"not null" json:"step_index"`
	UploadedBy uint      `gorm:"index" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Proof) TableName() string { return "proofs" }

// normalizeSteps makes every step carry a non-nil proof list so the stored
// document always has the same shape.
func normalizeSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = s
		if out[i].Proofs == nil {
			out[i].Proofs = []string{}
		}
	}
	return out
}
