package crop

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStepOutOfRange is returned when a proof targets a step the crop does
// not have.
var ErrStepOutOfRange = errors.New("step index out of range")

type Repository interface {
	Create(ctx context.Context, c *Crop) error
	Update(ctx context.Context, id uint, apply func(c *Crop) error) (*Crop, error)
	FindByID(ctx context.Context, id uint) (*Crop, error)
	ListBySpace(ctx context.Context, spaceID uint) ([]Crop, error)
	DeleteCascade(ctx context.Context, id uint) error
	AppendProofs(ctx context.Context, cropID uint, stepIndex int, urls []string, uploadedBy uint) ([]Proof, error)
	ListProofs(ctx context.Context, cropID uint) ([]Proof, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Crop) error {
	return r.db.WithContext(ctx).Omit("Space").Create(c).Error
}

// forUpdate locks the crop row on postgres. SQLite serializes writers on
// its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Update re-reads the crop under the same lock AppendProofs takes, lets
// apply change it and saves the result in the same transaction.
func (r *repository) Update(ctx context.Context, id uint, apply func(c *Crop) error) (*Crop, error) {
	var c Crop
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&c, id).Error; err != nil {
			return err
		}
		if err := apply(&c); err != nil {
			return err
		}
		return tx.Omit("Space").Save(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Crop, error) {
	var c Crop
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListBySpace(ctx context.Context, spaceID uint) ([]Crop, error) {
	var items []Crop
	err := r.db.WithContext(ctx).Where("space_id = ?", spaceID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("crop_id = ?", id).Delete(&Proof{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Crop{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AppendProofs re-reads the crop inside a transaction, checks the step
// index against its current steps and appends the URLs to that step.
func (r *repository) AppendProofs(ctx context.Context, cropID uint, stepIndex int, urls []string, uploadedBy uint) ([]Proof, error) {
	var proofs []Proof
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Crop
		if err := forUpdate(tx).First(&c, cropID).Error; err != nil {
			return err
		}
		if stepIndex < 0 || stepIndex >= len(c.Steps) {
			return ErrStepOutOfRange
		}

		steps := normalizeSteps(c.Steps)
		steps[stepIndex].Proofs = append(steps[stepIndex].Proofs, urls...)
		if err := tx.Model(&Crop{ID: c.ID}).Update("steps", datatypes.JSONSlice[Step](steps)).Error; err != nil {
			return err
		}

		proofs = make([]Proof, 0, len(urls))
		for _, u := range urls {
			proofs = append(proofs, Proof{FileURL: u, CropID: c.ID, StepIndex: stepIndex, UploadedBy: uploadedBy})
		}
		if len(proofs) == 0 {
			return nil
		}
		return tx.Omit("Crop").Create(&proofs).Error
	})
	if err != nil {
		return nil, err
	}
	return proofs, nil
}

func (r *repository) ListProofs(ctx context.Context, cropID uint) ([]Proof, error) {
	var items []Proof
	err := r.db.WithContext(ctx).Where("crop_id = ?", cropID).Order("step_index ASC, id ASC").Find(&items).Error
	return items, err
}
