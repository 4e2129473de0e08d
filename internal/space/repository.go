package space

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, s *Space) error
	Update(ctx context.Context, s *Space) error
	FindByID(ctx context.Context, id uint) (*Space, error)
	List(ctx context.Context) ([]Space, error)
	ListByAdmin(ctx context.Context, adminID uint) ([]Space, error)
	ListForUser(ctx context.Context, userID uint) ([]Space, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
	DeleteCascade(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Farmer").Preload("Landlord")
}

func (r *repository) Create(ctx context.Context, s *Space) error {
	return r.db.WithContext(ctx).Omit("Farmer", "Landlord", "Admin").Create(s).Error
}

func (r *repository) Update(ctx context.Context, s *Space) error {
	return r.db.WithContext(ctx).
		Model(&Space{ID: s.ID}).
		Updates(map[string]interface{}{"description": s.Description, "progress": s.Progress}).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Space, error) {
	var s Space
	if err := r.withProfiles(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Space, error) {
	var items []Space
	err := r.withProfiles(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *repository) ListByAdmin(ctx context.Context, adminID uint) ([]Space, error) {
	var items []Space
	err := r.withProfiles(ctx).Where("admin_id = ?", adminID).Order("id ASC").Find(&items).Error
	return items, err
}

// participantWhere matches spaces whose farmer or landlord profile belongs to a user.
const participantWhere = "farmer_id IN (SELECT id FROM farmer_details WHERE user_id = ?) OR landlord_id IN (SELECT id FROM landlord_details WHERE user_id = ?)"

func (r *repository) ListForUser(ctx context.Context, userID uint) ([]Space, error) {
	var items []Space
	err := r.withProfiles(ctx).Where("("+participantWhere+")", userID, userID).Order("id ASC").Find(&items).Error
	return items, err
}

// CountForUser counts spaces the user created as admin or takes part in.
func (r *repository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Space{}).
		Where("(admin_id = ? OR "+participantWhere+")", userID, userID, userID).
		Count(&n).Error
	return n, err
}

// DeleteCascade removes the space with its crops and their proofs in one
// transaction.
func (r *repository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM proofs WHERE crop_id IN (SELECT id FROM crops WHERE space_id = ?)", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM crops WHERE space_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Space{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
