package farmer

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, f *FarmerDetails) error
	Update(ctx context.Context, f *FarmerDetails) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*FarmerDetails, error)
	FindByUserID(ctx context.Context, userID uint) (*FarmerDetails, error)
	List(ctx context.Context) ([]FarmerDetails, error)
	CountSpaces(ctx context.Context, farmerID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *FarmerDetails) error {
	return r.db.WithContext(ctx).Omit("User").Create(f).Error
}

func (r *repository) Update(ctx context.Context, f *FarmerDetails) error {
	return r.db.WithContext(ctx).Omit("User").Save(f).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&FarmerDetails{}, id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*FarmerDetails, error) {
	var f FarmerDetails
	if err := r.db.WithContext(ctx).Preload("User").First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) (*FarmerDetails, error) {
	var f FarmerDetails
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) List(ctx context.Context) ([]FarmerDetails, error) {
	var items []FarmerDetails
	err := r.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&items).Error
	return items, err
}

// CountSpaces counts spaces that still reference the farmer profile.
func (r *repository) CountSpaces(ctx context.Context, farmerID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("spaces").Where("farmer_id = ?", farmerID).Count(&n).Error
	return n, err
}
