package landlord

import (
	"context"

	"github.com/krishiconnect/krishi-backend/utils"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *LandlordDetails) error
	Update(ctx context.Context, l *LandlordDetails) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*LandlordDetails, error)
	FindByUserID(ctx context.Context, userID uint) (*LandlordDetails, error)
	List(ctx context.Context, location string) ([]LandlordDetails, error)
	CountSpaces(ctx context.Context, landlordID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *LandlordDetails) error {
	return r.db.WithContext(ctx).Omit("User").Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *LandlordDetails) error {
	return r.db.WithContext(ctx).Omit("User").Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&LandlordDetails{}, id).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LandlordDetails, error) {
	var l LandlordDetails
	if err := r.db.WithContext(ctx).Preload("User").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) (*LandlordDetails, error) {
	var l LandlordDetails
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List optionally narrows by a case-insensitive location substring.
func (r *repository) List(ctx context.Context, location string) ([]LandlordDetails, error) {
	var items []LandlordDetails
	q := r.db.WithContext(ctx).Preload("User")
	if location != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, utils.ContainsPattern(location))
	}
	err := q.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *repository) CountSpaces(ctx context.Context, landlordID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("spaces").Where("landlord_id = ?", landlordID).Count(&n).Error
	return n, err
}
