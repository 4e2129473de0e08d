package farmer

import (
	"context"
	"errors"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/validators"
	"gorm.io/gorm"
)

type Input struct {
	UserID               *uint // set by admins registering on behalf of a farmer
	PhoneNumber          string
	LandHandlingCapacity int
	PreferredLocations   []string
}

type Service interface {
	Register(ctx context.Context, actor auth.Actor, in Input) (*FarmerDetails, error)
	Update(ctx context.Context, actor auth.Actor, userID uint, in Input) (*FarmerDetails, error)
	GetByUserID(ctx context.Context, actor auth.Actor, userID uint) (*FarmerDetails, error)
	List(ctx context.Context) ([]FarmerDetails, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo  Repository
	users auth.Repository
	audit auditlog.Service
}

func NewService(repo Repository, users auth.Repository, audit auditlog.Service) Service {
	return &service{repo: repo, users: users, audit: audit}
}

// Register creates the farmer profile. Farmers register themselves; admins
// must name the farmer's user id.
func (s *service) Register(ctx context.Context, actor auth.Actor, in Input) (*FarmerDetails, error) {
	userID, err := s.resolveTarget(ctx, actor, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, apperr.Conflict("Farmer already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &FarmerDetails{UserID: userID}
	if err := apply(f, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Farmer already exists")
		}
		return nil, err
	}

	s.record(ctx, actor, "FARMER_REGISTERED", f.ID, map[string]interface{}{"user_id": userID})
	return f, nil
}

func (s *service) resolveTarget(ctx context.Context, actor auth.Actor, requested *uint) (uint, error) {
	switch actor.Role {
	case auth.RoleFarmer:
		if requested != nil && *requested != actor.UserID {
			return 0, apperr.Forbidden("Farmers can only register their own details")
		}
		return actor.UserID, nil
	case auth.RoleAdmin:
		if requested == nil || *requested == 0 {
			return 0, apperr.Validation("Please provide the farmer's user_id")
		}
		u, err := s.users.FindByID(ctx, *requested)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("User not found")
		}
		if err != nil {
			return 0, err
		}
		if u.Role != auth.RoleFarmer {
			return 0, apperr.Validation("User %d is not a farmer", u.ID)
		}
		return u.ID, nil
	default:
		return 0, apperr.Forbidden("You don't have permission to register farmer details")
	}
}

func apply(f *FarmerDetails, in Input) error {
	if err := validators.ValidateFarmer(in.LandHandlingCapacity); err != nil {
		return err
	}
	if err := validators.ValidateLocations(in.PreferredLocations); err != nil {
		return err
	}
	phone, err := validators.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return err
	}

	f.LandHandlingCapacity = in.LandHandlingCapacity
	f.PreferredLocations = append([]string{}, in.PreferredLocations...)
	f.PhoneNumber = nil
	if phone != "" {
		f.PhoneNumber = &phone
	}
	return nil
}

// Update replaces the profile fields. Admins may update any farmer, a farmer
// only their own row.
func (s *service) Update(ctx context.Context, actor auth.Actor, userID uint, in Input) (*FarmerDetails, error) {
	f, err := s.GetByUserID(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if err := apply(f, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "FARMER_UPDATED", f.ID, map[string]interface{}{"user_id": f.UserID})
	return f, nil
}

func (s *service) GetByUserID(ctx context.Context, actor auth.Actor, userID uint) (*FarmerDetails, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperr.Forbidden("You are not authorized to access this farmer")
	}
	f, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Farmer not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context) ([]FarmerDetails, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []FarmerDetails{}
	}
	return items, nil
}

// Delete removes a farmer profile by its id. Profiles still paired in a
// space are kept.
func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only admins can delete farmers")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Farmer not found")
		}
		return err
	}

	n, err := s.repo.CountSpaces(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("Farmer is part of %d space(s); remove them first", n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "FARMER_DELETED", id, nil)
	return nil
}

func (s *service) record(ctx context.Context, actor auth.Actor, action string, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogAction(ctx, auditlog.Entry{
		UserID:     auditlog.Ptr(actor.UserID),
		Action:     action,
		TargetType: "farmer",
		TargetID:   auditlog.Ptr(id),
		Details:    details,
		IP:         actor.IP,
	})
}
