package landlord

import (
	"context"
	"errors"
	"strings"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/validators"
	"gorm.io/gorm"
)

type Input struct {
	UserID      *uint // set by admins registering on behalf of a landlord
	PhoneNumber string
	SoilType    string
	Acres       int
	Location    string
	ImagesList  []string
}

type Service interface {
	Register(ctx context.Context, actor auth.Actor, in Input) (*LandlordDetails, error)
	Update(ctx context.Context, actor auth.Actor, userID uint, in Input) (*LandlordDetails, error)
	GetByUserID(ctx context.Context, actor auth.Actor, userID uint) (*LandlordDetails, error)
	List(ctx context.Context, location string) ([]LandlordDetails, error)
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

func (s *service) Register(ctx context.Context, actor auth.Actor, in Input) (*LandlordDetails, error) {
	userID, err := s.resolveTarget(ctx, actor, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, apperr.Conflict("Landlord already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	l := &LandlordDetails{UserID: userID}
	if err := apply(l, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Landlord already exists")
		}
		return nil, err
	}

	s.record(ctx, actor, "LANDLORD_REGISTERED", l.ID, map[string]interface{}{"user_id": userID, "acres": l.Acres})
	return l, nil
}

func (s *service) resolveTarget(ctx context.Context, actor auth.Actor, requested *uint) (uint, error) {
	switch actor.Role {
	case auth.RoleLandlord:
		if requested != nil && *requested != actor.UserID {
			return 0, apperr.Forbidden("Landlords can only register their own details")
		}
		return actor.UserID, nil
	case auth.RoleAdmin:
		if requested == nil || *requested == 0 {
			return 0, apperr.Validation("Please provide the landlord's user_id")
		}
		u, err := s.users.FindByID(ctx, *requested)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("User not found")
		}
		if err != nil {
			return 0, err
		}
		if u.Role != auth.RoleLandlord {
			return 0, apperr.Validation("User %d is not a landlord", u.ID)
		}
		return u.ID, nil
	default:
		return 0, apperr.Forbidden("You don't have permission to register landlord details")
	}
}

func apply(l *LandlordDetails, in Input) error {
	if err := validators.ValidateLandlord(in.SoilType, in.Acres, in.Location, in.ImagesList); err != nil {
		return err
	}
	phone, err := validators.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return err
	}

	l.SoilType = strings.TrimSpace(in.SoilType)
	l.Acres = in.Acres
	l.Location = strings.TrimSpace(in.Location)
	l.ImagesList = append([]string{}, in.ImagesList...)
	l.PhoneNumber = nil
	if phone != "" {
		l.PhoneNumber = &phone
	}
	return nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, userID uint, in Input) (*LandlordDetails, error) {
	l, err := s.GetByUserID(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if err := apply(l, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "LANDLORD_UPDATED", l.ID, map[string]interface{}{"user_id": l.UserID})
	return l, nil
}

func (s *service) GetByUserID(ctx context.Context, actor auth.Actor, userID uint) (*LandlordDetails, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, apperr.Forbidden("You are not authorized to access this landlord")
	}
	l, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Landlord not found")
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) List(ctx context.Context, location string) ([]LandlordDetails, error) {
	items, err := s.repo.List(ctx, strings.ToLower(strings.TrimSpace(location)))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []LandlordDetails{}
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only admins can delete landlords")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Landlord not found")
		}
		return err
	}

	n, err := s.repo.CountSpaces(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("Landlord is part of %d space(s); remove them first", n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "LANDLORD_DELETED", id, nil)
	return nil
}

func (s *service) record(ctx context.Context, actor auth.Actor, action string, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogAction(ctx, auditlog.Entry{
		UserID:     auditlog.Ptr(actor.UserID),
		Action:     action,
		TargetType: "landlord",
		TargetID:   auditlog.Ptr(id),
		Details:    details,
		IP:         actor.IP,
	})
}
