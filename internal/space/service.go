package space

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/events"
	"github.com/krishiconnect/krishi-backend/internal/farmer"
	"github.com/krishiconnect/krishi-backend/internal/landlord"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConnectInput struct {
	FarmerUserID   uint
	LandlordUserID uint
	Description    string
}

type UpdateInput struct {
	Description *string
	Progress    json.RawMessage
}

type Service interface {
	Connect(ctx context.Context, actor auth.Actor, in ConnectInput) (*Space, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*Space, error)
	List(ctx context.Context, actor auth.Actor) ([]Space, error)
	ListByAdmin(ctx context.Context, actor auth.Actor) ([]Space, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, actor auth.Actor, id uint, in UpdateInput) (*Space, error)
	Remove(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo      Repository
	farmers   farmer.Repository
	landlords landlord.Repository
	users     auth.Repository
	audit     auditlog.Service
	publisher events.Publisher
}

func NewService(repo Repository, farmers farmer.Repository, landlords landlord.Repository, users auth.Repository, audit auditlog.Service, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{
		repo:      repo,
		farmers:   farmers,
		landlords: landlords,
		users:     users,
		audit:     audit,
		publisher: publisher,
	}
}

// Connect pairs the farmer and landlord owned by the given user ids.
func (s *service) Connect(ctx context.Context, actor auth.Actor, in ConnectInput) (*Space, error) {
	isAdmin, err := s.users.IsAdmin(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperr.Forbidden("Only admins can create connections")
	}

	f, err := s.farmers.FindByUserID(ctx, in.FarmerUserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	l, lerr := s.landlords.FindByUserID(ctx, in.LandlordUserID)
	if lerr != nil && !errors.Is(lerr, gorm.ErrRecordNotFound) {
		return nil, lerr
	}
	if f == nil || l == nil {
		return nil, apperr.NotFound("Farmer or Landlord not found")
	}

	sp := &Space{
		FarmerID:    f.ID,
		LandlordID:  l.ID,
		AdminID:     actor.UserID,
		Description: in.Description,
		Progress:    datatypes.JSON("{}"),
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	sp.Farmer = f
	sp.Landlord = l

	s.record(ctx, actor, "SPACE_CREATED", sp.ID, map[string]interface{}{"farmer_id": f.ID, "landlord_id": l.ID})
	s.publish(ctx, events.Event{
		Type:       events.SpaceCreated,
		SpaceID:    sp.ID,
		ActorID:    actor.UserID,
		Recipients: sp.Participants(),
		Title:      "New collaboration space",
		Message:    fmt.Sprintf("You have been connected in space #%d", sp.ID),
	})
	return sp, nil
}

func (s *service) find(ctx context.Context, id uint) (*Space, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Space not found")
	}
	return sp, err
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*Space, error) {
	sp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sp.CanView(actor) {
		return nil, apperr.Forbidden("You are not a participant of this space")
	}
	return sp, nil
}

// List returns every space for admins and the caller's own spaces otherwise.
func (s *service) List(ctx context.Context, actor auth.Actor) ([]Space, error) {
	var (
		items []Space
		err   error
	)
	if actor.IsAdmin() {
		items, err = s.repo.List(ctx)
	} else {
		items, err = s.repo.ListForUser(ctx, actor.UserID)
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Space{}
	}
	return items, nil
}

func (s *service) ListByAdmin(ctx context.Context, actor auth.Actor) ([]Space, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can list their spaces")
	}
	items, err := s.repo.ListByAdmin(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Space{}
	}
	return items, nil
}

func (s *service) CountForUser(ctx context.Context, userID uint) (int64, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("User not found")
		}
		return 0, err
	}
	return s.repo.CountForUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, in UpdateInput) (*Space, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can update spaces")
	}
	sp, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Description != nil {
		sp.Description = *in.Description
	}
	if len(in.Progress) > 0 {
		var doc map[string]interface{}
		if err := json.Unmarshal(in.Progress, &doc); err != nil || doc == nil {
			return nil, apperr.Validation("Progress must be a JSON object")
		}
		sp.Progress = datatypes.JSON(in.Progress)
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, err
	}
	s.record(ctx, actor, "SPACE_UPDATED", sp.ID, nil)
	return sp, nil
}

// Remove deletes the space and cascades to its crops and proofs.
func (s *service) Remove(ctx context.Context, actor auth.Actor, id uint) error {
	isAdmin, err := s.users.IsAdmin(ctx, actor.Email)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.Forbidden("Only admins can remove spaces")
	}

	sp, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Space not found")
		}
		return err
	}

	s.record(ctx, actor, "SPACE_REMOVED", id, nil)
	s.publish(ctx, events.Event{
		Type:       events.SpaceRemoved,
		SpaceID:    id,
		ActorID:    actor.UserID,
		Recipients: sp.Participants(),
		Title:      "Collaboration space removed",
		Message:    fmt.Sprintf("Space #%d was removed by an admin", id),
	})
	return nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("⚠️ event %s for space %d not published: %v", e.Type, e.SpaceID, err)
	}
}

func (s *service) record(ctx context.Context, actor auth.Actor, action string, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogAction(ctx, auditlog.Entry{
		UserID:     auditlog.Ptr(actor.UserID),
		Action:     action,
		TargetType: "space",
		TargetID:   auditlog.Ptr(id),
		Details:    details,
		IP:         actor.IP,
	})
}
