package crop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/events"
	"github.com/krishiconnect/krishi-backend/internal/media"
	"github.com/krishiconnect/krishi-backend/internal/space"
	"gorm.io/gorm"
)

type StepInput struct {
	Name        string
	Description string
}

type Input struct {
	CropName string
	Duration string
	Steps    []StepInput
}

type Service interface {
	Create(ctx context.Context, actor auth.Actor, spaceID uint, in Input) (*Crop, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*Crop, error)
	ListBySpace(ctx context.Context, actor auth.Actor, spaceID uint) ([]Crop, error)
	Update(ctx context.Context, actor auth.Actor, id uint, in Input) (*Crop, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	UploadProofs(ctx context.Context, actor auth.Actor, cropID uint, stepIndex int, files []*multipart.FileHeader) ([]Proof, error)
	ListProofs(ctx context.Context, actor auth.Actor, cropID uint) ([]Proof, error)
}

type service struct {
	repo      Repository
	spaces    space.Repository
	media     media.Service
	audit     auditlog.Service
	publisher events.Publisher
}

func NewService(repo Repository, spaces space.Repository, mediaSvc media.Service, audit auditlog.Service, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &service{repo: repo, spaces: spaces, media: mediaSvc, audit: audit, publisher: publisher}
}

type access int

const (
	accessView access = iota
	accessWrite
	accessUpload
)

// authorize loads the space and checks the caller against it.
//   view:   admin or either participant
//   write:  admin or the space's farmer
//   upload: admin or either participant
func (s *service) authorize(ctx context.Context, actor auth.Actor, spaceID *uint, need access) (*space.Space, error) {
	if spaceID == nil {
		if actor.IsAdmin() {
			return nil, nil
		}
		return nil, apperr.Forbidden("Only admins can access crops outside a space")
	}

	sp, err := s.spaces.FindByID(ctx, *spaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Space not found")
	}
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		return sp, nil
	}
	allowed := false
	switch need {
	case accessView, accessUpload:
		allowed = sp.CanView(actor)
	case accessWrite:
		allowed = actor.Role == auth.RoleFarmer && sp.FarmerUserID() == actor.UserID
	}
	if !allowed {
		return nil, apperr.Forbidden("You are not authorized for this crop")
	}
	return sp, nil
}

func (s *service) find(ctx context.Context, id uint) (*Crop, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Crop not found")
	}
	return c, err
}

func validate(in Input) error {
	if strings.TrimSpace(in.CropName) == "" {
		return apperr.Validation("Crop name is required")
	}
	if strings.TrimSpace(in.Duration) == "" {
		return apperr.Validation("Duration is required")
	}
	for i, st := range in.Steps {
		if strings.TrimSpace(st.Name) == "" {
			return apperr.Validation("Step %d needs a name", i)
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, spaceID uint, in Input) (*Crop, error) {
	sp, err := s.authorize(ctx, actor, &spaceID, accessWrite)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	steps := make([]Step, len(in.Steps))
	for i, st := range in.Steps {
		steps[i] = Step{Name: strings.TrimSpace(st.Name), Description: st.Description, Proofs: []string{}}
	}
	c := &Crop{
		CropName: strings.TrimSpace(in.CropName),
		Duration: strings.TrimSpace(in.Duration),
		Steps:    steps,
		SpaceID:  &sp.ID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "CROP_CREATED", c.ID, map[string]interface{}{"space_id": sp.ID, "crop_name": c.CropName})
	s.publish(ctx, events.Event{
		Type:       events.CropCreated,
		SpaceID:    sp.ID,
		CropID:     c.ID,
		ActorID:    actor.UserID,
		Recipients: sp.Participants(),
		Title:      "New crop plan",
		Message:    fmt.Sprintf("%s was added to space #%d", c.CropName, sp.ID),
	})
	return c, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*Crop, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, actor, c.SpaceID, accessView); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListBySpace(ctx context.Context, actor auth.Actor, spaceID uint) ([]Crop, error) {
	if _, err := s.authorize(ctx, actor, &spaceID, accessView); err != nil {
		return nil, err
	}
	items, err := s.repo.ListBySpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Crop{}
	}
	return items, nil
}

// Update replaces name, duration and steps. Proofs stay attached to the
// step at the same position; steps that already carry proofs cannot be
// dropped.
func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, in Input) (*Crop, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, actor, c.SpaceID, accessWrite); err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, c.ID, func(stored *Crop) error {
		old := normalizeSteps(stored.Steps)
		for i := len(in.Steps); i < len(old); i++ {
			if len(old[i].Proofs) > 0 {
				return apperr.Validation("Step %d has proofs and cannot be removed", i)
			}
		}

		steps := make([]Step, len(in.Steps))
		for i, st := range in.Steps {
			steps[i] = Step{Name: strings.TrimSpace(st.Name), Description: st.Description, Proofs: []string{}}
			if i < len(old) {
				steps[i].Proofs = old[i].Proofs
			}
		}

		stored.CropName = strings.TrimSpace(in.CropName)
		stored.Duration = strings.TrimSpace(in.Duration)
		stored.Steps = steps
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Crop not found")
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "CROP_UPDATED", updated.ID, nil)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	c, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorize(ctx, actor, c.SpaceID, accessWrite); err != nil {
		return err
	}
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Crop not found")
		}
		return err
	}
	s.record(ctx, actor, "CROP_DELETED", id, nil)
	return nil
}

// UploadProofs checks the step index, stores every file and appends the
// URLs to the step. Storage stops at the first failing file.
func (s *service) UploadProofs(ctx context.Context, actor auth.Actor, cropID uint, stepIndex int, files []*multipart.FileHeader) ([]Proof, error) {
	c, err := s.find(ctx, cropID)
	if err != nil {
		return nil, err
	}
	sp, err := s.authorize(ctx, actor, c.SpaceID, accessUpload)
	if err != nil {
		return nil, err
	}
	if stepIndex < 0 || stepIndex >= len(c.Steps) {
		return nil, apperr.Validation("Step index %d is out of range (crop has %d steps)", stepIndex, len(c.Steps))
	}

	urls, err := s.media.StoreAll(ctx, files)
	if err != nil {
		return nil, err
	}

	proofs, err := s.repo.AppendProofs(ctx, c.ID, stepIndex, urls, actor.UserID)
	if errors.Is(err, ErrStepOutOfRange) {
		return nil, apperr.Validation("Step index %d is out of range", stepIndex)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Crop not found")
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "PROOF_UPLOADED", c.ID, map[string]interface{}{"step_index": stepIndex, "files": len(urls)})
	if sp != nil {
		s.publish(ctx, events.Event{
			Type:       events.ProofUploaded,
			SpaceID:    sp.ID,
			CropID:     c.ID,
			ActorID:    actor.UserID,
			Recipients: sp.Participants(),
			Title:      "New proof uploaded",
			Message:    fmt.Sprintf("%d proof(s) added to step %d of %s", len(urls), stepIndex+1, c.CropName),
		})
	}
	return proofs, nil
}

func (s *service) ListProofs(ctx context.Context, actor auth.Actor, cropID uint) ([]Proof, error) {
	c, err := s.find(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, actor, c.SpaceID, accessView); err != nil {
		return nil, err
	}
	items, err := s.repo.ListProofs(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Proof{}
	}
	return items, nil
}

func (s *service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("⚠️ event %s for crop %d not published: %v", e.Type, e.CropID, err)
	}
}

func (s *service) record(ctx context.Context, actor auth.Actor, action string, id uint, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogAction(ctx, auditlog.Entry{
		UserID:     auditlog.Ptr(actor.UserID),
		Action:     action,
		TargetType: "crop",
		TargetID:   auditlog.Ptr(id),
		Details:    details,
		IP:         actor.IP,
	})
}
