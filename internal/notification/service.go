package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/events"
	"github.com/redis/go-redis/v9"
)

// ErrStreamUnavailable is returned by Subscribe when redis is not configured.
var ErrStreamUnavailable = errors.New("notification stream requires redis")

type Service interface {
	CreateInAppNotification(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	HandleEvent(ctx context.Context, e events.Event) error
	Subscribe(ctx context.Context, userID uint) (*redis.PubSub, error)
}

type service struct {
	repo Repository
	rdb  *redis.Client // optional
}

func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

func userChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// CreateInAppNotification stores the notification and pushes it to live
// streams. A failed publish is logged only.
func (s *service) CreateInAppNotification(ctx context.Context, n *InAppNotification) error {
	if err := s.repo.CreateInApp(ctx, n); err != nil {
		return err
	}

	if s.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	if err := s.rdb.Publish(ctx, userChannel(n.UserID), string(payload)).Err(); err != nil {
		log.Printf("⚠️ notification %d not published: %v", n.ID, err)
	}
	return nil
}

func (s *service) ListInAppByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]InAppNotification, error) {
	items, err := s.repo.ListInAppByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []InAppNotification{}
	}
	return items, nil
}

func (s *service) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	ok, err := s.repo.MarkInAppAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("Notification not found")
	}
	return nil
}

// HandleEvent fans one domain event out to its recipients, skipping the
// user who caused it.
func (s *service) HandleEvent(ctx context.Context, e events.Event) error {
	seen := make(map[uint]bool, len(e.Recipients))
	var firstErr error
	for _, userID := range e.Recipients {
		if userID == 0 || userID == e.ActorID || seen[userID] {
			continue
		}
		seen[userID] = true

		n := &InAppNotification{
			UserID:   userID,
			SpaceID:  e.SpaceID,
			Title:    e.Title,
			Message:  e.Message,
			Category: e.Type,
		}
		if e.CropID != 0 {
			cropID := e.CropID
			n.CropID = &cropID
		}
		if err := s.CreateInAppNotification(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Subscribe opens a pub/sub subscription on the user's channel.
func (s *service) Subscribe(ctx context.Context, userID uint) (*redis.PubSub, error) {
	if s.rdb == nil {
		return nil, ErrStreamUnavailable
	}
	sub := s.rdb.Subscribe(ctx, userChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	return sub, nil
}
