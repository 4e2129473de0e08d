// Package events carries domain events from the space and crop services to
// whoever turns them into notifications.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event types
const (
	SpaceCreated  = "space.created"
	SpaceRemoved  = "space.removed"
	CropCreated   = "crop.created"
	ProofUploaded = "proof.uploaded"
)

type Event struct {
	Type       string    `json:"type"`
	SpaceID    uint      `json:"space_id"`
	CropID     uint      `json:"crop_id,omitempty"`
	ActorID    uint      `json:"actor_id"`
	Recipients []uint    `json:"recipients"` // user ids
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Handler consumes one event.
type Handler func(ctx context.Context, e Event) error

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// InProcess dispatches synchronously to the subscribed handlers. Handler
// errors are logged, never returned to the publisher.
type InProcess struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewInProcess() *InProcess { return &InProcess{} }

func (p *InProcess) Subscribe(h Handler) {
	p.mu.Lock()
	p.handlers = append(p.handlers, h)
	p.mu.Unlock()
}

func (p *InProcess) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	p.mu.RLock()
	handlers := append([]Handler(nil), p.handlers...)
	p.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, e); err != nil {
			log.Printf("⚠️ event %s handler failed: %v", e.Type, err)
		}
	}
	return nil
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	w MessageWriter
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Type),
		Value: payload,
		Time:  e.OccurredAt,
	})
}

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consume reads events until ctx is cancelled. Undecodable messages are
// skipped.
func Consume(ctx context.Context, r MessageReader, h Handler) error {
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var e Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			log.Printf("⚠️ skipping malformed event at offset %d: %v", msg.Offset, err)
			continue
		}
		if err := h(ctx, e); err != nil {
			log.Printf("❌ event %s handler failed: %v", e.Type, err)
		}
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
