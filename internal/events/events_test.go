package events

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type memoryQueue struct {
	msgs []kafka.Message
}

func (q *memoryQueue) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	q.msgs = append(q.msgs, msgs...)
	return nil
}

func (q *memoryQueue) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(q.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, nil
}

func TestInProcessDispatchesToAllHandlers(t *testing.T) {
	p := NewInProcess()
	var got []string
	p.Subscribe(func(_ context.Context, e Event) error {
		got = append(got, "a:"+e.Type)
		return errors.New("boom")
	})
	p.Subscribe(func(_ context.Context, e Event) error {
		got = append(got, "b:"+e.Type)
		return nil
	})

	if err := p.Publish(context.Background(), Event{Type: SpaceCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 || got[0] != "a:space.created" || got[1] != "b:space.created" {
		t.Fatalf("unexpected dispatch order %v", got)
	}
}

func TestKafkaPublishAndConsume(t *testing.T) {
	q := &memoryQueue{}
	pub := NewKafkaPublisher(q)
	ctx := context.Background()

	if err := pub.Publish(ctx, Event{Type: ProofUploaded, SpaceID: 4, CropID: 9, Recipients: []uint{1, 2}}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	q.msgs = append(q.msgs, kafka.Message{Value: []byte("not json")})
	if err := pub.Publish(ctx, Event{Type: CropCreated, SpaceID: 4}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if string(q.msgs[0].Key) != ProofUploaded {
		t.Fatalf("expected message key to be the event type, got %q", q.msgs[0].Key)
	}

	var seen []Event
	err := Consume(ctx, q, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 decoded events, got %d", len(seen))
	}
	if seen[0].CropID != 9 || len(seen[0].Recipients) != 2 || seen[0].OccurredAt.IsZero() {
		t.Errorf("unexpected first event %+v", seen[0])
	}
}
