package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Envelope wraps every published event. The key of the kafka message is the
// entity id so that all events for one entity stay ordered on one partition.
type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

const (
	TopicOrderEvents      = "order_events"
	TopicBlogEvents       = "blog_events"
	TopicMarketingEvents  = "marketing_events"
	EventOrderCreated     = "order_created"
	EventOrderStatusSet   = "order_status_updated"
	EventCommentCreated   = "comment_created"
	EventCommentApproved  = "comment_approved"
	EventSubscribed       = "subscription_created"
	EventUnsubscribed     = "subscription_cancelled"
	EventWhatsappOptIn    = "whatsapp_contact_created"
	EventWhatsappOptOut   = "whatsapp_contact_deactivated"
)

type Producer struct {
	w *kafka.Writer
}

func NewProducer(address []string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(address...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key, eventType string, payload any) error {
	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.w.Close()
}
