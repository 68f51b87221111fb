package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/inkedmayhem/content-pipeline/pkg/kafka/producer"
)

// EventNotifier publishes pipeline events to the notification topic. The
// delivery service (email, chat) consumes them downstream; the pipeline
// never depends on the outcome.
type EventNotifier struct {
	producer *producer.Producer
	topic    string
}

func NewEventNotifier(p *producer.Producer, topic string) *EventNotifier {
	return &EventNotifier{
		producer: p,
		topic:    topic,
	}
}

type event struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	EmittedAt time.Time      `json:"emittedAt"`
}

func (n *EventNotifier) Notify(ctx context.Context, eventType string, payload map[string]any) error {
	value, err := json.Marshal(event{
		Type:      eventType,
		Payload:   payload,
		EmittedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("EventNotifier - Notify - json.Marshal: %w", err)
	}

	err = n.producer.Writer.WriteMessages(ctx, kafka.Message{
		Topic: n.topic,
		Key:   []byte(eventType),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("EventNotifier - Notify - n.producer.Writer.WriteMessages: %w", err)
	}

	return nil
}

func (n *EventNotifier) Close() error {
	return n.producer.Close()
}
