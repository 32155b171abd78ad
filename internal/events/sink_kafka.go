package events

import (
	"context"
	"encoding/json"
	"fmt"

	"careteam/internal/platform/kafka"
)

// KafkaSink produces events as JSON records keyed by client id, so all
// events for one client land on the same partition in order.
type KafkaSink struct {
	client *kafka.Client
	topic  string
}

func NewKafkaSink(client *kafka.Client, topic string) *KafkaSink {
	return &KafkaSink{client: client, topic: topic}
}

func (s *KafkaSink) Deliver(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return s.client.Produce(ctx, s.topic, []byte(event.ClientID), value)
}
