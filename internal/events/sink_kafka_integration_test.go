//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"careteam/internal/events"
	"careteam/internal/platform/kafka"
	"careteam/pkg/testutil/containers"
)

func TestKafkaSinkDeliversKeyedEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redpanda := containers.NewRedpandaContainer(t)
	const topic = "careteam.events.test"

	client, err := kafka.New(ctx, []string{redpanda.Broker}, topic)
	require.NoError(t, err)
	defer client.Close()

	sink := events.NewKafkaSink(client, topic)

	sent := events.Event{
		Type:      events.TypeStatusChanged,
		Timestamp: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
		ClientID:  "client-1",
		Reason:    "admitted",
		ActorID:   "coordinator-1",
	}
	require.NoError(t, sink.Deliver(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "client-1", string(records[0].Key))

	var got events.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, sent.Type, got.Type)
	require.Equal(t, sent.ClientID, got.ClientID)
	require.Equal(t, sent.Reason, got.Reason)
	require.True(t, got.Timestamp.Equal(sent.Timestamp))
}
