package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Client wraps a franz-go producer for the care-team event topic.
type Client struct {
	client *kgo.Client
}

// New connects to the brokers and ensures the topic exists.
// Returns nil if no brokers are configured (Kafka not enabled).
func New(ctx context.Context, brokers []string, topic string) (*Client, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &Client{client: client}, nil
}

// ensureTopic creates the topic when it does not exist yet. Partition and
// replication defaults are broker-side concerns in production clusters.
func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)

	topics, err := adm.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list kafka topics: %w", err)
	}
	if topics.Has(topic) {
		return nil
	}

	if _, err := adm.CreateTopic(ctx, 1, -1, nil, topic); err != nil {
		return fmt.Errorf("create kafka topic %q: %w", topic, err)
	}
	return nil
}

// Produce sends one record synchronously.
func (c *Client) Produce(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	return c.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes and closes the underlying producer.
func (c *Client) Close() {
	c.client.Close()
}
