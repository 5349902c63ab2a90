package sink

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher publishes each command on a Redis pub/sub channel for an external
// executor to pick up.
type Publisher struct {
	client            *redis.Client
	channel           string
	requireSubscriber bool
}

// NewPublisher returns a Redis sink. With requireSubscriber set, a publish that
// reaches nobody is reported as ErrNoSubscriber.
func NewPublisher(client *redis.Client, channel string, requireSubscriber bool) *Publisher {
	return &Publisher{
		client:            client,
		channel:           channel,
		requireSubscriber: requireSubscriber,
	}
}

func (p *Publisher) Describe() string { return "redis:" + p.channel }

func (p *Publisher) ProcessCommand(ctx context.Context, text string) error {
	receivers, err := p.client.Publish(ctx, p.channel, text).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	if p.requireSubscriber && receivers == 0 {
		return ErrNoSubscriber
	}
	return nil
}
