package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwalitptl/patient-seeder/pkg/logger"
	"github.com/jwalitptl/patient-seeder/pkg/messaging"
	"github.com/redis/go-redis/v9"
)

type RedisPublisher struct {
	client *redis.Client
	logger *logger.Logger
}

type Config struct {
	URL          string
	MaxRetries   int
	RetryBackoff time.Duration
	DialTimeout  time.Duration
}

func DefaultConfig(url string) Config {
	return Config{
		URL:          url,
		MaxRetries:   0,
		RetryBackoff: 100 * time.Millisecond,
		DialTimeout:  5 * time.Second,
	}
}

func NewRedisPublisher(ctx context.Context, config Config, log *logger.Logger) (messaging.Publisher, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = config.MaxRetries
	opts.MinRetryBackoff = config.RetryBackoff
	opts.DialTimeout = config.DialTimeout

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPublisher{
		client: client,
		logger: log,
	}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	receivers, err := p.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	p.logger.Debug("Published message", "channel", channel, "receivers", receivers)
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
