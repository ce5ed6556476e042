package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher appends events to a stream.
type Publisher interface {
	// Publish returns the message ID assigned by the broker.
	Publish(ctx context.Context, stream string, event Event) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
	maxLen int64
}

// DefaultStreamMaxLen bounds the stream with approximate trimming.
const DefaultStreamMaxLen = 100_000

// NewRedisClient parses redis://[:password@]host:port[/db] and verifies the
// server answers a PING.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, maxLen: DefaultStreamMaxLen}
}

// Publish adds an event to the stream using XADD with an auto-generated ID.
func (p *RedisPublisher) Publish(ctx context.Context, stream string, event Event) (string, error) {
	startTime := time.Now()

	values, err := event.ToMap()
	if err != nil {
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	slog.DebugContext(ctx, "Event published",
		slog.String("stream", stream),
		slog.String("type", event.Type),
		slog.String("msg_id", messageID),
		slog.Duration("duration", time.Since(startTime)),
	)

	return messageID, nil
}
