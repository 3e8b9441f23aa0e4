package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ScoreQueueKey = "pollmph:queue:score"
	DeadLetterKey = "pollmph:queue:failed"
)

// Queue is the redis-backed job queue between the scheduler and the analyzer.
type Queue struct {
	client *redis.Client
}

func ConnectQueue(ctx context.Context) (*Queue, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, err
	}

	return &Queue{client: client}, nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

func (q *Queue) Push(ctx context.Context, queueKey string, data string) error {
	return q.client.LPush(ctx, queueKey, data).Err()
}

// Pop blocks until a job is available or the timeout elapses.
func (q *Queue) Pop(ctx context.Context, queueKey string, timeout time.Duration) (string, error) {
	result, err := q.client.BRPop(ctx, timeout, queueKey).Result()
	if err != nil {
		return "", err
	}
	return result[1], nil
}

func (q *Queue) Len(ctx context.Context, queueKey string) (int64, error) {
	return q.client.LLen(ctx, queueKey).Result()
}
