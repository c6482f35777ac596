// Package moderation hands reported posts to human reviewers through a redis list.
package moderation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Item is one queued report as stored in redis.
type Item struct {
	PostID     string    `json:"post_id"`
	SessionID  string    `json:"session_id"`
	ReporterID string    `json:"reporter_id"`
	ReportedAt time.Time `json:"reported_at"`
}

// Queue is a FIFO of reports backed by a redis list.
type Queue struct {
	client *redis.Client
	key    string
}

func NewQueue(client *redis.Client, key string) *Queue {
	if key == "" {
		key = "hostelbuzz:reports"
	}
	return &Queue{client: client, key: key}
}

func (q *Queue) Key() string { return q.key }

// Push appends one item and bumps the per-post counter in the same round trip.
func (q *Queue) Push(ctx context.Context, it Item) error {
	payload, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	pipe := q.client.TxPipeline()
	pipe.RPush(ctx, q.key, payload)
	pipe.HIncrBy(ctx, q.countsKey(), it.PostID, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push report: %w", err)
	}
	return nil
}

// Pop removes the oldest item. ok is false when the queue is empty.
func (q *Queue) Pop(ctx context.Context) (it Item, ok bool, err error) {
	data, err := q.client.LPop(ctx, q.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Item{}, false, nil
	}
	if err != nil {
		return Item{}, false, err
	}
	if err := json.Unmarshal(data, &it); err != nil {
		return Item{}, false, fmt.Errorf("decode report: %w", err)
	}
	return it, true, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// ReportCount returns how many times postID has been reported overall.
func (q *Queue) ReportCount(ctx context.Context, postID string) (int64, error) {
	n, err := q.client.HGet(ctx, q.countsKey(), postID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (q *Queue) countsKey() string { return q.key + ":counts" }
