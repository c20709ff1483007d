// Package queue carries accepted webhook submissions to the single intake
// worker through a Redis list (LPUSH on arrival, BRPOP in the worker).
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oneearth-admin/oeff-docs/internal/intake"
)

// failedSuffix names the dead-letter list of a queue.
const failedSuffix = ":failed"

type Options struct {
	URL            string
	Name           string
	PopTimeout     time.Duration
	ConnectTimeout time.Duration
}

type RedisQueue struct {
	client     *redis.Client
	name       string
	popTimeout time.Duration
}

// NewRedisQueue connects to Redis and checks the connection.
func NewRedisQueue(ctx context.Context, opts Options) (*RedisQueue, error) {
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.PopTimeout == 0 {
		opts.PopTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisOpts.DialTimeout = opts.ConnectTimeout
	// BRPOP blocks for up to PopTimeout; the socket must outlive it.
	redisOpts.ReadTimeout = opts.PopTimeout + 5*time.Second

	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisQueue{client: client, name: opts.Name, popTimeout: opts.PopTimeout}, nil
}

func (q *RedisQueue) Push(ctx context.Context, sub intake.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	if err := q.client.LPush(ctx, q.name, data).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", q.name, err)
	}
	return nil
}

// Pop waits up to the pop timeout for the oldest submission. It returns
// nil, nil when the queue stayed empty. Undecodable payloads are moved to
// the dead-letter list and reported as an error.
func (q *RedisQueue) Pop(ctx context.Context) (*intake.Submission, error) {
	res, err := q.client.BRPop(ctx, q.popTimeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop from %s: %w", q.name, err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP result length: %d", len(res))
	}

	var sub intake.Submission
	if err := json.Unmarshal([]byte(res[1]), &sub); err != nil {
		if dlErr := q.client.LPush(ctx, q.name+failedSuffix, res[1]).Err(); dlErr != nil {
			return nil, errors.Join(fmt.Errorf("decode submission: %w", err), dlErr)
		}
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &sub, nil
}

// Fail parks a submission the worker could not store on the dead-letter
// list for manual replay.
func (q *RedisQueue) Fail(ctx context.Context, sub intake.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}
	return q.client.LPush(ctx, q.name+failedSuffix, data).Err()
}

// Len reports the number of waiting submissions.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.name).Result()
}

// Ping checks the Redis connection.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
