// Package jobs hosts the asynq background tasks: cache invalidation after
// record mutations and periodic dashboard warmup.
package jobs

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup precomputes dashboard aggregates per period.
	TaskDashboardWarmup = "dashboard:warmup"
	// TaskCacheBump invalidates dashboard caches after record changes.
	TaskCacheBump = "cache:bump"
)

// DashboardWarmupPayload selects which periods to precompute. Empty means
// every named period.
type DashboardWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewDashboardWarmupTask constructs the warmup task.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// CacheBumpPayload names the mutation that triggered the bump, for logs.
type CacheBumpPayload struct {
	Reason string `json:"reason,omitempty"`
}

// NewCacheBumpTask constructs the cache bump task.
func NewCacheBumpTask(payload CacheBumpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCacheBump, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueCacheBump enqueues a cache invalidation after a record mutation.
func (c *Client) EnqueueCacheBump(ctx context.Context, reason string) error {
	task, err := NewCacheBumpTask(CacheBumpPayload{Reason: reason})
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
