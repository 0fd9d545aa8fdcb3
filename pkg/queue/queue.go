package queue

import (
	"context"
	"time"
)

// Task is a unit of deferred work handed to the notification collaborators.
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	CreatedAt  time.Time              `json:"created_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

// Handler processes a single task; a returned error triggers retry.
type Handler func(ctx context.Context, task *Task) error

type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler Handler) error
	Close() error
}
