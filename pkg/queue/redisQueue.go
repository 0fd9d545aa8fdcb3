package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries   = 3
	defaultBaseDelay    = 5 * time.Second
	defaultQueueTimeout = 5 * time.Second
)

// RedisQueue implements Queue on top of redis lists: LPUSH to publish,
// BLMOVE into a processing list to consume, and a sorted-set DLQ for
// tasks that exhaust their retries.
type RedisQueue struct {
	client          *redis.Client
	mainQueue       string
	processingQueue string
	retryManager    *RetryManager
	dlqHandler      DLQHandler
	queueTimeout    time.Duration
	stopChan        chan struct{}
}

// RedisQueueConfig contains configuration for RedisQueue.
type RedisQueueConfig struct {
	Addr     string
	Password string
	DB       int

	MainQueue       string
	ProcessingQueue string
	DLQ             string

	MaxRetries   int
	BaseDelay    time.Duration
	QueueTimeout time.Duration
}

func DefaultRedisQueueConfig() *RedisQueueConfig {
	return &RedisQueueConfig{
		Addr:            "localhost:6379",
		MainQueue:       "event_ticketing:tasks",
		ProcessingQueue: "event_ticketing:tasks:processing",
		DLQ:             "event_ticketing:dlq",
		MaxRetries:      defaultMaxRetries,
		BaseDelay:       defaultBaseDelay,
		QueueTimeout:    defaultQueueTimeout,
	}
}

func NewRedisQueue(cfg *RedisQueueConfig, retryManager *RetryManager, dlqHandler DLQHandler) (*RedisQueue, error) {
	if cfg == nil {
		cfg = DefaultRedisQueueConfig()
	}

	if retryManager == nil {
		retryManager = NewRetryManager(cfg.MaxRetries, cfg.BaseDelay)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  cfg.QueueTimeout + 3*time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if dlqHandler == nil {
		dlqHandler = NewDefaultDLQHandler(client, cfg.DLQ)
	}

	queue := &RedisQueue{
		client:          client,
		mainQueue:       cfg.MainQueue,
		processingQueue: cfg.ProcessingQueue,
		retryManager:    retryManager,
		dlqHandler:      dlqHandler,
		queueTimeout:    cfg.QueueTimeout,
		stopChan:        make(chan struct{}),
	}

	logrus.Infof("RedisQueue initialized: main=%s, dlq=%s", cfg.MainQueue, cfg.DLQ)
	return queue, nil
}

func (r *RedisQueue) Publish(ctx context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}
	if task.ID == "" || task.Type == "" {
		return fmt.Errorf("task must have an id and a type")
	}

	taskData, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if err := r.client.LPush(ctx, r.mainQueue, taskData).Err(); err != nil {
		return fmt.Errorf("failed to publish task: %w", err)
	}

	logrus.Debugf("Task %s published to %s", task.ID, r.mainQueue)
	return nil
}

// Subscribe consumes tasks until the context is done or Close is called.
func (r *RedisQueue) Subscribe(ctx context.Context, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Queue consumer stopped by context")
			return nil
		case <-r.stopChan:
			logrus.Info("Queue consumer stopped")
			return nil
		default:
			if err := r.processNext(ctx, handler); err != nil {
				logrus.Errorf("Error processing task: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

// processNext moves one task into the processing list, executes it with
// retries, and removes it from the processing list regardless of outcome.
func (r *RedisQueue) processNext(ctx context.Context, handler Handler) error {
	taskData, err := r.client.BLMove(ctx, r.mainQueue, r.processingQueue, "RIGHT", "LEFT", r.queueTimeout).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to move task to processing queue: %w", err)
	}

	defer func() {
		if err := r.client.LRem(ctx, r.processingQueue, 1, taskData).Err(); err != nil {
			logrus.Errorf("Failed to remove task from processing queue: %v", err)
		}
	}()

	var task Task
	if err := json.Unmarshal([]byte(taskData), &task); err != nil {
		logrus.Errorf("Failed to unmarshal task, sending to DLQ: %v", err)
		r.dlqHandler.HandleFailedTask(&Task{ID: "unparsed", Data: map[string]interface{}{"raw": taskData}}, err)
		return nil
	}

	if err := r.executeWithRetry(ctx, &task, handler); err != nil {
		logrus.Errorf("Task %s failed after %d attempts: %v", task.ID, task.Attempts, err)
		r.dlqHandler.HandleFailedTask(&task, err)
		return nil
	}

	logrus.Debugf("Task %s completed", task.ID)
	return nil
}

func (r *RedisQueue) executeWithRetry(ctx context.Context, task *Task, handler Handler) error {
	for {
		task.Attempts++
		err := handler(ctx, task)
		if err == nil {
			return nil
		}

		retry, delay := r.retryManager.ShouldRetry(task)
		if !retry {
			return err
		}

		logrus.Warnf("Task %s attempt %d failed, retrying in %s: %v", task.ID, task.Attempts, delay, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (r *RedisQueue) Close() error {
	close(r.stopChan)
	return r.client.Close()
}
