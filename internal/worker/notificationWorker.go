package worker

import (
	"context"
	"fmt"

	"event-ticketing/internal/service"
	"event-ticketing/pkg/queue"

	"github.com/sirupsen/logrus"
)

// NotificationWorker drains booking lifecycle tasks from the queue and
// hands them to the notification delivery channel. Delivery here is a
// structured log line; swapping in email or push delivery only means
// replacing the deliver method.
type NotificationWorker struct {
	queue queue.Queue
}

func NewNotificationWorker(q queue.Queue) *NotificationWorker {
	return &NotificationWorker{queue: q}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	logrus.Info("Notification worker started")

	if err := w.queue.Subscribe(ctx, w.handleTask); err != nil && ctx.Err() == nil {
		logrus.Errorf("Notification worker subscription failed: %v", err)
		return
	}

	logrus.Info("Notification worker stopped")
}

func (w *NotificationWorker) handleTask(ctx context.Context, task *queue.Task) error {
	switch task.Type {
	case service.TaskTypeBookingCreated:
		return w.deliver(task, "booking confirmed")
	case service.TaskTypeBookingCancelled:
		return w.deliver(task, "booking cancelled")
	default:
		// Unknown task types are dropped, not retried.
		logrus.Warnf("Skipping unknown task type %q (task %s)", task.Type, task.ID)
		return nil
	}
}

func (w *NotificationWorker) deliver(task *queue.Task, subject string) error {
	userID, ok := task.Data["user_id"]
	if !ok {
		return fmt.Errorf("task %s has no user_id", task.ID)
	}

	logrus.WithFields(logrus.Fields{
		"task_id":    task.ID,
		"task_type":  task.Type,
		"user_id":    userID,
		"booking_id": task.Data["booking_id"],
		"event_id":   task.Data["event_id"],
	}).Infof("Notification delivered: %s", subject)

	return nil
}
