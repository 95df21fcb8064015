package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/agile/internal/lib/job"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// notifier is what the other services need from NotificationService.
type notifier interface {
	Notify(ctx context.Context, userID int64, content string) error
}

// NotificationService hands notifications to the job worker, which stores
// them and sends the e-mail.
type NotificationService struct {
	queue  Enqueuer
	logger *zerolog.Logger
}

func NewNotificationService(queue Enqueuer, logger *zerolog.Logger) *NotificationService {
	return &NotificationService{queue: queue, logger: logger}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, content string) error {
	task, err := job.NewNotificationDeliverTask(userID, content)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}

	info, err := s.queue.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification for user %d: %w", userID, err)
	}

	s.logger.Debug().
		Int64("user_id", userID).
		Str("task_id", info.ID).
		Msg("notification enqueued")
	return nil
}

// notifyAll notifies every user in userIDs. Failures are logged, never
// returned: the write that triggered them has already committed.
func notifyAll(ctx context.Context, n notifier, logger *zerolog.Logger, userIDs []int64, content string) {
	for _, id := range userIDs {
		if err := n.Notify(ctx, id, content); err != nil {
			logger.Error().Err(err).Int64("user_id", id).Msg("failed to notify user")
		}
	}
}
