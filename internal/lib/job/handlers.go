package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/agile/internal/config"
	"github.com/deppfellow/agile/internal/lib/email"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers wires the stores and the mailer the task handlers use. It must
// run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, repos *repository.Repositories) {
	j.users = repos.Users
	j.notifications = repos.Notifications
	j.mailer = email.NewClient(cfg, logger)
}

func (j *JobService) handleNotificationDeliverTask(ctx context.Context, t *asynq.Task) error {
	var p NotificationDeliverPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskNotificationDeliver).
		Int64("user_id", p.UserID).
		Logger()

	user, err := j.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Warn().Msg("Dropping notification for unknown user")
		return fmt.Errorf("user %d not found: %w", p.UserID, asynq.SkipRetry)
	}

	n, err := j.notifications.Create(ctx, &model.CreateNotification{
		Content: p.Content,
		UserID:  p.UserID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to store notification")
		return err
	}

	logger.Info().Int64("notification_id", n.ID).Msg("Notification stored")

	if j.mailer == nil || !j.mailer.Enabled() {
		return nil
	}

	// The row is committed. Retrying this task past here would store it twice.
	task, err := NewNotificationEmailTask(user.Email, user.Name, p.Content)
	if err != nil {
		return fmt.Errorf("failed to build notification email task: %w: %w", err, asynq.SkipRetry)
	}
	if _, err := j.enqueue.EnqueueContext(ctx, task); err != nil {
		logger.Error().Err(err).Msg("Failed to enqueue notification email")
		return fmt.Errorf("failed to enqueue notification email: %w: %w", err, asynq.SkipRetry)
	}

	return nil
}

func (j *JobService) handleNotificationEmailTask(ctx context.Context, t *asynq.Task) error {
	var p NotificationEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal notification email payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.mailer == nil || !j.mailer.Enabled() {
		return nil
	}

	if err := j.mailer.SendNotificationEmail(p.To, p.Name, p.Content); err != nil {
		j.logger.Error().
			Str("type", TaskNotificationEmail).
			Str("to", p.To).
			Err(err).
			Msg("Failed to send notification email")
		return err
	}

	j.logger.Info().
		Str("type", TaskNotificationEmail).
		Str("to", p.To).
		Msg("Successfully sent notification email")

	return nil
}
