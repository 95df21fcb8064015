package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDeliver stores a notification and fans out its e-mail.
	TaskNotificationDeliver = "notification:deliver"

	// TaskNotificationEmail sends the e-mail for a stored notification.
	TaskNotificationEmail = "notification:email"
)

type NotificationDeliverPayload struct {
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
}

type NotificationEmailPayload struct {
	To      string `json:"to"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// NewNotificationDeliverTask builds the task that records content as a
// notification for userID.
func NewNotificationDeliverTask(userID int64, content string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotificationDeliverPayload{
		UserID:  userID,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskNotificationDeliver,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewNotificationEmailTask builds the e-mail side of a notification. It runs
// on the low queue and retries on its own.
func NewNotificationEmailTask(to, name, content string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotificationEmailPayload{
		To:      to,
		Name:    name,
		Content: content,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskNotificationEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
