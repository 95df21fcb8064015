// Package job runs background work on Asynq.
//
// Producers enqueue tasks through JobService.Client; the worker server started
// by Start pulls them from Redis and dispatches on the task type.
package job

import (
	"context"

	"github.com/deppfellow/agile/internal/config"
	"github.com/deppfellow/agile/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type userStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type notificationStore interface {
	Create(ctx context.Context, in *model.CreateNotification) (*model.Notification, error)
}

type mailer interface {
	Enabled() bool
	SendNotificationEmail(to, name, content string) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// Set by InitHandlers.
	users         userStore
	notifications notificationStore
	mailer        mailer
	enqueue       enqueuer
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks six of every ten worker slots.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:  client,
		server:  server,
		logger:  logger,
		enqueue: client,
	}
}

// Start registers task handlers and starts the worker server. It does not
// block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskNotificationDeliver, j.handleNotificationDeliverTask)
	mux.HandleFunc(TaskNotificationEmail, j.handleNotificationEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop waits for in-flight tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
