package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/agile/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[int64]*model.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f[id], nil
}

type fakeNotifications struct {
	created []model.CreateNotification
	err     error
}

func (f *fakeNotifications) Create(_ context.Context, in *model.CreateNotification) (*model.Notification, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, *in)
	return &model.Notification{ID: int64(len(f.created)), Content: in.Content, UserID: in.UserID}, nil
}

type fakeMailer struct {
	enabled bool
	sent    []NotificationEmailPayload
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) SendNotificationEmail(to, name, content string) error {
	f.sent = append(f.sent, NotificationEmailPayload{To: to, Name: name, Content: content})
	return nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestService(mail *fakeMailer) (*JobService, *fakeNotifications, *fakeEnqueuer) {
	logger := zerolog.Nop()
	store := &fakeNotifications{}
	q := &fakeEnqueuer{}
	return &JobService{
		logger:        &logger,
		users:         fakeUsers{1: {ID: 1, Name: "John", Email: "john@example.com"}},
		notifications: store,
		mailer:        mail,
		enqueue:       q,
	}, store, q
}

func TestNewNotificationDeliverTask(t *testing.T) {
	task, err := NewNotificationDeliverTask(7, "hello")
	require.NoError(t, err)
	assert.Equal(t, TaskNotificationDeliver, task.Type())

	var p NotificationDeliverPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, NotificationDeliverPayload{UserID: 7, Content: "hello"}, p)
}

func TestDeliverStoresAndQueuesEmail(t *testing.T) {
	j, store, q := newTestService(&fakeMailer{enabled: true})
	task, err := NewNotificationDeliverTask(1, "assigned to Alpha")
	require.NoError(t, err)

	require.NoError(t, j.handleNotificationDeliverTask(context.Background(), task))

	require.Len(t, store.created, 1)
	assert.Equal(t, int64(1), store.created[0].UserID)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskNotificationEmail, q.tasks[0].Type())

	var p NotificationEmailPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, "john@example.com", p.To)
	assert.Equal(t, "John", p.Name)
}

func TestDeliverWithoutMailerOnlyStores(t *testing.T) {
	j, store, q := newTestService(&fakeMailer{})
	task, err := NewNotificationDeliverTask(1, "hi")
	require.NoError(t, err)

	require.NoError(t, j.handleNotificationDeliverTask(context.Background(), task))
	assert.Len(t, store.created, 1)
	assert.Empty(t, q.tasks)
}

func TestDeliverUnknownUserSkipsRetry(t *testing.T) {
	j, store, _ := newTestService(&fakeMailer{})
	task, err := NewNotificationDeliverTask(99, "hi")
	require.NoError(t, err)

	err = j.handleNotificationDeliverTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, store.created)
}

func TestDeliverStoreErrorRetries(t *testing.T) {
	j, store, _ := newTestService(&fakeMailer{})
	store.err = errors.New("connection reset")
	task, err := NewNotificationDeliverTask(1, "hi")
	require.NoError(t, err)

	err = j.handleNotificationDeliverTask(context.Background(), task)
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestEmailTaskSends(t *testing.T) {
	mail := &fakeMailer{enabled: true}
	j, _, _ := newTestService(mail)
	task, err := NewNotificationEmailTask("john@example.com", "John", "hi")
	require.NoError(t, err)

	require.NoError(t, j.handleNotificationEmailTask(context.Background(), task))
	assert.Equal(t, []NotificationEmailPayload{{To: "john@example.com", Name: "John", Content: "hi"}}, mail.sent)
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	j, _, _ := newTestService(&fakeMailer{enabled: true})
	task := asynq.NewTask(TaskNotificationDeliver, []byte("{"))

	assert.ErrorIs(t, j.handleNotificationDeliverTask(context.Background(), task), asynq.SkipRetry)
}
