package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type TaskRepository struct {
	crud[model.Task]
}

func NewTaskRepository(db *database.Database) *TaskRepository {
	return &TaskRepository{crud[model.Task]{db: db, t: tasks}}
}

func (r *TaskRepository) Create(ctx context.Context, in *model.CreateTask) (*model.Task, error) {
	return r.create(ctx, map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"priority_id": in.PriorityID,
		"status_id":   in.StatusID,
		"executor_id": in.ExecutorID,
		"project_id":  in.ProjectID,
		"deadline":    in.Deadline,
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var taskWithRelationsSQL = "SELECT " +
	tasks.cols("t") + ", " + priorities.cols("pr") + ", " + statuses.cols("s") + ", " +
	users.cols("u") + ", " + projects.cols("p") +
	" FROM tasks t" +
	" JOIN priorities pr ON pr.id = t.priority_id" +
	" JOIN statuses s ON s.id = t.status_id" +
	" JOIN users u ON u.id = t.executor_id" +
	" JOIN projects p ON p.id = t.project_id" +
	" WHERE t.id = $1"

var taskChatSQL = "SELECT " + chats.cols("") + " FROM chats WHERE task_id = $1 ORDER BY id LIMIT 1"

var taskAssigneesSQL = "SELECT " + users.cols("u") +
	" FROM users u JOIN task_assigned ta ON ta.user_id = u.id" +
	" WHERE ta.task_id = $1 ORDER BY u.id"

func (r *TaskRepository) GetWithRelations(ctx context.Context, id int64) (*model.TaskWithRelations, error) {
	var out *model.TaskWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.TaskWithRelations{
			Priority: &model.Priority{},
			Status:   &model.Status{},
			Executor: &model.User{},
			Project:  &model.Project{},
		}
		found, err := scanJoined(ctx, tx, taskWithRelationsSQL, []any{id}, fields(
			taskFields(&v.Task),
			priorityFields(v.Priority),
			statusFields(v.Status),
			userFields(v.Executor),
			projectFields(v.Project),
		)...)
		if err != nil || !found {
			return err
		}

		b := &pgx.Batch{}
		queueOne(b, &v.Chat, taskChatSQL, id)
		queueList(b, &v.AssignedUsers, taskAssigneesSQL, id)
		if err := sendBatch(ctx, tx, b); err != nil {
			return err
		}

		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, id int64, in *model.UpdateTask) error {
	values := map[string]any{}
	setPtr(values, "title", in.Title)
	setNullable(values, "description", in.Description)
	setPtr(values, "priority_id", in.PriorityID)
	setPtr(values, "status_id", in.StatusID)
	setPtr(values, "executor_id", in.ExecutorID)
	setPtr(values, "project_id", in.ProjectID)
	setNullable(values, "deadline", in.Deadline)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	return r.all(ctx)
}
