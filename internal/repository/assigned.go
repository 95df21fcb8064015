package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

// ProjectAssignedRepository manages the user/project join rows, keyed by
// (user, project).
type ProjectAssignedRepository struct {
	crud[model.ProjectAssigned]
}

func NewProjectAssignedRepository(db *database.Database) *ProjectAssignedRepository {
	return &ProjectAssignedRepository{crud[model.ProjectAssigned]{db: db, t: projectAssigned}}
}

func projectAssignedKey(userID, projectID int64) sq.Eq {
	return sq.Eq{"user_id": userID, "project_id": projectID}
}

// Create assigns the user. Assigning the same pair twice fails with
// sqlerr.UniqueViolation.
func (r *ProjectAssignedRepository) Create(ctx context.Context, in *model.CreateProjectAssigned) (*model.ProjectAssigned, error) {
	values := map[string]any{
		"user_id":    in.UserID,
		"project_id": in.ProjectID,
	}
	setPtr(values, "created_at", in.CreatedAt)
	return r.create(ctx, values)
}

func (r *ProjectAssignedRepository) GetByID(ctx context.Context, userID, projectID int64) (*model.ProjectAssigned, error) {
	return r.get(ctx, projectAssignedKey(userID, projectID))
}

var projectAssignedWithRelationsSQL = "SELECT " +
	projectAssigned.cols("pa") + ", " + users.cols("u") + ", " + projects.cols("p") +
	" FROM project_assigned pa" +
	" JOIN users u ON u.id = pa.user_id" +
	" JOIN projects p ON p.id = pa.project_id" +
	" WHERE pa.user_id = $1 AND pa.project_id = $2"

func (r *ProjectAssignedRepository) GetWithRelations(ctx context.Context, userID, projectID int64) (*model.ProjectAssignedWithRelations, error) {
	var out *model.ProjectAssignedWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.ProjectAssignedWithRelations{User: &model.User{}, Project: &model.Project{}}
		found, err := scanJoined(ctx, tx, projectAssignedWithRelationsSQL, []any{userID, projectID}, fields(
			projectAssignedFields(&v.ProjectAssigned),
			userFields(v.User),
			projectFields(v.Project),
		)...)
		if found {
			out = &v
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProjectAssignedRepository) Update(ctx context.Context, userID, projectID int64, in *model.UpdateProjectAssigned) error {
	values := map[string]any{}
	setPtr(values, "created_at", in.CreatedAt)
	return r.update(ctx, projectAssignedKey(userID, projectID), values)
}

func (r *ProjectAssignedRepository) Delete(ctx context.Context, userID, projectID int64) error {
	return r.delete(ctx, projectAssignedKey(userID, projectID))
}

func (r *ProjectAssignedRepository) GetAll(ctx context.Context) ([]model.ProjectAssigned, error) {
	return r.all(ctx)
}

// TaskAssignedRepository manages the user/task join rows, keyed by
// (user, task).
type TaskAssignedRepository struct {
	crud[model.TaskAssigned]
}

func NewTaskAssignedRepository(db *database.Database) *TaskAssignedRepository {
	return &TaskAssignedRepository{crud[model.TaskAssigned]{db: db, t: taskAssigned}}
}

func taskAssignedKey(userID, taskID int64) sq.Eq {
	return sq.Eq{"user_id": userID, "task_id": taskID}
}

func (r *TaskAssignedRepository) Create(ctx context.Context, in *model.CreateTaskAssigned) (*model.TaskAssigned, error) {
	values := map[string]any{
		"user_id": in.UserID,
		"task_id": in.TaskID,
	}
	setPtr(values, "created_at", in.CreatedAt)
	return r.create(ctx, values)
}

func (r *TaskAssignedRepository) GetByID(ctx context.Context, userID, taskID int64) (*model.TaskAssigned, error) {
	return r.get(ctx, taskAssignedKey(userID, taskID))
}

var taskAssignedWithRelationsSQL = "SELECT " +
	taskAssigned.cols("ta") + ", " + users.cols("u") + ", " + tasks.cols("t") +
	" FROM task_assigned ta" +
	" JOIN users u ON u.id = ta.user_id" +
	" JOIN tasks t ON t.id = ta.task_id" +
	" WHERE ta.user_id = $1 AND ta.task_id = $2"

func (r *TaskAssignedRepository) GetWithRelations(ctx context.Context, userID, taskID int64) (*model.TaskAssignedWithRelations, error) {
	var out *model.TaskAssignedWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.TaskAssignedWithRelations{User: &model.User{}, Task: &model.Task{}}
		found, err := scanJoined(ctx, tx, taskAssignedWithRelationsSQL, []any{userID, taskID}, fields(
			taskAssignedFields(&v.TaskAssigned),
			userFields(v.User),
			taskFields(v.Task),
		)...)
		if found {
			out = &v
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TaskAssignedRepository) Update(ctx context.Context, userID, taskID int64, in *model.UpdateTaskAssigned) error {
	values := map[string]any{}
	setPtr(values, "created_at", in.CreatedAt)
	return r.update(ctx, taskAssignedKey(userID, taskID), values)
}

func (r *TaskAssignedRepository) Delete(ctx context.Context, userID, taskID int64) error {
	return r.delete(ctx, taskAssignedKey(userID, taskID))
}

func (r *TaskAssignedRepository) GetAll(ctx context.Context) ([]model.TaskAssigned, error) {
	return r.all(ctx)
}
