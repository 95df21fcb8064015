package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository struct {
	crud[model.Project]
}

func NewProjectRepository(db *database.Database) *ProjectRepository {
	return &ProjectRepository{crud[model.Project]{db: db, t: projects}}
}

func (r *ProjectRepository) Create(ctx context.Context, in *model.CreateProject) (*model.Project, error) {
	return r.create(ctx, map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"start_date":  in.StartDate,
		"deadline":    in.Deadline,
		"status_id":   in.StatusID,
		"owner_id":    in.OwnerID,
		"priority_id": in.PriorityID,
	})
}

// GetByID returns the bare row; no related rows are loaded.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var projectWithRelationsSQL = "SELECT " +
	projects.cols("p") + ", " + statuses.cols("s") + ", " + users.cols("u") + ", " + priorities.cols("pr") +
	" FROM projects p" +
	" JOIN statuses s ON s.id = p.status_id" +
	" JOIN users u ON u.id = p.owner_id" +
	" JOIN priorities pr ON pr.id = p.priority_id" +
	" WHERE p.id = $1"

var projectChatSQL = "SELECT " + chats.cols("") + " FROM chats WHERE project_id = $1 ORDER BY id LIMIT 1"

var projectAssigneesSQL = "SELECT " + users.cols("u") +
	" FROM users u JOIN project_assigned pa ON pa.user_id = u.id" +
	" WHERE pa.project_id = $1 ORDER BY u.id"

// GetWithRelations loads the project with status, owner and priority in one
// query, then its chat, tasks, reports and assigned users in one batch.
func (r *ProjectRepository) GetWithRelations(ctx context.Context, id int64) (*model.ProjectWithRelations, error) {
	var out *model.ProjectWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.ProjectWithRelations{
			Status:   &model.Status{},
			Owner:    &model.User{},
			Priority: &model.Priority{},
		}
		found, err := scanJoined(ctx, tx, projectWithRelationsSQL, []any{id}, fields(
			projectFields(&v.Project),
			statusFields(v.Status),
			userFields(v.Owner),
			priorityFields(v.Priority),
		)...)
		if err != nil || !found {
			return err
		}

		b := &pgx.Batch{}
		queueOne(b, &v.Chat, projectChatSQL, id)
		queueList(b, &v.Tasks, tasks.queryWhere("project_id"), id)
		queueList(b, &v.Reports, reports.queryWhere("project_id"), id)
		queueList(b, &v.AssignedUsers, projectAssigneesSQL, id)
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

func (r *ProjectRepository) Update(ctx context.Context, id int64, in *model.UpdateProject) error {
	values := map[string]any{}
	setPtr(values, "title", in.Title)
	setNullable(values, "description", in.Description)
	setPtr(values, "start_date", in.StartDate)
	setNullable(values, "deadline", in.Deadline)
	setPtr(values, "status_id", in.StatusID)
	setPtr(values, "owner_id", in.OwnerID)
	setPtr(values, "priority_id", in.PriorityID)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]model.Project, error) {
	return r.all(ctx)
}
