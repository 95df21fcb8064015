package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	crud[model.User]
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{crud[model.User]{db: db, t: users}}
}

// Create inserts a user. A duplicate email fails with sqlerr.UniqueViolation,
// an unknown role with sqlerr.ForeignKeyViolation.
func (r *UserRepository) Create(ctx context.Context, in *model.CreateUser) (*model.User, error) {
	values := map[string]any{
		"name":    in.Name,
		"email":   in.Email,
		"role_id": in.RoleID,
		"avatar":  in.Avatar,
	}
	setPtr(values, "registration_date", in.RegistrationDate)
	setPtr(values, "created_at", in.CreatedAt)
	return r.create(ctx, values)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

// GetByEmail looks a user up by the unique email column.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, sq.Eq{"email": email})
}

var userWithRelationsSQL = "SELECT " + users.cols("u") + ", " + accessLevels.cols("al") +
	" FROM users u JOIN access_levels al ON al.id = u.role_id WHERE u.id = $1"

var assignedProjectsSQL = "SELECT " + projects.cols("p") +
	" FROM projects p JOIN project_assigned pa ON pa.project_id = p.id" +
	" WHERE pa.user_id = $1 ORDER BY p.id"

var assignedTasksSQL = "SELECT " + tasks.cols("t") +
	" FROM tasks t JOIN task_assigned ta ON ta.task_id = t.id" +
	" WHERE ta.user_id = $1 ORDER BY t.id"

// GetWithRelations loads the user with its role, owned projects,
// notifications, messages and assignments.
func (r *UserRepository) GetWithRelations(ctx context.Context, id int64) (*model.UserWithRelations, error) {
	var out *model.UserWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.UserWithRelations{Role: &model.AccessLevel{}}
		found, err := scanJoined(ctx, tx, userWithRelationsSQL, []any{id}, fields(
			userFields(&v.User),
			accessLevelFields(v.Role),
		)...)
		if err != nil || !found {
			return err
		}

		b := &pgx.Batch{}
		queueList(b, &v.OwnedProjects, projects.queryWhere("owner_id"), id)
		queueList(b, &v.Notifications, notifications.queryWhere("user_id"), id)
		queueList(b, &v.Messages, messages.queryWhere("user_id"), id)
		queueList(b, &v.AssignedProjects, assignedProjectsSQL, id)
		queueList(b, &v.AssignedTasks, assignedTasksSQL, id)
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

func (r *UserRepository) Update(ctx context.Context, id int64, in *model.UpdateUser) error {
	values := map[string]any{}
	setPtr(values, "name", in.Name)
	setPtr(values, "email", in.Email)
	setPtr(values, "role_id", in.RoleID)
	setPtr(values, "registration_date", in.RegistrationDate)
	setNullable(values, "avatar", in.Avatar)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

// Delete removes the user. Assignment rows go with it; any other row still
// referencing the user makes the delete fail with sqlerr.ForeignKeyViolation.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	return r.all(ctx)
}

var chatParticipantsSQL = "SELECT DISTINCT " + users.cols("u") + " FROM users u" +
	" JOIN chats c ON c.id = $1" +
	" LEFT JOIN project_assigned pa ON pa.project_id = c.project_id AND pa.user_id = u.id" +
	" LEFT JOIN task_assigned ta ON ta.task_id = c.task_id AND ta.user_id = u.id" +
	" WHERE pa.user_id IS NOT NULL OR ta.user_id IS NOT NULL" +
	" ORDER BY u.id"

// ListChatParticipants returns the users assigned to the chat's project or
// task.
func (r *UserRepository) ListChatParticipants(ctx context.Context, chatID int64) ([]model.User, error) {
	var out []model.User
	err := r.read(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, chatParticipantsSQL, chatID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
