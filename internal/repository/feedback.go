package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	crud[model.Notification]
}

func NewNotificationRepository(db *database.Database) *NotificationRepository {
	return &NotificationRepository{crud[model.Notification]{db: db, t: notifications}}
}

func (r *NotificationRepository) Create(ctx context.Context, in *model.CreateNotification) (*model.Notification, error) {
	values := map[string]any{
		"content": in.Content,
		"user_id": in.UserID,
	}
	setPtr(values, "sent_at", in.SentAt)
	return r.create(ctx, values)
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var notificationWithRelationsSQL = "SELECT " + notifications.cols("n") + ", " + users.cols("u") +
	" FROM notifications n JOIN users u ON u.id = n.user_id WHERE n.id = $1"

func (r *NotificationRepository) GetWithRelations(ctx context.Context, id int64) (*model.NotificationWithRelations, error) {
	var out *model.NotificationWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.NotificationWithRelations{User: &model.User{}}
		found, err := scanJoined(ctx, tx, notificationWithRelationsSQL, []any{id}, fields(
			notificationFields(&v.Notification),
			userFields(v.User),
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

func (r *NotificationRepository) Update(ctx context.Context, id int64, in *model.UpdateNotification) error {
	values := map[string]any{}
	setPtr(values, "content", in.Content)
	setPtr(values, "user_id", in.UserID)
	setPtr(values, "sent_at", in.SentAt)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *NotificationRepository) GetAll(ctx context.Context) ([]model.Notification, error) {
	return r.all(ctx)
}

type CommentRepository struct {
	crud[model.Comment]
}

func NewCommentRepository(db *database.Database) *CommentRepository {
	return &CommentRepository{crud[model.Comment]{db: db, t: comments}}
}

func (r *CommentRepository) Create(ctx context.Context, in *model.CreateComment) (*model.Comment, error) {
	return r.create(ctx, map[string]any{
		"content":    in.Content,
		"user_id":    in.UserID,
		"project_id": in.ProjectID,
		"task_id":    in.TaskID,
	})
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var commentWithRelationsSQL = "SELECT " + comments.cols("c") + ", " + users.cols("u") +
	" FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = $1"

func (r *CommentRepository) GetWithRelations(ctx context.Context, id int64) (*model.CommentWithRelations, error) {
	var out *model.CommentWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.CommentWithRelations{User: &model.User{}}
		found, err := scanJoined(ctx, tx, commentWithRelationsSQL, []any{id}, fields(
			commentFields(&v.Comment),
			userFields(v.User),
		)...)
		if err != nil || !found {
			return err
		}

		b := &pgx.Batch{}
		if v.ProjectID != nil {
			queueOne(b, &v.Project, projects.queryWhere("id"), *v.ProjectID)
		}
		if v.TaskID != nil {
			queueOne(b, &v.Task, tasks.queryWhere("id"), *v.TaskID)
		}
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

func (r *CommentRepository) Update(ctx context.Context, id int64, in *model.UpdateComment) error {
	values := map[string]any{}
	setPtr(values, "content", in.Content)
	setPtr(values, "user_id", in.UserID)
	setNullable(values, "project_id", in.ProjectID)
	setNullable(values, "task_id", in.TaskID)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *CommentRepository) GetAll(ctx context.Context) ([]model.Comment, error) {
	return r.all(ctx)
}

type ReportRepository struct {
	crud[model.Report]
}

func NewReportRepository(db *database.Database) *ReportRepository {
	return &ReportRepository{crud[model.Report]{db: db, t: reports}}
}

func (r *ReportRepository) Create(ctx context.Context, in *model.CreateReport) (*model.Report, error) {
	values := map[string]any{
		"title":      in.Title,
		"content":    in.Content,
		"project_id": in.ProjectID,
	}
	setPtr(values, "created_at", in.CreatedAt)
	return r.create(ctx, values)
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*model.Report, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var reportWithRelationsSQL = "SELECT " + reports.cols("r") + ", " + projects.cols("p") +
	" FROM reports r JOIN projects p ON p.id = r.project_id WHERE r.id = $1"

func (r *ReportRepository) GetWithRelations(ctx context.Context, id int64) (*model.ReportWithRelations, error) {
	var out *model.ReportWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.ReportWithRelations{Project: &model.Project{}}
		found, err := scanJoined(ctx, tx, reportWithRelationsSQL, []any{id}, fields(
			reportFields(&v.Report),
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

func (r *ReportRepository) Update(ctx context.Context, id int64, in *model.UpdateReport) error {
	values := map[string]any{}
	setPtr(values, "title", in.Title)
	setNullable(values, "content", in.Content)
	setPtr(values, "project_id", in.ProjectID)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *ReportRepository) GetAll(ctx context.Context) ([]model.Report, error) {
	return r.all(ctx)
}
