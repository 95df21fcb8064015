package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type StatusRepository struct {
	crud[model.Status]
}

func NewStatusRepository(db *database.Database) *StatusRepository {
	return &StatusRepository{crud[model.Status]{db: db, t: statuses}}
}

// Create inserts a status. A type other than "project" or "task" fails with
// sqlerr.CheckViolation.
func (r *StatusRepository) Create(ctx context.Context, in *model.CreateStatus) (*model.Status, error) {
	return r.create(ctx, map[string]any{"name": in.Name, "type": in.Type})
}

func (r *StatusRepository) GetByID(ctx context.Context, id int64) (*model.Status, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

func (r *StatusRepository) GetWithRelations(ctx context.Context, id int64) (*model.StatusWithRelations, error) {
	var out *model.StatusWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		status, err := getRow[model.Status](ctx, tx, statuses, sq.Eq{"id": id})
		if err != nil || status == nil {
			return err
		}

		v := model.StatusWithRelations{Status: *status}
		b := &pgx.Batch{}
		queueList(b, &v.Projects, projects.queryWhere("status_id"), id)
		queueList(b, &v.Tasks, tasks.queryWhere("status_id"), id)
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

func (r *StatusRepository) Update(ctx context.Context, id int64, in *model.UpdateStatus) error {
	values := map[string]any{}
	setPtr(values, "name", in.Name)
	setPtr(values, "type", in.Type)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *StatusRepository) GetAll(ctx context.Context) ([]model.Status, error) {
	return r.all(ctx)
}

type PriorityRepository struct {
	crud[model.Priority]
}

func NewPriorityRepository(db *database.Database) *PriorityRepository {
	return &PriorityRepository{crud[model.Priority]{db: db, t: priorities}}
}

func (r *PriorityRepository) Create(ctx context.Context, in *model.CreatePriority) (*model.Priority, error) {
	return r.create(ctx, map[string]any{"name": in.Name})
}

func (r *PriorityRepository) GetByID(ctx context.Context, id int64) (*model.Priority, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

func (r *PriorityRepository) GetWithRelations(ctx context.Context, id int64) (*model.PriorityWithRelations, error) {
	var out *model.PriorityWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		priority, err := getRow[model.Priority](ctx, tx, priorities, sq.Eq{"id": id})
		if err != nil || priority == nil {
			return err
		}

		v := model.PriorityWithRelations{Priority: *priority}
		b := &pgx.Batch{}
		queueList(b, &v.Projects, projects.queryWhere("priority_id"), id)
		queueList(b, &v.Tasks, tasks.queryWhere("priority_id"), id)
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

func (r *PriorityRepository) Update(ctx context.Context, id int64, in *model.UpdatePriority) error {
	values := map[string]any{}
	setPtr(values, "name", in.Name)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *PriorityRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *PriorityRepository) GetAll(ctx context.Context) ([]model.Priority, error) {
	return r.all(ctx)
}
