package model

import "time"

type Task struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	PriorityID  int64      `db:"priority_id" json:"priority_id"`
	StatusID    int64      `db:"status_id" json:"status_id"`
	ExecutorID  int64      `db:"executor_id" json:"executor_id"`
	ProjectID   int64      `db:"project_id" json:"project_id"`
	Deadline    *time.Time `db:"deadline" json:"deadline"`
}

type CreateTask struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	PriorityID  int64      `json:"priority_id" validate:"required,min=1"`
	StatusID    int64      `json:"status_id" validate:"required,min=1"`
	ExecutorID  int64      `json:"executor_id" validate:"required,min=1"`
	ProjectID   int64      `json:"project_id" validate:"required,min=1"`
	Deadline    *time.Time `json:"deadline"`
}

func (c *CreateTask) Validate() error {
	return validate.Struct(c)
}

type UpdateTask struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=255"`
	Description Nullable[string]    `json:"description"`
	PriorityID  *int64              `json:"priority_id" validate:"omitempty,min=1"`
	StatusID    *int64              `json:"status_id" validate:"omitempty,min=1"`
	ExecutorID  *int64              `json:"executor_id" validate:"omitempty,min=1"`
	ProjectID   *int64              `json:"project_id" validate:"omitempty,min=1"`
	Deadline    Nullable[time.Time] `json:"deadline"`
}

func (u *UpdateTask) Validate() error {
	return validate.Struct(u)
}

type TaskWithRelations struct {
	Task
	Priority      *Priority `json:"priority"`
	Status        *Status   `json:"status"`
	Executor      *User     `json:"executor"`
	Project       *Project  `json:"project"`
	Chat          *Chat     `json:"chat"`
	AssignedUsers []User    `json:"assigned_users"`
}
