package model

import "time"

// ProjectAssigned puts a user on a project. (UserID, ProjectID) is the key;
// the row disappears with either side.
type ProjectAssigned struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateProjectAssigned takes its key from the URL path only.
type CreateProjectAssigned struct {
	UserID    int64      `json:"-" param:"user_id" validate:"required,min=1"`
	ProjectID int64      `json:"-" param:"project_id" validate:"required,min=1"`
	CreatedAt *time.Time `json:"created_at"`
}

func (c *CreateProjectAssigned) Validate() error {
	return validate.Struct(c)
}

type UpdateProjectAssigned struct {
	CreatedAt *time.Time `json:"created_at"`
}

func (u *UpdateProjectAssigned) Validate() error {
	return validate.Struct(u)
}

type ProjectAssignedWithRelations struct {
	ProjectAssigned
	User    *User    `json:"user"`
	Project *Project `json:"project"`
}

// TaskAssigned puts a user on a task. (UserID, TaskID) is the key.
type TaskAssigned struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	TaskID    int64     `db:"task_id" json:"task_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreateTaskAssigned takes its key from the URL path only.
type CreateTaskAssigned struct {
	UserID    int64      `json:"-" param:"user_id" validate:"required,min=1"`
	TaskID    int64      `json:"-" param:"task_id" validate:"required,min=1"`
	CreatedAt *time.Time `json:"created_at"`
}

func (c *CreateTaskAssigned) Validate() error {
	return validate.Struct(c)
}

type UpdateTaskAssigned struct {
	CreatedAt *time.Time `json:"created_at"`
}

func (u *UpdateTaskAssigned) Validate() error {
	return validate.Struct(u)
}

type TaskAssignedWithRelations struct {
	TaskAssigned
	User *User `json:"user"`
	Task *Task `json:"task"`
}
