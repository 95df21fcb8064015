package model

import "time"

type Notification struct {
	ID      int64     `db:"id" json:"id"`
	Content string    `db:"content" json:"content"`
	UserID  int64     `db:"user_id" json:"user_id"`
	SentAt  time.Time `db:"sent_at" json:"sent_at"`
}

type CreateNotification struct {
	Content string     `json:"content" validate:"required"`
	UserID  int64      `json:"user_id" validate:"required,min=1"`
	SentAt  *time.Time `json:"sent_at"`
}

func (c *CreateNotification) Validate() error {
	return validate.Struct(c)
}

type UpdateNotification struct {
	Content *string    `json:"content" validate:"omitempty,min=1"`
	UserID  *int64     `json:"user_id" validate:"omitempty,min=1"`
	SentAt  *time.Time `json:"sent_at"`
}

func (u *UpdateNotification) Validate() error {
	return validate.Struct(u)
}

type NotificationWithRelations struct {
	Notification
	User *User `json:"user"`
}

// Comment belongs to a user and optionally to a project and/or a task.
type Comment struct {
	ID        int64  `db:"id" json:"id"`
	Content   string `db:"content" json:"content"`
	UserID    int64  `db:"user_id" json:"user_id"`
	ProjectID *int64 `db:"project_id" json:"project_id"`
	TaskID    *int64 `db:"task_id" json:"task_id"`
}

type CreateComment struct {
	Content   string `json:"content" validate:"required"`
	UserID    int64  `json:"user_id" validate:"required,min=1"`
	ProjectID *int64 `json:"project_id" validate:"omitempty,min=1"`
	TaskID    *int64 `json:"task_id" validate:"omitempty,min=1"`
}

func (c *CreateComment) Validate() error {
	return validate.Struct(c)
}

type UpdateComment struct {
	Content   *string         `json:"content" validate:"omitempty,min=1"`
	UserID    *int64          `json:"user_id" validate:"omitempty,min=1"`
	ProjectID Nullable[int64] `json:"project_id"`
	TaskID    Nullable[int64] `json:"task_id"`
}

func (u *UpdateComment) Validate() error {
	return validate.Struct(u)
}

type CommentWithRelations struct {
	Comment
	User    *User    `json:"user"`
	Project *Project `json:"project"`
	Task    *Task    `json:"task"`
}

type Report struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   *string   `db:"content" json:"content"`
	ProjectID int64     `db:"project_id" json:"project_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateReport struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Content   *string    `json:"content"`
	ProjectID int64      `json:"project_id" validate:"required,min=1"`
	CreatedAt *time.Time `json:"created_at"`
}

func (c *CreateReport) Validate() error {
	return validate.Struct(c)
}

type UpdateReport struct {
	Title     *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Content   Nullable[string] `json:"content"`
	ProjectID *int64           `json:"project_id" validate:"omitempty,min=1"`
}

func (u *UpdateReport) Validate() error {
	return validate.Struct(u)
}

type ReportWithRelations struct {
	Report
	Project *Project `json:"project"`
}
