package model

import "time"

// Chat is a conversation attached to a project, a task, or (by convention
// only) neither. Both references may be set; nothing in the schema forbids it.
type Chat struct {
	ID        int64  `db:"id" json:"id"`
	ProjectID *int64 `db:"project_id" json:"project_id"`
	TaskID    *int64 `db:"task_id" json:"task_id"`
}

type CreateChat struct {
	ProjectID *int64 `json:"project_id" validate:"omitempty,min=1"`
	TaskID    *int64 `json:"task_id" validate:"omitempty,min=1"`
}

func (c *CreateChat) Validate() error {
	return validate.Struct(c)
}

type UpdateChat struct {
	ProjectID Nullable[int64] `json:"project_id"`
	TaskID    Nullable[int64] `json:"task_id"`
}

func (u *UpdateChat) Validate() error {
	return validate.Struct(u)
}

type ChatWithRelations struct {
	Chat
	Project  *Project  `json:"project"`
	Task     *Task     `json:"task"`
	Messages []Message `json:"messages"`
}

type Message struct {
	ID      int64     `db:"id" json:"id"`
	Content string    `db:"content" json:"content"`
	UserID  int64     `db:"user_id" json:"user_id"`
	ChatID  int64     `db:"chat_id" json:"chat_id"`
	SentAt  time.Time `db:"sent_at" json:"sent_at"`
}

type CreateMessage struct {
	Content string     `json:"content" validate:"required"`
	UserID  int64      `json:"user_id" validate:"required,min=1"`
	ChatID  int64      `json:"chat_id" validate:"required,min=1"`
	SentAt  *time.Time `json:"sent_at"`
}

func (c *CreateMessage) Validate() error {
	return validate.Struct(c)
}

type UpdateMessage struct {
	Content *string    `json:"content" validate:"omitempty,min=1"`
	UserID  *int64     `json:"user_id" validate:"omitempty,min=1"`
	ChatID  *int64     `json:"chat_id" validate:"omitempty,min=1"`
	SentAt  *time.Time `json:"sent_at"`
}

func (u *UpdateMessage) Validate() error {
	return validate.Struct(u)
}

type MessageWithRelations struct {
	Message
	User *User `json:"user"`
	Chat *Chat `json:"chat"`
}

// PostMessage is a message posted into the chat named by the path.
type PostMessage struct {
	ChatID  int64      `json:"-" param:"id" validate:"required,min=1"`
	UserID  int64      `json:"user_id" validate:"required,min=1"`
	Content string     `json:"content" validate:"required"`
	SentAt  *time.Time `json:"sent_at"`
}

func (p *PostMessage) Validate() error {
	return validate.Struct(p)
}
