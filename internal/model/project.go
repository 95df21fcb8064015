package model

import "time"

type Project struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	Deadline    *time.Time `db:"deadline" json:"deadline"`
	StatusID    int64      `db:"status_id" json:"status_id"`
	OwnerID     int64      `db:"owner_id" json:"owner_id"`
	PriorityID  int64      `db:"priority_id" json:"priority_id"`
}

type CreateProject struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	Deadline    *time.Time `json:"deadline"`
	StatusID    int64      `json:"status_id" validate:"required,min=1"`
	OwnerID     int64      `json:"owner_id" validate:"required,min=1"`
	PriorityID  int64      `json:"priority_id" validate:"required,min=1"`
}

func (c *CreateProject) Validate() error {
	return validate.Struct(c)
}

type UpdateProject struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=255"`
	Description Nullable[string]    `json:"description"`
	StartDate   *time.Time          `json:"start_date"`
	Deadline    Nullable[time.Time] `json:"deadline"`
	StatusID    *int64              `json:"status_id" validate:"omitempty,min=1"`
	OwnerID     *int64              `json:"owner_id" validate:"omitempty,min=1"`
	PriorityID  *int64              `json:"priority_id" validate:"omitempty,min=1"`
}

func (u *UpdateProject) Validate() error {
	return validate.Struct(u)
}

// ProjectWithRelations carries the project's lookups, its chat and its children.
type ProjectWithRelations struct {
	Project
	Status        *Status   `json:"status"`
	Owner         *User     `json:"owner"`
	Priority      *Priority `json:"priority"`
	Chat          *Chat     `json:"chat"`
	Tasks         []Task    `json:"tasks"`
	Reports       []Report  `json:"reports"`
	AssignedUsers []User    `json:"assigned_users"`
}
