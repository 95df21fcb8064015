package model

import "time"

// User is a member of the workspace. Email is globally unique.
type User struct {
	ID               int64     `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	RoleID           int64     `db:"role_id" json:"role_id"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	Avatar           *string   `db:"avatar" json:"avatar"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// CreateUser holds the values for a new user. Nil timestamps take the
// database default (now).
type CreateUser struct {
	Name             string     `json:"name" validate:"required,max=255"`
	Email            string     `json:"email" validate:"required,email"`
	RoleID           int64      `json:"role_id" validate:"required,min=1"`
	RegistrationDate *time.Time `json:"registration_date"`
	Avatar           *string    `json:"avatar"`
	CreatedAt        *time.Time `json:"created_at"`
}

func (c *CreateUser) Validate() error {
	return validate.Struct(c)
}

// UpdateUser names the columns to change; nil fields are left untouched.
type UpdateUser struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Email            *string          `json:"email" validate:"omitempty,email"`
	RoleID           *int64           `json:"role_id" validate:"omitempty,min=1"`
	RegistrationDate *time.Time       `json:"registration_date"`
	Avatar           Nullable[string] `json:"avatar"`
}

func (u *UpdateUser) Validate() error {
	return validate.Struct(u)
}

// UserWithRelations is a user with the rows that point at it.
type UserWithRelations struct {
	User
	Role             *AccessLevel   `json:"role"`
	OwnedProjects    []Project      `json:"owned_projects"`
	Notifications    []Notification `json:"notifications"`
	Messages         []Message      `json:"messages"`
	AssignedProjects []Project      `json:"assigned_projects"`
	AssignedTasks    []Task         `json:"assigned_tasks"`
}
