package model

// Status is a workflow state. Type says whether it applies to projects or tasks.
type Status struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Type string `db:"type" json:"type"`
}

type CreateStatus struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,oneof=project task"`
}

func (c *CreateStatus) Validate() error {
	return validate.Struct(c)
}

type UpdateStatus struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
	Type *string `json:"type" validate:"omitempty,oneof=project task"`
}

func (u *UpdateStatus) Validate() error {
	return validate.Struct(u)
}

type StatusWithRelations struct {
	Status
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
}

type Priority struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type CreatePriority struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (c *CreatePriority) Validate() error {
	return validate.Struct(c)
}

type UpdatePriority struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

func (u *UpdatePriority) Validate() error {
	return validate.Struct(u)
}

type PriorityWithRelations struct {
	Priority
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
}
