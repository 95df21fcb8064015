package model

// AccessLevel is a role users are attached to ("Manager", "Executor").
type AccessLevel struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// AccessSetting is a named permission ("create_project", "delete_task").
// It has no direct link to AccessLevel; AccessLevelSetting joins the two.
type AccessSetting struct {
	ID         int64  `db:"id" json:"id"`
	Permission string `db:"permission" json:"permission"`
}

// AccessLevelSetting grants or denies one permission to one access level.
type AccessLevelSetting struct {
	AccessLevelID   int64 `db:"access_level_id" json:"access_level_id"`
	AccessSettingID int64 `db:"access_setting_id" json:"access_setting_id"`
	Allowed         bool  `db:"allowed" json:"allowed"`
}

type CreateAccessLevel struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (c *CreateAccessLevel) Validate() error {
	return validate.Struct(c)
}

type UpdateAccessLevel struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

func (u *UpdateAccessLevel) Validate() error {
	return validate.Struct(u)
}

type CreateAccessSetting struct {
	Permission string `json:"permission" validate:"required,max=255"`
}

func (c *CreateAccessSetting) Validate() error {
	return validate.Struct(c)
}

type UpdateAccessSetting struct {
	Permission *string `json:"permission" validate:"omitempty,min=1,max=255"`
}

func (u *UpdateAccessSetting) Validate() error {
	return validate.Struct(u)
}

// CreateAccessLevelSetting takes its key from the URL path only.
type CreateAccessLevelSetting struct {
	AccessLevelID   int64 `json:"-" param:"access_level_id" validate:"required,min=1"`
	AccessSettingID int64 `json:"-" param:"access_setting_id" validate:"required,min=1"`
	Allowed         bool  `json:"allowed"`
}

func (c *CreateAccessLevelSetting) Validate() error {
	return validate.Struct(c)
}

type UpdateAccessLevelSetting struct {
	Allowed *bool `json:"allowed"`
}

func (u *UpdateAccessLevelSetting) Validate() error {
	return validate.Struct(u)
}

// AccessLevelWithRelations is an access level with its users and settings.
type AccessLevelWithRelations struct {
	AccessLevel
	Users    []User               `json:"users"`
	Settings []AccessLevelSetting `json:"settings"`
}

// AccessSettingWithRelations is a permission with the levels it is configured for.
type AccessSettingWithRelations struct {
	AccessSetting
	LevelSettings []AccessLevelSetting `json:"level_settings"`
}

// AccessLevelSettingWithRelations resolves both sides of the join.
type AccessLevelSettingWithRelations struct {
	AccessLevelSetting
	AccessLevel   *AccessLevel   `json:"access_level"`
	AccessSetting *AccessSetting `json:"access_setting"`
}
