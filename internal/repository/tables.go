package repository

import "github.com/deppfellow/agile/internal/model"

// Column order in each table must match the matching *Fields function.

var accessLevels = table{
	name:    "access_levels",
	columns: []string{"id", "name"},
	key:     []string{"id"},
}

func accessLevelFields(v *model.AccessLevel) []any {
	return []any{&v.ID, &v.Name}
}

var accessSettings = table{
	name:    "access_settings",
	columns: []string{"id", "permission"},
	key:     []string{"id"},
}

func accessSettingFields(v *model.AccessSetting) []any {
	return []any{&v.ID, &v.Permission}
}

var accessLevelSettings = table{
	name:    "access_level_settings",
	columns: []string{"access_level_id", "access_setting_id", "allowed"},
	key:     []string{"access_level_id", "access_setting_id"},
}

func accessLevelSettingFields(v *model.AccessLevelSetting) []any {
	return []any{&v.AccessLevelID, &v.AccessSettingID, &v.Allowed}
}

var users = table{
	name:    "users",
	columns: []string{"id", "name", "email", "role_id", "registration_date", "avatar", "created_at"},
	key:     []string{"id"},
}

func userFields(v *model.User) []any {
	return []any{&v.ID, &v.Name, &v.Email, &v.RoleID, &v.RegistrationDate, &v.Avatar, &v.CreatedAt}
}

var statuses = table{
	name:    "statuses",
	columns: []string{"id", "name", "type"},
	key:     []string{"id"},
}

func statusFields(v *model.Status) []any {
	return []any{&v.ID, &v.Name, &v.Type}
}

var priorities = table{
	name:    "priorities",
	columns: []string{"id", "name"},
	key:     []string{"id"},
}

func priorityFields(v *model.Priority) []any {
	return []any{&v.ID, &v.Name}
}

var projects = table{
	name:    "projects",
	columns: []string{"id", "title", "description", "start_date", "deadline", "status_id", "owner_id", "priority_id"},
	key:     []string{"id"},
}

func projectFields(v *model.Project) []any {
	return []any{&v.ID, &v.Title, &v.Description, &v.StartDate, &v.Deadline, &v.StatusID, &v.OwnerID, &v.PriorityID}
}

var tasks = table{
	name:    "tasks",
	columns: []string{"id", "title", "description", "priority_id", "status_id", "executor_id", "project_id", "deadline"},
	key:     []string{"id"},
}

func taskFields(v *model.Task) []any {
	return []any{&v.ID, &v.Title, &v.Description, &v.PriorityID, &v.StatusID, &v.ExecutorID, &v.ProjectID, &v.Deadline}
}

var chats = table{
	name:    "chats",
	columns: []string{"id", "project_id", "task_id"},
	key:     []string{"id"},
}

func chatFields(v *model.Chat) []any {
	return []any{&v.ID, &v.ProjectID, &v.TaskID}
}

var messages = table{
	name:    "messages",
	columns: []string{"id", "content", "user_id", "chat_id", "sent_at"},
	key:     []string{"id"},
}

func messageFields(v *model.Message) []any {
	return []any{&v.ID, &v.Content, &v.UserID, &v.ChatID, &v.SentAt}
}

var notifications = table{
	name:    "notifications",
	columns: []string{"id", "content", "user_id", "sent_at"},
	key:     []string{"id"},
}

func notificationFields(v *model.Notification) []any {
	return []any{&v.ID, &v.Content, &v.UserID, &v.SentAt}
}

var comments = table{
	name:    "comments",
	columns: []string{"id", "content", "user_id", "project_id", "task_id"},
	key:     []string{"id"},
}

func commentFields(v *model.Comment) []any {
	return []any{&v.ID, &v.Content, &v.UserID, &v.ProjectID, &v.TaskID}
}

var reports = table{
	name:    "reports",
	columns: []string{"id", "title", "content", "project_id", "created_at"},
	key:     []string{"id"},
}

func reportFields(v *model.Report) []any {
	return []any{&v.ID, &v.Title, &v.Content, &v.ProjectID, &v.CreatedAt}
}

var projectAssigned = table{
	name:    "project_assigned",
	columns: []string{"user_id", "project_id", "created_at"},
	key:     []string{"user_id", "project_id"},
}

func projectAssignedFields(v *model.ProjectAssigned) []any {
	return []any{&v.UserID, &v.ProjectID, &v.CreatedAt}
}

var taskAssigned = table{
	name:    "task_assigned",
	columns: []string{"user_id", "task_id", "created_at"},
	key:     []string{"user_id", "task_id"},
}

func taskAssignedFields(v *model.TaskAssigned) []any {
	return []any{&v.UserID, &v.TaskID, &v.CreatedAt}
}
