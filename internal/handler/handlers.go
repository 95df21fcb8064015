package handler

import (
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/server"
	"github.com/deppfellow/agile/internal/service"
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health *HealthHandler

	AccessLevels   Routes
	AccessSettings Routes
	Users          Routes
	Statuses       Routes
	Priorities     Routes
	Projects       Routes
	Tasks          Routes
	Chats          Routes
	Messages       Routes
	Notifications  Routes
	Comments       Routes
	Reports        Routes

	AccessLevelSettings Routes
	ProjectAssignments  Routes
	TaskAssignments     Routes

	AccessSettingsForLevel echo.HandlerFunc
	PostMessage            echo.HandlerFunc
}

func NewHandlers(s *server.Server, services *service.Services, repos *repository.Repositories) *Handlers {
	h := NewHandler(s)

	return &Handlers{
		Health: NewHealthHandler(s),

		AccessLevels: NewResourceHandler[model.AccessLevel, model.CreateAccessLevel, *model.CreateAccessLevel,
			model.UpdateAccessLevel, *model.UpdateAccessLevel, model.AccessLevelWithRelations](h, "access level", repos.AccessLevels),
		AccessSettings: NewResourceHandler[model.AccessSetting, model.CreateAccessSetting, *model.CreateAccessSetting,
			model.UpdateAccessSetting, *model.UpdateAccessSetting, model.AccessSettingWithRelations](h, "access setting", repos.AccessSettings),
		Users: NewResourceHandler[model.User, model.CreateUser, *model.CreateUser,
			model.UpdateUser, *model.UpdateUser, model.UserWithRelations](h, "user", repos.Users),
		Statuses: NewResourceHandler[model.Status, model.CreateStatus, *model.CreateStatus,
			model.UpdateStatus, *model.UpdateStatus, model.StatusWithRelations](h, "status", repos.Statuses),
		Priorities: NewResourceHandler[model.Priority, model.CreatePriority, *model.CreatePriority,
			model.UpdatePriority, *model.UpdatePriority, model.PriorityWithRelations](h, "priority", repos.Priorities),
		Projects: NewResourceHandler[model.Project, model.CreateProject, *model.CreateProject,
			model.UpdateProject, *model.UpdateProject, model.ProjectWithRelations](h, "project", repos.Projects),
		Tasks: NewResourceHandler[model.Task, model.CreateTask, *model.CreateTask,
			model.UpdateTask, *model.UpdateTask, model.TaskWithRelations](h, "task", repos.Tasks),
		Chats: NewResourceHandler[model.Chat, model.CreateChat, *model.CreateChat,
			model.UpdateChat, *model.UpdateChat, model.ChatWithRelations](h, "chat", repos.Chats),
		Messages: NewResourceHandler[model.Message, model.CreateMessage, *model.CreateMessage,
			model.UpdateMessage, *model.UpdateMessage, model.MessageWithRelations](h, "message", repos.Messages),
		Notifications: NewResourceHandler[model.Notification, model.CreateNotification, *model.CreateNotification,
			model.UpdateNotification, *model.UpdateNotification, model.NotificationWithRelations](h, "notification", repos.Notifications),
		Comments: NewResourceHandler[model.Comment, model.CreateComment, *model.CreateComment,
			model.UpdateComment, *model.UpdateComment, model.CommentWithRelations](h, "comment", repos.Comments),
		Reports: NewResourceHandler[model.Report, model.CreateReport, *model.CreateReport,
			model.UpdateReport, *model.UpdateReport, model.ReportWithRelations](h, "report", repos.Reports),

		AccessLevelSettings: NewAccessLevelSettingHandler(h, repos.AccessLevelSettings),
		ProjectAssignments:  NewProjectAssignmentHandler(h, services.Assignments, repos.ProjectAssigned),
		TaskAssignments:     NewTaskAssignmentHandler(h, services.Assignments, repos.TaskAssigned),

		AccessSettingsForLevel: AccessSettingsForLevel(h, repos.AccessSettings),
		PostMessage:            PostMessage(h, services.Messaging),
	}
}
