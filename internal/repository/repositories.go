package repository

import "github.com/deppfellow/agile/internal/database"

// Repositories is a container for all repository instances. They share one
// connection pool.
type Repositories struct {
	AccessLevels        *AccessLevelRepository
	AccessSettings      *AccessSettingRepository
	AccessLevelSettings *AccessLevelSettingRepository
	Users               *UserRepository
	Statuses            *StatusRepository
	Priorities          *PriorityRepository
	Projects            *ProjectRepository
	Tasks               *TaskRepository
	Chats               *ChatRepository
	Messages            *MessageRepository
	Notifications       *NotificationRepository
	Comments            *CommentRepository
	Reports             *ReportRepository
	ProjectAssigned     *ProjectAssignedRepository
	TaskAssigned        *TaskAssignedRepository
}

func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		AccessLevels:        NewAccessLevelRepository(db),
		AccessSettings:      NewAccessSettingRepository(db),
		AccessLevelSettings: NewAccessLevelSettingRepository(db),
		Users:               NewUserRepository(db),
		Statuses:            NewStatusRepository(db),
		Priorities:          NewPriorityRepository(db),
		Projects:            NewProjectRepository(db),
		Tasks:               NewTaskRepository(db),
		Chats:               NewChatRepository(db),
		Messages:            NewMessageRepository(db),
		Notifications:       NewNotificationRepository(db),
		Comments:            NewCommentRepository(db),
		Reports:             NewReportRepository(db),
		ProjectAssigned:     NewProjectAssignedRepository(db),
		TaskAssigned:        NewTaskAssignedRepository(db),
	}
}
