package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/rs/zerolog"
)

type projectAssignments interface {
	Create(ctx context.Context, in *model.CreateProjectAssigned) (*model.ProjectAssigned, error)
	Delete(ctx context.Context, userID, projectID int64) error
}

type taskAssignments interface {
	Create(ctx context.Context, in *model.CreateTaskAssigned) (*model.TaskAssigned, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

type projectReader interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
}

type taskReader interface {
	GetByID(ctx context.Context, id int64) (*model.Task, error)
}

// AssignmentService puts users on projects and tasks and tells them about it.
type AssignmentService struct {
	projectAssigned projectAssignments
	taskAssigned    taskAssignments
	projects        projectReader
	tasks           taskReader
	notifications   notifier
	logger          *zerolog.Logger
}

func NewAssignmentService(repos *repository.Repositories, n notifier, logger *zerolog.Logger) *AssignmentService {
	return &AssignmentService{
		projectAssigned: repos.ProjectAssigned,
		taskAssigned:    repos.TaskAssigned,
		projects:        repos.Projects,
		tasks:           repos.Tasks,
		notifications:   n,
		logger:          logger,
	}
}

func (s *AssignmentService) AssignToProject(ctx context.Context, in *model.CreateProjectAssigned) (*model.ProjectAssigned, error) {
	assigned, err := s.projectAssigned.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("You have been assigned to project #%d", in.ProjectID)
	if p, err := s.projects.GetByID(ctx, in.ProjectID); err == nil && p != nil {
		content = fmt.Sprintf("You have been assigned to project %s", p.Title)
	}
	notifyAll(ctx, s.notifications, s.logger, []int64{in.UserID}, content)

	return assigned, nil
}

func (s *AssignmentService) UnassignFromProject(ctx context.Context, userID, projectID int64) error {
	return s.projectAssigned.Delete(ctx, userID, projectID)
}

func (s *AssignmentService) AssignToTask(ctx context.Context, in *model.CreateTaskAssigned) (*model.TaskAssigned, error) {
	assigned, err := s.taskAssigned.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("You have been assigned to task #%d", in.TaskID)
	if t, err := s.tasks.GetByID(ctx, in.TaskID); err == nil && t != nil {
		content = fmt.Sprintf("You have been assigned to task %s", t.Title)
	}
	notifyAll(ctx, s.notifications, s.logger, []int64{in.UserID}, content)

	return assigned, nil
}

func (s *AssignmentService) UnassignFromTask(ctx context.Context, userID, taskID int64) error {
	return s.taskAssigned.Delete(ctx, userID, taskID)
}
