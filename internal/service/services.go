// Package service contains the business logic that spans more than one
// repository call.
//
// It sits between the handler and repository layers. Plain CRUD goes straight
// from handlers to repositories; services cover assignments, chat messages
// and the notifications they trigger.
package service

import (
	"github.com/deppfellow/agile/internal/lib/job"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/server"
)

type Services struct {
	Notifications *NotificationService
	Assignments   *AssignmentService
	Messaging     *MessagingService
	Job           *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	notifications := NewNotificationService(s.Job.Client, s.Logger)

	return &Services{
		Notifications: notifications,
		Assignments:   NewAssignmentService(repos, notifications, s.Logger),
		Messaging:     NewMessagingService(repos, notifications, s.Logger),
		Job:           s.Job,
	}, nil
}
