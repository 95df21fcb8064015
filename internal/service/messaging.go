package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/rs/zerolog"
)

type chatReader interface {
	GetByID(ctx context.Context, id int64) (*model.Chat, error)
}

type messageWriter interface {
	Create(ctx context.Context, in *model.CreateMessage) (*model.Message, error)
}

type participantLister interface {
	ListChatParticipants(ctx context.Context, chatID int64) ([]model.User, error)
}

// MessagingService posts chat messages and notifies the other participants.
type MessagingService struct {
	chats         chatReader
	messages      messageWriter
	participants  participantLister
	notifications notifier
	logger        *zerolog.Logger
}

func NewMessagingService(repos *repository.Repositories, n notifier, logger *zerolog.Logger) *MessagingService {
	return &MessagingService{
		chats:         repos.Chats,
		messages:      repos.Messages,
		participants:  repos.Users,
		notifications: n,
		logger:        logger,
	}
}

// PostMessage stores in as a message of its chat. Users assigned to the
// chat's project or task are notified, except the author.
func (s *MessagingService) PostMessage(ctx context.Context, in *model.PostMessage) (*model.Message, error) {
	chat, err := s.chats.GetByID(ctx, in.ChatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		code := "CHAT_NOT_FOUND"
		return nil, errs.NewNotFoundError(fmt.Sprintf("chat %d not found", in.ChatID), true, &code)
	}

	msg, err := s.messages.Create(ctx, &model.CreateMessage{
		Content: in.Content,
		UserID:  in.UserID,
		ChatID:  in.ChatID,
		SentAt:  in.SentAt,
	})
	if err != nil {
		return nil, err
	}

	users, err := s.participants.ListChatParticipants(ctx, in.ChatID)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", in.ChatID).Msg("failed to list chat participants")
		return msg, nil
	}

	recipients := make([]int64, 0, len(users))
	for _, u := range users {
		if u.ID != in.UserID {
			recipients = append(recipients, u.ID)
		}
	}
	notifyAll(ctx, s.notifications, s.logger, recipients, fmt.Sprintf("New message in chat #%d", in.ChatID))

	return msg, nil
}
