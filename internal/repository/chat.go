package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/agile/internal/database"
	"github.com/deppfellow/agile/internal/model"
	"github.com/jackc/pgx/v5"
)

type ChatRepository struct {
	crud[model.Chat]
}

func NewChatRepository(db *database.Database) *ChatRepository {
	return &ChatRepository{crud[model.Chat]{db: db, t: chats}}
}

// Create inserts a chat. Setting both ProjectID and TaskID is accepted.
func (r *ChatRepository) Create(ctx context.Context, in *model.CreateChat) (*model.Chat, error) {
	values := map[string]any{}
	setPtr(values, "project_id", in.ProjectID)
	setPtr(values, "task_id", in.TaskID)
	return r.create(ctx, values)
}

func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*model.Chat, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

// GetWithRelations loads the chat with the project and task it is attached
// to, when set, and its messages in send order.
func (r *ChatRepository) GetWithRelations(ctx context.Context, id int64) (*model.ChatWithRelations, error) {
	var out *model.ChatWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		chat, err := getRow[model.Chat](ctx, tx, chats, sq.Eq{"id": id})
		if err != nil || chat == nil {
			return err
		}

		v := model.ChatWithRelations{Chat: *chat}
		b := &pgx.Batch{}
		if chat.ProjectID != nil {
			queueOne(b, &v.Project, projects.queryWhere("id"), *chat.ProjectID)
		}
		if chat.TaskID != nil {
			queueOne(b, &v.Task, tasks.queryWhere("id"), *chat.TaskID)
		}
		queueList(b, &v.Messages, chatMessagesSQL, id)
		if err := sendBatch(ctx, tx, b); err != nil {
			return err
		}

		out = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var chatMessagesSQL = "SELECT " + messages.cols("") + " FROM messages WHERE chat_id = $1 ORDER BY sent_at, id"

func (r *ChatRepository) Update(ctx context.Context, id int64, in *model.UpdateChat) error {
	values := map[string]any{}
	setNullable(values, "project_id", in.ProjectID)
	setNullable(values, "task_id", in.TaskID)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *ChatRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *ChatRepository) GetAll(ctx context.Context) ([]model.Chat, error) {
	return r.all(ctx)
}

type MessageRepository struct {
	crud[model.Message]
}

func NewMessageRepository(db *database.Database) *MessageRepository {
	return &MessageRepository{crud[model.Message]{db: db, t: messages}}
}

func (r *MessageRepository) Create(ctx context.Context, in *model.CreateMessage) (*model.Message, error) {
	values := map[string]any{
		"content": in.Content,
		"user_id": in.UserID,
		"chat_id": in.ChatID,
	}
	setPtr(values, "sent_at", in.SentAt)
	return r.create(ctx, values)
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	return r.get(ctx, sq.Eq{"id": id})
}

var messageWithRelationsSQL = "SELECT " + messages.cols("m") + ", " + users.cols("u") + ", " + chats.cols("c") +
	" FROM messages m" +
	" JOIN users u ON u.id = m.user_id" +
	" JOIN chats c ON c.id = m.chat_id" +
	" WHERE m.id = $1"

func (r *MessageRepository) GetWithRelations(ctx context.Context, id int64) (*model.MessageWithRelations, error) {
	var out *model.MessageWithRelations
	err := r.read(ctx, func(tx pgx.Tx) error {
		v := model.MessageWithRelations{User: &model.User{}, Chat: &model.Chat{}}
		found, err := scanJoined(ctx, tx, messageWithRelationsSQL, []any{id}, fields(
			messageFields(&v.Message),
			userFields(v.User),
			chatFields(v.Chat),
		)...)
		if found {
			out = &v
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MessageRepository) Update(ctx context.Context, id int64, in *model.UpdateMessage) error {
	values := map[string]any{}
	setPtr(values, "content", in.Content)
	setPtr(values, "user_id", in.UserID)
	setPtr(values, "chat_id", in.ChatID)
	setPtr(values, "sent_at", in.SentAt)
	return r.update(ctx, sq.Eq{"id": id}, values)
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, sq.Eq{"id": id})
}

func (r *MessageRepository) GetAll(ctx context.Context) ([]model.Message, error) {
	return r.all(ctx)
}
