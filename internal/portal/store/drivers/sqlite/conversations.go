package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite/gen"
)

type conversationsRepo struct {
	q *gen.Queries
}

func (r *conversationsRepo) CreateConversation(ctx context.Context, c domain.Conversation) error {
	err := r.q.CreateChat(ctx, gen.CreateChatParams{
		ID:        c.ID,
		UserID:    c.UserID,
		Title:     sql.NullString{String: c.Title, Valid: true},
		CreatedAt: c.CreatedAt.Unix(),
	})
	return mapConstraint(err)
}

func (r *conversationsRepo) GetConversation(ctx context.Context, id string, userID int64) (domain.Conversation, error) {
	row, err := r.q.GetChat(ctx, gen.GetChatParams{ID: id, UserID: userID})
	if err != nil {
		return domain.Conversation{}, mapNotFound(err)
	}
	return mapConversation(row), nil
}

func (r *conversationsRepo) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	rows, err := r.q.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Conversation, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapConversation(row))
	}
	return out, nil
}

func (r *conversationsRepo) RenameConversation(ctx context.Context, id string, userID int64, title string) error {
	return expectOne(r.q.RenameChat(ctx, gen.RenameChatParams{
		Title:  sql.NullString{String: title, Valid: true},
		ID:     id,
		UserID: userID,
	}))
}

// DeleteConversation removes messages explicitly rather than relying on the
// ON DELETE CASCADE, so an owner check failure deletes nothing at all.
func (r *conversationsRepo) DeleteConversation(ctx context.Context, id string, userID int64) error {
	if err := r.q.DeleteChatMessages(ctx, gen.DeleteChatMessagesParams{ID: id, UserID: userID}); err != nil {
		return err
	}
	return r.q.DeleteChat(ctx, gen.DeleteChatParams{ID: id, UserID: userID})
}

func (r *conversationsRepo) AppendMessage(ctx context.Context, m domain.Message) (int64, error) {
	id, err := r.q.CreateMessage(ctx, gen.CreateMessageParams{
		ChatID:    m.ConversationID,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Unix(),
	})
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *conversationsRepo) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := r.q.ListMessagesByChat(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapMessage(row))
	}
	return out, nil
}
