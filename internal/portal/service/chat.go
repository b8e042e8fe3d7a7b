package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/llm"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/pkg/idx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

const (
	// MaxMessageRunes bounds stored and forwarded message content.
	MaxMessageRunes = 8000
	// MaxTitleRunes bounds titles derived from the first message.
	MaxTitleRunes = 30

	NewConversationTitle = "新会话"
	UntitledConversation = "未命名会话"

	DefaultChatTimeout = 60 * time.Second
)

var (
	ErrBackendUnconfigured  = errors.New("chat backend is not configured")
	ErrNoMessages           = errors.New("messages must be a non-empty list")
	ErrInvalidMessageRole   = errors.New("message role must be user, assistant or system")
	ErrConversationNotFound = errors.New("conversation not found")
)

// UpstreamError wraps a failed completion call. The user's messages are
// already stored when it is returned.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return "completion failed: " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }

type ChatService struct {
	Store     store.Store
	Usage     *UsageService
	Completer llm.Completer

	Quota        Quota
	SystemPrompt string
	// Timeout bounds a single completion call, DefaultChatTimeout when zero.
	Timeout time.Duration

	Now func() time.Time
}

type ChatMessage struct {
	Role    string
	Content string
}

type TurnInput struct {
	UserID         int64
	ConversationID string // empty starts a new conversation
	Messages       []ChatMessage
	Model          string
}

type TurnResult struct {
	Reply          string
	ConversationID string
	Usage          domain.UsageDelta
}

// Turn runs one chat exchange. The steps commit independently and no
// transaction is held across the completion call, so a failed completion
// leaves the user's messages stored without a reply.
func (s *ChatService) Turn(ctx context.Context, in TurnInput) (TurnResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Refuse before writing anything if there is nobody to answer
	if s.Completer == nil || !s.Completer.Configured() {
		return TurnResult{}, ErrBackendUnconfigured
	}

	// 2. Validate the batch
	if len(in.Messages) == 0 {
		return TurnResult{}, ErrNoMessages
	}
	for _, m := range in.Messages {
		switch m.Role {
		case llm.RoleUser, llm.RoleAssistant, llm.RoleSystem:
		default:
			return TurnResult{}, ErrInvalidMessageRole
		}
	}

	// 3. Quota admission
	if err := s.Usage.Admit(ctx, in.UserID, s.Quota); err != nil {
		log.Info("chat turn rejected by quota", slog.Any("error", err))
		return TurnResult{}, err
	}

	// 4. Resolve the conversation and store the user's messages
	now := clock(s.Now).Truncate(time.Second)
	convID := in.ConversationID
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if convID == "" {
			conv := domain.Conversation{
				ID:        idx.New().String(),
				UserID:    in.UserID,
				Title:     titleFrom(in.Messages),
				CreatedAt: now,
			}
			if err := tx.Conversations().CreateConversation(ctx, conv); err != nil {
				return err
			}
			convID = conv.ID
		} else if _, err := tx.Conversations().GetConversation(ctx, convID, in.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrConversationNotFound
			}
			return err
		}

		for _, m := range in.Messages {
			if m.Role != llm.RoleUser {
				continue
			}
			_, err := tx.Conversations().AppendMessage(ctx, domain.Message{
				ConversationID: convID,
				Role:           domain.MessageRoleUser,
				Content:        truncateRunes(m.Content, MaxMessageRunes),
				CreatedAt:      now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return TurnResult{}, err
	}

	// 5. Ask the backend with the system preamble in front
	msgs := make([]llm.Message, 0, len(in.Messages)+1)
	if s.SystemPrompt != "" {
		msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: s.SystemPrompt})
	}
	for _, m := range in.Messages {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: truncateRunes(m.Content, MaxMessageRunes)})
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultChatTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	completion, err := s.Completer.Complete(cctx, llm.CompletionRequest{Model: in.Model, Messages: msgs})
	if err != nil {
		log.Error("completion failed",
			slog.String("conversation_id", convID),
			slog.Duration("elapsed", time.Since(started)),
			slog.Any("error", err),
		)
		return TurnResult{ConversationID: convID}, &UpstreamError{Err: err}
	}

	// 6. Store the reply as received
	_, err = s.Store.Conversations().AppendMessage(ctx, domain.Message{
		ConversationID: convID,
		Role:           domain.MessageRoleAssistant,
		Content:        completion.Text,
		CreatedAt:      clock(s.Now).Truncate(time.Second),
	})
	if err != nil {
		return TurnResult{}, fmt.Errorf("store assistant reply: %w", err)
	}

	// 7. Account for the turn
	delta := domain.UsageDelta{
		Requests:         1,
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
	}
	if err := s.Usage.Record(ctx, in.UserID, delta); err != nil {
		return TurnResult{}, fmt.Errorf("record usage: %w", err)
	}

	log.Info("chat turn completed",
		slog.String("conversation_id", convID),
		slog.Int64("total_tokens", delta.TotalTokens),
		slog.Duration("elapsed", time.Since(started)),
	)

	// 8. Done
	return TurnResult{Reply: completion.Text, ConversationID: convID, Usage: delta}, nil
}

// List returns the user's conversations, newest first.
func (s *ChatService) List(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.Store.Conversations().ListConversations(ctx, userID)
}

// Get returns a conversation with its messages. Conversations of other users
// are reported as not found.
func (s *ChatService) Get(ctx context.Context, userID int64, id string) (domain.Conversation, []domain.Message, error) {
	conv, err := s.Store.Conversations().GetConversation(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Conversation{}, nil, ErrConversationNotFound
		}
		return domain.Conversation{}, nil, err
	}

	msgs, err := s.Store.Conversations().ListMessages(ctx, id)
	if err != nil {
		return domain.Conversation{}, nil, err
	}
	return conv, msgs, nil
}

// Rename sets the title, falling back to a placeholder for blank titles.
func (s *ChatService) Rename(ctx context.Context, userID int64, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = UntitledConversation
	}

	err := s.Store.Conversations().RenameConversation(ctx, id, userID, title)
	if errors.Is(err, store.ErrNotFound) {
		return ErrConversationNotFound
	}
	return err
}

// Delete removes an owned conversation and all of its messages. Unknown or
// foreign ids succeed without effect.
func (s *ChatService) Delete(ctx context.Context, userID int64, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Conversations().DeleteConversation(ctx, id, userID)
	})
}

func titleFrom(msgs []ChatMessage) string {
	for _, m := range msgs {
		if m.Role != llm.RoleUser {
			continue
		}
		if t := strings.TrimSpace(m.Content); t != "" {
			return truncateRunes(t, MaxTitleRunes)
		}
		break
	}
	return NewConversationTitle
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
