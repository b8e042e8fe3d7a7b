package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/llm"
	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/stretchr/testify/require"
)

func userMsg(content string) service.ChatMessage {
	return service.ChatMessage{Role: llm.RoleUser, Content: content}
}

func TestTurnNewConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)

	res, err := f.chat.Turn(ctx, service.TurnInput{
		UserID:   uid,
		Messages: []service.ChatMessage{userMsg("What should we cook for dinner tonight with potatoes?")},
	})
	require.NoError(t, err)
	require.Equal(t, "hello from the model", res.Reply)
	require.NotEmpty(t, res.ConversationID)
	require.Equal(t, domain.UsageDelta{Requests: 1, PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30}, res.Usage)

	conv, msgs, err := f.chat.Get(ctx, uid, res.ConversationID)
	require.NoError(t, err)
	require.Equal(t, "What should we cook for dinner", conv.Title)
	require.Len(t, msgs, 2)
	require.Equal(t, domain.MessageRoleUser, msgs[0].Role)
	require.Equal(t, domain.MessageRoleAssistant, msgs[1].Role)
	require.Equal(t, "hello from the model", msgs[1].Content)

	// System preamble goes first.
	require.Len(t, f.completer.calls, 1)
	sent := f.completer.calls[0].Messages
	require.Equal(t, llm.Message{Role: llm.RoleSystem, Content: "be kind"}, sent[0])

	usage, err := f.usage.GetToday(ctx, uid)
	require.NoError(t, err)
	require.EqualValues(t, 1, usage.Requests)
	require.EqualValues(t, 30, usage.TotalTokens)
}

func TestTurnContinuesOwnedConversation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	other := f.registerMember(t, "other@example.com")

	first, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hi")}})
	require.NoError(t, err)

	_, err = f.chat.Turn(ctx, service.TurnInput{
		UserID:         uid,
		ConversationID: first.ConversationID,
		Messages: []service.ChatMessage{
			userMsg("hi"),
			{Role: llm.RoleAssistant, Content: "hello from the model"},
			userMsg("again"),
		},
		Model: "family-small",
	})
	require.NoError(t, err)
	require.Equal(t, "family-small", f.completer.calls[1].Model)

	_, msgs, err := f.chat.Get(ctx, uid, first.ConversationID)
	require.NoError(t, err)
	// Only user-role messages of each batch are stored, plus each reply.
	require.Len(t, msgs, 5)

	_, err = f.chat.Turn(ctx, service.TurnInput{
		UserID:         other,
		ConversationID: first.ConversationID,
		Messages:       []service.ChatMessage{userMsg("sneaky")},
	})
	require.ErrorIs(t, err, service.ErrConversationNotFound)
}

func TestTurnQuotaScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	f.chat.Quota = service.Quota{MaxRequestsPerDay: 2}

	for range 2 {
		_, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hi")}})
		require.NoError(t, err)
	}

	before, err := f.chat.List(ctx, uid)
	require.NoError(t, err)

	_, err = f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("third")}})
	var qe *service.QuotaExceededError
	require.ErrorAs(t, err, &qe)
	require.Equal(t, service.QuotaRequests, qe.Kind)

	after, err := f.chat.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, after, len(before), "no conversation persisted")
	require.Equal(t, 2, f.completer.Calls(), "no upstream call made")

	usage, err := f.usage.GetToday(ctx, uid)
	require.NoError(t, err)
	require.EqualValues(t, 2, usage.Requests)
	require.EqualValues(t, 60, usage.TotalTokens)
}

func TestTurnUnconfiguredWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	f.completer.disabled = true

	_, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hi")}})
	require.ErrorIs(t, err, service.ErrBackendUnconfigured)

	list, err := f.chat.List(ctx, uid)
	require.NoError(t, err)
	require.Empty(t, list)

	f.chat.Completer = nil
	_, err = f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hi")}})
	require.ErrorIs(t, err, service.ErrBackendUnconfigured)
}

func TestTurnValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)

	_, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid})
	require.ErrorIs(t, err, service.ErrNoMessages)

	_, err = f.chat.Turn(ctx, service.TurnInput{
		UserID:   uid,
		Messages: []service.ChatMessage{{Role: "tool", Content: "x"}},
	})
	require.ErrorIs(t, err, service.ErrInvalidMessageRole)
	require.Zero(t, f.completer.Calls())
}

func TestTurnUpstreamFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	f.completer.err = errors.New("model is overloaded")

	res, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hello?")}})
	var ue *service.UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Contains(t, err.Error(), "model is overloaded")

	_, msgs, err := f.chat.Get(ctx, uid, res.ConversationID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, domain.MessageRoleUser, msgs[0].Role)

	usage, err := f.usage.GetToday(ctx, uid)
	require.NoError(t, err)
	require.Zero(t, usage.Requests, "failed turns are not metered")
}

func TestTurnMissingUsageRecordsZeroTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	f.completer.usage = llm.Usage{}

	_, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("hi")}})
	require.NoError(t, err)

	usage, err := f.usage.GetToday(ctx, uid)
	require.NoError(t, err)
	require.EqualValues(t, 1, usage.Requests)
	require.Zero(t, usage.TotalTokens)
}

func TestTurnTruncatesLongMessages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)

	long := strings.Repeat("家", service.MaxMessageRunes+50)
	res, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg(long)}})
	require.NoError(t, err)

	conv, msgs, err := f.chat.Get(ctx, uid, res.ConversationID)
	require.NoError(t, err)
	require.Equal(t, service.MaxMessageRunes, utf8.RuneCountInString(msgs[0].Content))
	require.Equal(t, service.MaxTitleRunes, utf8.RuneCountInString(conv.Title))

	sent := f.completer.calls[0].Messages[1].Content
	require.Equal(t, service.MaxMessageRunes, utf8.RuneCountInString(sent))
}

func TestTurnPlaceholderTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)

	res, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("   ")}})
	require.NoError(t, err)

	conv, _, err := f.chat.Get(ctx, uid, res.ConversationID)
	require.NoError(t, err)
	require.Equal(t, service.NewConversationTitle, conv.Title)
}

func TestConversationManagement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uid := f.registerAdmin(t)
	other := f.registerMember(t, "other@example.com")

	res, err := f.chat.Turn(ctx, service.TurnInput{UserID: uid, Messages: []service.ChatMessage{userMsg("plan the trip")}})
	require.NoError(t, err)
	id := res.ConversationID

	// Foreign access looks exactly like a missing conversation.
	_, _, err = f.chat.Get(ctx, other, id)
	require.ErrorIs(t, err, service.ErrConversationNotFound)
	require.ErrorIs(t, f.chat.Rename(ctx, other, id, "mine now"), service.ErrConversationNotFound)
	require.NoError(t, f.chat.Delete(ctx, other, id))

	require.NoError(t, f.chat.Rename(ctx, uid, id, "Summer trip"))
	conv, _, err := f.chat.Get(ctx, uid, id)
	require.NoError(t, err)
	require.Equal(t, "Summer trip", conv.Title)

	require.NoError(t, f.chat.Rename(ctx, uid, id, ""))
	conv, _, err = f.chat.Get(ctx, uid, id)
	require.NoError(t, err)
	require.Equal(t, service.UntitledConversation, conv.Title)

	require.NoError(t, f.chat.Delete(ctx, uid, id))
	require.NoError(t, f.chat.Delete(ctx, uid, id), "delete is idempotent")

	_, _, err = f.chat.Get(ctx, uid, id)
	require.ErrorIs(t, err, service.ErrConversationNotFound)

	msgs, err := f.store.Conversations().ListMessages(ctx, id)
	require.NoError(t, err)
	require.Empty(t, msgs, "no orphaned messages")
}
