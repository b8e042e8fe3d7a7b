package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/familyportal/internal/portal/metrics"
	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

type ChatHandler struct {
	ChatService *service.ChatService
	Metrics     *metrics.Metrics // optional
}

// chatRequest also accepts conversationId as an alias of chatId.
type chatRequest struct {
	portalsdk.ChatRequest
	ConversationID string `json:"conversationId,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Chat turn
//	@Description	Send the conversation so far and get the model's reply. Without chatId a new conversation is created.
//	@Description	Only user messages are stored; the reply is stored and the turn is metered against the daily quota.
//	@Tags			Chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		portalsdk.ChatRequest	true	"Messages"
//	@Success		200		{object}	portalsdk.ChatResponse
//	@Failure		400		{object}	portalsdk.ErrorResponse
//	@Failure		401		{object}	portalsdk.ErrorResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse	"unknown chatId"
//	@Failure		429		{object}	portalsdk.ErrorResponse	"quota exceeded, see the quota field"
//	@Failure		500		{object}	portalsdk.ErrorResponse	"backend unconfigured or upstream failure"
//	@Security		CookieAuth
//	@Router			/api/chat [post].
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	convID := req.ChatID
	if convID == "" {
		convID = req.ConversationID
	}

	msgs := make([]service.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, service.ChatMessage{Role: m.Role, Content: m.Content})
	}

	res, err := h.ChatService.Turn(r.Context(), service.TurnInput{
		UserID:         p.UserID,
		ConversationID: convID,
		Messages:       msgs,
		Model:          req.Model,
	})
	h.observe(res, err)
	if err != nil {
		writeServiceError(w, r, err, "chat failed")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, portalsdk.ChatResponse{
		Reply:  res.Reply,
		ChatID: res.ConversationID,
		Usage: portalsdk.TokenUsage{
			PromptTokens:     res.Usage.PromptTokens,
			CompletionTokens: res.Usage.CompletionTokens,
			TotalTokens:      res.Usage.TotalTokens,
		},
	})
}

func (h *ChatHandler) observe(res service.TurnResult, err error) {
	if h.Metrics == nil {
		return
	}

	var quotaErr *service.QuotaExceededError
	var upstreamErr *service.UpstreamError
	switch {
	case err == nil:
		h.Metrics.ChatTurn(metrics.OutcomeOK)
		h.Metrics.Tokens(res.Usage.PromptTokens, res.Usage.CompletionTokens)
	case errors.As(err, &quotaErr):
		h.Metrics.QuotaRejected(string(quotaErr.Kind))
	case errors.As(err, &upstreamErr):
		h.Metrics.ChatTurn(metrics.OutcomeUpstream)
	case errors.Is(err, service.ErrBackendUnconfigured):
		h.Metrics.ChatTurn(metrics.OutcomeUnconfigured)
	case errors.Is(err, service.ErrNoMessages),
		errors.Is(err, service.ErrInvalidMessageRole),
		errors.Is(err, service.ErrConversationNotFound):
		h.Metrics.ChatTurn(metrics.OutcomeInvalid)
	default:
		h.Metrics.ChatTurn(metrics.OutcomeError)
	}
}
