package http

import (
	"net/http"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

type HistoryHandler struct {
	ChatService *service.ChatService
}

// HandleList godoc
//
//	@Summary		List conversations
//	@Description	The caller's conversations, newest first.
//	@Tags			History
//	@Produce		json
//	@Success		200	{object}	portalsdk.ChatsResponse
//	@Failure		401	{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/history [get].
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	convs, err := h.ChatService.List(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, r, err, "failed to list conversations")
		return
	}

	out := portalsdk.ChatsResponse{Chats: make([]portalsdk.Chat, 0, len(convs))}
	for _, c := range convs {
		out.Chats = append(out.Chats, toChat(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get conversation
//	@Description	One conversation with its messages in insertion order. Other users' conversations are reported as missing.
//	@Tags			History
//	@Produce		json
//	@Param			id	path		string	true	"Conversation ID"
//	@Success		200	{object}	portalsdk.ChatDetailResponse
//	@Failure		404	{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/history/{id} [get].
func (h *HistoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	conv, msgs, err := h.ChatService.Get(r.Context(), p.UserID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "failed to load conversation")
		return
	}

	out := portalsdk.ChatDetailResponse{
		Chat:     toChat(conv),
		Messages: make([]portalsdk.Message, 0, len(msgs)),
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, portalsdk.Message{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Unix(),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRename godoc
//
//	@Summary		Rename conversation
//	@Description	Set the title. A blank title falls back to a placeholder.
//	@Tags			History
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Conversation ID"
//	@Param			request	body		portalsdk.RenameRequest	true	"New title"
//	@Success		200		{object}	portalsdk.OKResponse
//	@Failure		404		{object}	portalsdk.ErrorResponse
//	@Security		CookieAuth
//	@Router			/api/history/{id}/rename [post].
func (h *HistoryHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req portalsdk.RenameRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.ChatService.Rename(r.Context(), p.UserID, r.PathValue("id"), req.Title); err != nil {
		writeServiceError(w, r, err, "failed to rename conversation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.OKResponse{OK: true})
}

// HandleDelete godoc
//
//	@Summary		Delete conversation
//	@Description	Remove a conversation and its messages. Unknown ids succeed.
//	@Tags			History
//	@Produce		json
//	@Param			id	path		string	true	"Conversation ID"
//	@Success		200	{object}	portalsdk.OKResponse
//	@Security		CookieAuth
//	@Router			/api/history/{id} [delete].
func (h *HistoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.ChatService.Delete(r.Context(), p.UserID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to delete conversation")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, portalsdk.OKResponse{OK: true})
}
