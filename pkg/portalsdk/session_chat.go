package portalsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Chat sends one turn and returns the model's reply.
func (s *Session) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := s.do(ctx, http.MethodPost, "/api/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListChats returns the caller's conversations, newest first.
func (s *Session) ListChats(ctx context.Context) ([]Chat, error) {
	var out ChatsResponse
	if err := s.do(ctx, http.MethodGet, "/api/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

// GetChat returns one conversation with its messages in order.
func (s *Session) GetChat(ctx context.Context, id string) (*ChatDetailResponse, error) {
	var out ChatDetailResponse
	if err := s.do(ctx, http.MethodGet, "/api/history/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RenameChat(ctx context.Context, id, title string) error {
	var out OKResponse
	return s.do(ctx, http.MethodPost, "/api/history/"+url.PathEscape(id)+"/rename", RenameRequest{Title: title}, &out)
}

func (s *Session) DeleteChat(ctx context.Context, id string) error {
	var out OKResponse
	return s.do(ctx, http.MethodDelete, "/api/history/"+url.PathEscape(id), nil, &out)
}
