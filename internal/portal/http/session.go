package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
)

// sessionVerifier lets httpx.RequireSession check tokens against live accounts.
type sessionVerifier struct {
	accounts *service.AccountService
}

func (v sessionVerifier) VerifySession(ctx context.Context, token string) (httpx.Principal, error) {
	p, _, err := v.accounts.VerifySession(ctx, token)
	if errors.Is(err, service.ErrUnauthorized) {
		return httpx.Principal{}, fmt.Errorf("%w: %w", httpx.ErrSessionRejected, err)
	}
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: p.UserID, Role: p.Role.String()}, nil
}
