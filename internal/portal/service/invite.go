package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/pkg/cryptox"
	"github.com/aussiebroadwan/familyportal/pkg/idx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

var (
	ErrInviteMissing   = errors.New("invite code is required")
	ErrInviteNotFound  = errors.New("invite code does not exist")
	ErrInviteRevoked   = errors.New("invite code has been revoked")
	ErrInviteExpired   = errors.New("invite code has expired")
	ErrInviteExhausted = errors.New("invite code has no uses left")
)

// issueAttempts bounds retries when a freshly drawn code collides.
const issueAttempts = 3

type InviteService struct {
	Store store.Store
	Now   func() time.Time
}

// Issue mints a new invite. maxUses below 1 is treated as 1 and an
// expiresInDays of zero or less means the invite never expires.
func (s *InviteService) Issue(
	ctx context.Context,
	note string,
	maxUses int,
	expiresInDays int,
	issuedBy int64,
) (string, string, error) {
	log := slogx.FromContext(ctx)

	if maxUses < 1 {
		maxUses = 1
	}

	now := clock(s.Now).Truncate(time.Second)
	var expiresAt *time.Time
	if expiresInDays > 0 {
		exp := now.Add(time.Duration(expiresInDays) * 24 * time.Hour)
		expiresAt = &exp
	}

	for attempt := 1; ; attempt++ {
		code, err := cryptox.GenerateInviteCode()
		if err != nil {
			log.Error("failed to generate invite code", slog.Any("error", err))
			return "", "", err
		}

		inv := domain.Invite{
			ID:        idx.New().String(),
			Code:      code,
			Note:      note,
			CreatedBy: issuedBy,
			CreatedAt: now,
			ExpiresAt: expiresAt,
			MaxUses:   maxUses,
			Active:    true,
		}

		err = s.Store.Invites().CreateInvite(ctx, inv)
		if err == nil {
			log.Info("invite issued",
				slog.String("invite_id", inv.ID),
				slog.Int("max_uses", maxUses),
				slog.Int("expires_in_days", expiresInDays),
			)
			return inv.ID, inv.Code, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) || attempt >= issueAttempts {
			log.Error("failed to store invite", slog.Int("attempt", attempt), slog.Any("error", err))
			return "", "", err
		}
		log.Warn("invite code collision, retrying", slog.Int("attempt", attempt))
	}
}

// Check reports whether code can currently be used to register. It never
// mutates the invite.
func (s *InviteService) Check(ctx context.Context, code string) (domain.Invite, error) {
	return s.check(ctx, s.Store, code)
}

func (s *InviteService) check(ctx context.Context, st store.Store, code string) (domain.Invite, error) {
	if code == "" {
		return domain.Invite{}, ErrInviteMissing
	}

	inv, err := st.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}

	if err := statusErr(inv.Status(clock(s.Now))); err != nil {
		return inv, err
	}
	return inv, nil
}

func statusErr(st domain.InviteStatus) error {
	switch st {
	case domain.InviteRevoked:
		return ErrInviteRevoked
	case domain.InviteExpired:
		return ErrInviteExpired
	case domain.InviteExhausted:
		return ErrInviteExhausted
	}
	return nil
}

// Consume adds one use to the invite without validating it. The schema still
// refuses to exceed max_uses, which surfaces as ErrInviteExhausted.
func (s *InviteService) Consume(ctx context.Context, code string) error {
	err := s.Store.Invites().IncrementInviteUse(ctx, code)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrInviteNotFound
	case errors.Is(err, store.ErrConstraint):
		return ErrInviteExhausted
	}
	return err
}

// Redeem validates and consumes one use of code in a single conditional
// update on tx. When nothing was updated the invite is re-read to explain why.
func (s *InviteService) Redeem(ctx context.Context, tx store.Tx, code string) error {
	if code == "" {
		return ErrInviteMissing
	}

	ok, err := tx.Invites().RedeemInvite(ctx, code, clock(s.Now))
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if _, err := s.check(ctx, tx, code); err != nil {
		return err
	}
	// Valid on re-read yet not redeemable: treat as used up.
	return ErrInviteExhausted
}

// Revoke deactivates the invite. Revoking twice is fine.
func (s *InviteService) Revoke(ctx context.Context, code string) error {
	err := s.Store.Invites().DeactivateInvite(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteNotFound
	}
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("invite revoked", slog.String("code", code))
	return nil
}

// List returns every invite, newest first.
func (s *InviteService) List(ctx context.Context) ([]domain.Invite, error) {
	return s.Store.Invites().ListInvites(ctx)
}
