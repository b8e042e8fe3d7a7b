package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite/gen"
)

type invitesRepo struct {
	q *gen.Queries
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	err := r.q.CreateInvite(ctx, gen.CreateInviteParams{
		ID:        inv.ID,
		Code:      inv.Code,
		Note:      mapStringNull(inv.Note),
		CreatedBy: sql.NullInt64{Int64: inv.CreatedBy, Valid: inv.CreatedBy > 0},
		CreatedAt: inv.CreatedAt.Unix(),
		ExpiresAt: optionalUnix(inv.ExpiresAt),
		MaxUses:   int64(inv.MaxUses),
		UsedCount: int64(inv.UsedCount),
		Active:    boolInt(inv.Active),
	})
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row, err := r.q.GetInviteByCode(ctx, code)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return mapInvite(row), nil
}

func (r *invitesRepo) ListInvites(ctx context.Context) ([]domain.Invite, error) {
	rows, err := r.q.ListInvites(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Invite, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInvite(row))
	}
	return out, nil
}

func (r *invitesRepo) IncrementInviteUse(ctx context.Context, code string) error {
	n, err := r.q.IncrementInviteUse(ctx, code)
	return expectOne(n, mapConstraint(err))
}

// RedeemInvite compares expiry in whole seconds, matching domain.Invite.Status.
func (r *invitesRepo) RedeemInvite(ctx context.Context, code string, now time.Time) (bool, error) {
	n, err := r.q.RedeemInvite(ctx, gen.RedeemInviteParams{
		Code: code,
		Now:  sql.NullInt64{Int64: now.Unix(), Valid: true},
	})
	if err != nil {
		return false, mapConstraint(err)
	}
	return n == 1, nil
}

func (r *invitesRepo) DeactivateInvite(ctx context.Context, code string) error {
	return expectOne(r.q.DeactivateInvite(ctx, code))
}
