package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite/gen"
)

type usageRepo struct {
	q *gen.Queries
}

func (r *usageRepo) GetUsage(ctx context.Context, userID int64, periodKey string) (domain.DailyUsage, error) {
	row, err := r.q.GetUsage(ctx, gen.GetUsageParams{UserID: userID, DateKey: periodKey})
	if err != nil {
		return domain.DailyUsage{}, mapNotFound(err)
	}
	return mapUsage(row), nil
}

// AddUsage is a single upsert so concurrent turns from one user cannot lose
// each other's increments.
func (r *usageRepo) AddUsage(
	ctx context.Context,
	userID int64,
	periodKey string,
	d domain.UsageDelta,
	now time.Time,
) error {
	return r.q.AddUsage(ctx, gen.AddUsageParams{
		UserID:           userID,
		DateKey:          periodKey,
		Requests:         d.Requests,
		PromptTokens:     d.PromptTokens,
		CompletionTokens: d.CompletionTokens,
		TotalTokens:      d.TotalTokens,
		CreatedAt:        now.Unix(),
	})
}

func (r *usageRepo) ListUsage(ctx context.Context, userID int64, limit int) ([]domain.DailyUsage, error) {
	rows, err := r.q.ListUsage(ctx, gen.ListUsageParams{UserID: userID, Limit: int64(limit)})
	if err != nil {
		return nil, err
	}
	out := make([]domain.DailyUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUsage(row))
	}
	return out, nil
}
