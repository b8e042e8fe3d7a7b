package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/stretchr/testify/require"
)

func TestUTCDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	est := time.FixedZone("EST", -5*3600)
	require.Equal(t, "2026-05-02", service.UTCDay(time.Date(2026, 5, 1, 23, 30, 0, 0, est)))
	require.Equal(t, "2026-05-01", service.UTCDay(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGetTodayIsPureRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.usage.GetToday(ctx, 42)
	require.NoError(t, err)
	require.Zero(t, u.Requests)
	require.Equal(t, "2026-05-01", u.PeriodKey)

	hist, err := f.usage.History(ctx, 42, 7)
	require.NoError(t, err)
	require.Empty(t, hist, "reading today must not create a row")
}

func TestRecordIsAdditive(t *testing.T) {
	ctx := context.Background()
	a := domain.UsageDelta{Requests: 1, PromptTokens: 11, CompletionTokens: 4, TotalTokens: 15}
	b := domain.UsageDelta{Requests: 2, PromptTokens: 7, CompletionTokens: 9, TotalTokens: 16}
	sum := domain.UsageDelta{
		Requests:         a.Requests + b.Requests,
		PromptTokens:     a.PromptTokens + b.PromptTokens,
		CompletionTokens: a.CompletionTokens + b.CompletionTokens,
		TotalTokens:      a.TotalTokens + b.TotalTokens,
	}

	split := newFixture(t)
	require.NoError(t, split.usage.Record(ctx, 1, a))
	require.NoError(t, split.usage.Record(ctx, 1, b))

	joined := newFixture(t)
	require.NoError(t, joined.usage.Record(ctx, 1, sum))

	got, err := split.usage.GetToday(ctx, 1)
	require.NoError(t, err)
	want, err := joined.usage.GetToday(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, want.Requests, got.Requests)
	require.Equal(t, want.PromptTokens, got.PromptTokens)
	require.Equal(t, want.CompletionTokens, got.CompletionTokens)
	require.Equal(t, want.TotalTokens, got.TotalTokens)

	// Same delta twice doubles, nothing is deduplicated.
	require.NoError(t, joined.usage.Record(ctx, 1, sum))
	again, err := joined.usage.GetToday(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2*want.TotalTokens, again.TotalTokens)
}

func TestAdmit(t *testing.T) {
	ctx := context.Background()

	t.Run("requests ceiling", func(t *testing.T) {
		f := newFixture(t)
		q := service.Quota{MaxRequestsPerDay: 2, MaxTokensPerDay: 1000}

		require.NoError(t, f.usage.Admit(ctx, 1, q))
		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 2, TotalTokens: 10}))

		err := f.usage.Admit(ctx, 1, q)
		require.ErrorIs(t, err, service.ErrQuotaExceeded)
		var qe *service.QuotaExceededError
		require.ErrorAs(t, err, &qe)
		require.Equal(t, service.QuotaRequests, qe.Kind)
	})

	t.Run("tokens ceiling", func(t *testing.T) {
		f := newFixture(t)
		q := service.Quota{MaxRequestsPerDay: 100, MaxTokensPerDay: 50}

		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1, TotalTokens: 50}))

		var qe *service.QuotaExceededError
		require.ErrorAs(t, f.usage.Admit(ctx, 1, q), &qe)
		require.Equal(t, service.QuotaTokens, qe.Kind)
	})

	t.Run("tokens hit first then requests", func(t *testing.T) {
		f := newFixture(t)
		q := service.Quota{MaxRequestsPerDay: 3, MaxTokensPerDay: 10}

		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1, TotalTokens: 10}))
		var qe *service.QuotaExceededError
		require.ErrorAs(t, f.usage.Admit(ctx, 1, q), &qe)
		require.Equal(t, service.QuotaTokens, qe.Kind)

		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 2}))
		require.ErrorAs(t, f.usage.Admit(ctx, 1, q), &qe)
		require.Equal(t, service.QuotaRequests, qe.Kind)
	})

	t.Run("non-positive ceilings are unlimited", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1000, TotalTokens: 1_000_000}))
		require.NoError(t, f.usage.Admit(ctx, 1, service.Quota{}))
	})

	t.Run("new day resets", func(t *testing.T) {
		f := newFixture(t)
		q := service.Quota{MaxRequestsPerDay: 1}

		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1}))
		require.Error(t, f.usage.Admit(ctx, 1, q))

		f.clock.Advance(24 * time.Hour)
		require.NoError(t, f.usage.Admit(ctx, 1, q))

		hist, err := f.usage.History(ctx, 1, 30)
		require.NoError(t, err)
		require.Len(t, hist, 1)
		require.Equal(t, "2026-05-01", hist[0].PeriodKey)
	})

	t.Run("other users are independent", func(t *testing.T) {
		f := newFixture(t)
		q := service.Quota{MaxRequestsPerDay: 1}

		require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1}))
		require.NoError(t, f.usage.Admit(ctx, 2, q))
	})
}

func TestCustomPeriodKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.usage.PeriodKey = func(time.Time) string { return "forever" }

	require.NoError(t, f.usage.Record(ctx, 1, domain.UsageDelta{Requests: 1}))
	f.clock.Advance(72 * time.Hour)

	u, err := f.usage.GetToday(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "forever", u.PeriodKey)
	require.EqualValues(t, 1, u.Requests)
}
