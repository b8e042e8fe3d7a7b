package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
)

// PeriodKeyFunc maps an instant to the accounting bucket it belongs to.
type PeriodKeyFunc func(time.Time) string

// UTCDay buckets by calendar day in UTC, so a user's day does not follow
// their local midnight.
func UTCDay(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

type QuotaKind string

const (
	QuotaRequests QuotaKind = "requests"
	QuotaTokens   QuotaKind = "tokens"
)

// ErrQuotaExceeded matches any *QuotaExceededError via errors.Is.
var ErrQuotaExceeded = errors.New("daily quota exceeded")

type QuotaExceededError struct {
	Kind  QuotaKind
	Used  int64
	Limit int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily %s quota exceeded (%d/%d)", e.Kind, e.Used, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// Quota holds the per-period ceilings. A ceiling of zero or less is unlimited.
type Quota struct {
	MaxRequestsPerDay int64
	MaxTokensPerDay   int64
}

type UsageService struct {
	Store     store.Store
	PeriodKey PeriodKeyFunc // defaults to UTCDay
	Now       func() time.Time
}

func (s *UsageService) key() string {
	if s.PeriodKey != nil {
		return s.PeriodKey(clock(s.Now))
	}
	return UTCDay(clock(s.Now))
}

// GetToday returns the current bucket, zero valued if the user has not chatted
// yet. It never creates a row.
func (s *UsageService) GetToday(ctx context.Context, userID int64) (domain.DailyUsage, error) {
	key := s.key()
	u, err := s.Store.Usage().GetUsage(ctx, userID, key)
	if errors.Is(err, store.ErrNotFound) {
		return domain.DailyUsage{UserID: userID, PeriodKey: key}, nil
	}
	return u, err
}

// Admit checks today's usage against q. The check is advisory: concurrent
// turns may each pass before any of them records, overshooting by at most
// the number of in-flight turns.
func (s *UsageService) Admit(ctx context.Context, userID int64, q Quota) error {
	u, err := s.GetToday(ctx, userID)
	if err != nil {
		return err
	}
	if q.MaxRequestsPerDay > 0 && u.Requests >= q.MaxRequestsPerDay {
		return &QuotaExceededError{Kind: QuotaRequests, Used: u.Requests, Limit: q.MaxRequestsPerDay}
	}
	if q.MaxTokensPerDay > 0 && u.TotalTokens >= q.MaxTokensPerDay {
		return &QuotaExceededError{Kind: QuotaTokens, Used: u.TotalTokens, Limit: q.MaxTokensPerDay}
	}
	return nil
}

// Record adds d to today's bucket. Calling it twice adds twice.
func (s *UsageService) Record(ctx context.Context, userID int64, d domain.UsageDelta) error {
	return s.Store.Usage().AddUsage(ctx, userID, s.key(), d, clock(s.Now))
}

// History returns up to days recent buckets, newest first.
func (s *UsageService) History(ctx context.Context, userID int64, days int) ([]domain.DailyUsage, error) {
	if days <= 0 {
		return nil, nil
	}
	return s.Store.Usage().ListUsage(ctx, userID, days)
}
