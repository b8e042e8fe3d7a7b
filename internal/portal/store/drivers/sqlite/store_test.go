package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/familyportal/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "portal.db")))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, email string) int64 {
	t.Helper()
	id, err := s.Users().CreateUser(context.Background(), domain.User{
		Email:        email,
		Name:         "n",
		PasswordHash: "h",
		Role:         domain.RoleMember,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	n, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	first := createUser(t, s, "a@example.com")
	second := createUser(t, s, "b@example.com")

	_, err = s.Users().CreateUser(ctx, domain.User{Email: "a@example.com", Name: "x", PasswordHash: "h", Role: domain.RoleMember})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	u, err := s.Users().GetUserByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	require.Equal(t, second, u.ID)

	list, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second, list[0].ID)
	require.Equal(t, first, list[1].ID)

	require.NoError(t, s.Users().UpdateDisabled(ctx, first, true))
	require.NoError(t, s.Users().UpdateRole(ctx, first, domain.RoleAdmin))
	u, err = s.Users().GetUserByID(ctx, first)
	require.NoError(t, err)
	require.True(t, u.Disabled)
	require.Equal(t, domain.RoleAdmin, u.Role)

	require.ErrorIs(t, s.Users().UpdateRole(ctx, 999, domain.RoleAdmin), store.ErrNotFound)
	_, err = s.Users().GetUserByID(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInvites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	admin := createUser(t, s, "admin@example.com")
	now := time.Now().UTC().Truncate(time.Second)

	inv := domain.Invite{
		ID: idx.New().String(), Code: "abc", CreatedBy: admin, CreatedAt: now,
		MaxUses: 1, Active: true,
	}
	require.NoError(t, s.Invites().CreateInvite(ctx, inv))

	dup := inv
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.Invites().CreateInvite(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Invites().GetInviteByCode(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, admin, got.CreatedBy)
	require.Nil(t, got.ExpiresAt)
	require.True(t, got.Active)

	ok, err := s.Invites().RedeemInvite(ctx, "abc", now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Invites().RedeemInvite(ctx, "abc", now)
	require.NoError(t, err)
	require.False(t, ok, "exhausted invite must not redeem")

	// The schema refuses to push used_count past max_uses.
	require.ErrorIs(t, s.Invites().IncrementInviteUse(ctx, "abc"), store.ErrConstraint)
	got, err = s.Invites().GetInviteByCode(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, 1, got.UsedCount)

	require.NoError(t, s.Invites().DeactivateInvite(ctx, "abc"))
	require.ErrorIs(t, s.Invites().DeactivateInvite(ctx, "nope"), store.ErrNotFound)
}

func TestRedeemInviteRespectsExpiryAndRevocation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC().Truncate(time.Second)
	past := now.Add(-time.Hour)

	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		ID: idx.New().String(), Code: "old", CreatedAt: past, ExpiresAt: &past, MaxUses: 3, Active: true,
	}))
	require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
		ID: idx.New().String(), Code: "off", CreatedAt: now, MaxUses: 3, Active: false,
	}))

	for _, code := range []string{"old", "off", "missing"} {
		ok, err := s.Invites().RedeemInvite(ctx, code, now)
		require.NoError(t, err)
		require.False(t, ok, code)
	}

	list, err := s.Invites().ListInvites(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "off", list[0].Code)
}

func TestAddUsageIsAdditive(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now()

	_, err := s.Usage().GetUsage(ctx, 1, "2026-01-01")
	require.ErrorIs(t, err, store.ErrNotFound)

	d := domain.UsageDelta{Requests: 1, PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14}
	require.NoError(t, s.Usage().AddUsage(ctx, 1, "2026-01-01", d, now))
	require.NoError(t, s.Usage().AddUsage(ctx, 1, "2026-01-01", d, now))
	require.NoError(t, s.Usage().AddUsage(ctx, 1, "2026-01-02", d, now))

	u, err := s.Usage().GetUsage(ctx, 1, "2026-01-01")
	require.NoError(t, err)
	require.EqualValues(t, 2, u.Requests)
	require.EqualValues(t, 28, u.TotalTokens)

	hist, err := s.Usage().ListUsage(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, "2026-01-02", hist[0].PeriodKey)
}

func TestAddUsageConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Usage().AddUsage(ctx, 7, "2026-03-03",
				domain.UsageDelta{Requests: 1, TotalTokens: 5}, time.Now())
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	u, err := s.Usage().GetUsage(ctx, 7, "2026-03-03")
	require.NoError(t, err)
	require.EqualValues(t, 20, u.Requests)
	require.EqualValues(t, 100, u.TotalTokens)
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	owner := createUser(t, s, "o@example.com")
	other := createUser(t, s, "x@example.com")
	now := time.Now()

	c := domain.Conversation{ID: idx.New().String(), UserID: owner, Title: "hi", CreatedAt: now}
	require.NoError(t, s.Conversations().CreateConversation(ctx, c))

	for _, content := range []string{"one", "two"} {
		_, err := s.Conversations().AppendMessage(ctx, domain.Message{
			ConversationID: c.ID, Role: domain.MessageRoleUser, Content: content, CreatedAt: now,
		})
		require.NoError(t, err)
	}

	_, err := s.Conversations().GetConversation(ctx, c.ID, other)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Conversations().RenameConversation(ctx, c.ID, other, "stolen"), store.ErrNotFound)

	// A foreign delete is a silent no-op.
	require.NoError(t, s.Conversations().DeleteConversation(ctx, c.ID, other))
	msgs, err := s.Conversations().ListMessages(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "one", msgs[0].Content)

	require.NoError(t, s.Conversations().DeleteConversation(ctx, c.ID, owner))
	msgs, err = s.Conversations().ListMessages(ctx, c.ID)
	require.NoError(t, err)
	require.Empty(t, msgs)

	list, err := s.Conversations().ListConversations(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().CreateUser(ctx, domain.User{Email: "tx@example.com", Name: "n", PasswordHash: "h", Role: domain.RoleMember})
		require.NoError(t, err)
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Users().CountUsers(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestConcurrentReadThenWriteTransactionsSerialize(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.WithTx(ctx, func(tx store.Tx) error {
				count, err := tx.Users().CountUsers(ctx)
				if err != nil {
					return err
				}
				role := domain.RoleMember
				if count == 0 {
					role = domain.RoleAdmin
				}
				_, err = tx.Users().CreateUser(ctx, domain.User{
					Email: fmt.Sprintf("u%d@example.com", i), Name: "n", PasswordHash: "h",
					Role: role, CreatedAt: time.Now(),
				})
				return err
			})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "transaction %d", i)
	}

	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, n)
	admins := 0
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			admins++
		}
	}
	require.Equal(t, 1, admins)
}
