package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInviteIssue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.registerAdmin(t)

	id, code, err := f.invites.Issue(ctx, "for grandma", 0, 7, admin)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, code, cryptox.InviteCodeLength)

	inv, err := f.invites.Check(ctx, code)
	require.NoError(t, err)
	require.Equal(t, 1, inv.MaxUses, "max uses below one defaults to one")
	require.Zero(t, inv.UsedCount)
	require.True(t, inv.Active)
	require.Equal(t, "for grandma", inv.Note)
	require.Equal(t, admin, inv.CreatedBy)
	require.NotNil(t, inv.ExpiresAt)
	require.True(t, f.clock.Now().Add(7*24*time.Hour).Equal(*inv.ExpiresAt))
}

func TestInviteIssueWithoutExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, code, err := f.invites.Issue(ctx, "", 3, 0, 0)
	require.NoError(t, err)

	inv, err := f.invites.Check(ctx, code)
	require.NoError(t, err)
	require.Nil(t, inv.ExpiresAt)
	require.Equal(t, 3, inv.MaxUses)
}

func TestInviteCheckReasons(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.invites.Check(ctx, "")
	require.ErrorIs(t, err, service.ErrInviteMissing)

	_, err = f.invites.Check(ctx, "doesnotexist")
	require.ErrorIs(t, err, service.ErrInviteNotFound)

	// Expired even though uses remain.
	_, expiring, err := f.invites.Issue(ctx, "", 5, 1, 0)
	require.NoError(t, err)
	f.clock.Advance(24*time.Hour + time.Second)
	_, err = f.invites.Check(ctx, expiring)
	require.ErrorIs(t, err, service.ErrInviteExpired)

	// Revoked regardless of remaining uses or expiry.
	_, revoked, err := f.invites.Issue(ctx, "", 5, 30, 0)
	require.NoError(t, err)
	require.NoError(t, f.invites.Revoke(ctx, revoked))
	require.NoError(t, f.invites.Revoke(ctx, revoked), "revoke is idempotent")
	_, err = f.invites.Check(ctx, revoked)
	require.ErrorIs(t, err, service.ErrInviteRevoked)

	require.ErrorIs(t, f.invites.Revoke(ctx, "missing"), service.ErrInviteNotFound)
}

func TestInviteExpiryAgreesBetweenCheckAndRedeem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.registerAdmin(t)
	f.clock.Advance(300 * time.Millisecond)

	_, code, err := f.invites.Issue(ctx, "", 5, 1, 0)
	require.NoError(t, err)

	register := func(email string) error {
		_, _, err := f.accounts.Register(ctx, service.RegisterInput{
			Email: email, Name: "Kid", Password: "pw", InviteCode: code,
		})
		return err
	}

	// Inside the expiry second both sides still accept the code.
	f.clock.Advance(24*time.Hour + 500*time.Millisecond)
	_, checkErr := f.invites.Check(ctx, code)
	require.NoError(t, checkErr)
	require.NoError(t, register("early@example.com"))

	// One second later both reject it and no account is created.
	f.clock.Advance(time.Second)
	_, checkErr = f.invites.Check(ctx, code)
	require.ErrorIs(t, checkErr, service.ErrInviteExpired)
	require.ErrorIs(t, register("late@example.com"), service.ErrInviteExpired)

	_, err = f.store.Users().GetUserByEmail(ctx, "late@example.com")
	require.Error(t, err)
}

func TestInviteSequentialConsumeNeverExceedsMaxUses(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, code, err := f.invites.Issue(ctx, "", 2, 0, 0)
	require.NoError(t, err)

	require.NoError(t, f.invites.Consume(ctx, code))
	require.NoError(t, f.invites.Consume(ctx, code))
	for range 3 {
		require.ErrorIs(t, f.invites.Consume(ctx, code), service.ErrInviteExhausted)
	}

	inv, err := f.invites.Check(ctx, code)
	require.ErrorIs(t, err, service.ErrInviteExhausted)
	require.Equal(t, 2, inv.UsedCount)

	require.ErrorIs(t, f.invites.Consume(ctx, "missing"), service.ErrInviteNotFound)
}

func TestInviteListNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, first, err := f.invites.Issue(ctx, "a", 1, 0, 0)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, second, err := f.invites.Issue(ctx, "b", 1, 0, 0)
	require.NoError(t, err)

	list, err := f.invites.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second, list[0].Code)
	require.Equal(t, first, list[1].Code)
}

// Admin issues a single-use invite; A registers with it, B is turned away;
// a second, revoked invite reports revoked even with uses left.
func TestInviteRegistrationScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.registerAdmin(t)

	_, code, err := f.invites.Issue(ctx, "", 1, 1, admin)
	require.NoError(t, err)

	_, _, err = f.accounts.Register(ctx, service.RegisterInput{
		Email: "a@example.com", Name: "A", Password: "pw", InviteCode: code,
	})
	require.NoError(t, err)

	inv, err := f.invites.Check(ctx, code)
	require.ErrorIs(t, err, service.ErrInviteExhausted)
	require.Equal(t, 1, inv.UsedCount)

	_, _, err = f.accounts.Register(ctx, service.RegisterInput{
		Email: "b@example.com", Name: "B", Password: "pw", InviteCode: code,
	})
	require.ErrorIs(t, err, service.ErrInviteExhausted)

	// B's failed attempt left no account behind.
	_, err = f.store.Users().GetUserByEmail(ctx, "b@example.com")
	require.Error(t, err)

	_, other, err := f.invites.Issue(ctx, "", 3, 7, admin)
	require.NoError(t, err)
	require.NoError(t, f.invites.Revoke(ctx, other))

	inv, err = f.invites.Check(ctx, other)
	require.ErrorIs(t, err, service.ErrInviteRevoked)
	require.Less(t, inv.UsedCount, inv.MaxUses)
}
