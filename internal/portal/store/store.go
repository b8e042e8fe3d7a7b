package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrConstraint reports a CHECK constraint violation, e.g. an invite
	// consumed past its max_uses.
	ErrConstraint = errors.New("store: constraint violation")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so that a Tx hands out repos bound to the same transaction and
// nested transactions cannot be started by accident.
type Store interface {
	Users() Users
	Invites() Invites
	Usage() Usage
	Conversations() Conversations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts u and returns the assigned id. A duplicate email
	// yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail matches the email exactly.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns every user, newest (highest id) first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	CountUsers(ctx context.Context) (int64, error)

	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdateDisabled(ctx context.Context, id int64, disabled bool) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type Invites interface {
	// CreateInvite writes a new invite. A code collision yields ErrAlreadyExists.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// ListInvites returns all invites ordered by creation (newest first).
	ListInvites(ctx context.Context) ([]domain.Invite, error)

	// IncrementInviteUse bumps used_count without checking validity.
	// ErrConstraint once used_count would pass max_uses.
	IncrementInviteUse(ctx context.Context, code string) error

	// RedeemInvite bumps used_count only while the invite is active, unexpired
	// at now and has uses left. It reports whether a row was updated.
	RedeemInvite(ctx context.Context, code string, now time.Time) (bool, error)

	// DeactivateInvite sets active=0. ErrNotFound for unknown codes.
	DeactivateInvite(ctx context.Context, code string) error
}

type Usage interface {
	// GetUsage returns the bucket for (userID, periodKey) or ErrNotFound.
	GetUsage(ctx context.Context, userID int64, periodKey string) (domain.DailyUsage, error)

	// AddUsage inserts the bucket with delta as its initial value or adds
	// delta to every counter, in one statement.
	AddUsage(ctx context.Context, userID int64, periodKey string, delta domain.UsageDelta, now time.Time) error

	// ListUsage returns up to limit buckets for the user, newest period first.
	ListUsage(ctx context.Context, userID int64, limit int) ([]domain.DailyUsage, error)
}

type Conversations interface {
	CreateConversation(ctx context.Context, c domain.Conversation) error

	// GetConversation returns ErrNotFound for conversations owned by someone else.
	GetConversation(ctx context.Context, id string, userID int64) (domain.Conversation, error)

	// ListConversations returns the user's conversations, newest first.
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)

	// RenameConversation returns ErrNotFound when no owned row matched.
	RenameConversation(ctx context.Context, id string, userID int64, title string) error

	// DeleteConversation removes the owned conversation and its messages.
	// Deleting nothing is not an error.
	DeleteConversation(ctx context.Context, id string, userID int64) error

	AppendMessage(ctx context.Context, m domain.Message) (int64, error)

	// ListMessages returns messages in insertion order.
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
}
