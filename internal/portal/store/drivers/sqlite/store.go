package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc connection string for a database file. The pragmas are
// applied to every pooled connection, not only the first one. Transactions
// begin IMMEDIATE so a second writer waits on busy_timeout instead of failing
// with SQLITE_BUSY when it tries to upgrade a read lock.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate",
		path,
	)
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Rollback after a successful commit is a harmless ErrTxDone.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{q: s.q} }
func (s *Store) Invites() store.Invites             { return &invitesRepo{q: s.q} }
func (s *Store) Usage() store.Usage                 { return &usageRepo{q: s.q} }
func (s *Store) Conversations() store.Conversations { return &conversationsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint translates sqlite constraint failures into store errors.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return fmt.Errorf("%w: %v", store.ErrConstraint, err)
	}
	// Primary result code only, when extended codes are unavailable.
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		if strings.Contains(se.Error(), "UNIQUE") {
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
		return fmt.Errorf("%w: %v", store.ErrConstraint, err)
	}
	return err
}

// expectOne returns ErrNotFound when an UPDATE/DELETE matched no row.
func expectOne(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func nullUnixTime(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := unixTime(n.Int64)
	return &t
}

func optionalUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Role:         domain.Role(row.Role),
		Disabled:     row.Disabled != 0,
		CreatedAt:    unixTime(row.CreatedAt),
	}
}

func mapInvite(row gen.Invite) domain.Invite {
	return domain.Invite{
		ID:        row.ID,
		Code:      row.Code,
		Note:      row.Note.String,
		CreatedBy: row.CreatedBy.Int64,
		CreatedAt: unixTime(row.CreatedAt),
		ExpiresAt: nullUnixTime(row.ExpiresAt),
		MaxUses:   int(row.MaxUses),
		UsedCount: int(row.UsedCount),
		Active:    row.Active != 0,
	}
}

func mapUsage(row gen.UsageLog) domain.DailyUsage {
	return domain.DailyUsage{
		UserID:           row.UserID,
		PeriodKey:        row.DateKey,
		Requests:         row.Requests,
		PromptTokens:     row.PromptTokens,
		CompletionTokens: row.CompletionTokens,
		TotalTokens:      row.TotalTokens,
		CreatedAt:        unixTime(row.CreatedAt),
	}
}

func mapConversation(row gen.Chat) domain.Conversation {
	return domain.Conversation{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title.String,
		CreatedAt: unixTime(row.CreatedAt),
	}
}

func mapMessage(row gen.Message) domain.Message {
	return domain.Message{
		ID:             row.ID,
		ConversationID: row.ChatID,
		Role:           domain.MessageRole(row.Role),
		Content:        row.Content,
		CreatedAt:      unixTime(row.CreatedAt),
	}
}
