package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/pkg/cryptox"
	"github.com/aussiebroadwan/familyportal/pkg/jwtx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

var (
	ErrMissingFields      = errors.New("email, name and password are required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrRegistrationClosed = errors.New("self registration is disabled")
	// ErrInvalidAccount covers both unknown and disabled accounts so login
	// does not reveal which emails exist.
	ErrInvalidAccount = errors.New("account does not exist or is disabled")
	ErrWrongPassword  = errors.New("wrong password")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRole    = errors.New("invalid role")
)

// Principal is the caller of an authenticated request. Role is taken from
// the live user row, not from the token.
type Principal struct {
	UserID int64
	Role   domain.Role
}

type AccountService struct {
	Store    store.Store
	Invites  *InviteService
	Sessions *jwtx.SessionManager

	// AllowRegistration gates self sign-up for everyone but the first user.
	AllowRegistration bool

	Now func() time.Time
}

type RegisterInput struct {
	Email      string
	Name       string
	Password   string
	InviteCode string
}

// Register creates an account and returns it with a fresh session token.
//
// The very first account becomes admin and skips invites entirely. Later
// accounts are members, need AllowRegistration, and redeem the supplied
// invite in the same transaction as the insert so a bad code leaves no user.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.InviteCode = strings.TrimSpace(in.InviteCode)
	if in.Email == "" || in.Name == "" || in.Password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	// 2. Cheap duplicate check before paying for the hash
	if _, err := s.Store.Users().GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to look up email", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 3. Hash the password outside the transaction
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, "", err
	}

	user := domain.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		CreatedAt:    clock(s.Now).Truncate(time.Second),
	}

	// 4. Decide the role, insert, redeem
	var firstUser bool
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Users().CountUsers(ctx)
		if err != nil {
			return err
		}
		firstUser = count == 0

		if firstUser {
			user.Role = domain.RoleAdmin
		} else if !s.AllowRegistration {
			return ErrRegistrationClosed
		}

		id, err := tx.Users().CreateUser(ctx, user)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		user.ID = id

		if !firstUser && in.InviteCode != "" {
			return s.Invites.Redeem(ctx, tx, in.InviteCode)
		}
		return nil
	})
	if err != nil {
		log.Warn("registration rejected", slog.Any("error", err))
		return domain.User{}, "", err
	}

	// 5. Issue the session
	token, _, err := s.Sessions.Issue(user.ID, user.Role.String())
	if err != nil {
		log.Error("failed to issue session", slog.Any("error", err))
		return domain.User{}, "", err
	}

	log.Info("user registered",
		slog.Int64("new_user_id", user.ID),
		slog.String("role", user.Role.String()),
		slog.Bool("first_user", firstUser),
		slog.Bool("with_invite", in.InviteCode != ""),
	)
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidAccount
		}
		log.Error("failed to load user", slog.Any("error", err))
		return domain.User{}, "", err
	}
	if user.Disabled {
		log.Info("login attempt on disabled account", slog.Int64("target_user_id", user.ID))
		return domain.User{}, "", ErrInvalidAccount
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, "", ErrWrongPassword
		}
		log.Error("stored password hash unusable", slog.Int64("target_user_id", user.ID), slog.Any("error", err))
		return domain.User{}, "", err
	}

	token, _, err := s.Sessions.Issue(user.ID, user.Role.String())
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// VerifySession checks the token and reloads the user so that disabling an
// account takes effect before its tokens expire.
func (s *AccountService) VerifySession(ctx context.Context, token string) (Principal, domain.User, error) {
	claims, err := s.Sessions.Verify(token)
	if err != nil {
		return Principal{}, domain.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Principal{}, domain.User{}, ErrUnauthorized
		}
		return Principal{}, domain.User{}, err
	}
	if user.Disabled {
		return Principal{}, domain.User{}, ErrUnauthorized
	}

	return Principal{UserID: user.ID, Role: user.Role}, user, nil
}

// RequireRole returns ErrForbidden unless p holds role.
func (s *AccountService) RequireRole(p Principal, role domain.Role) error {
	if p.Role != role {
		return ErrForbidden
	}
	return nil
}

// UserUpdate lists the fields an admin may change. Nil fields are untouched;
// an empty NewPassword is ignored too.
type UserUpdate struct {
	Role        *string
	Disabled    *bool
	NewPassword *string
}

func (s *AccountService) UpdateUser(ctx context.Context, id int64, upd UserUpdate) error {
	log := slogx.FromContext(ctx)

	var role domain.Role
	if upd.Role != nil {
		r, ok := domain.ParseRole(*upd.Role)
		if !ok {
			return ErrInvalidRole
		}
		role = r
	}

	var hash string
	if upd.NewPassword != nil && *upd.NewPassword != "" {
		h, err := cryptox.HashPassword(*upd.NewPassword)
		if err != nil {
			return err
		}
		hash = h
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if role != "" {
			if err := tx.Users().UpdateRole(ctx, id, role); err != nil {
				return err
			}
		}
		if upd.Disabled != nil {
			if err := tx.Users().UpdateDisabled(ctx, id, *upd.Disabled); err != nil {
				return err
			}
		}
		if hash != "" {
			if err := tx.Users().UpdatePasswordHash(ctx, id, hash); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("user updated",
		slog.Int64("target_user_id", id),
		slog.Bool("role_changed", role != ""),
		slog.Bool("disabled_changed", upd.Disabled != nil),
		slog.Bool("password_reset", hash != ""),
	)
	return nil
}

func (s *AccountService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// ListUsers returns every account, newest first.
func (s *AccountService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
