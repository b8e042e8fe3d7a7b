package domain

import "time"

type Invite struct {
	ID        string
	Code      string
	Note      string
	CreatedBy int64 // 0 once the issuing admin is gone
	CreatedAt time.Time
	ExpiresAt *time.Time // nil never expires
	MaxUses   int
	UsedCount int
	Active    bool
}

// InviteStatus is the outcome of evaluating an invite at a point in time.
type InviteStatus string

const (
	InviteValid     InviteStatus = "valid"
	InviteRevoked   InviteStatus = "revoked"
	InviteExpired   InviteStatus = "expired"
	InviteExhausted InviteStatus = "exhausted"
)

// Status evaluates revocation, then expiry, then remaining uses. Expiry is
// judged in whole seconds, the precision the store redeems at.
func (i Invite) Status(now time.Time) InviteStatus {
	switch {
	case !i.Active:
		return InviteRevoked
	case i.ExpiresAt != nil && i.ExpiresAt.Unix() < now.Unix():
		return InviteExpired
	case i.UsedCount >= i.MaxUses:
		return InviteExhausted
	default:
		return InviteValid
	}
}

// Remaining is the number of registrations the invite still allows.
func (i Invite) Remaining() int {
	return max(i.MaxUses-i.UsedCount, 0)
}
