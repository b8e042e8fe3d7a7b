package http

import (
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
)

func toUser(u domain.User) portalsdk.User {
	return portalsdk.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt.Unix(),
	}
}

func toUsage(u domain.DailyUsage) portalsdk.Usage {
	return portalsdk.Usage{
		DateKey:          u.PeriodKey,
		Requests:         u.Requests,
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

func toChat(c domain.Conversation) portalsdk.Chat {
	return portalsdk.Chat{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt.Unix()}
}

func toInvite(i domain.Invite, now time.Time) portalsdk.Invite {
	out := portalsdk.Invite{
		ID:        i.ID,
		Code:      i.Code,
		Note:      i.Note,
		CreatedBy: i.CreatedBy,
		CreatedAt: i.CreatedAt.Unix(),
		MaxUses:   i.MaxUses,
		UsedCount: i.UsedCount,
		Remaining: i.Remaining(),
		Active:    i.Active,
		Status:    string(i.Status(now)),
	}
	if i.ExpiresAt != nil {
		exp := i.ExpiresAt.Unix()
		out.ExpiresAt = &exp
	}
	return out
}
