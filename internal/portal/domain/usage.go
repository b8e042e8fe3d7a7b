package domain

import "time"

// DailyUsage is one user's accounting bucket for a single period, by default
// a UTC calendar day. Counters only ever grow within a period.
type DailyUsage struct {
	UserID           int64
	PeriodKey        string
	Requests         int64
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	CreatedAt        time.Time
}

// UsageDelta is added to a DailyUsage after a completed chat turn.
type UsageDelta struct {
	Requests         int64
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

