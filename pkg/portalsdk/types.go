package portalsdk

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
	// Quota is "requests" or "tokens" on quota_exceeded responses.
	Quota string `json:"quota,omitempty"`
}

// OKResponse acknowledges mutations that return nothing else.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ============================================================================
// Health
// ============================================================================

type HealthChecks struct {
	Database string `json:"database"`
	LLM      string `json:"llm"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Accounts
// ============================================================================

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Invite   string `json:"invite,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account. Password hashes never leave the server.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Disabled  bool   `json:"disabled"`
	CreatedAt int64  `json:"created_at"`
}

type UserResponse struct {
	User User `json:"user"`
}

// Usage is one day of metered activity.
type Usage struct {
	DateKey          string `json:"date_key"`
	Requests         int64  `json:"requests"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
}

// Limits are the configured daily ceilings; zero means unlimited.
type Limits struct {
	MaxRequestsPerDay int64 `json:"max_requests_per_day"`
	MaxTokensPerDay   int64 `json:"max_tokens_per_day"`
}

type MeResponse struct {
	User    User    `json:"user"`
	Usage   Usage   `json:"usage"`
	Limits  Limits  `json:"limits"`
	History []Usage `json:"history,omitempty"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

// UpdateUserRequest is a partial update; nil fields are left alone.
type UpdateUserRequest struct {
	Role          *string `json:"role,omitempty"`
	Disabled      *bool   `json:"disabled,omitempty"`
	ResetPassword *string `json:"resetPassword,omitempty"`
}

// ============================================================================
// Conversations
// ============================================================================

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	// ChatID continues an existing conversation; empty starts a new one.
	ChatID string `json:"chatId,omitempty"`
	Model  string `json:"model,omitempty"`
}

type TokenUsage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

type ChatResponse struct {
	Reply  string     `json:"reply"`
	ChatID string     `json:"chatId"`
	Usage  TokenUsage `json:"usage"`
}

type Chat struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt int64  `json:"created_at"`
}

type ChatsResponse struct {
	Chats []Chat `json:"chats"`
}

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type ChatDetailResponse struct {
	Chat     Chat      `json:"chat"`
	Messages []Message `json:"messages"`
}

type RenameRequest struct {
	Title string `json:"title"`
}

// ============================================================================
// Invites
// ============================================================================

// CreateInviteRequest leaves MaxUses and ExpiresInDays nil to get the server
// defaults (1 use, 7 days). ExpiresInDays of 0 creates a non-expiring invite.
type CreateInviteRequest struct {
	Note          string `json:"note,omitempty"`
	MaxUses       *int   `json:"maxUses,omitempty"`
	ExpiresInDays *int   `json:"expiresInDays,omitempty"`
}

type CreateInviteResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type Invite struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Note      string `json:"note,omitempty"`
	CreatedBy int64  `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt *int64 `json:"expires_at"`
	MaxUses   int    `json:"max_uses"`
	UsedCount int    `json:"used_count"`
	Remaining int    `json:"remaining"`
	Active    bool   `json:"active"`
	Status    string `json:"status"`
}

type InvitesResponse struct {
	Invites []Invite `json:"invites"`
}
