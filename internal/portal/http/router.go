package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aussiebroadwan/familyportal/internal/portal/domain"
	"github.com/aussiebroadwan/familyportal/internal/portal/metrics"
	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"

	_ "github.com/aussiebroadwan/familyportal/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux     *http.ServeMux
	handler http.Handler

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metrics.Metrics

	AccountService *service.AccountService
	InviteService  *service.InviteService
	UsageService   *service.UsageService
	ChatService    *service.ChatService

	// SecureCookies marks the session cookie Secure; enable behind HTTPS.
	SecureCookies bool
	// StaticDir is served at / when it exists. Empty disables static files.
	StaticDir string

	// GlobalLimit applies per IP to every request; AuthLimit is layered on
	// login and registration. ChatLimit applies per user to chat turns.
	GlobalLimit httpx.RateLimitConfig
	AuthLimit   httpx.RateLimitConfig
	ChatLimit   httpx.RateLimitConfig

	// TrustedProxies may report the client IP in forwarding headers.
	// Empty keys every limit on the socket address.
	TrustedProxies httpx.TrustedProxies

	Now func() time.Time
}

func NewRouter(
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		metrics:      m,
		GlobalLimit:  httpx.GlobalLimit,
		AuthLimit:    httpx.StrictLimit,
		ChatLimit:    httpx.ChatLimit,
		Now:          time.Now,
	}
}

// ApplyRoutes registers every route and freezes the middleware chain. Set
// services and options before calling it.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMe()
	r.registerUsers()
	r.registerHistory()
	r.registerChat()
	r.registerInvites()
	r.registerSystem()
	r.registerStatic()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Order matters: the logger must see the final status, and metrics must
	// wrap the mux directly to read the matched pattern.
	mws := []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.RateLimitByIP(r.GlobalLimit, r.TrustedProxies),
	}
	if r.metrics != nil {
		mws = append(mws, r.metrics.Middleware())
	}
	r.handler = httpx.Chain(r.Mux, mws...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Family Portal API
//	@version					0.1.0
//	@description				Invite-gated family assistant: accounts, daily quotas and chat with a language model.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/familyportal
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						token
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// session authenticates the caller; admin additionally requires the admin role.
func (r *Router) session(h http.Handler, admin bool) http.Handler {
	mws := []httpx.Middleware{httpx.RequireSession(sessionVerifier{r.AccountService})}
	if admin {
		mws = append(mws, httpx.RequireRole(domain.RoleAdmin.String()))
	}
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AccountService: r.AccountService,
		SecureCookies:  r.SecureCookies,
	}

	// Password guessing is slowed per IP and per target email.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.AuthLimit, r.TrustedProxies),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.AuthLimit, r.TrustedProxies, "email"),
		),
	)
	r.Mux.HandleFunc("POST /api/auth/logout", h.HandleLogout)
}

func (r *Router) registerMe() {
	h := &MeHandler{
		AccountService: r.AccountService,
		UsageService:   r.UsageService,
		Quota:          r.ChatService.Quota,
	}
	r.Mux.Handle("GET /api/me", r.session(h, false))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /api/users", r.session(http.HandlerFunc(h.HandleList), true))
	r.Mux.Handle("PATCH /api/users/{id}", r.session(http.HandlerFunc(h.HandleUpdate), true))
}

func (r *Router) registerHistory() {
	h := &HistoryHandler{ChatService: r.ChatService}

	r.Mux.Handle("GET /api/history", r.session(http.HandlerFunc(h.HandleList), false))
	r.Mux.Handle("GET /api/history/{id}", r.session(http.HandlerFunc(h.HandleGet), false))
	r.Mux.Handle("POST /api/history/{id}/rename", r.session(http.HandlerFunc(h.HandleRename), false))
	r.Mux.Handle("DELETE /api/history/{id}", r.session(http.HandlerFunc(h.HandleDelete), false))
}

func (r *Router) registerChat() {
	h := &ChatHandler{
		ChatService: r.ChatService,
		Metrics:     r.metrics,
	}
	// Runs inside the session so the bucket is keyed on the user.
	r.Mux.Handle("POST /api/chat", r.session(
		httpx.Chain(h, httpx.RateLimitByUser(r.ChatLimit, r.TrustedProxies)),
		false,
	))
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{
		InviteService: r.InviteService,
		Now:           r.Now,
	}

	r.Mux.Handle("GET /api/invites", r.session(http.HandlerFunc(h.HandleList), true))
	r.Mux.Handle("POST /api/invites", r.session(http.HandlerFunc(h.HandleCreate), true))
	r.Mux.Handle("POST /api/invites/{code}/revoke", r.session(http.HandlerFunc(h.HandleRevoke), true))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ChatService))
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}

	// Unknown API paths answer in JSON instead of falling through to static files.
	r.Mux.HandleFunc("/api/", func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, "no such endpoint")
	})
}

func (r *Router) registerStatic() {
	if r.StaticDir == "" {
		return
	}
	if fi, err := os.Stat(r.StaticDir); err != nil || !fi.IsDir() {
		r.logger.Warn("static directory not found, not serving static files", "dir", r.StaticDir)
		return
	}
	r.Mux.Handle("/", http.FileServer(http.Dir(r.StaticDir)))
}
