package app

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		Port:                0,
		DatabaseFile:        filepath.Join(dir, "portal.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		JWTSecret:           "app-test-secret",
		AllowRegistration:   true,
		MaxRequestsPerDay:   10,
		ChatTimeout:         5 * time.Second,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		ShutdownGracePeriod: time.Second,
		GlobalLimit:         httpx.GlobalLimit,
		AuthLimit:           httpx.StrictLimit,
		ChatLimit:           httpx.ChatLimit,
	}
}

func TestApplicationWiring(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := portalsdk.NewSDKClient(srv.URL)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "unconfigured", ready.Checks.LLM)

	admin, err := client.Register(ctx, portalsdk.RegisterRequest{Email: "a@example.com", Name: "A", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "admin", admin.User().Role)

	me, err := admin.Me(ctx, 0)
	require.NoError(t, err)
	require.EqualValues(t, 10, me.Limits.MaxRequestsPerDay)

	// No API key: the turn is refused before anything is stored.
	_, err = admin.Chat(ctx, portalsdk.ChatRequest{Messages: []portalsdk.ChatMessage{{Role: "user", Content: "hi"}}})
	require.Error(t, err)
	chats, err := admin.ListChats(ctx)
	require.NoError(t, err)
	require.Empty(t, chats)
}

func TestApplicationSessionsSurviveRestart(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(first.Handler())
	s, err := portalsdk.NewSDKClient(srv.URL).Register(ctx, portalsdk.RegisterRequest{Email: "a@example.com", Name: "A", Password: "pw"})
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.db.Close())

	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.db.Close() })
	srv = httptest.NewServer(second.Handler())
	t.Cleanup(srv.Close)

	client := portalsdk.NewSDKClient(srv.URL)
	_, err = client.NewSessionFromToken(s.Token()).Me(ctx, 0)
	require.NoError(t, err)

	_, err = client.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err, "pepper is reloaded from disk")
}

func TestApplicationSwagger(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "/api/chat")
}

func TestApplicationRejectsBadTrustedProxies(t *testing.T) {
	cfg := testConfig(t)
	cfg.TrustedProxies = "10.0.0.0/8,proxy.local"

	_, err := New(cfg)
	require.ErrorContains(t, err, "TRUSTED_PROXIES")
}
