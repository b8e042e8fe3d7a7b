package portal_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for family portal end-to-end tests.
 * This includes container setup, account operations, and assertions.
 */

const (
	testImageName = "familyportal-test:latest"

	testJWTSecret = "e2e-secret-0123456789abcdef"

	adminEmail    = "admin@example.com"
	adminName     = "Administrator"
	adminPassword = "Admin123!"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Family Portal Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Family Portal Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/portal/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// defaultEnv relaxes every rate limit so tests making many rapid requests
// are not throttled. Tests of the limits themselves override these.
func defaultEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET": testJWTSecret,
		"ENV":        "test",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",

		"RATELIMIT_GLOBAL_REQUESTS": "1000",
		"RATELIMIT_GLOBAL_BURST":    "1000",
		"RATELIMIT_STRICT_REQUESTS": "1000",
		"RATELIMIT_STRICT_BURST":    "1000",
		"RATELIMIT_CHAT_REQUESTS":   "1000",
		"RATELIMIT_CHAT_BURST":      "1000",
	}
}

type containerOptions struct {
	// Env is merged over defaultEnv.
	Env map[string]string
	// Volume is a named Docker volume mounted at /data. Empty keeps the
	// database and pepper inside the container.
	Volume string
}

// setupPortalContainer starts the portal and returns its base URL.
//
// Readiness is judged from the startup log line rather than by polling
// /livez, so the wait does not spend tokens from the global bucket.
func setupPortalContainer(t *testing.T, opts containerOptions) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := defaultEnv()
	maps.Copy(env, opts.Env)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForAll(
			wait.ForLog("family portal starting"),
			wait.ForListeningPort("8080/tcp"),
		).WithDeadline(60 * time.Second),
	}
	if opts.Volume != "" {
		req.Mounts = testcontainers.ContainerMounts{
			testcontainers.VolumeMount(opts.Volume, "/data"),
		}
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// newVolume names a Docker volume for t and removes it when t finishes.
// Docker creates the volume on first mount.
func newVolume(t *testing.T) string {
	t.Helper()
	name := fmt.Sprintf("familyportal-e2e-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		cmd := exec.CommandContext(context.Background(), "docker", "volume", "rm", "-f", name)
		_ = cmd.Run()
	})
	return name
}

// registerAdmin creates the first account, which the portal makes admin.
func registerAdmin(t *testing.T, client *portalsdk.SDKClient) *portalsdk.Session {
	t.Helper()

	session, err := client.Register(t.Context(), portalsdk.RegisterRequest{
		Email:    adminEmail,
		Name:     adminName,
		Password: adminPassword,
	})
	require.NoError(t, err, "First registration should succeed")
	require.Equal(t, "admin", session.User().Role, "First account should be admin")

	return session
}

// assertAPIError checks that err is an *APIError with the given status.
func assertAPIError(t *testing.T, err error, status int, context string) *portalsdk.APIError {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *portalsdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s - expected an API error, got: %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - unexpected status: %v", context, err)

	return apiErr
}

func assertHealthy(t *testing.T, health *portalsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
