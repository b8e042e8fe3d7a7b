package portal_test

import (
	"testing"

	"github.com/aussiebroadwan/familyportal/pkg/portalsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the built image serves the liveness check.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, containerOptions{})
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzWithoutLLM verifies the database check passes and a missing
// OPENAI_API_KEY is reported without failing readiness.
func TestReadyzWithoutLLM(t *testing.T) {
	baseURL, cleanup := setupPortalContainer(t, containerOptions{})
	defer cleanup()

	client := portalsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "unconfigured", health.Checks.LLM)
}
