package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signup_e2e/domain/entities"
)

func TestLoad_Profiles(t *testing.T) {
	tests := []struct {
		name       string
		wantName   string
		baseURL    string
		navigation time.Duration
		retries    int
	}{
		{name: "local", wantName: EnvLocal, baseURL: "http://localhost:3000", navigation: 30 * time.Second, retries: 0},
		{name: "staging", wantName: EnvStaging, baseURL: "https://dummy-demo-njndex.web.app", navigation: 40 * time.Second, retries: 1},
		{name: "production", wantName: EnvProduction, baseURL: "https://dummy-demo-njndex.web.app", navigation: 60 * time.Second, retries: 2},
		{name: "qa-unknown", wantName: EnvStaging, baseURL: "https://dummy-demo-njndex.web.app", navigation: 40 * time.Second, retries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Load(tt.name)
			require.NoError(t, err)

			assert.Equal(t, tt.wantName, env.Name)
			assert.Equal(t, tt.baseURL, env.BaseURL)
			assert.Equal(t, tt.navigation, env.Timeout.Navigation)
			assert.Equal(t, tt.retries, env.Retries)
			assert.Equal(t, entities.DefaultTimeouts(), env.Tiers)
			assert.True(t, env.Headless)
		})
	}
}

func TestLoad_NameFromTestEnv(t *testing.T) {
	t.Setenv("TEST_ENV", "production")

	env, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, env.Name)
	assert.Equal(t, 60*time.Second, env.Timeout.Default)
	assert.Equal(t, 2, env.Retries)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://127.0.0.1:8080/")
	t.Setenv("HEADLESS", "false")
	t.Setenv("SLOW_MO", "250")
	t.Setenv("TIMEOUT_SHORT", "2s")
	t.Setenv("TIMEOUT_MEDIUM", "4000")

	env, err := Load("local")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", env.BaseURL)
	assert.False(t, env.Headless)
	assert.Equal(t, 250*time.Millisecond, env.SlowMo)
	assert.Equal(t, 2*time.Second, env.Tiers.Short)
	assert.Equal(t, 4*time.Second, env.Tiers.Medium)
	assert.Equal(t, entities.TimeoutLong, env.Tiers.Long)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://files.test\nretries: 3\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	env, err := Load("local")
	require.NoError(t, err)
	assert.Equal(t, "http://files.test", env.BaseURL)
	assert.Equal(t, 3, env.Retries)
}

func TestLoad_RejectsBadDurations(t *testing.T) {
	t.Setenv("TIMEOUT_LONG", "soon")

	_, err := Load("local")
	assert.ErrorContains(t, err, "TIMEOUT_LONG")
}

func TestResolveURL(t *testing.T) {
	env := &Environment{BaseURL: "https://app.test"}

	assert.Equal(t, "https://app.test/signup", env.ResolveURL("/signup"))
	assert.Equal(t, "https://app.test/account", env.ResolveURL("account"))
	assert.Equal(t, "http://elsewhere.test/x", env.ResolveURL("http://elsewhere.test/x"))
	assert.Equal(t, "https://elsewhere.test/x", env.ResolveURL("https://elsewhere.test/x"))
}

func TestAPIURLOrBase(t *testing.T) {
	assert.Equal(t, "https://app.test", (&Environment{BaseURL: "https://app.test"}).APIURLOrBase())
	assert.Equal(t, "https://api.test", (&Environment{BaseURL: "https://app.test", APIURL: "https://api.test"}).APIURLOrBase())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger("debug", &buf)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger = NewLogger("loud", &buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "unknown log level")
}
