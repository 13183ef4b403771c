package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
logger:
  level: ${TEST_NOTES_LOG_LEVEL:-debug}
server:
  port_http: ${TEST_NOTES_PORT:-9090}
api:
  base_url: ${TEST_NOTES_API_URL:-/api}
mock:
  enabled: ${TEST_NOTES_MOCKS:-false}
  storage: sqlite
query:
  stale_time_seconds: 60
  retry: 1
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("TEST_NOTES_SET", "value")

	assert.Equal(t, "value", expandEnvWithDefaults("${TEST_NOTES_SET:-other}"))
	assert.Equal(t, "other", expandEnvWithDefaults("${TEST_NOTES_UNSET:-other}"))
	assert.Equal(t, "", expandEnvWithDefaults("${TEST_NOTES_UNSET}"))
	assert.Equal(t, "http://value/api", expandEnvWithDefaults("http://${TEST_NOTES_SET}/api"))
}

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig[Config](writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 9090, cfg.Server.PortHTTP)
	assert.Equal(t, "/api", cfg.API.BaseURL)
	assert.False(t, cfg.Mock.Enabled)
	assert.Equal(t, "sqlite", cfg.Mock.Storage)
	assert.Equal(t, 60, cfg.Query.StaleTimeSeconds)
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_NOTES_PORT", "7000")
	t.Setenv("TEST_NOTES_MOCKS", "true")
	t.Setenv("TEST_NOTES_API_URL", "https://notes.example.com/v1")

	cfg, err := InitConfig[Config](writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.PortHTTP)
	assert.True(t, cfg.Mock.Enabled)
	assert.Equal(t, "https://notes.example.com/v1", cfg.API.BaseURL)
}

func TestInitConfig_MissingFile(t *testing.T) {
	_, err := InitConfig[Config](filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	cfg.ApplyDefaults()

	assert.Equal(t, 8080, cfg.Server.PortHTTP)
	assert.Equal(t, 30, cfg.Server.SessionIdleMinutes)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.True(t, cfg.Mock.Enabled)
	assert.Equal(t, "memory", cfg.Mock.Storage)
	assert.Equal(t, 300, cfg.Query.StaleTimeSeconds)
	assert.Equal(t, 1, cfg.Query.Retry)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TEST_NOTES_FROM_DOTENV=yes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_NOTES_FROM_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "yes", os.Getenv("TEST_NOTES_FROM_DOTENV"))
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		base, listen, want string
	}{
		{base: "/api", listen: "0.0.0.0:8080", want: "http://127.0.0.1:8080/api"},
		{base: "", listen: ":8080", want: "http://127.0.0.1:8080/api"},
		{base: "/api/", listen: "localhost:3000", want: "http://localhost:3000/api"},
		{base: "/", listen: "localhost:3000", want: "http://localhost:3000"},
		{base: "https://notes.example.com/api/", listen: ":8080", want: "https://notes.example.com/api"},
	}

	for _, tt := range tests {
		got, err := ResolveBaseURL(tt.base, tt.listen)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "base=%q listen=%q", tt.base, tt.listen)
	}
}
