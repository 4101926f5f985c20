package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OCTOFIT_BASE_URL", "CODESPACE_NAME", "REACT_APP_CODESPACE_NAME"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.APIBaseURL())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_TemplatedFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("OCTOFIT_TEST_BACKEND", "backend.internal:8000")

	path := writeConfig(t, `
baseUrl: http://{{ .OCTOFIT_TEST_BACKEND }}/api
logLevel: debug
server:
  host: 127.0.0.1
  port: 9090
http:
  timeout: 5s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.internal:8000/api/", cfg.APIBaseURL())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestLoadConfig_CodespaceFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_CODESPACE_NAME", "fluffy-space-8x7")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://fluffy-space-8x7-8000.app.github.dev/api/", cfg.APIBaseURL())
}

func TestLoadConfig_BaseURLWinsOverCodespace(t *testing.T) {
	clearEnv(t)
	t.Setenv("CODESPACE_NAME", "fluffy-space-8x7")
	t.Setenv("OCTOFIT_BASE_URL", "http://example.test/api/")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/api/", cfg.APIBaseURL())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("CODESPACE_NAME"))
	require.NoError(t, os.WriteFile(".env", []byte("CODESPACE_NAME=from-dotenv\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, CodespaceBaseURL("from-dotenv"), cfg.APIBaseURL())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}
