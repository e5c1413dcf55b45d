package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "HIRSCH_PROVIDER", "HIRSCH_STORE_BACKEND",
		"HIRSCH_STORE_PATH", "HIRSCH_TIMEZONE", "HIRSCH_CONCURRENCY", "HIRSCH_DISABLE_EXPLORATION",
		"HTTPS_PROXY", "SQLITE_PATH", "HIRSCH_PROVIDER_URL", "HIRSCH_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, "America/New_York", cfg.Schedule.Timezone)
	assert.Equal(t, "0 30 8 * * 1-5", cfg.Schedule.PreopenCron)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "data/hirsch-store.json", cfg.Store.Path)
	assert.Equal(t, 8, cfg.DataSource.Concurrency)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  bot_token: "file-token"
  chat_id: "42"
data_source:
  provider: rest
  base_urls:
    - http://bars-a.local
    - http://bars-b.local
  concurrency: 3
store:
  backend: sqlite
picker:
  disable_exploration: true
`), 0o644))
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("HIRSCH_CONCURRENCY", "6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.Equal(t, "rest", cfg.DataSource.Provider)
	assert.Equal(t, []string{"http://bars-a.local", "http://bars-b.local"}, cfg.DataSource.BaseURLs)
	assert.Equal(t, 6, cfg.DataSource.Concurrency)
	assert.Equal(t, "data/hirsch_store.db", cfg.Store.Path)
	assert.True(t, cfg.Picker.DisableExploration)
	assert.True(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BackendOverrideRederivesPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: file
  path: data/hirsch-store.json
`), 0o644))

	t.Setenv("HIRSCH_STORE_BACKEND", "sqlite")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "data/hirsch_store.db", cfg.Store.Path)

	t.Setenv("HIRSCH_STORE_PATH", "/var/lib/hirsch/picks.db")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/hirsch/picks.db", cfg.Store.Path)

	t.Setenv("HIRSCH_STORE_BACKEND", "FILE")
	t.Setenv("HIRSCH_STORE_PATH", "")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/hirsch-store.json", cfg.Store.Path)
}

func TestLoad_ProviderURLsAndLogFormatFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HIRSCH_PROVIDER", "rest")
	t.Setenv("HIRSCH_PROVIDER_URL", "http://a.local, ,http://b.local")
	t.Setenv("HIRSCH_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.DataSource.BaseURLs)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())

	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegram: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.DataSource.Provider = "rest"
	assert.Error(t, cfg.Validate())
	cfg.DataSource.Provider = "yahoo"

	cfg.Store.Backend = "etcd"
	assert.Error(t, cfg.Validate())
	cfg.Store.Backend = "redis"

	cfg.Schedule.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
	cfg.Schedule.Timezone = "UTC"

	cfg.Telegram.BotToken = "only-token"
	assert.Error(t, cfg.Validate())
	cfg.Telegram.ChatID = "1"
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HIRSCH_DOTENV_PROBE=from-file\n"), 0o644))
	t.Setenv("HIRSCH_DOTENV_PROBE", "")
	os.Unsetenv("HIRSCH_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-file", os.Getenv("HIRSCH_DOTENV_PROBE"))
}
