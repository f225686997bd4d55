package config

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
	for _, key := range []string{
		"CONFIG_FILE", "DATABASE_URL", "LISTEN_ADDR", "TIMEZONE", "OPENAI_API_KEY",
		"OPENAI_MODEL", "OPENAI_BASE_URL", "OPENAI_TIMEOUT", "TELEGRAM_TOKEN",
		"TELEGRAM_CHAT_ID", "ROLLOVER_AT", "REPORT_INTERVAL_HOURS",
		"DEFAULT_USER_EMAIL", "DEFAULT_USER_NAME", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "daily_tasks.db", cfg.DatabaseURL)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "00:05", cfg.RolloverAt)
	assert.Equal(t, "local@example.com", cfg.DefaultUserEmail)
	assert.Equal(t, "Local User", cfg.DefaultUserName)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
	assert.Zero(t, cfg.ReportInterval)
	assert.Empty(t, cfg.OpenAIKey)
	assert.NotNil(t, cfg.Location())
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_url: /tmp/from-file.db
listen_addr: ":8080"
timezone: UTC
openai_model: file-model
rollover_at: "01:30"
report_interval: 2h
`), 0o600))

	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("OPENAI_TIMEOUT", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-file.db", cfg.DatabaseURL)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "file-model", cfg.OpenAIModel)
	assert.Equal(t, "01:30", cfg.RolloverAt)
	assert.Equal(t, 2*time.Hour, cfg.ReportInterval)
	assert.Equal(t, 5*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"timezone":       {"TIMEZONE": "Mars/Olympus"},
		"rollover":       {"ROLLOVER_AT": "25:00"},
		"timeout":        {"OPENAI_TIMEOUT": "soon"},
		"chat id":        {"TELEGRAM_CHAT_ID": "abc"},
		"token w/o chat": {"TELEGRAM_TOKEN": "123:abc"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("07:45")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 45, m)

	for _, raw := range []string{"", "7", "24:00", "12:60", "ab:cd"} {
		_, _, err := ParseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestReportIntervalHours(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_INTERVAL_HOURS", "6")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, cfg.ReportInterval)
}
