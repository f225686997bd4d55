package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daily-tasks/internal/notify"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "OPENAI_API_KEY", "OPENAI_BASE_URL", "REPORT_INTERVAL_HOURS", "LOG_FILE", "TIMEZONE", "ROLLOVER_AT"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("LOG_LEVEL", "error")
	configPath = ""
}

func TestNewAppUsesLogNotifierWithoutTelegram(t *testing.T) {
	isolateEnv(t)

	a, err := newApp()
	require.NoError(t, err)
	defer a.Close()

	n, err := a.notifier()
	require.NoError(t, err)
	assert.IsType(t, &notify.Log{}, n)

	job, err := a.rolloverJob()
	require.NoError(t, err)
	count, err := job.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewAppRejectsBadConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := newApp()
	assert.Error(t, err)
}

func TestRolloverCommand(t *testing.T) {
	isolateEnv(t)

	var out bytes.Buffer
	rolloverCmd.SetOut(&out)
	rolloverCmd.SetContext(context.Background())
	require.NoError(t, rolloverCmd.RunE(rolloverCmd, nil))
	assert.Equal(t, "Successfully rolled over 0 tasks\n", out.String())
}

func TestSuggestCommandWithoutKey(t *testing.T) {
	isolateEnv(t)

	var out bytes.Buffer
	suggestCmd.SetOut(&out)
	suggestCmd.SetContext(context.Background())
	require.NoError(t, suggestCmd.RunE(suggestCmd, []string{"clean", "the", "garage"}))
	assert.Contains(t, out.String(), "not configured")
}
