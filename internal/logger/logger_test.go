package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInfo(t *testing.T) {
	l, closer, err := New(Config{})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, log.InfoLevel, l.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, closer, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)
	l.Info("task created", "id", 7)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task created")
	assert.Contains(t, string(data), "id=7")
}
