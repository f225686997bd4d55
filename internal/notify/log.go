package notify

import (
	"context"

	"github.com/charmbracelet/log"
)

// Log writes messages to the application log. It stands in for Telegram
// when no bot is configured.
type Log struct {
	logger *log.Logger
}

func NewLog(logger *log.Logger) *Log {
	return &Log{logger: logger.With("component", "notify")}
}

func (l *Log) Notify(_ context.Context, text string) error {
	l.logger.Info("daily summary", "text", text)
	return nil
}
