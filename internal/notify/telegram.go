package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes messages to one chat through the Bot API.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *log.Logger
}

// NewTelegram authorizes the bot token against the public Bot API.
func NewTelegram(token string, chatID int64, logger *log.Logger) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, tgbotapi.APIEndpoint, chatID, logger)
}

// NewTelegramWithEndpoint is NewTelegram against a custom Bot API endpoint,
// formatted like tgbotapi.APIEndpoint.
func NewTelegramWithEndpoint(token, endpoint string, chatID int64, logger *log.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger = logger.With("component", "telegram")
	logger.Info("bot authorized", "account", api.Self.UserName)

	return &Telegram{api: api, chatID: chatID, logger: logger}, nil
}

// Notify sends text as HTML.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	t.logger.Debug("message sent", "chat", t.chatID)
	return nil
}
