package telegram

import (
	"context"
	"net/http"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/cfg"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jimlawless/whereami"
)

// Notifier отправляет уведомления об алертах через Telegram Bot API.
// Без токена бот не создаётся и Enabled возвращает false.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	logger logger.Logger
}

func NewNotifier(c *cfg.TelegramCfg, logger logger.Logger) (*Notifier, error) {
	return newNotifier(c.BotToken, tgbotapi.APIEndpoint, &http.Client{}, logger)
}

func newNotifier(token, endpoint string, client tgbotapi.HTTPClient, logger logger.Logger) (*Notifier, error) {
	if token == "" {
		logger.Infof("TELEGRAM_BOT_TOKEN is not set, alert notifications are disabled")
		return &Notifier{logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	logger.Infof("Telegram bot authorized as @%s", bot.Self.UserName)

	return &Notifier{
		bot:    bot,
		logger: logger,
	}, nil
}

func (n *Notifier) Enabled() bool {
	return n.bot != nil
}

func (n *Notifier) SendAlert(ctx context.Context, msg *usecase.AlertMessage) error {
	if n.bot == nil {
		return nil
	}
	// Bot API не принимает контекст
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	m := tgbotapi.NewMessage(msg.ChatID, msg.Text)
	m.DisableWebPagePreview = true

	if _, err := n.bot.Send(m); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
