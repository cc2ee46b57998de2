package usecase

import (
	"context"
	"fmt"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
)

// NotifyUseCase доставляет события alert.triggered владельцу товара.
type NotifyUseCase struct {
	profileRepo ProfileRepository
	notifier    AlertNotifier
	encoder     EventEncoder
	logger      logger.Logger
}

func NewNotifyUC(profileRepo ProfileRepository, notifier AlertNotifier, encoder EventEncoder, logger logger.Logger) *NotifyUseCase {
	return &NotifyUseCase{
		profileRepo: profileRepo,
		notifier:    notifier,
		encoder:     encoder,
		logger:      logger,
	}
}

// HandleAlertTriggered декодирует событие и отправляет сообщение, если у владельца указан чат.
// Отсутствие чата или отключённый бот не считаются ошибкой.
func (n *NotifyUseCase) HandleAlertTriggered(ctx context.Context, payload []byte) error {
	const op = "NotifyUseCase.HandleAlertTriggered"

	event, err := n.encoder.DecodeAlertTriggered(payload)
	if err != nil {
		return e.Wrap(op, err)
	}

	if !n.notifier.Enabled() {
		n.logger.Debugf("alert notifier disabled, skipping alert %s", event.AlertID)
		return nil
	}

	profile, err := n.profileRepo.GetOrCreate(ctx, event.OwnerID)
	if err != nil {
		return e.Wrap(op, err)
	}
	if profile.TelegramChatID == nil {
		n.logger.Debugf("owner %s has no telegram chat, skipping alert %s", event.OwnerID, event.AlertID)
		return nil
	}

	msg := &AlertMessage{
		ChatID: *profile.TelegramChatID,
		Text:   FormatAlertText(event),
	}
	if err := n.notifier.SendAlert(ctx, msg); err != nil {
		return e.Wrap(op, err)
	}

	n.logger.Infof("alert %s delivered to chat %d", event.AlertID, msg.ChatID)
	return nil
}

// FormatAlertText собирает текст уведомления.
func FormatAlertText(event *AlertTriggeredEvent) string {
	title := event.ProductTitle
	if runes := []rune(title); len(runes) > 60 {
		title = string(runes[:60]) + "..."
	}

	text := fmt.Sprintf("Price alert: %s is now %s %s (target: %s %s)",
		title,
		event.ObservedPrice.StringFixed(2), event.Currency,
		event.TargetPrice.StringFixed(2), event.Currency,
	)
	if event.ProductURL != "" {
		text += "\n" + event.ProductURL
	}

	return text
}
