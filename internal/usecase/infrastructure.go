package usecase

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
)

// ExtractionClient вызывает внешний сервис извлечения данных со страницы товара.
// Ошибки имеют тип *e.ExtractionError.
type ExtractionClient interface {
	Extract(ctx context.Context, req *ExtractReq) (*ExtractRes, error)
}

// ChangeBus доставляет уведомления об изменениях строк подписчикам-владельцам.
type ChangeBus interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
	Subscribe(ctx context.Context, filter domain.ChangeFilter) (Subscription, error)
}

// Subscription — подписка на изменения; Close освобождает ресурсы и закрывает Events.
type Subscription interface {
	Events() <-chan domain.ChangeEvent
	Close() error
}

// RawArchiveInfra сохраняет сырые ответы сервиса извлечения в фоне.
type RawArchiveInfra interface {
	ArchiveRaw(req *ArchiveRawReq)
}

// EventEncoder кодирует события для outbox.
type EventEncoder interface {
	EncodeAlertTriggered(event *AlertTriggeredEvent) ([]byte, error)
	DecodeAlertTriggered(payload []byte) (*AlertTriggeredEvent, error)
}

// AlertNotifier отправляет сообщение о сработавшем алерте.
type AlertNotifier interface {
	Enabled() bool
	SendAlert(ctx context.Context, msg *AlertMessage) error
}

// MessageProducer публикует события outbox в брокер.
type MessageProducer interface {
	Publish(ctx context.Context, ev *OutboxEvent) error
}
