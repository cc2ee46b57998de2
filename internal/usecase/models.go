package usecase

import (
	"context"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SCRAPE ORCHESTRATOR

// RunScrapeReq — запрос на один запуск оркестратора для товара.
type RunScrapeReq struct {
	OwnerID   uuid.UUID
	ProductID uuid.UUID
	URL       string
}

// OrchestratorResult — итог успешного запуска оркестратора.
type OrchestratorResult struct {
	ProductID      uuid.UUID
	LogID          uuid.UUID
	Region         domain.Region
	Title          string
	Price          decimal.Decimal
	Currency       string
	ImageURL       *string
	TitleRecovered bool // заголовок восстановлен из метаданных страницы
	PriceCoerced   bool // цена в ответе была некорректной и заменена на 0
	Triggered      []domain.TriggeredAlert
	CheckedAt      time.Time
}

// INFRASTRUCTURE

// ExtractReq — запрос к сервису извлечения данных.
type ExtractReq struct {
	URL    string
	Region domain.Region
}

// ExtractRes — разобранный успешный ответ сервиса извлечения.
type ExtractRes struct {
	Title         string
	Price         decimal.Decimal
	PriceCoerced  bool
	Currency      string
	ImageURL      string
	MetadataTitle string // data.metadata.title страницы
	Raw           []byte // ответ целиком
}

// ArchiveRawReq — запрос на фоновое сохранение сырого ответа в объектное хранилище.
type ArchiveRawReq struct {
	ProductID uuid.UUID
	LogID     uuid.UUID
	Raw       []byte
	// OnStored вызывается после успешной загрузки с ключом объекта
	OnStored func(ctx context.Context, key string) error
}

// AlertTriggeredEvent — полезная нагрузка события alert.triggered.
type AlertTriggeredEvent struct {
	EventID       uuid.UUID
	AlertID       uuid.UUID
	ProductID     uuid.UUID
	OwnerID       uuid.UUID
	ProductTitle  string
	ProductURL    string
	ObservedPrice decimal.Decimal
	TargetPrice   decimal.Decimal
	Currency      string
	TriggeredAt   time.Time
}

// AlertMessage адресовано одному чату.
type AlertMessage struct {
	ChatID int64
	Text   string
}

// REPOSITORIES

// Notification — сработавший алерт вместе с данными товара.
type Notification struct {
	AlertID     uuid.UUID
	TargetPrice decimal.Decimal
	TriggeredAt *time.Time
	Product     NotificationProduct
}

type NotificationProduct struct {
	ID           uuid.UUID
	Title        string
	ImageURL     *string
	CurrentPrice decimal.Decimal
	Currency     string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

const EventAlertTriggered = "alert.triggered"

// OutboxEvent — событие, записанное в той же транзакции, что и изменение данных.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   string
	ProductID   uuid.UUID
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// PROFILES

type UpdateProfileReq struct {
	FullName       string
	TelegramChatID *int64
}

// ALERTS

// SetTargetPriceReq — установка порога цены для товара.
type SetTargetPriceReq struct {
	ProductID   uuid.UUID
	TargetPrice decimal.Decimal
	Enabled     bool
}

// MAPPERS

func NewRunScrapeReq(ownerID, productID uuid.UUID, url string) *RunScrapeReq {
	return &RunScrapeReq{
		OwnerID:   ownerID,
		ProductID: productID,
		URL:       url,
	}
}

func NewExtractReq(url string, region domain.Region) *ExtractReq {
	return &ExtractReq{URL: url, Region: region}
}

func NewOutboxEvent(eventID uuid.UUID, eventType string, productID uuid.UUID, payload []byte, createdAt time.Time) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: createdAt,
	}
}

func NewAlertTriggeredEvent(alert *domain.PriceAlert, product *domain.TrackedProduct, observed decimal.Decimal) *AlertTriggeredEvent {
	ev := &AlertTriggeredEvent{
		EventID:       uuid.New(),
		AlertID:       alert.ID,
		ProductID:     alert.ProductID,
		OwnerID:       alert.OwnerID,
		ObservedPrice: observed,
		TargetPrice:   alert.TargetPrice,
		Currency:      domain.DefaultCurrency,
	}
	if alert.TriggeredAt != nil {
		ev.TriggeredAt = *alert.TriggeredAt
	}
	if product != nil {
		ev.ProductTitle = product.Title
		ev.ProductURL = product.URL
		ev.Currency = product.Currency
	}

	return ev
}

func NewSetTargetPriceReq(productID uuid.UUID, target decimal.Decimal, enabled bool) *SetTargetPriceReq {
	return &SetTargetPriceReq{
		ProductID:   productID,
		TargetPrice: target,
		Enabled:     enabled,
	}
}

func NewUpdateProfileReq(fullName string, chatID *int64) *UpdateProfileReq {
	return &UpdateProfileReq{
		FullName:       fullName,
		TelegramChatID: chatID,
	}
}
