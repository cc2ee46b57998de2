package usecase

import (
	"context"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxManager выполняет fn в одной транзакции; вложенные вызовы используют внешнюю.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.TrackedProduct) (*domain.TrackedProduct, error)
	// GetOwned возвращает e.ErrProductNotFound, если товара нет или он принадлежит другому владельцу.
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TrackedProduct, error)
	ApplyScrape(ctx context.Context, ownerID, id uuid.UUID, update domain.ProductUpdate) (*domain.TrackedProduct, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type PriceHistoryRepository interface {
	Append(ctx context.Context, observation *domain.PriceObservation) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.PriceObservation, error)
}

type AlertRepository interface {
	ListArmedByProduct(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.PriceAlert, error)
	// MarkTriggered переводит включённый и ещё не сработавший алерт в triggered, false если алерт уже не подходит.
	MarkTriggered(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	Upsert(ctx context.Context, ownerID, productID uuid.UUID, target decimal.Decimal, enabled bool) (*domain.PriceAlert, error)
	GetByProduct(ctx context.Context, ownerID, productID uuid.UUID) (*domain.PriceAlert, error)
	SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) (*domain.PriceAlert, error)
	Dismiss(ctx context.Context, ownerID, id uuid.UUID) (*domain.PriceAlert, error)
	ListTriggered(ctx context.Context, ownerID uuid.UUID) ([]Notification, error)
	CountTriggered(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type ScrapeLogRepository interface {
	Create(ctx context.Context, entry *domain.ScrapeLogEntry) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ScrapeLogEntry, error)
	Get(ctx context.Context, productID, id uuid.UUID) (*domain.ScrapeLogEntry, error)
	SetRawObjectKey(ctx context.Context, id uuid.UUID, key string) error
}

type ProfileRepository interface {
	GetOrCreate(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateProfileReq) (*domain.Profile, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseToPending(ctx context.Context, id int64) error
}

// Промах кэша возвращает found=false без ошибки.
type CacheRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (product *domain.TrackedProduct, found bool, err error)
	SetProduct(ctx context.Context, product *domain.TrackedProduct) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetHistory(ctx context.Context, productID uuid.UUID) (history []domain.PriceObservation, found bool, err error)
	// HistoryGeneration читается до чтения истории из БД; DeleteHistory увеличивает поколение.
	HistoryGeneration(ctx context.Context, productID uuid.UUID) (int64, error)
	// SetHistory пишет историю, только если поколение не изменилось с момента чтения.
	SetHistory(ctx context.Context, productID uuid.UUID, generation int64, history []domain.PriceObservation) (stored bool, err error)
	DeleteHistory(ctx context.Context, productID uuid.UUID) error
}

// RawObjectRepository хранит сырые ответы сервиса извлечения в объектном хранилище.
type RawObjectRepository interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
