package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID            uuid.UUID       `db:"id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	URL           string          `db:"url"`
	Title         string          `db:"title"`
	CurrentPrice  decimal.Decimal `db:"current_price"`
	Currency      string          `db:"currency"`
	ImageURL      *string         `db:"image_url"`
	IsActive      bool            `db:"is_active"`
	LastCheckedAt *time.Time      `db:"last_checked_at"`
	CreatedAt     time.Time       `db:"created_at"`
}

// PriceObservationModel представляет запись таблицы price_history.
type PriceObservationModel struct {
	ID        uuid.UUID       `db:"id"`
	ProductID uuid.UUID       `db:"product_id"`
	Price     decimal.Decimal `db:"price"`
	CheckedAt time.Time       `db:"checked_at"`
}

// AlertModel представляет запись таблицы alerts.
type AlertModel struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	ProductID   uuid.UUID       `db:"product_id"`
	TargetPrice decimal.Decimal `db:"target_price"`
	Enabled     bool            `db:"enabled"`
	Triggered   bool            `db:"triggered"`
	TriggeredAt *time.Time      `db:"triggered_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

// NotificationModel — сработавший алерт, соединённый с товаром.
type NotificationModel struct {
	AlertID      uuid.UUID       `db:"alert_id"`
	TargetPrice  decimal.Decimal `db:"target_price"`
	TriggeredAt  *time.Time      `db:"triggered_at"`
	ProductID    uuid.UUID       `db:"product_id"`
	Title        string          `db:"title"`
	ImageURL     *string         `db:"image_url"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	Currency     string          `db:"currency"`
}

// ScrapeLogModel представляет запись таблицы scrape_logs.
type ScrapeLogModel struct {
	ID           uuid.UUID           `db:"id"`
	ProductID    uuid.UUID           `db:"product_id"`
	Success      bool                `db:"success"`
	Title        *string             `db:"title"`
	Price        decimal.NullDecimal `db:"price"`
	Currency     *string             `db:"currency"`
	ImageURL     *string             `db:"image_url"`
	ErrorMessage *string             `db:"error_message"`
	RawResponse  []byte              `db:"raw_response"`
	RawObjectKey *string             `db:"raw_object_key"`
	AttemptedAt  time.Time           `db:"attempted_at"`
}

// ProfileModel представляет запись таблицы profiles.
type ProfileModel struct {
	ID             uuid.UUID  `db:"id"`
	FullName       string     `db:"full_name"`
	TelegramChatID *int64     `db:"telegram_chat_id"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   uuid.UUID  `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
