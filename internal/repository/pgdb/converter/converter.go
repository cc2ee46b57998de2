package converter

import (
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует TrackedProduct между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.TrackedProduct) *ProductModel
	ToEntity(model *ProductModel) *domain.TrackedProduct
	ToArrEntity(models []*ProductModel) []domain.TrackedProduct
}

// ScrapeLogConverter преобразует ScrapeLogEntry между domain и моделью PostgreSQL.
type ScrapeLogConverter interface {
	ToModel(entity *domain.ScrapeLogEntry) *ScrapeLogModel
	ToEntity(model *ScrapeLogModel) *domain.ScrapeLogEntry
	ToArrEntity(models []*ScrapeLogModel) []domain.ScrapeLogEntry
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type productConverter struct{}

func NewProductConverter() ProductConverter { return productConverter{} }

func (productConverter) ToModel(p *domain.TrackedProduct) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		URL:           p.URL,
		Title:         p.Title,
		CurrentPrice:  p.CurrentPrice,
		Currency:      p.Currency,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		LastCheckedAt: p.LastCheckedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (productConverter) ToEntity(m *ProductModel) *domain.TrackedProduct {
	return &domain.TrackedProduct{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		URL:           m.URL,
		Title:         m.Title,
		CurrentPrice:  m.CurrentPrice,
		Currency:      m.Currency,
		ImageURL:      m.ImageURL,
		IsActive:      m.IsActive,
		LastCheckedAt: m.LastCheckedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func (c productConverter) ToArrEntity(models []*ProductModel) []domain.TrackedProduct {
	out := make([]domain.TrackedProduct, 0, len(models))
	for _, m := range models {
		out = append(out, *c.ToEntity(m))
	}
	return out
}

type scrapeLogConverter struct{}

func NewScrapeLogConverter() ScrapeLogConverter { return scrapeLogConverter{} }

func (scrapeLogConverter) ToModel(l *domain.ScrapeLogEntry) *ScrapeLogModel {
	m := &ScrapeLogModel{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Success:      l.Success,
		Title:        l.Title,
		Currency:     l.Currency,
		ImageURL:     l.ImageURL,
		ErrorMessage: l.ErrorMessage,
		RawResponse:  l.RawResponse,
		RawObjectKey: l.RawObjectKey,
		AttemptedAt:  l.AttemptedAt,
	}
	if l.Price != nil {
		m.Price = decimal.NewNullDecimal(*l.Price)
	}
	return m
}

func (scrapeLogConverter) ToEntity(m *ScrapeLogModel) *domain.ScrapeLogEntry {
	l := &domain.ScrapeLogEntry{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Success:      m.Success,
		Title:        m.Title,
		Currency:     m.Currency,
		ImageURL:     m.ImageURL,
		ErrorMessage: m.ErrorMessage,
		RawResponse:  m.RawResponse,
		RawObjectKey: m.RawObjectKey,
		AttemptedAt:  m.AttemptedAt,
	}
	if m.Price.Valid {
		price := m.Price.Decimal
		l.Price = &price
	}
	return l
}

func (c scrapeLogConverter) ToArrEntity(models []*ScrapeLogModel) []domain.ScrapeLogEntry {
	out := make([]domain.ScrapeLogEntry, 0, len(models))
	for _, m := range models {
		out = append(out, *c.ToEntity(m))
	}
	return out
}

type outboxEventConverter struct{}

func NewOutboxEventConverter() OutboxEventConverter { return outboxEventConverter{} }

func (outboxEventConverter) ToModel(ev *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          ev.ID,
		EventID:     ev.EventID,
		EventType:   ev.EventType,
		ProductID:   ev.ProductID,
		Payload:     ev.Payload,
		Status:      string(ev.Status),
		CreatedAt:   ev.CreatedAt,
		ProcessedAt: ev.ProcessedAt,
	}
}

func (outboxEventConverter) ToEntity(m *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          m.ID,
		EventID:     m.EventID,
		EventType:   m.EventType,
		ProductID:   m.ProductID,
		Payload:     m.Payload,
		Status:      usecase.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func (c outboxEventConverter) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	out := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		out = append(out, c.ToEntity(m))
	}
	return out
}

// AlertToEntity преобразует модель алерта в domain.
func AlertToEntity(m *AlertModel) *domain.PriceAlert {
	return &domain.PriceAlert{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		ProductID:   m.ProductID,
		TargetPrice: m.TargetPrice,
		Enabled:     m.Enabled,
		Triggered:   m.Triggered,
		TriggeredAt: m.TriggeredAt,
		CreatedAt:   m.CreatedAt,
	}
}

// NotificationToUsecase преобразует строку выборки уведомлений.
func NotificationToUsecase(m *NotificationModel) usecase.Notification {
	return usecase.Notification{
		AlertID:     m.AlertID,
		TargetPrice: m.TargetPrice,
		TriggeredAt: m.TriggeredAt,
		Product: usecase.NotificationProduct{
			ID:           m.ProductID,
			Title:        m.Title,
			ImageURL:     m.ImageURL,
			CurrentPrice: m.CurrentPrice,
			Currency:     m.Currency,
		},
	}
}

// ProfileToEntity преобразует модель профиля в domain.
func ProfileToEntity(m *ProfileModel) *domain.Profile {
	return &domain.Profile{
		ID:             m.ID,
		FullName:       m.FullName,
		TelegramChatID: m.TelegramChatID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
