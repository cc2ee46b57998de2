package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScrapeLogEntry — запись аудита одного запуска оркестратора
type ScrapeLogEntry struct {
	ID           uuid.UUID        `json:"id"`
	ProductID    uuid.UUID        `json:"product_id"`
	Success      bool             `json:"success"`
	Title        *string          `json:"title"`
	Price        *decimal.Decimal `json:"price"`
	Currency     *string          `json:"currency"`
	ImageURL     *string          `json:"image_url"`
	ErrorMessage *string          `json:"error_message"`
	RawResponse  []byte           `json:"-"`              // JSON как есть, может быть nil
	RawObjectKey *string          `json:"raw_object_key"` // ключ копии RawResponse в объектном хранилище
	AttemptedAt  time.Time        `json:"attempted_at"`
}

type ScrapedFields struct {
	Title    string
	Price    decimal.Decimal
	Currency string
	ImageURL string
}

func NewSuccessScrapeLog(productID uuid.UUID, fields ScrapedFields, raw []byte, at time.Time) *ScrapeLogEntry {
	price := fields.Price
	return &ScrapeLogEntry{
		ID:          uuid.New(),
		ProductID:   productID,
		Success:     true,
		Title:       optional(fields.Title),
		Price:       &price,
		Currency:    optional(fields.Currency),
		ImageURL:    optional(fields.ImageURL),
		RawResponse: raw,
		AttemptedAt: at,
	}
}

func NewFailedScrapeLog(productID uuid.UUID, message string, raw []byte, at time.Time) *ScrapeLogEntry {
	message = textColumn(message)
	return &ScrapeLogEntry{
		ID:           uuid.New(),
		ProductID:    productID,
		Success:      false,
		ErrorMessage: &message,
		RawResponse:  raw,
		AttemptedAt:  at,
	}
}

func optional(s string) *string {
	s = textColumn(s)
	if s == "" {
		return nil
	}

	return &s
}

// textColumn убирает то, что Postgres не примет в TEXT: невалидный UTF-8 и NUL.
func textColumn(s string) string {
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}
