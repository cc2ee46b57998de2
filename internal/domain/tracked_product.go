package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PlaceholderTitle = "Fetching details..." // заголовок до первого успешного запуска
	UnknownTitle     = "Unknown Product"
	DefaultCurrency  = "USD"
)

// MaxPrice — наибольшая цена, которую вмещает колонка NUMERIC(12,2).
var MaxPrice = decimal.RequireFromString("9999999999.99")

// PriceInRange сообщает, поместится ли цена в колонку после округления до копеек.
func PriceInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Round(2).LessThanOrEqual(MaxPrice)
}

// NormalizeCurrency возвращает трёхбуквенный код в верхнем регистре.
// Пустое значение и всё, что не похоже на ISO 4217 ("US Dollars", "$"), заменяется на DefaultCurrency.
func NormalizeCurrency(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return DefaultCurrency
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return DefaultCurrency
		}
	}

	return code
}

// TrackedProduct описывает отслеживаемый пользователем товар
type TrackedProduct struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	URL           string          `json:"url"`
	Title         string          `json:"title"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Currency      string          `json:"currency"`
	ImageURL      *string         `json:"image_url"`
	IsActive      bool            `json:"is_active"`
	LastCheckedAt *time.Time      `json:"last_checked_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewTrackedProduct создаёт запись-заглушку, которую заполнит первый запуск оркестратора.
func NewTrackedProduct(ownerID uuid.UUID, url string) *TrackedProduct {
	return &TrackedProduct{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		URL:          url,
		Title:        PlaceholderTitle,
		CurrentPrice: decimal.Zero,
		Currency:     DefaultCurrency,
		IsActive:     true,
	}
}

// ProductUpdate — поля товара, которые меняет успешный запуск оркестратора.
type ProductUpdate struct {
	Title         string
	CurrentPrice  decimal.Decimal
	Currency      string
	ImageURL      *string // nil оставляет прежнее изображение
	LastCheckedAt time.Time
	IsActive      bool
}

// Apply применяет обновление к товару в памяти.
func (p *TrackedProduct) Apply(u ProductUpdate) {
	p.Title = u.Title
	p.CurrentPrice = u.CurrentPrice
	p.Currency = u.Currency
	if u.ImageURL != nil {
		p.ImageURL = u.ImageURL
	}
	checked := u.LastCheckedAt
	p.LastCheckedAt = &checked
	p.IsActive = u.IsActive
}
