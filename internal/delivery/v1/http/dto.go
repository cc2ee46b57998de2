package http

import (
	"encoding/json"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/google/uuid"
)

// REQUESTS

type addProductRequest struct {
	URL string `json:"url" example:"https://www.amazon.com/dp/B0EXAMPLE"`
}

type setTargetPriceRequest struct {
	TargetPrice string `json:"target_price" example:"15.00"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

type toggleAlertRequest struct {
	Enabled *bool `json:"enabled"`
}

type updateProfileRequest struct {
	FullName       string `json:"full_name"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

// RESPONSES

type productResponse struct {
	ID            uuid.UUID  `json:"id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	CurrentPrice  string     `json:"current_price" example:"19.99"`
	Currency      string     `json:"currency"`
	ImageURL      *string    `json:"image_url"`
	IsActive      bool       `json:"is_active"`
	LastCheckedAt *time.Time `json:"last_checked_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

type observationResponse struct {
	ID        uuid.UUID `json:"id"`
	Price     string    `json:"price"`
	CheckedAt time.Time `json:"checked_at"`
}

type alertResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	TargetPrice string     `json:"target_price"`
	Enabled     bool       `json:"enabled"`
	Triggered   bool       `json:"triggered"`
	TriggeredAt *time.Time `json:"triggered_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type scrapeLogResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Success      bool            `json:"success"`
	Title        *string         `json:"title"`
	Price        *string         `json:"price"`
	Currency     *string         `json:"currency"`
	ImageURL     *string         `json:"image_url"`
	ErrorMessage *string         `json:"error_message"`
	RawObjectKey *string         `json:"raw_object_key"`
	RawResponse  json.RawMessage `json:"raw_response,omitempty" swaggertype:"object"`
	AttemptedAt  time.Time       `json:"attempted_at"`
}

type triggeredAlertResponse struct {
	AlertID       uuid.UUID `json:"alert_id"`
	TargetPrice   string    `json:"target_price"`
	ObservedPrice string    `json:"observed_price"`
}

type orchestratorResultResponse struct {
	ProductID      uuid.UUID                `json:"product_id"`
	LogID          uuid.UUID                `json:"log_id"`
	Region         string                   `json:"region"`
	Title          string                   `json:"title"`
	Price          string                   `json:"price"`
	Currency       string                   `json:"currency"`
	ImageURL       *string                  `json:"image_url"`
	TitleRecovered bool                     `json:"title_recovered"`
	PriceCoerced   bool                     `json:"price_coerced"`
	Triggered      []triggeredAlertResponse `json:"triggered"`
	CheckedAt      time.Time                `json:"checked_at"`
}

type notificationProductResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	ImageURL     *string   `json:"image_url"`
	CurrentPrice string    `json:"current_price"`
	Currency     string    `json:"currency"`
}

type notificationResponse struct {
	ID          uuid.UUID                   `json:"id"`
	TargetPrice string                      `json:"target_price"`
	TriggeredAt *time.Time                  `json:"triggered_at"`
	Product     notificationProductResponse `json:"product"`
}

type countResponse struct {
	Count int `json:"count"`
}

type profileResponse struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	TelegramChatID *int64     `json:"telegram_chat_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type callbackURLResponse struct {
	URL string `json:"url"`
}

// MAPPERS

func toProductResponse(p *domain.TrackedProduct) productResponse {
	return productResponse{
		ID:            p.ID,
		URL:           p.URL,
		Title:         p.Title,
		CurrentPrice:  formatPrice(p.CurrentPrice),
		Currency:      p.Currency,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		LastCheckedAt: p.LastCheckedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func toProductsResponse(products []domain.TrackedProduct) []productResponse {
	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toHistoryResponse(history []domain.PriceObservation) []observationResponse {
	out := make([]observationResponse, 0, len(history))
	for _, o := range history {
		out = append(out, observationResponse{
			ID:        o.ID,
			Price:     formatPrice(o.Price),
			CheckedAt: o.CheckedAt,
		})
	}
	return out
}

func toAlertResponse(a *domain.PriceAlert) alertResponse {
	return alertResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		TargetPrice: formatPrice(a.TargetPrice),
		Enabled:     a.Enabled,
		Triggered:   a.Triggered,
		TriggeredAt: a.TriggeredAt,
		CreatedAt:   a.CreatedAt,
	}
}

// toScrapeLogResponse включает сырой ответ только для детального просмотра.
func toScrapeLogResponse(l *domain.ScrapeLogEntry, withRaw bool) scrapeLogResponse {
	resp := scrapeLogResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Success:      l.Success,
		Title:        l.Title,
		Currency:     l.Currency,
		ImageURL:     l.ImageURL,
		ErrorMessage: l.ErrorMessage,
		RawObjectKey: l.RawObjectKey,
		AttemptedAt:  l.AttemptedAt,
	}
	if l.Price != nil {
		price := formatPrice(*l.Price)
		resp.Price = &price
	}
	if withRaw && json.Valid(l.RawResponse) {
		resp.RawResponse = l.RawResponse
	}
	return resp
}

func toScrapeLogsResponse(logs []domain.ScrapeLogEntry) []scrapeLogResponse {
	out := make([]scrapeLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toScrapeLogResponse(&logs[i], false))
	}
	return out
}

func toOrchestratorResultResponse(r *usecase.OrchestratorResult) orchestratorResultResponse {
	triggered := make([]triggeredAlertResponse, 0, len(r.Triggered))
	for _, t := range r.Triggered {
		triggered = append(triggered, triggeredAlertResponse{
			AlertID:       t.Alert.ID,
			TargetPrice:   formatPrice(t.Alert.TargetPrice),
			ObservedPrice: formatPrice(t.ObservedPrice),
		})
	}

	return orchestratorResultResponse{
		ProductID:      r.ProductID,
		LogID:          r.LogID,
		Region:         string(r.Region),
		Title:          r.Title,
		Price:          formatPrice(r.Price),
		Currency:       r.Currency,
		ImageURL:       r.ImageURL,
		TitleRecovered: r.TitleRecovered,
		PriceCoerced:   r.PriceCoerced,
		Triggered:      triggered,
		CheckedAt:      r.CheckedAt,
	}
}

func toNotificationsResponse(items []usecase.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, notificationResponse{
			ID:          n.AlertID,
			TargetPrice: formatPrice(n.TargetPrice),
			TriggeredAt: n.TriggeredAt,
			Product: notificationProductResponse{
				ID:           n.Product.ID,
				Title:        n.Product.Title,
				ImageURL:     n.Product.ImageURL,
				CurrentPrice: formatPrice(n.Product.CurrentPrice),
				Currency:     n.Product.Currency,
			},
		})
	}
	return out
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		TelegramChatID: p.TelegramChatID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
