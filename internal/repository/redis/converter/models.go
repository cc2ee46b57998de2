package converter

import "time"

// ProductRedisModel — товар в кэше; цены хранятся строкой, чтобы не терять точность.
type ProductRedisModel struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	URL           string     `json:"url"`
	Title         string     `json:"title"`
	CurrentPrice  string     `json:"current_price"`
	Currency      string     `json:"currency"`
	ImageURL      *string    `json:"image_url,omitempty"`
	IsActive      bool       `json:"is_active"`
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ObservationRedisModel struct {
	ID        string    `json:"id"`
	Price     string    `json:"price"`
	CheckedAt time.Time `json:"checked_at"`
}

type HistoryRedisModel struct {
	ProductID    string                  `json:"product_id"`
	Observations []ObservationRedisModel `json:"observations"`
}
