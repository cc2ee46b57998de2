package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceObservation — одна точка истории цены (только добавление)
type PriceObservation struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	CheckedAt time.Time       `json:"checked_at"`
}

func NewPriceObservation(productID uuid.UUID, price decimal.Decimal, checkedAt time.Time) *PriceObservation {
	return &PriceObservation{
		ID:        uuid.New(),
		ProductID: productID,
		Price:     price,
		CheckedAt: checkedAt,
	}
}
