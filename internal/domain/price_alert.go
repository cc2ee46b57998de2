package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceAlert — порог цены пользователя для товара.
// На пару (OwnerID, ProductID) существует не более одной записи.
type PriceAlert struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	TargetPrice decimal.Decimal `json:"target_price"`
	Enabled     bool            `json:"enabled"`
	Triggered   bool            `json:"triggered"`
	TriggeredAt *time.Time      `json:"triggered_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Armed сообщает, ждёт ли алерт срабатывания.
func (a *PriceAlert) Armed() bool {
	return a.Enabled && !a.Triggered
}

// ShouldTrigger проверяет, срабатывает ли алерт на наблюдённой цене.
// Цена, равная порогу, считается срабатыванием; нулевая и отрицательная цена не срабатывают никогда.
func (a *PriceAlert) ShouldTrigger(observed decimal.Decimal) bool {
	if !a.Armed() || !observed.IsPositive() {
		return false
	}

	return observed.LessThanOrEqual(a.TargetPrice)
}

// TriggeredAlert — алерт, переведённый в состояние triggered текущим запуском.
type TriggeredAlert struct {
	Alert         PriceAlert
	ObservedPrice decimal.Decimal
}
