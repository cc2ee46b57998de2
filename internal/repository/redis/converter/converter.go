package converter

import (
	"fmt"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CacheConverter преобразует сущности в модели кэша и обратно.
type CacheConverter interface {
	ProductToRedisModel(entity *domain.TrackedProduct) *ProductRedisModel
	ProductToEntity(model *ProductRedisModel) (*domain.TrackedProduct, error)
	HistoryToRedisModel(productID uuid.UUID, history []domain.PriceObservation) *HistoryRedisModel
	HistoryToEntity(model *HistoryRedisModel) ([]domain.PriceObservation, error)
}

type cacheConverter struct{}

func NewCacheConverter() CacheConverter { return cacheConverter{} }

func (cacheConverter) ProductToRedisModel(p *domain.TrackedProduct) *ProductRedisModel {
	return &ProductRedisModel{
		ID:            p.ID.String(),
		OwnerID:       p.OwnerID.String(),
		URL:           p.URL,
		Title:         p.Title,
		CurrentPrice:  p.CurrentPrice.String(),
		Currency:      p.Currency,
		ImageURL:      p.ImageURL,
		IsActive:      p.IsActive,
		LastCheckedAt: p.LastCheckedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func (cacheConverter) ProductToEntity(m *ProductRedisModel) (*domain.TrackedProduct, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("product id: %w", err)
	}
	ownerID, err := uuid.Parse(m.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner id: %w", err)
	}
	price, err := decimal.NewFromString(m.CurrentPrice)
	if err != nil {
		return nil, fmt.Errorf("current price: %w", err)
	}

	return &domain.TrackedProduct{
		ID:            id,
		OwnerID:       ownerID,
		URL:           m.URL,
		Title:         m.Title,
		CurrentPrice:  price,
		Currency:      m.Currency,
		ImageURL:      m.ImageURL,
		IsActive:      m.IsActive,
		LastCheckedAt: m.LastCheckedAt,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func (cacheConverter) HistoryToRedisModel(productID uuid.UUID, history []domain.PriceObservation) *HistoryRedisModel {
	m := &HistoryRedisModel{
		ProductID:    productID.String(),
		Observations: make([]ObservationRedisModel, 0, len(history)),
	}
	for _, o := range history {
		m.Observations = append(m.Observations, ObservationRedisModel{
			ID:        o.ID.String(),
			Price:     o.Price.String(),
			CheckedAt: o.CheckedAt,
		})
	}

	return m
}

func (cacheConverter) HistoryToEntity(m *HistoryRedisModel) ([]domain.PriceObservation, error) {
	productID, err := uuid.Parse(m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product id: %w", err)
	}

	history := make([]domain.PriceObservation, 0, len(m.Observations))
	for _, o := range m.Observations {
		id, err := uuid.Parse(o.ID)
		if err != nil {
			return nil, fmt.Errorf("observation id: %w", err)
		}
		price, err := decimal.NewFromString(o.Price)
		if err != nil {
			return nil, fmt.Errorf("observation price: %w", err)
		}
		history = append(history, domain.PriceObservation{
			ID:        id,
			ProductID: productID,
			Price:     price,
			CheckedAt: o.CheckedAt,
		})
	}

	return history, nil
}
