package converter

import (
	"testing"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestProductRoundTripKeepsPricePrecision(t *testing.T) {
	conv := NewCacheConverter()
	image := "https://img.example/p.png"
	p := &domain.TrackedProduct{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		URL:          "https://shop.example/p",
		Title:        "Kettle",
		CurrentPrice: decimal.RequireFromString("1299.90"),
		Currency:     "INR",
		ImageURL:     &image,
		IsActive:     true,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	got, err := conv.ProductToEntity(conv.ProductToRedisModel(p))
	if err != nil {
		t.Fatalf("ProductToEntity: %v", err)
	}
	if !got.CurrentPrice.Equal(p.CurrentPrice) {
		t.Fatalf("want price %s, got %s", p.CurrentPrice, got.CurrentPrice)
	}
	if got.ID != p.ID || got.OwnerID != p.OwnerID || *got.ImageURL != image {
		t.Fatalf("identity fields lost: %+v", got)
	}
}

func TestProductToEntityRejectsBadPrice(t *testing.T) {
	conv := NewCacheConverter()
	m := &ProductRedisModel{ID: uuid.NewString(), OwnerID: uuid.NewString(), CurrentPrice: "abc"}

	if _, err := conv.ProductToEntity(m); err == nil {
		t.Fatal("want error for malformed price")
	}
}

func TestHistoryToEntityKeepsOrder(t *testing.T) {
	conv := NewCacheConverter()
	productID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	history := []domain.PriceObservation{
		{ID: uuid.New(), ProductID: productID, Price: decimal.RequireFromString("10.00"), CheckedAt: base},
		{ID: uuid.New(), ProductID: productID, Price: decimal.RequireFromString("9.50"), CheckedAt: base.Add(time.Hour)},
	}

	got, err := conv.HistoryToEntity(conv.HistoryToRedisModel(productID, history))
	if err != nil {
		t.Fatalf("HistoryToEntity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 observations, got %d", len(got))
	}
	for i := range history {
		if got[i].ID != history[i].ID || !got[i].Price.Equal(history[i].Price) || got[i].ProductID != productID {
			t.Fatalf("observation %d: want %+v, got %+v", i, history[i], got[i])
		}
	}
}
