package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/google/uuid"
)

func TestAddProductStartsBackgroundRun(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("9.50"), Currency: "CAD"}

	product, err := v.products.AddProduct(context.Background(), owner, " https://www.amazon.ca/dp/Z ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Title != domain.PlaceholderTitle || !product.CurrentPrice.IsZero() || product.Currency != domain.DefaultCurrency {
		t.Fatalf("want placeholder product, got %+v", product)
	}
	if product.URL != "https://www.amazon.ca/dp/Z" {
		t.Fatalf("want trimmed url, got %q", product.URL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := v.products.WaitForRuns(ctx); err != nil {
		t.Fatalf("background run did not finish: %v", err)
	}

	got := v.product(product.ID)
	if got.Title != "Widget" || !got.CurrentPrice.Equal(dec("9.50")) || got.Currency != "CAD" {
		t.Fatalf("want product updated by background run, got %+v", got)
	}
	if v.bus.count(domain.TableProducts) != 2 {
		t.Fatalf("want insert and update events, got %d", v.bus.count(domain.TableProducts))
	}
}

func TestAddProductValidatesURL(t *testing.T) {
	v := newEnv()

	for _, raw := range []string{"ftp://a.com/x", "not a url", "https://", "/relative/path"} {
		if _, err := v.products.AddProduct(context.Background(), uuid.New(), raw); !errors.Is(err, e.ErrInvalidURL) {
			t.Errorf("%q: want invalid url, got %v", raw, err)
		}
	}

	if _, err := v.products.AddProduct(context.Background(), uuid.New(), ""); !errors.Is(err, e.ErrMissingFields) {
		t.Errorf("empty url: want missing fields, got %v", err)
	}
	if _, err := v.products.AddProduct(context.Background(), uuid.Nil, "https://a.com"); !errors.Is(err, e.ErrUnauthorized) {
		t.Errorf("nil owner: want unauthorized, got %v", err)
	}
}

func TestGetProductIsOwnerScoped(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://a.com/p")

	if _, err := v.products.GetProduct(context.Background(), owner, product.ID); err != nil {
		t.Fatalf("owner must see product: %v", err)
	}

	// товар уже в кэше, но чужой владелец его не получает
	if _, err := v.products.GetProduct(context.Background(), uuid.New(), product.ID); !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("want not found for foreign owner, got %v", err)
	}
}

func TestDeleteProductInvalidatesCache(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://a.com/p")
	_, _ = v.products.GetProduct(context.Background(), owner, product.ID)

	if err := v.products.DeleteProduct(context.Background(), owner, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := v.products.GetProduct(context.Background(), owner, product.ID); !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("want not found after delete, got %v", err)
	}
	if v.bus.count(domain.TableProducts) != 1 {
		t.Fatalf("want delete event, got %d", v.bus.count(domain.TableProducts))
	}
}

func TestRefreshAndHistory(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://a.com/p")
	ctx := context.Background()

	for _, price := range []string{"10", "12.5"} {
		v.extractor.res = &ExtractRes{Title: "Widget", Price: dec(price)}
		if _, err := v.products.RefreshProduct(ctx, owner, product.ID); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}

	history, err := v.products.GetHistory(ctx, owner, product.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || !history[0].Price.Equal(dec("10")) || !history[1].Price.Equal(dec("12.5")) {
		t.Fatalf("want ascending history 10, 12.5, got %+v", history)
	}

	logs, err := v.products.ListScrapeLogs(ctx, owner, product.ID)
	if err != nil || len(logs) != 2 {
		t.Fatalf("want two logs, got %d, err %v", len(logs), err)
	}
	if !logs[0].Price.Equal(dec("12.5")) {
		t.Fatalf("want newest log first, got %s", logs[0].Price)
	}

	entry, err := v.products.GetScrapeLog(ctx, owner, product.ID, logs[1].ID)
	if err != nil || entry.ID != logs[1].ID {
		t.Fatalf("want log %s, got %+v, err %v", logs[1].ID, entry, err)
	}

	if _, err := v.products.GetScrapeLog(ctx, owner, product.ID, uuid.New()); !errors.Is(err, e.ErrScrapeLogNotFound) {
		t.Fatalf("want log not found, got %v", err)
	}
	if _, err := v.products.RefreshProduct(ctx, uuid.New(), product.ID); !errors.Is(err, e.ErrProductNotFound) {
		t.Fatalf("want refresh of foreign product to fail, got %v", err)
	}
}

// invalidatingHistory сбрасывает кэш посреди чтения из БД, как завершившийся в этот момент запуск.
type invalidatingHistory struct {
	PriceHistoryRepository
	cache *fakeCache
}

func (h invalidatingHistory) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.PriceObservation, error) {
	history, err := h.PriceHistoryRepository.ListByProduct(ctx, productID)
	_ = h.cache.DeleteHistory(ctx, productID)
	return history, err
}

func TestGetHistoryCachesResult(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://a.com/p")
	ctx := context.Background()

	v.extractor.res = &ExtractRes{Title: "Widget", Price: dec("10")}
	if _, err := v.products.RefreshProduct(ctx, owner, product.ID); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if _, err := v.products.GetHistory(ctx, owner, product.ID); err != nil {
		t.Fatalf("history: %v", err)
	}
	cached, ok := v.cache.cachedHistory(product.ID)
	if !ok || len(cached) != 1 {
		t.Fatalf("want history cached on return, got %v %+v", ok, cached)
	}
}

func TestGetHistoryDoesNotCacheAcrossRun(t *testing.T) {
	v := newEnv()
	owner := uuid.New()
	product := v.addProduct(owner, "https://a.com/p")
	ctx := context.Background()
	v.products.historyRepo = invalidatingHistory{PriceHistoryRepository: memHistory{v.store}, cache: v.cache}

	if _, err := v.products.GetHistory(ctx, owner, product.ID); err != nil {
		t.Fatalf("history: %v", err)
	}
	if cached, ok := v.cache.cachedHistory(product.ID); ok {
		t.Fatalf("want no cache entry after concurrent invalidation, got %+v", cached)
	}
}
