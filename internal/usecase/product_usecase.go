package usecase

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
)

const historyCacheTimeout = 500 * time.Millisecond

// Scraper запускает оркестратор для товара.
type Scraper interface {
	Run(ctx context.Context, req *RunScrapeReq) (*OrchestratorResult, error)
}

// ProductUseCase реализует реестр товаров, историю цен и журнал запусков.
type ProductUseCase struct {
	productRepo ProductRepository
	historyRepo PriceHistoryRepository
	logRepo     ScrapeLogRepository
	cacheRepo   CacheRepository
	scraper     Scraper
	bus         ChangeBus
	logger      logger.Logger

	runs sync.WaitGroup
}

func NewProductUC(
	productRepo ProductRepository,
	historyRepo PriceHistoryRepository,
	logRepo ScrapeLogRepository,
	cacheRepo CacheRepository,
	scraper Scraper,
	bus ChangeBus,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		historyRepo: historyRepo,
		logRepo:     logRepo,
		cacheRepo:   cacheRepo,
		scraper:     scraper,
		bus:         bus,
		logger:      logger,
	}
}

// AddProduct сохраняет заглушку товара и запускает первый запуск оркестратора в фоне.
func (p *ProductUseCase) AddProduct(ctx context.Context, ownerID uuid.UUID, rawURL string) (*domain.TrackedProduct, error) {
	const op = "ProductUseCase.AddProduct"

	if ownerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	productURL, err := validateProductURL(rawURL)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.Create(ctx, domain.NewTrackedProduct(ownerID, productURL))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	publishChanges(ctx, p.bus, p.logger,
		domain.NewChangeEvent(domain.TableProducts, domain.ChangeInsert, ownerID, product.ID, product))

	// Фоновый первый запуск
	p.runs.Add(1)
	go func() {
		defer p.runs.Done()

		bgCtx := context.WithoutCancel(ctx)
		if _, err := p.scraper.Run(bgCtx, NewRunScrapeReq(ownerID, product.ID, product.URL)); err != nil {
			p.logger.Warnf("initial scrape of product %s failed: %v", product.ID, err)
		}
	}()

	return product, nil
}

// WaitForRuns ждёт завершения фоновых запусков или отмены ctx.
func (p *ProductUseCase) WaitForRuns(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.runs.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListProducts возвращает товары владельца, новые первыми.
func (p *ProductUseCase) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]domain.TrackedProduct, error) {
	const op = "ProductUseCase.ListProducts"

	products, err := p.productRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар владельца, по возможности из кэша.
func (p *ProductUseCase) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error) {
	const op = "ProductUseCase.GetProduct"

	product, err := p.ownedProduct(ctx, ownerID, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return product, nil
}

// DeleteProduct удаляет товар владельца вместе с историей, алертами и журналом.
func (p *ProductUseCase) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	const op = "ProductUseCase.DeleteProduct"

	if err := p.productRepo.Delete(ctx, ownerID, id); err != nil {
		return e.Wrap(op, err)
	}

	p.invalidate(ctx, id)
	publishChanges(ctx, p.bus, p.logger,
		domain.NewChangeEvent(domain.TableProducts, domain.ChangeDelete, ownerID, id, nil))

	return nil
}

// RefreshProduct синхронно запускает оркестратор для товара владельца.
func (p *ProductUseCase) RefreshProduct(ctx context.Context, ownerID, id uuid.UUID) (*OrchestratorResult, error) {
	const op = "ProductUseCase.RefreshProduct"

	product, err := p.productRepo.GetOwned(ctx, ownerID, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result, err := p.scraper.Run(ctx, NewRunScrapeReq(ownerID, product.ID, product.URL))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return result, nil
}

// GetHistory возвращает историю цен товара по возрастанию времени.
func (p *ProductUseCase) GetHistory(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.PriceObservation, error) {
	const op = "ProductUseCase.GetHistory"

	if _, err := p.ownedProduct(ctx, ownerID, productID); err != nil {
		return nil, e.Wrap(op, err)
	}

	history, found, err := p.cacheRepo.GetHistory(ctx, productID)
	if err != nil {
		p.logger.Warnf("failed to read history cache: %v", e.Wrap(op, err))
	}
	if found {
		return history, nil
	}

	// Поколение читается до БД: если запуск сбросит кэш во время чтения, запись ниже не пройдёт
	generation, genErr := p.cacheRepo.HistoryGeneration(ctx, productID)
	if genErr != nil {
		p.logger.Warnf("failed to read history generation: %v", e.Wrap(op, genErr))
	}

	history, err = p.historyRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if genErr == nil {
		cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyCacheTimeout)
		defer cancel()

		stored, err := p.cacheRepo.SetHistory(cacheCtx, productID, generation, history)
		if err != nil {
			p.logger.Warnf("failed to cache history: %v", e.Wrap(op, err))
		} else if !stored {
			p.logger.Debugf("history of %s changed while reading, cache not updated", productID)
		}
	}

	return history, nil
}

// ListScrapeLogs возвращает журнал запусков товара, новые первыми.
func (p *ProductUseCase) ListScrapeLogs(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.ScrapeLogEntry, error) {
	const op = "ProductUseCase.ListScrapeLogs"

	if _, err := p.ownedProduct(ctx, ownerID, productID); err != nil {
		return nil, e.Wrap(op, err)
	}

	logs, err := p.logRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return logs, nil
}

// GetScrapeLog возвращает одну запись журнала с сырым ответом.
func (p *ProductUseCase) GetScrapeLog(ctx context.Context, ownerID, productID, logID uuid.UUID) (*domain.ScrapeLogEntry, error) {
	const op = "ProductUseCase.GetScrapeLog"

	if _, err := p.ownedProduct(ctx, ownerID, productID); err != nil {
		return nil, e.Wrap(op, err)
	}

	entry, err := p.logRepo.Get(ctx, productID, logID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return entry, nil
}

// ownedProduct проверяет владельца; кэш используется только при совпадении owner_id.
func (p *ProductUseCase) ownedProduct(ctx context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error) {
	cached, found, err := p.cacheRepo.GetProduct(ctx, id)
	if err != nil {
		p.logger.Warnf("failed to read product cache: %v", err)
	}
	if found && cached.OwnerID == ownerID {
		return cached, nil
	}

	product, err := p.productRepo.GetOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := p.cacheRepo.SetProduct(ctx, product); err != nil {
		p.logger.Warnf("failed to cache product: %v", err)
	}

	return product, nil
}

func (p *ProductUseCase) invalidate(ctx context.Context, id uuid.UUID) {
	if err := p.cacheRepo.DeleteProduct(ctx, id); err != nil {
		p.logger.Warnf("failed to invalidate product cache: %v", err)
	}
	if err := p.cacheRepo.DeleteHistory(ctx, id); err != nil {
		p.logger.Warnf("failed to invalidate history cache: %v", err)
	}
}

// validateProductURL проверяет, что ссылка абсолютная http(s) с хостом.
func validateProductURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", e.ErrMissingFields
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", e.ErrInvalidURL
	}

	return u.String(), nil
}
