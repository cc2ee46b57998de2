package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// placeholderTitles — заголовки, которые магазины отдают вместо названия товара (в нижнем регистре).
var placeholderTitles = []string{"continue shopping"}

// AlertEvaluator сравнивает наблюдённую цену с порогами товара.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, ownerID, productID uuid.UUID, observed decimal.Decimal) ([]domain.TriggeredAlert, error)
}

// ScrapeUseCase — оркестратор обновления цены одного товара.
type ScrapeUseCase struct {
	extractor   ExtractionClient
	productRepo ProductRepository
	historyRepo PriceHistoryRepository
	logRepo     ScrapeLogRepository
	evaluator   AlertEvaluator
	txManager   TxManager
	bus         ChangeBus
	cacheRepo   CacheRepository
	archive     RawArchiveInfra
	logger      logger.Logger

	group singleflight.Group
	now   func() time.Time
}

func NewScrapeUC(
	extractor ExtractionClient,
	productRepo ProductRepository,
	historyRepo PriceHistoryRepository,
	logRepo ScrapeLogRepository,
	evaluator AlertEvaluator,
	txManager TxManager,
	bus ChangeBus,
	cacheRepo CacheRepository,
	archive RawArchiveInfra,
	logger logger.Logger,
) *ScrapeUseCase {
	return &ScrapeUseCase{
		extractor:   extractor,
		productRepo: productRepo,
		historyRepo: historyRepo,
		logRepo:     logRepo,
		evaluator:   evaluator,
		txManager:   txManager,
		bus:         bus,
		cacheRepo:   cacheRepo,
		archive:     archive,
		logger:      logger,
		now:         time.Now,
	}
}

// Run выполняет один запуск оркестратора для товара.
// Параллельный запрос того же товара присоединяется к идущему запуску и получает его результат.
func (s *ScrapeUseCase) Run(ctx context.Context, req *RunScrapeReq) (*OrchestratorResult, error) {
	const op = "ScrapeUseCase.Run"

	if req.OwnerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	// запуск не прерывается отменой вызывающего: к нему могут быть присоединены другие запросы
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(req.ProductID.String(), func() (any, error) {
		return s.run(runCtx, req)
	})
	if shared {
		s.logger.Debugf("joined in-flight scrape run, product_id: %s", req.ProductID)
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return v.(*OrchestratorResult), nil
}

func (s *ScrapeUseCase) run(ctx context.Context, req *RunScrapeReq) (*OrchestratorResult, error) {
	started := s.now()
	region := domain.RegionFromURL(req.URL)
	log := s.logger.With("product_id", req.ProductID.String(), "region", string(region))
	log.Infof("scrape run started, url: %s", req.URL)

	// Вызов сервиса извлечения
	extracted, err := s.extractor.Extract(ctx, NewExtractReq(req.URL, region))
	if err != nil {
		message, raw := describeExtractionFailure(err)
		s.recordFailure(ctx, log, req, message, raw)
		log.Warnf("scrape run failed after %s: %v", s.now().Sub(started), err)
		return nil, err
	}

	// Нормализация ответа
	result := s.normalize(req, region, extracted)
	if result.PriceCoerced {
		log.Warnf("extraction service returned malformed price, coerced to 0")
	}

	checkedAt := s.now().UTC()
	result.CheckedAt = checkedAt

	entry := domain.NewSuccessScrapeLog(req.ProductID, domain.ScrapedFields{
		Title:    extracted.Title,
		Price:    extracted.Price,
		Currency: extracted.Currency,
		ImageURL: extracted.ImageURL,
	}, extracted.Raw, checkedAt)
	result.LogID = entry.ID

	update := domain.ProductUpdate{
		Title:         result.Title,
		CurrentPrice:  result.Price,
		Currency:      result.Currency,
		ImageURL:      result.ImageURL,
		LastCheckedAt: checkedAt,
		IsActive:      true,
	}
	observation := domain.NewPriceObservation(req.ProductID, result.Price, checkedAt)

	// Журнал, товар, история, алерты и outbox записываются одной транзакцией
	var product *domain.TrackedProduct
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.logRepo.Create(ctx, entry); err != nil {
			return err
		}

		var err error
		product, err = s.productRepo.ApplyScrape(ctx, req.OwnerID, req.ProductID, update)
		if err != nil {
			return err
		}

		if err := s.historyRepo.Append(ctx, observation); err != nil {
			return err
		}

		result.Triggered, err = s.evaluator.Evaluate(ctx, req.OwnerID, req.ProductID, result.Price)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			return nil, err
		}

		s.recordFailure(ctx, log, req, fmt.Sprintf("persistence failure: %v", err), extracted.Raw)
		log.Errorf(err, "scrape run persistence failed")
		return nil, fmt.Errorf("%w: %w", e.ErrPersistence, err)
	}

	s.afterCommit(ctx, log, req, product, entry, observation, result.Triggered)

	log.Infof("scrape run finished in %s, price: %s %s, triggered alerts: %d",
		s.now().Sub(started), result.Price.StringFixed(2), result.Currency, len(result.Triggered))
	return result, nil
}

// normalize применяет восстановление заголовка и значения по умолчанию.
func (s *ScrapeUseCase) normalize(req *RunScrapeReq, region domain.Region, extracted *ExtractRes) *OrchestratorResult {
	title, recovered := resolveTitle(extracted)
	if title == "" {
		title = domain.UnknownTitle
	}

	price := extracted.Price
	coerced := extracted.PriceCoerced
	if !domain.PriceInRange(price) {
		price = decimal.Zero
		coerced = true
	}

	var image *string
	if img := strings.TrimSpace(extracted.ImageURL); img != "" {
		image = &img
	}

	return &OrchestratorResult{
		ProductID:      req.ProductID,
		Region:         region,
		Title:          title,
		Price:          price,
		Currency:       domain.NormalizeCurrency(extracted.Currency),
		ImageURL:       image,
		TitleRecovered: recovered,
		PriceCoerced:   coerced,
	}
}

// resolveTitle возвращает заголовок товара. Если заголовок пустой, является заглушкой
// или цена равна 0, берётся первая часть metadata.title до двоеточия.
// Заглушка никогда не возвращается.
func resolveTitle(extracted *ExtractRes) (string, bool) {
	title := strings.TrimSpace(extracted.Title)
	if title != "" && !isPlaceholderTitle(title) && !extracted.Price.IsZero() {
		return title, false
	}

	if meta := strings.TrimSpace(extracted.MetadataTitle); meta != "" {
		recovered := strings.TrimSpace(strings.SplitN(meta, ":", 2)[0])
		if recovered != "" && !isPlaceholderTitle(recovered) {
			return recovered, true
		}
	}

	if isPlaceholderTitle(title) {
		return "", false
	}

	return title, false
}

func isPlaceholderTitle(title string) bool {
	lower := strings.ToLower(title)
	for _, p := range placeholderTitles {
		if strings.Contains(lower, p) {
			return true
		}
	}

	return false
}

// describeExtractionFailure возвращает текст для журнала и сырой ответ сервиса.
func describeExtractionFailure(err error) (string, []byte) {
	var xerr *e.ExtractionError
	if errors.As(err, &xerr) {
		return xerr.Error(), xerr.Raw
	}

	return err.Error(), nil
}

// recordFailure пишет неуспешную запись журнала вне транзакции.
func (s *ScrapeUseCase) recordFailure(ctx context.Context, log logger.Logger, req *RunScrapeReq, message string, raw []byte) {
	entry := domain.NewFailedScrapeLog(req.ProductID, message, raw, s.now().UTC())
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Errorf(err, "failed to write failed scrape log")
		return
	}

	publishChanges(ctx, s.bus, log,
		domain.NewChangeEvent(domain.TableScrapeLogs, domain.ChangeInsert, req.OwnerID, entry.ID, entry))
	s.archiveRaw(entry)
}

// afterCommit публикует изменения, сбрасывает кэш и отправляет сырой ответ в архив.
func (s *ScrapeUseCase) afterCommit(
	ctx context.Context,
	log logger.Logger,
	req *RunScrapeReq,
	product *domain.TrackedProduct,
	entry *domain.ScrapeLogEntry,
	observation *domain.PriceObservation,
	triggered []domain.TriggeredAlert,
) {
	events := []domain.ChangeEvent{
		domain.NewChangeEvent(domain.TableScrapeLogs, domain.ChangeInsert, req.OwnerID, entry.ID, entry),
		domain.NewChangeEvent(domain.TableProducts, domain.ChangeUpdate, req.OwnerID, product.ID, product),
		domain.NewChangeEvent(domain.TablePriceHistory, domain.ChangeInsert, req.OwnerID, observation.ID, observation),
	}
	for i := range triggered {
		alert := triggered[i].Alert
		events = append(events, domain.NewChangeEvent(domain.TableAlerts, domain.ChangeUpdate, req.OwnerID, alert.ID, alert))
	}
	publishChanges(ctx, s.bus, log, events...)

	if err := s.cacheRepo.DeleteProduct(ctx, req.ProductID); err != nil {
		log.Warnf("failed to invalidate product cache: %v", err)
	}
	if err := s.cacheRepo.DeleteHistory(ctx, req.ProductID); err != nil {
		log.Warnf("failed to invalidate history cache: %v", err)
	}

	s.archiveRaw(entry)
}

func (s *ScrapeUseCase) archiveRaw(entry *domain.ScrapeLogEntry) {
	if len(entry.RawResponse) == 0 {
		return
	}

	logID := entry.ID
	s.archive.ArchiveRaw(&ArchiveRawReq{
		ProductID: entry.ProductID,
		LogID:     logID,
		Raw:       entry.RawResponse,
		OnStored: func(ctx context.Context, key string) error {
			return s.logRepo.SetRawObjectKey(ctx, logID, key)
		},
	})
}
