package usecase

import (
	"context"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertUseCase реализует проверку порогов цены и управление ими.
type AlertUseCase struct {
	alertRepo   AlertRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	encoder     EventEncoder
	txManager   TxManager
	bus         ChangeBus
	logger      logger.Logger
	now         func() time.Time
}

func NewAlertUC(
	alertRepo AlertRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	encoder EventEncoder,
	txManager TxManager,
	bus ChangeBus,
	logger logger.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		alertRepo:   alertRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		encoder:     encoder,
		txManager:   txManager,
		bus:         bus,
		logger:      logger,
		now:         time.Now,
	}
}

// Evaluate переводит в triggered все включённые несработавшие алерты товара,
// порог которых не ниже наблюдённой цены, и пишет для каждого событие в outbox.
// При цене <= 0 алерты не проверяются. Уведомления об изменениях публикует вызывающий после коммита.
func (a *AlertUseCase) Evaluate(ctx context.Context, ownerID, productID uuid.UUID, observed decimal.Decimal) ([]domain.TriggeredAlert, error) {
	const op = "AlertUseCase.Evaluate"

	if !observed.IsPositive() {
		return nil, nil
	}

	var triggered []domain.TriggeredAlert
	err := a.txManager.Do(ctx, func(ctx context.Context) error {
		alerts, err := a.alertRepo.ListArmedByProduct(ctx, ownerID, productID)
		if err != nil {
			return err
		}

		var product *domain.TrackedProduct
		now := a.now().UTC()
		for i := range alerts {
			alert := alerts[i]
			if !alert.ShouldTrigger(observed) {
				continue
			}

			ok, err := a.alertRepo.MarkTriggered(ctx, alert.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			alert.Triggered = true
			alert.TriggeredAt = &now

			if product == nil {
				if product, err = a.productRepo.GetOwned(ctx, ownerID, productID); err != nil {
					return err
				}
			}

			if err := a.writeOutbox(ctx, &alert, product, observed); err != nil {
				return err
			}

			triggered = append(triggered, domain.TriggeredAlert{Alert: alert, ObservedPrice: observed})
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for _, t := range triggered {
		a.logger.Infof("price alert %s triggered, product_id: %s, price: %s, target: %s",
			t.Alert.ID, productID, observed.StringFixed(2), t.Alert.TargetPrice.StringFixed(2))
	}

	return triggered, nil
}

func (a *AlertUseCase) writeOutbox(ctx context.Context, alert *domain.PriceAlert, product *domain.TrackedProduct, observed decimal.Decimal) error {
	event := NewAlertTriggeredEvent(alert, product, observed)
	payload, err := a.encoder.EncodeAlertTriggered(event)
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(event.EventID, EventAlertTriggered, alert.ProductID, payload, event.TriggeredAt))
	return err
}

// SetTargetPrice создаёт или заменяет порог цены владельца для товара.
// Состояние triggered не меняется.
func (a *AlertUseCase) SetTargetPrice(ctx context.Context, ownerID uuid.UUID, req *SetTargetPriceReq) (*domain.PriceAlert, error) {
	const op = "AlertUseCase.SetTargetPrice"

	if !req.TargetPrice.IsPositive() {
		return nil, e.Wrap(op, e.ErrTargetPriceMustBePositive)
	}
	if !domain.PriceInRange(req.TargetPrice) {
		return nil, e.Wrap(op, e.ErrInvalidPrice)
	}

	if _, err := a.productRepo.GetOwned(ctx, ownerID, req.ProductID); err != nil {
		return nil, e.Wrap(op, err)
	}

	alert, err := a.alertRepo.Upsert(ctx, ownerID, req.ProductID, req.TargetPrice, req.Enabled)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.publish(ctx, alert)
	return alert, nil
}

// GetAlert возвращает алерт владельца для товара.
func (a *AlertUseCase) GetAlert(ctx context.Context, ownerID, productID uuid.UUID) (*domain.PriceAlert, error) {
	const op = "AlertUseCase.GetAlert"

	alert, err := a.alertRepo.GetByProduct(ctx, ownerID, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return alert, nil
}

// Toggle меняет только флаг enabled.
func (a *AlertUseCase) Toggle(ctx context.Context, ownerID, alertID uuid.UUID, enabled bool) (*domain.PriceAlert, error) {
	const op = "AlertUseCase.Toggle"

	alert, err := a.alertRepo.SetEnabled(ctx, ownerID, alertID, enabled)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.publish(ctx, alert)
	return alert, nil
}

// Dismiss сбрасывает triggered и enabled. Снова включить алерт можно только новым порогом.
func (a *AlertUseCase) Dismiss(ctx context.Context, ownerID, alertID uuid.UUID) (*domain.PriceAlert, error) {
	const op = "AlertUseCase.Dismiss"

	alert, err := a.alertRepo.Dismiss(ctx, ownerID, alertID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	a.publish(ctx, alert)
	return alert, nil
}

// ListNotifications возвращает сработавшие алерты владельца, новые первыми.
func (a *AlertUseCase) ListNotifications(ctx context.Context, ownerID uuid.UUID) ([]Notification, error) {
	const op = "AlertUseCase.ListNotifications"

	notifications, err := a.alertRepo.ListTriggered(ctx, ownerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return notifications, nil
}

// UnreadCount возвращает число сработавших алертов владельца.
func (a *AlertUseCase) UnreadCount(ctx context.Context, ownerID uuid.UUID) (int, error) {
	const op = "AlertUseCase.UnreadCount"

	count, err := a.alertRepo.CountTriggered(ctx, ownerID)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	return count, nil
}

func (a *AlertUseCase) publish(ctx context.Context, alert *domain.PriceAlert) {
	publishChanges(ctx, a.bus, a.logger,
		domain.NewChangeEvent(domain.TableAlerts, domain.ChangeUpdate, alert.OwnerID, alert.ID, alert))
}
