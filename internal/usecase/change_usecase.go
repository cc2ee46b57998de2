package usecase

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/logger"
	"github.com/google/uuid"
)

// ChangeUseCase выдаёт подписки на изменения строк владельца.
type ChangeUseCase struct {
	bus ChangeBus
}

func NewChangeUC(bus ChangeBus) *ChangeUseCase {
	return &ChangeUseCase{bus: bus}
}

// Subscribe подписывает владельца на изменения таблицы; пустая таблица означает все.
// Вызывающий обязан закрыть подписку.
func (c *ChangeUseCase) Subscribe(ctx context.Context, ownerID uuid.UUID, table string) (Subscription, error) {
	const op = "ChangeUseCase.Subscribe"

	if ownerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	filter := domain.ChangeFilter{OwnerID: ownerID, Table: domain.Table(table)}
	if table != "" && !knownTable(filter.Table) {
		return nil, e.Wrap(op, e.ErrUnknownTable)
	}

	sub, err := c.bus.Subscribe(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sub, nil
}

func knownTable(t domain.Table) bool {
	switch t {
	case domain.TableProducts, domain.TablePriceHistory, domain.TableAlerts, domain.TableScrapeLogs, domain.TableProfiles:
		return true
	}

	return false
}

// publishChanges публикует события после коммита; ошибки только логируются.
func publishChanges(ctx context.Context, bus ChangeBus, log logger.Logger, events ...domain.ChangeEvent) {
	for _, ev := range events {
		if err := bus.Publish(ctx, ev); err != nil {
			log.Warnf("failed to publish %s change of %s %s: %v", ev.Type, ev.Table, ev.RecordID, err)
		}
	}
}
