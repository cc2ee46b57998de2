package pgdb

import (
	"context"
	"time"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const alertColumns = `id, owner_id, product_id, target_price, enabled, triggered, triggered_at, created_at`

type AlertRepo struct {
	pool *pgxpool.Pool
}

func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// ListArmedByProduct блокирует строки алертов до конца транзакции.
func (a *AlertRepo) ListArmedByProduct(ctx context.Context, ownerID, productID uuid.UUID) ([]domain.PriceAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE owner_id = $1 AND product_id = $2 AND enabled AND NOT triggered
		ORDER BY created_at
		FOR UPDATE`

	rows, err := tr.QuerierFromCtx(ctx, a.pool).Query(ctx, query, ownerID, productID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.AlertModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	alerts := make([]domain.PriceAlert, 0, len(models))
	for _, m := range models {
		alerts = append(alerts, *converter.AlertToEntity(m))
	}

	return alerts, nil
}

// MarkTriggered срабатывает не более одного раза: повторный вызов ничего не меняет и возвращает false.
func (a *AlertRepo) MarkTriggered(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := tr.QuerierFromCtx(ctx, a.pool).Exec(ctx, `
		UPDATE alerts
		SET triggered = TRUE, triggered_at = $2
		WHERE id = $1 AND enabled AND NOT triggered`, id, at)
	if err != nil {
		return false, dbError(whereami.WhereAmI(), err, nil)
	}

	return tag.RowsAffected() == 1, nil
}

// Upsert не трогает triggered и triggered_at существующего алерта.
func (a *AlertRepo) Upsert(ctx context.Context, ownerID, productID uuid.UUID, target decimal.Decimal, enabled bool) (*domain.PriceAlert, error) {
	query := `
		INSERT INTO alerts (id, owner_id, product_id, target_price, enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT alerts_owner_product_key
		DO UPDATE SET target_price = EXCLUDED.target_price, enabled = EXCLUDED.enabled
		RETURNING ` + alertColumns

	rows, err := tr.QuerierFromCtx(ctx, a.pool).Query(ctx, query, uuid.New(), ownerID, productID, target, enabled)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.AlertModel])
	if err != nil {
		if postgresForeignKey(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return converter.AlertToEntity(model), nil
}

func (a *AlertRepo) GetByProduct(ctx context.Context, ownerID, productID uuid.UUID) (*domain.PriceAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE owner_id = $1 AND product_id = $2`

	return a.one(ctx, query, ownerID, productID)
}

func (a *AlertRepo) SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) (*domain.PriceAlert, error) {
	query := `
		UPDATE alerts SET enabled = $3
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + alertColumns

	return a.one(ctx, query, id, ownerID, enabled)
}

// Dismiss снимает флаг срабатывания и выключает алерт; triggered_at остаётся для истории.
func (a *AlertRepo) Dismiss(ctx context.Context, ownerID, id uuid.UUID) (*domain.PriceAlert, error) {
	query := `
		UPDATE alerts SET triggered = FALSE, enabled = FALSE
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + alertColumns

	return a.one(ctx, query, id, ownerID)
}

func (a *AlertRepo) ListTriggered(ctx context.Context, ownerID uuid.UUID) ([]usecase.Notification, error) {
	query := `
		SELECT a.id AS alert_id, a.target_price, a.triggered_at,
			p.id AS product_id, p.title, p.image_url, p.current_price, p.currency
		FROM alerts a
		JOIN products p ON p.id = a.product_id
		WHERE a.owner_id = $1 AND a.triggered
		ORDER BY a.triggered_at DESC NULLS LAST`

	rows, err := tr.QuerierFromCtx(ctx, a.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.NotificationModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	out := make([]usecase.Notification, 0, len(models))
	for _, m := range models {
		out = append(out, converter.NotificationToUsecase(m))
	}

	return out, nil
}

func (a *AlertRepo) CountTriggered(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	err := tr.QuerierFromCtx(ctx, a.pool).QueryRow(ctx,
		`SELECT count(*) FROM alerts WHERE owner_id = $1 AND triggered`, ownerID).Scan(&count)
	if err != nil {
		return 0, dbError(whereami.WhereAmI(), err, nil)
	}

	return count, nil
}

func (a *AlertRepo) one(ctx context.Context, query string, args ...any) (*domain.PriceAlert, error) {
	rows, err := tr.QuerierFromCtx(ctx, a.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.AlertModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, e.ErrAlertNotFound)
	}

	return converter.AlertToEntity(model), nil
}
