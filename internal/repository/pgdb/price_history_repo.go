package pgdb

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// PriceHistoryRepo хранит наблюдения цены (только добавление).
type PriceHistoryRepo struct {
	pool *pgxpool.Pool
}

func NewPriceHistoryRepo(pool *pgxpool.Pool) *PriceHistoryRepo {
	return &PriceHistoryRepo{pool: pool}
}

func (h *PriceHistoryRepo) Append(ctx context.Context, o *domain.PriceObservation) error {
	_, err := tr.QuerierFromCtx(ctx, h.pool).Exec(ctx,
		`INSERT INTO price_history (id, product_id, price, checked_at) VALUES ($1, $2, $3, $4)`,
		o.ID, o.ProductID, o.Price, o.CheckedAt,
	)
	if err != nil {
		return dbError(whereami.WhereAmI(), err, nil)
	}

	return nil
}

// ListByProduct возвращает историю по возрастанию checked_at.
func (h *PriceHistoryRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.PriceObservation, error) {
	rows, err := tr.QuerierFromCtx(ctx, h.pool).Query(ctx, `
		SELECT id, product_id, price, checked_at
		FROM price_history
		WHERE product_id = $1
		ORDER BY checked_at ASC, id ASC`, productID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[converter.PriceObservationModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	history := make([]domain.PriceObservation, 0, len(models))
	for _, m := range models {
		history = append(history, domain.PriceObservation{
			ID:        m.ID,
			ProductID: m.ProductID,
			Price:     m.Price,
			CheckedAt: m.CheckedAt,
		})
	}

	return history, nil
}
