package pgdb

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const scrapeLogColumns = `id, product_id, success, title, price, currency, image_url, error_message, raw_response, raw_object_key, attempted_at`

// ScrapeLogRepo хранит журнал запусков оркестратора.
type ScrapeLogRepo struct {
	pool *pgxpool.Pool
	conv converter.ScrapeLogConverter
}

func NewScrapeLogRepo(pool *pgxpool.Pool, conv converter.ScrapeLogConverter) *ScrapeLogRepo {
	return &ScrapeLogRepo{
		pool: pool,
		conv: conv,
	}
}

func (s *ScrapeLogRepo) Create(ctx context.Context, entry *domain.ScrapeLogEntry) error {
	m := s.conv.ToModel(entry)
	query := `
		INSERT INTO scrape_logs (` + scrapeLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	// raw_response имеет тип JSONB, поэтому пустой ответ пишется как NULL
	var raw any
	if len(m.RawResponse) > 0 {
		raw = string(m.RawResponse)
	}

	_, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx, query,
		m.ID, m.ProductID, m.Success, m.Title, m.Price, m.Currency,
		m.ImageURL, m.ErrorMessage, raw, m.RawObjectKey, m.AttemptedAt,
	)
	if err != nil {
		if postgresForeignKey(err) {
			return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return dbError(whereami.WhereAmI(), err, nil)
	}

	return nil
}

// ListByProduct возвращает журнал от новых записей к старым.
func (s *ScrapeLogRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ScrapeLogEntry, error) {
	query := `SELECT ` + scrapeLogColumns + ` FROM scrape_logs WHERE product_id = $1 ORDER BY attempted_at DESC`

	rows, err := tr.QuerierFromCtx(ctx, s.pool).Query(ctx, query, productID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.ScrapeLogModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return s.conv.ToArrEntity(models), nil
}

func (s *ScrapeLogRepo) Get(ctx context.Context, productID, id uuid.UUID) (*domain.ScrapeLogEntry, error) {
	query := `SELECT ` + scrapeLogColumns + ` FROM scrape_logs WHERE id = $1 AND product_id = $2`

	rows, err := tr.QuerierFromCtx(ctx, s.pool).Query(ctx, query, id, productID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ScrapeLogModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, e.ErrScrapeLogNotFound)
	}

	return s.conv.ToEntity(model), nil
}

func (s *ScrapeLogRepo) SetRawObjectKey(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx,
		`UPDATE scrape_logs SET raw_object_key = $2 WHERE id = $1`, id, key)
	if err != nil {
		return dbError(whereami.WhereAmI(), err, nil)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrScrapeLogNotFound)
	}

	return nil
}
