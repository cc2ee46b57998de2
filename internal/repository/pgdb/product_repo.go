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

const productColumns = `id, owner_id, url, title, current_price, currency, image_url, is_active, last_checked_at, created_at`

// ProductRepo реализует репозиторий отслеживаемых товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.TrackedProduct) (*domain.TrackedProduct, error) {
	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (id, owner_id, url, title, current_price, currency, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query,
		model.ID, model.OwnerID, model.URL, model.Title,
		model.CurrentPrice, model.Currency, model.ImageURL, model.IsActive,
	)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ProductModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return p.conv.ToEntity(created), nil
}

// GetOwned возвращает товар, только если он принадлежит ownerID.
func (p *ProductRepo) GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.TrackedProduct, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query, id, ownerID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ProductModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, e.ErrProductNotFound)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.TrackedProduct, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[converter.ProductModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return p.conv.ToArrEntity(models), nil
}

// ApplyScrape записывает результат запуска оркестратора; image_url меняется только если передан.
func (p *ProductRepo) ApplyScrape(ctx context.Context, ownerID, id uuid.UUID, u domain.ProductUpdate) (*domain.TrackedProduct, error) {
	query := `
		UPDATE products
		SET title = $3,
			current_price = $4,
			currency = $5,
			image_url = COALESCE($6, image_url),
			last_checked_at = $7,
			is_active = $8
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + productColumns

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query,
		id, ownerID, u.Title, u.CurrentPrice, u.Currency, u.ImageURL, u.LastCheckedAt, u.IsActive,
	)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ProductModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, e.ErrProductNotFound)
	}

	return p.conv.ToEntity(model), nil
}

// Delete удаляет товар владельца; история, алерты и журнал удаляются каскадно.
func (p *ProductRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := tr.QuerierFromCtx(ctx, p.pool).Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return dbError(whereami.WhereAmI(), err, nil)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}
