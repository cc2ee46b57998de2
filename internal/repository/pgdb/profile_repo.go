package pgdb

import (
	"context"

	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/domain"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/repository/pgdb/converter"
	"github.com/Eswarchinthakayala-webdesign/Monvix/internal/usecase"
	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const profileColumns = `id, full_name, telegram_chat_id, created_at, updated_at`

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// GetOrCreate возвращает профиль, создавая пустой при первом обращении.
func (p *ProfileRepo) GetOrCreate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	q := tr.QuerierFromCtx(ctx, p.pool)

	if _, err := q.Exec(ctx, `INSERT INTO profiles (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	rows, err := q.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ProfileModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return converter.ProfileToEntity(model), nil
}

func (p *ProfileRepo) Update(ctx context.Context, id uuid.UUID, req *usecase.UpdateProfileReq) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET full_name = $2, telegram_chat_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query, id, req.FullName, req.TelegramChatID)
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	model, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[converter.ProfileModel])
	if err != nil {
		return nil, dbError(whereami.WhereAmI(), err, nil)
	}

	return converter.ProfileToEntity(model), nil
}
