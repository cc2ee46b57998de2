package pgdb

import (
	"errors"
	"fmt"

	"github.com/Eswarchinthakayala-webdesign/Monvix/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

func postgresForeignKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}

// dbError превращает pgx.ErrNoRows в notFound, остальные ошибки помечает как ErrPersistence.
func dbError(where string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return e.Wrap(where, notFound)
	}

	return fmt.Errorf("%s: %w: %w", where, e.ErrPersistence, err)
}
