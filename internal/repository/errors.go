package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isDuplicateKey は一意制約違反かどうか (PostgreSQL: 23505)
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// TranslateError 有効時 (SQLite 含む)
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
