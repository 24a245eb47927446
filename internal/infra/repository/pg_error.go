package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE 23505
const uniqueViolationCode = "23505"

// unique制約違反かどうか。事前チェックをすり抜けた同時実行の重複を
// ErrDuplicateへ変換するために使う（制約が真のソース・オブ・トゥルース）。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
