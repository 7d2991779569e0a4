package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier es lo que ambas fuentes de ejecución (pool y tx) ofrecen; los
// repositorios lo usan para poder correr igual dentro o fuera de una
// transacción.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// orderBy traduce "campo:dir" a una cláusula ORDER BY segura. Solo acepta
// campos de la whitelist; cualquier otra cosa cae al default.
func orderBy(sort string, permitidos map[string]string, def string) string {
	campo, dir, _ := strings.Cut(sort, ":")
	col, ok := permitidos[campo]
	if !ok {
		return def
	}
	if strings.EqualFold(dir, "desc") {
		return col + " DESC"
	}
	return col + " ASC"
}

// like envuelve un término ya plegado para usar con LIKE.
func like(q string) string {
	return "%" + q + "%"
}
