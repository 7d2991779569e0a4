package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

var _ repository.NotaRepository = (*NotaRepo)(nil)

const notaCols = `id, titulo, titulo_ci, contenido, contenido_ci, categoria, etiquetas,
	prioridad, autor, created_at, updated_at`

var notaSort = map[string]string{
	"titulo":     "titulo_ci",
	"prioridad":  "prioridad",
	"categoria":  "categoria",
	"created_at": "created_at",
}

// NotaRepo implementación del puerto NotaRepository sobre PostgreSQL.
// Las etiquetas se guardan como text[].
type NotaRepo struct {
	db querier
}

// NewNotaRepository construye el adaptador de persistencia para notas.
func NewNotaRepository(db querier) *NotaRepo {
	return &NotaRepo{db: db}
}

// Create persiste una nueva nota.
func (r *NotaRepo) Create(ctx context.Context, n *entity.Nota) error {
	query := `
		INSERT INTO notas (` + notaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.Titulo, n.TituloCI, n.Contenido, n.ContenidoCI, n.Categoria, n.Etiquetas,
		n.Prioridad, n.Autor, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert nota: %w", err)
	}
	return nil
}

// GetByID obtiene una nota por ID. (nil, nil) si no existe.
func (r *NotaRepo) GetByID(ctx context.Context, id string) (*entity.Nota, error) {
	query := `SELECT ` + notaCols + ` FROM notas WHERE id = $1`
	var n entity.Nota
	err := r.db.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Titulo, &n.TituloCI, &n.Contenido, &n.ContenidoCI, &n.Categoria, &n.Etiquetas,
		&n.Prioridad, &n.Autor, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota: %w", err)
	}
	return &n, nil
}

// Update actualiza una nota.
func (r *NotaRepo) Update(ctx context.Context, n *entity.Nota) error {
	query := `
		UPDATE notas SET titulo = $2, titulo_ci = $3, contenido = $4, contenido_ci = $5,
			categoria = $6, etiquetas = $7, prioridad = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		n.ID, n.Titulo, n.TituloCI, n.Contenido, n.ContenidoCI,
		n.Categoria, n.Etiquetas, n.Prioridad, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nota: %w", err)
	}
	return nil
}

// Delete elimina una nota por ID.
func (r *NotaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM notas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete nota: %w", err)
	}
	return nil
}

// List lista notas visibles. q busca en título y contenido plegados.
func (r *NotaRepo) List(ctx context.Context, tenant repository.FiltroTenant, f repository.NotaFiltro) ([]*entity.Nota, int, error) {
	where := []string{"autor = ANY($1)"}
	args := []any{tenant.Emails}

	if f.Q != "" {
		args = append(args, like(f.Q))
		n := len(args)
		where = append(where, fmt.Sprintf("(titulo_ci LIKE $%d OR contenido_ci LIKE $%d)", n, n))
	}
	if f.Categoria != "" {
		args = append(args, f.Categoria)
		where = append(where, fmt.Sprintf("categoria = $%d", len(args)))
	}
	if f.Etiqueta != "" {
		args = append(args, f.Etiqueta)
		where = append(where, fmt.Sprintf("$%d = ANY(etiquetas)", len(args)))
	}
	if f.Prioridad != "" {
		args = append(args, f.Prioridad)
		where = append(where, fmt.Sprintf("prioridad = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM notas WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notas: %w", err)
	}

	order := orderBy(f.Sort, notaSort, "created_at DESC")
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT `+notaCols+` FROM notas WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cond, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Nota
	for rows.Next() {
		var n entity.Nota
		if err := rows.Scan(
			&n.ID, &n.Titulo, &n.TituloCI, &n.Contenido, &n.ContenidoCI, &n.Categoria, &n.Etiquetas,
			&n.Prioridad, &n.Autor, &n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, &n)
	}
	return list, total, rows.Err()
}
