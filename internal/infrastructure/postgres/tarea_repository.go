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

var _ repository.TareaRepository = (*TareaRepo)(nil)

const tareaCols = `id, titulo, titulo_ci, tipo, estado, fecha, hora, recurrente,
	cultivo_id, creado_por, editado_por, created_at, updated_at`

var tareaSort = map[string]string{
	"titulo":     "titulo_ci",
	"fecha":      "fecha",
	"estado":     "estado",
	"created_at": "created_at",
}

// TareaRepo implementación del puerto TareaRepository sobre PostgreSQL.
type TareaRepo struct {
	db querier
}

// NewTareaRepository construye el adaptador de persistencia para tareas.
func NewTareaRepository(db querier) *TareaRepo {
	return &TareaRepo{db: db}
}

// Create persiste una nueva tarea.
func (r *TareaRepo) Create(ctx context.Context, t *entity.Tarea) error {
	query := `
		INSERT INTO tareas (` + tareaCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.Titulo, t.TituloCI, t.Tipo, t.Estado, t.Fecha, t.Hora, t.Recurrente,
		nullIfEmpty(t.CultivoID), t.CreadoPor, t.EditadoPor, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tarea: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID. (nil, nil) si no existe.
func (r *TareaRepo) GetByID(ctx context.Context, id string) (*entity.Tarea, error) {
	query := `SELECT ` + tareaCols + ` FROM tareas WHERE id = $1`
	t, err := scanTarea(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get tarea: %w", err)
	}
	return t, nil
}

// Update actualiza una tarea.
func (r *TareaRepo) Update(ctx context.Context, t *entity.Tarea) error {
	query := `
		UPDATE tareas SET titulo = $2, titulo_ci = $3, tipo = $4, estado = $5, fecha = $6,
			hora = $7, recurrente = $8, cultivo_id = $9, editado_por = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.Titulo, t.TituloCI, t.Tipo, t.Estado, t.Fecha,
		t.Hora, t.Recurrente, nullIfEmpty(t.CultivoID), t.EditadoPor, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tarea: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TareaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tareas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tarea: %w", err)
	}
	return nil
}

// List lista tareas visibles con criterios de búsqueda y el total sin paginar.
func (r *TareaRepo) List(ctx context.Context, tenant repository.FiltroTenant, f repository.TareaFiltro) ([]*entity.Tarea, int, error) {
	where := []string{"creado_por = ANY($1)"}
	args := []any{tenant.Emails}

	if f.Q != "" {
		args = append(args, like(f.Q))
		where = append(where, fmt.Sprintf("titulo_ci LIKE $%d", len(args)))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		where = append(where, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		where = append(where, fmt.Sprintf("tipo = $%d", len(args)))
	}
	if f.CultivoID != "" {
		args = append(args, f.CultivoID)
		where = append(where, fmt.Sprintf("cultivo_id = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		where = append(where, fmt.Sprintf("fecha >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		where = append(where, fmt.Sprintf("fecha <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM tareas WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tareas: %w", err)
	}

	order := orderBy(f.Sort, tareaSort, "fecha ASC")
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT `+tareaCols+` FROM tareas WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cond, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tareas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tarea
	for rows.Next() {
		t, err := scanTarea(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tarea: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

func scanTarea(row pgx.Row) (*entity.Tarea, error) {
	var t entity.Tarea
	var cultivoID *string
	err := row.Scan(
		&t.ID, &t.Titulo, &t.TituloCI, &t.Tipo, &t.Estado, &t.Fecha, &t.Hora, &t.Recurrente,
		&cultivoID, &t.CreadoPor, &t.EditadoPor, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if cultivoID != nil {
		t.CultivoID = *cultivoID
	}
	return &t, nil
}

// nullIfEmpty mapea "" a NULL para columnas con FK opcional.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
