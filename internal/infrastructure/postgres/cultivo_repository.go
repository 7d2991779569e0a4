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

var _ repository.CultivoRepository = (*CultivoRepo)(nil)

const cultivoCols = `id, nombre, nombre_ci, sustrato, area, fecha_inicio, num_plantas,
	creado_por, activo, created_at, updated_at`

// cultivoSort campos aceptados en el parámetro sort.
var cultivoSort = map[string]string{
	"nombre":       "nombre_ci",
	"fecha_inicio": "fecha_inicio",
	"num_plantas":  "num_plantas",
	"created_at":   "created_at",
}

// CultivoRepo implementación del puerto CultivoRepository sobre PostgreSQL.
type CultivoRepo struct {
	db querier
}

// NewCultivoRepository construye el adaptador de persistencia para cultivos.
func NewCultivoRepository(db querier) *CultivoRepo {
	return &CultivoRepo{db: db}
}

// Create persiste un nuevo cultivo.
func (r *CultivoRepo) Create(ctx context.Context, c *entity.Cultivo) error {
	query := `
		INSERT INTO cultivos (` + cultivoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Nombre, c.NombreCI, c.Sustrato, c.Area, c.FechaInicio, c.NumPlantas,
		c.CreadoPor, c.Activo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cultivo: %w", err)
	}
	return nil
}

// GetByID obtiene un cultivo por ID. (nil, nil) si no existe.
func (r *CultivoRepo) GetByID(ctx context.Context, id string) (*entity.Cultivo, error) {
	query := `SELECT ` + cultivoCols + ` FROM cultivos WHERE id = $1`
	var c entity.Cultivo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Nombre, &c.NombreCI, &c.Sustrato, &c.Area, &c.FechaInicio, &c.NumPlantas,
		&c.CreadoPor, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cultivo: %w", err)
	}
	return &c, nil
}

// Update actualiza un cultivo.
func (r *CultivoRepo) Update(ctx context.Context, c *entity.Cultivo) error {
	query := `
		UPDATE cultivos SET nombre = $2, nombre_ci = $3, sustrato = $4, area = $5,
			fecha_inicio = $6, num_plantas = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Nombre, c.NombreCI, c.Sustrato, c.Area,
		c.FechaInicio, c.NumPlantas, c.Activo, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cultivo: %w", err)
	}
	return nil
}

// Delete elimina un cultivo por ID.
func (r *CultivoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cultivos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cultivo: %w", err)
	}
	return nil
}

// List lista cultivos visibles según el filtro multi-tenant más los criterios
// de búsqueda. Devuelve además el total sin paginar.
func (r *CultivoRepo) List(ctx context.Context, tenant repository.FiltroTenant, f repository.CultivoFiltro) ([]*entity.Cultivo, int, error) {
	where := []string{"creado_por = ANY($1)"}
	args := []any{tenant.Emails}

	if f.Q != "" {
		args = append(args, like(f.Q))
		n := len(args)
		where = append(where, fmt.Sprintf("(nombre_ci LIKE $%d OR lower(sustrato) LIKE $%d)", n, n))
	}
	if f.Activo != nil {
		args = append(args, *f.Activo)
		where = append(where, fmt.Sprintf("activo = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM cultivos WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cultivos: %w", err)
	}

	order := orderBy(f.Sort, cultivoSort, "created_at DESC")
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT `+cultivoCols+` FROM cultivos WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		cond, order, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cultivos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cultivo
	for rows.Next() {
		var c entity.Cultivo
		if err := rows.Scan(
			&c.ID, &c.Nombre, &c.NombreCI, &c.Sustrato, &c.Area, &c.FechaInicio, &c.NumPlantas,
			&c.CreadoPor, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan cultivo: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
