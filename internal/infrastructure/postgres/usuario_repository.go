package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioCols = `id, email, password_hash, rol, activo, creado_por,
	estado_suscripcion, suscripcion_desde, suscripcion_hasta, exento_pago, created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	db querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
// db puede ser el pool o una transacción (ver TxRunner).
func NewUsuarioRepository(db querier) *UsuarioRepo {
	return &UsuarioRepo{db: db}
}

// Create persiste una nueva cuenta. ErrEmailAlreadyExists si el email ya existe.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Rol, u.Activo, u.CreadoPor,
		u.EstadoSuscripcion, u.SuscripcionDesde, u.SuscripcionHasta, u.ExentoPago,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByEmail obtiene una cuenta por email. (nil, nil) si no existe.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioCols + ` FROM usuarios WHERE email = $1`
	u, err := scanUsuario(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// Update actualiza una cuenta existente.
func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET password_hash = $2, rol = $3, activo = $4,
			estado_suscripcion = $5, suscripcion_desde = $6, suscripcion_hasta = $7,
			exento_pago = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.PasswordHash, u.Rol, u.Activo,
		u.EstadoSuscripcion, u.SuscripcionDesde, u.SuscripcionHasta,
		u.ExentoPago, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// EmailsCreadosPor devuelve los emails de las cuentas creadas por el admin.
func (r *UsuarioRepo) EmailsCreadosPor(ctx context.Context, adminEmail string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT email FROM usuarios WHERE creado_por = $1`, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("emails creados por: %w", err)
	}
	defer rows.Close()
	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

// ListByCreador lista cuentas creadas por el admin con paginación y total.
func (r *UsuarioRepo) ListByCreador(ctx context.Context, adminEmail string, limit, offset int) ([]*entity.Usuario, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM usuarios WHERE creado_por = $1`, adminEmail).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}

	query := `SELECT ` + usuarioCols + `
		FROM usuarios WHERE creado_por = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, adminEmail, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreadoPor,
		&u.EstadoSuscripcion, &u.SuscripcionDesde, &u.SuscripcionHasta, &u.ExentoPago,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
