package repository

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario) error
	// EmailsCreadosPor devuelve los emails de las cuentas creadas por el admin.
	// Es la consulta que alimenta el filtro multi-tenant.
	EmailsCreadosPor(ctx context.Context, adminEmail string) ([]string, error)
	// ListByCreador devuelve la página y el total de cuentas creadas por el admin.
	ListByCreador(ctx context.Context, adminEmail string, limit, offset int) ([]*entity.Usuario, int, error)
}
