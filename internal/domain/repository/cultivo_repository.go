package repository

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// CultivoRepository puerto de persistencia para Cultivo.
type CultivoRepository interface {
	Create(ctx context.Context, c *entity.Cultivo) error
	GetByID(ctx context.Context, id string) (*entity.Cultivo, error)
	Update(ctx context.Context, c *entity.Cultivo) error
	Delete(ctx context.Context, id string) error
	// List aplica el filtro multi-tenant además de los criterios de búsqueda.
	List(ctx context.Context, tenant FiltroTenant, f CultivoFiltro) ([]*entity.Cultivo, int, error)
}
