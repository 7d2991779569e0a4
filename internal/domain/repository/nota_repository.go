package repository

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// NotaRepository puerto de persistencia para Nota.
type NotaRepository interface {
	Create(ctx context.Context, n *entity.Nota) error
	GetByID(ctx context.Context, id string) (*entity.Nota, error)
	Update(ctx context.Context, n *entity.Nota) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, tenant FiltroTenant, f NotaFiltro) ([]*entity.Nota, int, error)
}
