package repository

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// TareaRepository puerto de persistencia para Tarea.
type TareaRepository interface {
	Create(ctx context.Context, t *entity.Tarea) error
	GetByID(ctx context.Context, id string) (*entity.Tarea, error)
	Update(ctx context.Context, t *entity.Tarea) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, tenant FiltroTenant, f TareaFiltro) ([]*entity.Tarea, int, error)
}
