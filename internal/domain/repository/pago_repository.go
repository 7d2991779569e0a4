package repository

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// PagoRepository puerto de persistencia para el registro de pagos del webhook.
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	ListByUsuario(ctx context.Context, email string, limit, offset int) ([]*entity.Pago, error)
}
