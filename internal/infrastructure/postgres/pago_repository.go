package postgres

import (
	"context"
	"fmt"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación del puerto PagoRepository sobre PostgreSQL.
type PagoRepo struct {
	db querier
}

// NewPagoRepository construye el adaptador de persistencia para pagos.
func NewPagoRepository(db querier) *PagoRepo {
	return &PagoRepo{db: db}
}

// Create registra un pago notificado por el webhook.
func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id, usuario_email, mp_payment_id, estado, monto, detalle, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.UsuarioEmail, p.MPPaymentID, p.Estado, p.Monto, p.Detalle, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

// ListByUsuario lista los pagos registrados de un usuario.
func (r *PagoRepo) ListByUsuario(ctx context.Context, email string, limit, offset int) ([]*entity.Pago, error) {
	query := `
		SELECT id, usuario_email, mp_payment_id, estado, monto, detalle, created_at
		FROM pagos WHERE usuario_email = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.UsuarioEmail, &p.MPPaymentID, &p.Estado, &p.Monto, &p.Detalle, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
