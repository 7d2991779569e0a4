package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

var _ ports.PagoTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPago inicia una transacción, ejecuta fn con los repos de pago y usuario
// atados a la tx y hace Commit o Rollback. Lo usa el webhook de MercadoPago:
// registrar el pago y extender la suscripción deben ser atómicos.
func (r *TxRunner) RunPago(ctx context.Context, fn func(
	pagoRepo repository.PagoRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPagoRepository(tx), NewUsuarioRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
