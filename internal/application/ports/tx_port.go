package ports

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

// PagoTxRunner ejecuta el procesamiento de un webhook de pago dentro de una
// transacción: registrar el Pago y actualizar la suscripción del usuario
// deben confirmarse o deshacerse juntos.
type PagoTxRunner interface {
	RunPago(ctx context.Context, fn func(
		pagoRepo repository.PagoRepository,
		usuarioRepo repository.UsuarioRepository,
	) error) error
}
