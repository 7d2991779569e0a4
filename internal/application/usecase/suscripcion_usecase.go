package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
	"github.com/cultivapp/cultivos-api/pkg/logger"
)

// DiasSuscripcion vigencia que otorga cada pago aprobado.
const DiasSuscripcion = 30

// SuscripcionUseCase checkout de suscripción y procesamiento del webhook de
// pagos. El webhook registra siempre un Pago (auditoría) y, si el pago está
// aprobado, extiende la suscripción del usuario; ambas escrituras van en la
// misma transacción.
type SuscripcionUseCase struct {
	usuarios repository.UsuarioRepository
	gateway  ports.PagoGateway
	tx       ports.PagoTxRunner
	log      *logger.Logger
}

// NewSuscripcionUseCase construye el caso de uso.
func NewSuscripcionUseCase(usuarios repository.UsuarioRepository, gateway ports.PagoGateway, tx ports.PagoTxRunner, log *logger.Logger) *SuscripcionUseCase {
	return &SuscripcionUseCase{usuarios: usuarios, gateway: gateway, tx: tx, log: log.Componente("suscripcion")}
}

// Checkout crea el link de pago de la suscripción mensual.
// ErrConflict si la cuenta está exenta o ya tiene suscripción vigente.
func (uc *SuscripcionUseCase) Checkout(ctx context.Context, p authz.Principal) (*dto.CheckoutResponse, error) {
	u, err := uc.usuarios.GetByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.SuscripcionVigente(time.Now()) {
		return nil, domain.ErrConflict
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	checkout, err := uc.gateway.CrearCheckout(ctx, u.Email)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &dto.CheckoutResponse{
		InitPoint:    checkout.InitPoint,
		PreferenceID: checkout.PreferenceID,
	}, nil
}

// ProcesarWebhook atiende una notificación de MercadoPago. El handler siempre
// responde 200 al proveedor; el error devuelto aquí es solo para log.
func (uc *SuscripcionUseCase) ProcesarWebhook(ctx context.Context, notif dto.WebhookMercadoPago) error {
	if !notif.EsPago() || notif.PaymentID() == "" {
		uc.log.Debug().Str("type", notif.Type).Str("topic", notif.Topic).Msg("notificación ignorada")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	pago, err := uc.gateway.ObtenerPago(ctx, notif.PaymentID())
	if err != nil {
		return fmt.Errorf("consultar pago %s: %w", notif.PaymentID(), err)
	}

	return uc.tx.RunPago(ctx, func(pagoRepo repository.PagoRepository, usuarioRepo repository.UsuarioRepository) error {
		registro := &entity.Pago{
			ID:           uuid.New().String(),
			UsuarioEmail: pago.PayerEmail,
			MPPaymentID:  pago.ID,
			Estado:       pago.Estado,
			Monto:        pago.Monto,
			Detalle:      pago.Detalle,
			CreatedAt:    time.Now(),
		}

		u, err := usuarioRepo.GetByEmail(ctx, pago.PayerEmail)
		if err != nil {
			return fmt.Errorf("lookup del pagador: %w", err)
		}
		if u == nil {
			registro.Detalle = "pagador sin cuenta en el sistema"
			return pagoRepo.Create(ctx, registro)
		}

		if err := pagoRepo.Create(ctx, registro); err != nil {
			return err
		}
		if pago.Estado != "approved" {
			uc.log.Info().Str("pago", pago.ID).Str("estado", pago.Estado).Msg("pago no aprobado, suscripción sin cambios")
			return nil
		}

		ahora := time.Now()
		desde := ahora
		hasta := ahora.AddDate(0, 0, DiasSuscripcion)
		// Pago anticipado: extiende desde el vencimiento actual, no desde hoy.
		if u.SuscripcionHasta != nil && u.SuscripcionHasta.After(ahora) {
			hasta = u.SuscripcionHasta.AddDate(0, 0, DiasSuscripcion)
		}
		u.EstadoSuscripcion = entity.SuscripcionActiva
		u.SuscripcionDesde = &desde
		u.SuscripcionHasta = &hasta
		u.UpdatedAt = ahora
		return usuarioRepo.Update(ctx, u)
	})
}
