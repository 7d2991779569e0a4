package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
	"github.com/cultivapp/cultivos-api/pkg/logger"
)

// SuscripcionHandler checkout de suscripción (protegido) y webhook de pagos
// (público: lo llama MercadoPago, no el navegador).
type SuscripcionHandler struct {
	uc  *usecase.SuscripcionUseCase
	log *logger.Logger
}

// NewSuscripcionHandler construye el handler.
func NewSuscripcionHandler(uc *usecase.SuscripcionUseCase, log *logger.Logger) *SuscripcionHandler {
	return &SuscripcionHandler{uc: uc, log: log.Componente("suscripcion")}
}

// Checkout godoc
// @Summary      Crear link de pago de la suscripción mensual
// @Tags         suscripcion
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscription/checkout [post]
func (h *SuscripcionHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.uc.Checkout(c.Context(), GetPrincipal(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Notificación de pagos de MercadoPago
// @Tags         suscripcion
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/webhooks/mercadopago [post]
//
// Siempre responde 200: un error propio no debe hacer que MercadoPago
// reintente indefinidamente. El fallo queda en el log para reconciliar a mano.
func (h *SuscripcionHandler) Webhook(c *fiber.Ctx) error {
	var notif dto.WebhookMercadoPago
	if err := c.BodyParser(&notif); err != nil {
		h.log.Warn().Err(err).Msg("webhook con cuerpo no parseable")
		return c.JSON(fiber.Map{"status": "ok"})
	}
	// Variante por query params: ?topic=payment&id=123
	if notif.PaymentID() == "" {
		notif.Topic = c.Query("topic", notif.Topic)
		notif.Data.ID = c.Query("id")
	}

	if err := h.uc.ProcesarWebhook(c.Context(), notif); err != nil {
		h.log.Error().Err(err).Str("payment_id", notif.PaymentID()).Msg("error procesando webhook de pago")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
