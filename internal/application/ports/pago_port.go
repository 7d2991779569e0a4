package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Checkout link de pago creado en el procesador.
type Checkout struct {
	PreferenceID string
	InitPoint    string
}

// PagoExterno estado de un pago consultado al procesador tras el webhook.
type PagoExterno struct {
	ID         string
	Estado     string // approved, pending, rejected, ...
	Monto      decimal.Decimal
	PayerEmail string
	Detalle    string
}

// PagoGateway puerto de salida hacia el procesador de pagos (MercadoPago).
type PagoGateway interface {
	// CrearCheckout crea la preferencia de pago de la suscripción mensual
	// para el usuario y devuelve el link de pago.
	CrearCheckout(ctx context.Context, usuarioEmail string) (*Checkout, error)
	// ObtenerPago consulta un pago notificado por webhook.
	ObtenerPago(ctx context.Context, paymentID string) (*PagoExterno, error)
}
