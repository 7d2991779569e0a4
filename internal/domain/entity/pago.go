package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pago registra cada notificación de pago procesada desde el webhook de
// MercadoPago. Sirve de auditoría: el webhook siempre responde 200 al
// proveedor, así que esta tabla es el único rastro de fallos.
type Pago struct {
	ID           string
	UsuarioEmail string
	MPPaymentID  string // id del pago en MercadoPago
	Estado       string // approved, pending, rejected, ...
	Monto        decimal.Decimal
	Detalle      string // descripción o motivo de error de procesamiento
	CreatedAt    time.Time
}
