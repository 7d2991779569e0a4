package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin = "admin"
	RolUser  = "user"
)

// Estados de suscripción.
const (
	SuscripcionActiva    = "activa"
	SuscripcionPendiente = "pendiente"
	SuscripcionVencida   = "vencida"
	SuscripcionNinguna   = "ninguna"
)

// Usuario representa una cuenta del sistema. CreadoPor apunta al email del
// admin que creó la cuenta; queda vacío en los admins raíz. Esa relación
// creador/creado es la base de la visibilidad multi-tenant.
type Usuario struct {
	ID                string
	Email             string // único, siempre en minúsculas
	PasswordHash      string // bcrypt, nunca plano en dominio después de persistir
	Rol               string // admin | user
	Activo            bool
	CreadoPor         string // email del admin creador ("" para admins raíz)
	EstadoSuscripcion string // activa | pendiente | vencida | ninguna
	SuscripcionDesde  *time.Time
	SuscripcionHasta  *time.Time
	ExentoPago        bool // cuentas liberadas del cobro de suscripción
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SuscripcionVigente indica si la cuenta tiene acceso pago al día.
func (u *Usuario) SuscripcionVigente(ahora time.Time) bool {
	if u.ExentoPago {
		return true
	}
	if u.EstadoSuscripcion != SuscripcionActiva {
		return false
	}
	return u.SuscripcionHasta == nil || ahora.Before(*u.SuscripcionHasta)
}
