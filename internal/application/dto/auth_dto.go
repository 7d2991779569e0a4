package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse salida de un usuario (sin password hash).
type UsuarioResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Rol               string     `json:"rol"`
	Activo            bool       `json:"activo"`
	CreadoPor         string     `json:"creadoPor,omitempty"`
	EstadoSuscripcion string     `json:"estadoSuscripcion"`
	SuscripcionHasta  *time.Time `json:"suscripcionHasta,omitempty"`
	ExentoPago        bool       `json:"exentoPago"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// LoginResponse salida de login: token de 24 h en el body; la cookie
// auth-token (7 días) se setea aparte en el handler.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// VerifyTokenRequest entrada opcional: si el body no trae token se usa el
// header Authorization o la cookie.
type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyTokenResponse salida de /api/verify-token.
type VerifyTokenResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
	Rol   string `json:"rol,omitempty"`
}
