package dto

// CreateUsuarioRequest entrada para que un admin cree una cuenta delegada.
// El creadoPor lo sella el servidor con el email del admin autenticado.
type CreateUsuarioRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"` // admin | user; por defecto user
}

// UpdateUsuarioRequest campos editables de una cuenta delegada (PATCH parcial).
type UpdateUsuarioRequest struct {
	Activo     *bool   `json:"activo"`
	Rol        *string `json:"rol"`
	Password   *string `json:"password"`
	ExentoPago *bool   `json:"exentoPago"`
}

// UsuarioListResponse listado de cuentas creadas por el admin.
type UsuarioListResponse struct {
	Usuarios []UsuarioResponse `json:"usuarios"`
	Page     PageResponse      `json:"page"`
}
