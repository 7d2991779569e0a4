// Package authz implementa la visibilidad multi-tenant y los permisos por
// rol/propiedad. La regla de delegación: un admin ve lo creado por él y por
// las cuentas que él creó; un user ve lo creado por él y por su admin creador.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

// ErrNoDisponible marca fallos de infraestructura al consultar usuarios.
// Los handlers lo mapean a 503 en lugar de degradar la visibilidad en silencio.
var ErrNoDisponible = errors.New("authz no disponible")

// Principal identidad validada del solicitante (sale del JWT).
type Principal struct {
	Email string
	Rol   string
}

// EsAdmin indica si el principal tiene rol admin.
func (p Principal) EsAdmin() bool { return p.Rol == entity.RolAdmin }

// Service resuelve filtros de visibilidad y permisos consultando la tabla de
// usuarios en cada llamada (sin caché: el costo es proporcional al tráfico).
// Los errores de lookup se devuelven al caller en lugar de degradar en
// silencio; las decisiones de permiso siguen siendo fail-closed.
type Service struct {
	usuarios repository.UsuarioRepository
}

// NewService construye el servicio de autorización.
func NewService(usuarios repository.UsuarioRepository) *Service {
	return &Service{usuarios: usuarios}
}

// ConstruirFiltroUsuario computa el predicado de visibilidad del principal.
//
//   - admin: sus propios registros más los de cualquier cuenta cuyo creador
//     sea ese admin.
//   - user: sus propios registros más los de su admin creador; si la cuenta
//     no existe o no tiene creador, solo los propios.
func (s *Service) ConstruirFiltroUsuario(ctx context.Context, p Principal) (repository.FiltroTenant, error) {
	if p.EsAdmin() {
		creados, err := s.usuarios.EmailsCreadosPor(ctx, p.Email)
		if err != nil {
			return repository.FiltroTenant{}, fmt.Errorf("%w: cuentas creadas por %s: %w", ErrNoDisponible, p.Email, err)
		}
		return repository.FiltroTenant{Emails: append([]string{p.Email}, creados...)}, nil
	}

	u, err := s.usuarios.GetByEmail(ctx, p.Email)
	if err != nil {
		return repository.FiltroTenant{}, fmt.Errorf("%w: lookup de %s: %w", ErrNoDisponible, p.Email, err)
	}
	if u == nil || u.CreadoPor == "" {
		return repository.FiltroTenant{Emails: []string{p.Email}}, nil
	}
	return repository.FiltroTenant{Emails: []string{p.Email, u.CreadoPor}}, nil
}

// PuedeAccederARecurso indica si el principal puede ver un recurso creado por
// creadorEmail: es suyo, o de una cuenta creada por él (admin), o de su admin
// creador (user).
func (s *Service) PuedeAccederARecurso(ctx context.Context, p Principal, creadorEmail string) (bool, error) {
	if creadorEmail == p.Email {
		return true, nil
	}
	if p.EsAdmin() {
		creador, err := s.usuarios.GetByEmail(ctx, creadorEmail)
		if err != nil {
			return false, fmt.Errorf("%w: lookup de %s: %w", ErrNoDisponible, creadorEmail, err)
		}
		return creador != nil && creador.CreadoPor == p.Email, nil
	}
	u, err := s.usuarios.GetByEmail(ctx, p.Email)
	if err != nil {
		return false, fmt.Errorf("%w: lookup de %s: %w", ErrNoDisponible, p.Email, err)
	}
	return u != nil && u.CreadoPor != "" && u.CreadoPor == creadorEmail, nil
}

// PuedeEditarRecurso exige acceso; además los user solo editan lo
// estrictamente propio (un admin edita todo lo que ve).
func (s *Service) PuedeEditarRecurso(ctx context.Context, p Principal, creadorEmail string) (bool, error) {
	ok, err := s.PuedeAccederARecurso(ctx, p, creadorEmail)
	if err != nil || !ok {
		return false, err
	}
	if p.EsAdmin() {
		return true, nil
	}
	return creadorEmail == p.Email, nil
}

// PuedeEliminarRecurso es solo para admins, sujeto al chequeo de acceso.
func (s *Service) PuedeEliminarRecurso(ctx context.Context, p Principal, creadorEmail string) (bool, error) {
	if !p.EsAdmin() {
		return false, nil
	}
	return s.PuedeAccederARecurso(ctx, p, creadorEmail)
}
