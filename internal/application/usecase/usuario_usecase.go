package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/cultivapp/cultivos-api/internal/application/auth"
	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

// UsuarioUseCase administración de cuentas delegadas: un admin crea y gestiona
// únicamente las cuentas cuyo creadoPor es su propio email.
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// Create crea una cuenta delegada sellando creadoPor con el admin autenticado.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UsuarioUseCase) Create(ctx context.Context, admin authz.Principal, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolUser
	}
	if rol != entity.RolAdmin && rol != entity.RolUser {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.Usuario{
		ID:                uuid.New().String(),
		Email:             email,
		PasswordHash:      string(hash),
		Rol:               rol,
		Activo:            true,
		CreadoPor:         admin.Email,
		EstadoSuscripcion: entity.SuscripcionNinguna,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return appauth.ToUsuarioResponse(u), nil
}

// List lista las cuentas creadas por el admin autenticado.
func (uc *UsuarioUseCase) List(ctx context.Context, admin authz.Principal, page dto.PageRequest) (*dto.UsuarioListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.ListByCreador(ctx, admin.Email, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UsuarioListResponse{
		Usuarios: make([]dto.UsuarioResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, u := range list {
		out.Usuarios = append(out.Usuarios, *appauth.ToUsuarioResponse(u))
	}
	return out, nil
}

// Update modifica una cuenta delegada. Solo el admin creador puede tocarla:
// cualquier otra cuenta devuelve ErrForbidden aunque exista.
func (uc *UsuarioUseCase) Update(ctx context.Context, admin authz.Principal, email string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if u.CreadoPor != admin.Email {
		return nil, domain.ErrForbidden
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	if in.Rol != nil {
		if *in.Rol != entity.RolAdmin && *in.Rol != entity.RolUser {
			return nil, domain.ErrInvalidInput
		}
		u.Rol = *in.Rol
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.ExentoPago != nil {
		u.ExentoPago = *in.ExentoPago
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return appauth.ToUsuarioResponse(u), nil
}
