package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
	"github.com/cultivapp/cultivos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret         string
	LoginExpHours  int // vigencia del token devuelto en el body (24 h)
	CookieExpHours int // vigencia del token de la cookie auth-token (7 días)
	Issuer         string
}

// AuthUseCase casos de uso de sesión: login y verificación de token.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarios repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, jwtCfg: jwtCfg}
}

// Login verifica email/password y emite dos tokens: el del body (24 h) y el
// de la cookie persistente (7 días). Devuelve ErrUserNotFound/ErrUnauthorized
// con credenciales malas y ErrForbidden si la cuenta está inactiva.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := uc.usuarios.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	if !u.Activo {
		return nil, "", domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.Email, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.LoginExpHours)
	if err != nil {
		return nil, "", err
	}
	cookieToken, err := jwt.Generate(uc.jwtCfg.Secret, u.Email, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.CookieExpHours)
	if err != nil {
		return nil, "", err
	}

	return &dto.LoginResponse{
		Token:   token,
		Usuario: *ToUsuarioResponse(u),
	}, cookieToken, nil
}

// Verify valida un token y devuelve el principal que transporta.
func (uc *AuthUseCase) Verify(tokenString string) (*dto.VerifyTokenResponse, error) {
	email, rol, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return &dto.VerifyTokenResponse{Valid: false}, domain.ErrUnauthorized
	}
	return &dto.VerifyTokenResponse{Valid: true, Email: email, Rol: rol}, nil
}

// ToUsuarioResponse mapea la entidad a su DTO (sin hash de password).
func ToUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:                u.ID,
		Email:             u.Email,
		Rol:               u.Rol,
		Activo:            u.Activo,
		CreadoPor:         u.CreadoPor,
		EstadoSuscripcion: u.EstadoSuscripcion,
		SuscripcionHasta:  u.SuscripcionHasta,
		ExentoPago:        u.ExentoPago,
		CreatedAt:         u.CreatedAt,
	}
}
