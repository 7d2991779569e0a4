package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/auth"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain"
)

// AuthHandler maneja login y verificación de token (rutas públicas).
type AuthHandler struct {
	uc             *auth.AuthUseCase
	cookieExpHours int
	secureCookie   bool
}

// NewAuthHandler construye el handler. secureCookie debe ser true fuera de
// development para que la cookie viaje solo por HTTPS.
func NewAuthHandler(uc *auth.AuthUseCase, cookieExpHours int, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieExpHours: cookieExpHours, secureCookie: secureCookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, cookieToken, err := h.uc.Login(c.Context(), in)
	if err != nil {
		// Credenciales malas y usuario inexistente responden igual: no se
		// revela qué emails tienen cuenta.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "cuenta desactivada"})
		}
		return responderError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieAuthToken,
		Value:    cookieToken,
		Expires:  time.Now().Add(time.Duration(h.cookieExpHours) * time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(out)
}

// VerifyToken godoc
// @Summary      Verificar vigencia de un token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyTokenRequest  false  "Token a verificar; si falta se usa Authorization o la cookie"
// @Success      200   {object}  dto.VerifyTokenResponse
// @Failure      401   {object}  dto.VerifyTokenResponse
// @Router       /api/verify-token [post]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var in dto.VerifyTokenRequest
	_ = c.BodyParser(&in) // body opcional

	token := in.Token
	if token == "" {
		token = bearerToken(c)
	}
	if token == "" {
		token = c.Cookies(CookieAuthToken)
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.VerifyTokenResponse{Valid: false})
	}

	out, err := h.uc.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(out)
	}
	return c.JSON(out)
}
