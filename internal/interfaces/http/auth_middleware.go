package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/pkg/jwt"
)

// Locals keys para el principal autenticado en Fiber.
const (
	LocalEmail = "email"
	LocalRol   = "rol"
)

// CookieAuthToken nombre de la cookie de sesión persistente (7 días).
const CookieAuthToken = "auth-token"

// AuthMiddleware valida el JWT y deja email y rol en c.Locals. El token se
// busca primero en Authorization: Bearer y después en la cookie auth-token.
//
// En env development un token "fake-<email>" entra como admin sin firma; en
// cualquier otro entorno se trata como token inválido.
func AuthMiddleware(jwtSecret, env string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = c.Cookies(CookieAuthToken)
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido (Authorization o cookie auth-token)"})
		}

		if strings.HasPrefix(tokenString, "fake-") {
			if env != "development" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			c.Locals(LocalEmail, strings.TrimPrefix(tokenString, "fake-"))
			c.Locals(LocalRol, entity.RolAdmin)
			return c.Next()
		}

		email, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalEmail, email)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// RequireRole exige que el rol del principal esté en la lista. Debe ir después
// de AuthMiddleware; sin rol en el contexto responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "sesión sin rol"})
		}
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRol devuelve el rol del contexto (después del middleware de auth).
func GetRol(c *fiber.Ctx) string {
	v := c.Locals(LocalRol)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetPrincipal arma el principal desde el contexto.
func GetPrincipal(c *fiber.Ctx) authz.Principal {
	return authz.Principal{Email: GetEmail(c), Rol: GetRol(c)}
}
