package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/cultivapp/cultivos-api/internal/interfaces/http"
	pkgjwt "github.com/cultivapp/cultivos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "cultivapp-test"
	testExpHours  = 1
)

// buildAuthApp construye una app Fiber mínima con AuthMiddleware + RequireRole
// y un handler dummy que devuelve el principal cargado en locals.
func buildAuthApp(env string, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, env)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"email": apphttp.GetEmail(c),
			"rol":   apphttp.GetRol(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func tokenFor(t *testing.T, email, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, email, rol, testIssuer, testExpHours)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doProtected(t *testing.T, app *fiber.App, mutate func(*http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de AuthMiddleware: fuentes del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_BearerCargaPrincipal(t *testing.T) {
	app := buildAuthApp("production")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, "ana@finca.com", "admin"))
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ana@finca.com", body["email"])
	assert.Equal(t, "admin", body["rol"])
}

func TestAuthMiddleware_CookieComoFallback(t *testing.T) {
	app := buildAuthApp("production")
	resp := doProtected(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "auth-token", Value: tokenFor(t, "ana@finca.com", "user")})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"sin header Authorization debe aceptarse la cookie auth-token")
	body := decodeBody(t, resp)
	assert.Equal(t, "ana@finca.com", body["email"])
}

func TestAuthMiddleware_BearerTienePrioridadSobreCookie(t *testing.T) {
	app := buildAuthApp("production")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, "header@finca.com", "user"))
		r.AddCookie(&http.Cookie{Name: "auth-token", Value: tokenFor(t, "cookie@finca.com", "user")})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "header@finca.com", decodeBody(t, resp)["email"])
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildAuthApp("production")
	resp := doProtected(t, app, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildAuthApp("production")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer token.invalido.aqui")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del bypass de desarrollo
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_FakeToken_SoloEnDevelopment(t *testing.T) {
	dev := buildAuthApp("development")
	resp := doProtected(t, dev, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer fake-dev@finca.com")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "dev@finca.com", body["email"])
	assert.Equal(t, "admin", body["rol"], "el bypass de desarrollo entra como admin")
}

func TestAuthMiddleware_FakeToken_RechazadoEnProduction(t *testing.T) {
	prod := buildAuthApp("production")
	resp := doProtected(t, prod, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer fake-dev@finca.com")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"fuera de development el token fake- es inválido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildAuthApp("production", "admin")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, "ana@finca.com", "admin"))
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildAuthApp("production", "admin")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, "peon@finca.com", "user"))
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildAuthApp("production", "admin")
	resp := doProtected(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tokenFor(t, "legacy@finca.com", ""))
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del paquete JWT: integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "ana@finca.com", "user", testIssuer, testExpHours)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, rol, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@finca.com", email)
	assert.Equal(t, "user", rol)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "ana@finca.com", "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "ana@finca.com", "admin", testIssuer, testExpHours)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
