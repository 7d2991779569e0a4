package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cultivapp/cultivos-api/internal/application/auth"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	apphttp "github.com/cultivapp/cultivos-api/internal/interfaces/http"
)

func buildLoginApp(t *testing.T, usuarios ...*entity.Usuario) *fiber.App {
	t.Helper()
	uc := auth.NewAuthUseCase(newUsuariosMem(usuarios...), auth.JWTConfig{
		Secret:         testJWTSecret,
		LoginExpHours:  24,
		CookieExpHours: 24 * 7,
		Issuer:         testIssuer,
	})
	h := apphttp.NewAuthHandler(uc, 24*7, false)

	app := fiber.New()
	app.Post("/api/login", h.Login)
	app.Post("/api/verify-token", h.VerifyToken)
	return app
}

func usuarioConPassword(t *testing.T, email, password, rol string, activo bool) *entity.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Usuario{Email: email, PasswordHash: string(hash), Rol: rol, Activo: activo}
}

func TestLogin_EmiteTokenYCookie(t *testing.T) {
	app := buildLoginApp(t, usuarioConPassword(t, emailAna, "secreta123", entity.RolAdmin, true))

	req := jsonRequest(t, http.MethodPost, "/api/login",
		dto.LoginRequest{Email: "Ana@Finca.com", Password: "secreta123"}, "", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode,
		"el email debe normalizarse a minúsculas antes del lookup")

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, emailAna, out.Usuario.Email)

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "auth-token" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "el login debe setear la cookie auth-token")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
	assert.NotEqual(t, out.Token, cookie.Value,
		"el token de la cookie tiene vigencia propia, distinto al del body")
}

func TestLogin_CredencialesMalasYEmailInexistenteRespondenIgual(t *testing.T) {
	app := buildLoginApp(t, usuarioConPassword(t, emailAna, "secreta123", entity.RolAdmin, true))

	casos := []dto.LoginRequest{
		{Email: emailAna, Password: "incorrecta"},
		{Email: "nadie@finca.com", Password: "loquesea"},
	}
	for _, in := range casos {
		req := jsonRequest(t, http.MethodPost, "/api/login", in, "", "")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		var out dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", out.Code,
			"no se debe distinguir password errado de cuenta inexistente")
	}
}

func TestLogin_CuentaInactivaRetorna403(t *testing.T) {
	app := buildLoginApp(t, usuarioConPassword(t, emailAna, "secreta123", entity.RolAdmin, false))

	req := jsonRequest(t, http.MethodPost, "/api/login",
		dto.LoginRequest{Email: emailAna, Password: "secreta123"}, "", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVerifyToken_DesdeBodyYCookie(t *testing.T) {
	app := buildLoginApp(t)
	token := tokenFor(t, emailAna, entity.RolAdmin)

	// Por body
	req := jsonRequest(t, http.MethodPost, "/api/verify-token",
		dto.VerifyTokenRequest{Token: token}, "", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out dto.VerifyTokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.True(t, out.Valid)
	assert.Equal(t, emailAna, out.Email)
	assert.Equal(t, entity.RolAdmin, out.Rol)

	// Por cookie
	req = jsonRequest(t, http.MethodPost, "/api/verify-token", nil, "", "")
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: token})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Valid)
}

func TestVerifyToken_InvalidoRetorna401(t *testing.T) {
	app := buildLoginApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/verify-token",
		dto.VerifyTokenRequest{Token: "token.roto.aqui"}, "", "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var out dto.VerifyTokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Valid)
}
