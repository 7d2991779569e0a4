package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	apphttp "github.com/cultivapp/cultivos-api/internal/interfaces/http"
)

func buildNotaApp(notas *notasMem) *fiber.App {
	usuarios := newUsuariosMem(
		&entity.Usuario{Email: emailAna, Rol: entity.RolAdmin, Activo: true},
		&entity.Usuario{Email: emailPedro, Rol: entity.RolUser, Activo: true, CreadoPor: emailAna},
	)
	az := authz.NewService(usuarios)
	uc := usecase.NewNotaUseCase(notas, az)

	app := fiber.New()
	h := apphttp.NewNotaHandler(uc)
	grp := app.Group("/api/notas", apphttp.AuthMiddleware(testJWTSecret, "test"))
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.GetByID)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	return app
}

func TestNotaCreate_UserPuedeCrear(t *testing.T) {
	notas := newNotasMem()
	app := buildNotaApp(notas)

	req := jsonRequest(t, http.MethodPost, "/api/notas/",
		dto.CreateNotaRequest{Titulo: "Riego irregular", Contenido: "Revisar goteros del sector 2"},
		emailPedro, entity.RolUser)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode,
		"crear notas está abierto a ambos roles")
	var out dto.NotaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, emailPedro, out.Autor, "autor sellado por el servidor")
	assert.Equal(t, entity.PrioridadMedia, out.Prioridad, "prioridad por defecto media")
}

func TestNotaCreate_PrioridadInvalidaRetorna400(t *testing.T) {
	app := buildNotaApp(newNotasMem())

	req := jsonRequest(t, http.MethodPost, "/api/notas/",
		dto.CreateNotaRequest{Titulo: "x", Prioridad: "urgentísima"},
		emailPedro, entity.RolUser)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotaUpdate_UserSoloEditaLoPropio(t *testing.T) {
	notas := newNotasMem(
		&entity.Nota{ID: "n1", Titulo: "De Ana", Autor: emailAna, Prioridad: entity.PrioridadMedia},
		&entity.Nota{ID: "n2", Titulo: "De Pedro", Autor: emailPedro, Prioridad: entity.PrioridadMedia},
	)
	app := buildNotaApp(notas)

	nuevo := "Editada"
	// La nota de su admin es visible para Pedro, pero no editable.
	req := jsonRequest(t, http.MethodPatch, "/api/notas/n1",
		dto.UpdateNotaRequest{Titulo: &nuevo}, emailPedro, entity.RolUser)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// La propia sí.
	req = jsonRequest(t, http.MethodPatch, "/api/notas/n2",
		dto.UpdateNotaRequest{Titulo: &nuevo}, emailPedro, entity.RolUser)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.NotaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Editada", out.Titulo)
}

func TestNotaUpdate_AdminEditaLoDeSusCuentas(t *testing.T) {
	notas := newNotasMem(
		&entity.Nota{ID: "n2", Titulo: "De Pedro", Autor: emailPedro, Prioridad: entity.PrioridadMedia},
	)
	app := buildNotaApp(notas)

	alta := entity.PrioridadAlta
	req := jsonRequest(t, http.MethodPatch, "/api/notas/n2",
		dto.UpdateNotaRequest{Prioridad: &alta}, emailAna, entity.RolAdmin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.NotaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.PrioridadAlta, out.Prioridad)
}

func TestNotaDelete_UserRecibe403_AdminBorra(t *testing.T) {
	notas := newNotasMem(
		&entity.Nota{ID: "n2", Titulo: "De Pedro", Autor: emailPedro, Prioridad: entity.PrioridadMedia},
	)
	app := buildNotaApp(notas)

	req := jsonRequest(t, http.MethodDelete, "/api/notas/n2", nil, emailPedro, entity.RolUser)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "eliminar es solo de admins")

	req = jsonRequest(t, http.MethodDelete, "/api/notas/n2", nil, emailAna, entity.RolAdmin)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNotaGet_Inexistente404(t *testing.T) {
	app := buildNotaApp(newNotasMem())

	req := jsonRequest(t, http.MethodGet, "/api/notas/no-existe", nil, emailAna, entity.RolAdmin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
