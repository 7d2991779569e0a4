package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
)

// NotaHandler maneja las peticiones HTTP para Nota (protegido).
type NotaHandler struct {
	uc *usecase.NotaUseCase
}

// NewNotaHandler construye el handler.
func NewNotaHandler(uc *usecase.NotaUseCase) *NotaHandler {
	return &NotaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota
// @Tags         notas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotaRequest  true  "Datos de la nota"
// @Success      201   {object}  dto.NotaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notas [post]
func (h *NotaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Titulo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "titulo es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar notas visibles
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda en título y contenido"
// @Param        categoria  query  string  false  "Filtrar por categoría"
// @Param        etiqueta   query  string  false  "Filtrar por etiqueta exacta"
// @Param        prioridad  query  string  false  "baja | media | alta"
// @Success      200  {object}  dto.NotaListResponse
// @Router       /api/notas [get]
func (h *NotaHandler) List(c *fiber.Ctx) error {
	var in dto.NotaListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query params inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener nota por ID
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.NotaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notas/{id} [get]
func (h *NotaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nota (PATCH parcial)
// @Tags         notas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdateNotaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.NotaResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notas/{id} [patch]
func (h *NotaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar nota (solo admin)
// @Tags         notas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la nota"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notas/{id} [delete]
func (h *NotaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
