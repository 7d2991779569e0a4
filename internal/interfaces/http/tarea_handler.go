package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
)

// TareaHandler maneja las peticiones HTTP para Tarea (protegido).
type TareaHandler struct {
	uc *usecase.TareaUseCase
}

// NewTareaHandler construye el handler.
func NewTareaHandler(uc *usecase.TareaUseCase) *TareaHandler {
	return &TareaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTareaRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tareas [post]
func (h *TareaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTareaRequest
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
// @Summary      Listar tareas visibles
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        q           query  string  false  "Búsqueda por título"
// @Param        estado      query  string  false  "pendiente | en_progreso | completada | cancelada"
// @Param        cultivo_id  query  string  false  "Filtrar por cultivo"
// @Param        desde       query  string  false  "YYYY-MM-DD"
// @Param        hasta       query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.TareaListResponse
// @Router       /api/tareas [get]
func (h *TareaHandler) List(c *fiber.Ctx) error {
	var in dto.TareaListRequest
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
// @Summary      Obtener tarea por ID
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [get]
func (h *TareaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarea (PATCH parcial)
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateTareaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TareaResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [patch]
func (h *TareaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarea no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea (solo admin)
// @Tags         tareas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarea"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tareas/{id} [delete]
func (h *TareaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
