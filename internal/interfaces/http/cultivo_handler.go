package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
)

// CultivoHandler maneja las peticiones HTTP para Cultivo (protegido).
type CultivoHandler struct {
	uc      *usecase.CultivoUseCase
	reporte *usecase.ReporteUseCase
}

// NewCultivoHandler construye el handler.
func NewCultivoHandler(uc *usecase.CultivoUseCase, reporte *usecase.ReporteUseCase) *CultivoHandler {
	return &CultivoHandler{uc: uc, reporte: reporte}
}

// Create godoc
// @Summary      Crear cultivo (solo admin)
// @Tags         cultivos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCultivoRequest  true  "Datos del cultivo"
// @Success      201   {object}  dto.CultivoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/cultivos [post]
func (h *CultivoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCultivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.Create(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cultivos visibles
// @Tags         cultivos
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por nombre o sustrato"
// @Param        activo  query  bool    false  "Filtrar por estado activo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CultivoListResponse
// @Router       /api/cultivos [get]
func (h *CultivoHandler) List(c *fiber.Ctx) error {
	var in dto.CultivoListRequest
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
// @Summary      Obtener cultivo por ID
// @Tags         cultivos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cultivo"
// @Success      200  {object}  dto.CultivoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cultivos/{id} [get]
func (h *CultivoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cultivo no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cultivo (PATCH parcial)
// @Tags         cultivos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cultivo"
// @Param        body  body  dto.UpdateCultivoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CultivoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cultivos/{id} [patch]
func (h *CultivoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCultivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cultivo no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cultivo (solo admin)
// @Tags         cultivos
// @Security     Bearer
// @Param        id  path  string  true  "ID del cultivo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cultivos/{id} [delete]
func (h *CultivoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetPrincipal(c), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reporte godoc
// @Summary      Descargar reporte PDF del cultivo
// @Tags         cultivos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del cultivo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cultivos/{id}/reporte [get]
func (h *CultivoHandler) Reporte(c *fiber.Ctx) error {
	pdfBytes, err := h.reporte.GenerarReporteCultivo(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if pdfBytes == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cultivo no encontrado"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-cultivo.pdf"`)
	return c.Send(pdfBytes)
}
