package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
)

// GaleriaHandler subida de imágenes de la galería (protegido).
type GaleriaHandler struct {
	uc *usecase.GaleriaUseCase
}

// NewGaleriaHandler construye el handler.
func NewGaleriaHandler(uc *usecase.GaleriaUseCase) *GaleriaHandler {
	return &GaleriaHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen a la galería
// @Tags         galeria
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        imagen  formData  file  true  "Imagen (máx 8 MiB)"
// @Success      201  {object}  dto.UploadResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/galeria/upload [post]
func (h *GaleriaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart 'imagen' requerido"})
	}
	if fileHeader.Size > usecase.MaxImagenBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "imagen sobre el máximo de 8 MiB"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return responderError(c, err)
	}
	defer f.Close()
	datos, err := io.ReadAll(io.LimitReader(f, usecase.MaxImagenBytes+1))
	if err != nil {
		return responderError(c, err)
	}

	out, err := h.uc.Subir(c.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), datos)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
