package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain"
)

// responderError mapea errores de dominio al cuerpo y status HTTP. Los fallos
// del servicio de autorización se responden 503 para que el cliente reintente
// en lugar de recibir un listado silenciosamente recortado.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authz.ErrNoDisponible):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTHZ_UNAVAILABLE", Message: "autorización no disponible, reintente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin permiso sobre el recurso"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "imagen sobre el máximo de 8 MiB"})
	case errors.Is(err, domain.ErrUnsupportedMedia):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_MEDIA", Message: "solo se aceptan imágenes"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
