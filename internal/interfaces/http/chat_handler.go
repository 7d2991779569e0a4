package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
	"github.com/cultivapp/cultivos-api/pkg/logger"
)

// ChatHandler proxy del asistente IA (protegido). La URL y el token del
// workflow nunca llegan al cliente.
type ChatHandler struct {
	uc  *usecase.ChatUseCase
	log *logger.Logger
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, log: log.Componente("chat")}
}

// Preguntar godoc
// @Summary      Consultar al asistente IA
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje y contexto opcional"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Preguntar(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Mensaje == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensaje es requerido"})
	}
	out, err := h.uc.Preguntar(c.Context(), GetPrincipal(c), in)
	if err != nil {
		h.log.Error().Err(err).Str("usuario", GetEmail(c)).Msg("fallo del workflow IA")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "CHAT_UNAVAILABLE", Message: "el asistente no está disponible, intente más tarde"})
	}
	return c.JSON(out)
}
