package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain"
)

// ChatUseCase proxy del asistente IA. Aplica un timeout de 10 segundos en
// cada llamada al workflow para que las latencias externas no bloqueen los
// goroutines del servidor.
type ChatUseCase struct {
	workflow ports.ChatWorkflow
}

// NewChatUseCase construye el caso de uso inyectando el puerto ChatWorkflow.
func NewChatUseCase(workflow ports.ChatWorkflow) *ChatUseCase {
	return &ChatUseCase{workflow: workflow}
}

// Preguntar valida la entrada y delega al workflow externo.
func (uc *ChatUseCase) Preguntar(ctx context.Context, p authz.Principal, in dto.ChatRequest) (*dto.ChatResponse, error) {
	if in.Mensaje == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	respuesta, err := uc.workflow.Preguntar(ctx, in.Mensaje, in.Contexto, p.Email)
	if err != nil {
		return nil, fmt.Errorf("chat IA: %w", err)
	}
	return &dto.ChatResponse{Respuesta: respuesta}, nil
}
