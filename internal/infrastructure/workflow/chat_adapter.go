// Package workflow implementa el adaptador hacia el motor de workflows que
// atiende el asistente IA de la aplicación. La API expone un proxy: el
// frontend nunca conoce la URL del webhook ni su token.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cultivapp/cultivos-api/internal/application/ports"
)

var _ ports.ChatWorkflow = (*ChatAdapter)(nil)

// ChatAdapter implementa ChatWorkflow contra el webhook HTTP del workflow.
// Usa net/http de la librería estándar; el webhook no tiene SDK.
type ChatAdapter struct {
	webhookURL string
	authToken  string
	httpClient *http.Client
}

// NewChatAdapter construye el adaptador. Si webhookURL está vacío las
// llamadas devuelven error descriptivo en lugar de panic.
func NewChatAdapter(webhookURL, authToken string) *ChatAdapter {
	return &ChatAdapter{
		webhookURL: webhookURL,
		authToken:  authToken,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

type chatRequest struct {
	Mensaje  string `json:"mensaje"`
	Contexto string `json:"contexto,omitempty"`
	Usuario  string `json:"usuario"`
}

// Preguntar envía el mensaje al workflow y devuelve el texto de la respuesta.
func (a *ChatAdapter) Preguntar(ctx context.Context, mensaje, contexto, usuarioEmail string) (string, error) {
	if a.webhookURL == "" {
		return "", fmt.Errorf("chat: CHAT_WEBHOOK_URL no configurado")
	}

	body, err := json.Marshal(chatRequest{Mensaje: mensaje, Contexto: contexto, Usuario: usuarioEmail})
	if err != nil {
		return "", fmt.Errorf("chat: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.authToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("chat: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("chat: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("chat: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat: workflow HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	texto, err := extraerTexto(rawBody)
	if err != nil {
		return "", err
	}
	return texto, nil
}

// extraerTexto normaliza la respuesta heterogénea del workflow. Los motores
// devuelven según versión: {"output": "..."}, {"text": "..."},
// {"respuesta": "..."}, un array con uno de esos objetos, o texto plano.
func extraerTexto(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("chat: workflow devolvió respuesta vacía")
	}

	// Array: tomar el primer elemento.
	if trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil || len(arr) == 0 {
			return "", fmt.Errorf("chat: respuesta del workflow no reconocida: %s", string(trimmed))
		}
		trimmed = bytes.TrimSpace(arr[0])
	}

	if trimmed[0] == '{' {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return "", fmt.Errorf("chat: deserializar respuesta del workflow: %w", err)
		}
		for _, campo := range []string{"output", "text", "respuesta", "message"} {
			if v, ok := obj[campo]; ok {
				var s string
				if err := json.Unmarshal(v, &s); err == nil && strings.TrimSpace(s) != "" {
					return s, nil
				}
			}
		}
		return "", fmt.Errorf("chat: respuesta del workflow sin campo de texto: %s", string(trimmed))
	}

	// Texto plano, posiblemente un string JSON.
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, nil
	}
	return string(trimmed), nil
}
