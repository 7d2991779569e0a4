package ports

import "context"

// ChatWorkflow define el puerto de salida hacia el motor de workflows que
// atiende el asistente IA. El adaptador normaliza la respuesta heterogénea
// del webhook y devuelve solo el texto. El contexto debe llevar un timeout
// para evitar bloqueos en llamadas externas.
type ChatWorkflow interface {
	Preguntar(ctx context.Context, mensaje, contexto, usuarioEmail string) (string, error)
}
