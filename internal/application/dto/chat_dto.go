package dto

// ChatRequest mensaje del usuario hacia el asistente IA.
type ChatRequest struct {
	Mensaje  string `json:"mensaje"`
	Contexto string `json:"contexto,omitempty"` // ej. id del cultivo que se está viendo
}

// ChatResponse respuesta ya normalizada del workflow.
type ChatResponse struct {
	Respuesta string `json:"respuesta"`
}
