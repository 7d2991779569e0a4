package dto

import "time"

// CreateNotaRequest entrada para crear una nota.
type CreateNotaRequest struct {
	Titulo    string   `json:"titulo"`
	Contenido string   `json:"contenido"`
	Categoria string   `json:"categoria"`
	Etiquetas []string `json:"etiquetas"`
	Prioridad string   `json:"prioridad"` // por defecto "media"
}

// UpdateNotaRequest PATCH parcial de una nota.
type UpdateNotaRequest struct {
	Titulo    *string   `json:"titulo"`
	Contenido *string   `json:"contenido"`
	Categoria *string   `json:"categoria"`
	Etiquetas *[]string `json:"etiquetas"`
	Prioridad *string   `json:"prioridad"`
}

// NotaResponse salida de una nota.
type NotaResponse struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Contenido string    `json:"contenido"`
	Categoria string    `json:"categoria,omitempty"`
	Etiquetas []string  `json:"etiquetas"`
	Prioridad string    `json:"prioridad"`
	Autor     string    `json:"autor"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotaListRequest criterios de listado (query params).
type NotaListRequest struct {
	Q         string `query:"q"`
	Categoria string `query:"categoria"`
	Etiqueta  string `query:"etiqueta"`
	Prioridad string `query:"prioridad"`
	Sort      string `query:"sort"`
	PageRequest
}

// NotaListResponse listado paginado de notas.
type NotaListResponse struct {
	Notas []NotaResponse `json:"notas"`
	Page  PageResponse   `json:"page"`
}
