package dto

import "time"

// CreateTareaRequest entrada para crear una tarea.
type CreateTareaRequest struct {
	Titulo     string    `json:"titulo"`
	Tipo       string    `json:"tipo"`
	Estado     string    `json:"estado"` // por defecto "pendiente"
	Fecha      time.Time `json:"fecha"`
	Hora       string    `json:"hora"`
	Recurrente bool      `json:"recurrente"`
	CultivoID  string    `json:"cultivoId"`
}

// UpdateTareaRequest PATCH parcial de una tarea.
type UpdateTareaRequest struct {
	Titulo     *string    `json:"titulo"`
	Tipo       *string    `json:"tipo"`
	Estado     *string    `json:"estado"`
	Fecha      *time.Time `json:"fecha"`
	Hora       *string    `json:"hora"`
	Recurrente *bool      `json:"recurrente"`
	CultivoID  *string    `json:"cultivoId"`
}

// TareaResponse salida de una tarea.
type TareaResponse struct {
	ID         string    `json:"id"`
	Titulo     string    `json:"titulo"`
	Tipo       string    `json:"tipo"`
	Estado     string    `json:"estado"`
	Fecha      time.Time `json:"fecha"`
	Hora       string    `json:"hora,omitempty"`
	Recurrente bool      `json:"recurrente"`
	CultivoID  string    `json:"cultivoId,omitempty"`
	CreadoPor  string    `json:"creadoPor"`
	EditadoPor string    `json:"editadoPor,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TareaListRequest criterios de listado (query params).
type TareaListRequest struct {
	Q         string `query:"q"`
	Estado    string `query:"estado"`
	Tipo      string `query:"tipo"`
	CultivoID string `query:"cultivo_id"`
	Desde     string `query:"desde"` // YYYY-MM-DD
	Hasta     string `query:"hasta"` // YYYY-MM-DD
	Sort      string `query:"sort"`
	PageRequest
}

// TareaListResponse listado paginado de tareas.
type TareaListResponse struct {
	Tareas []TareaResponse `json:"tareas"`
	Page   PageResponse    `json:"page"`
}
