package entity

import "time"

// Estados habituales de una Tarea. El campo es texto libre: la API acepta
// otros valores, estos son los que usa la interfaz.
const (
	TareaPendiente  = "pendiente"
	TareaEnProgreso = "en_progreso"
	TareaCompletada = "completada"
	TareaCancelada  = "cancelada"
)

// Tarea es una actividad programada, opcionalmente ligada a un Cultivo.
type Tarea struct {
	ID         string
	Titulo     string
	TituloCI   string // copia plegada para búsqueda
	Tipo       string // riego, poda, fertilización, ... (texto libre)
	Estado     string
	Fecha      time.Time
	Hora       string // "HH:MM", vacío si no aplica
	Recurrente bool
	CultivoID  string // opcional
	CreadoPor  string
	EditadoPor string // último editor, vacío hasta el primer PATCH
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
