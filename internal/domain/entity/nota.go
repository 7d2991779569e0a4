package entity

import "time"

// Prioridades válidas para Nota.
const (
	PrioridadBaja  = "baja"
	PrioridadMedia = "media"
	PrioridadAlta  = "alta"
)

// Nota es un apunte libre, opcionalmente categorizado y etiquetado.
// Autor cumple el mismo papel que CreadoPor en el resto de los recursos.
type Nota struct {
	ID          string
	Titulo      string
	TituloCI    string
	Contenido   string
	ContenidoCI string
	Categoria   string
	Etiquetas   []string
	Prioridad   string // baja | media | alta
	Autor       string // email del autor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
