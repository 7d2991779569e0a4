package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cultivo es un proyecto de cultivo en seguimiento.
type Cultivo struct {
	ID          string
	Nombre      string
	NombreCI    string // copia plegada (minúsculas sin diacríticos) para búsqueda
	Sustrato    string
	Area        decimal.Decimal // m²
	FechaInicio time.Time
	NumPlantas  int
	CreadoPor   string // email del creador (sello de auditoría del servidor)
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
