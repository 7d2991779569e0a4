package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCultivoRequest entrada para crear un cultivo (solo admin).
type CreateCultivoRequest struct {
	Nombre      string          `json:"nombre"`
	Sustrato    string          `json:"sustrato"`
	Area        decimal.Decimal `json:"area"`
	FechaInicio time.Time       `json:"fechaInicio"`
	NumPlantas  int             `json:"numPlantas"`
}

// UpdateCultivoRequest PATCH parcial de un cultivo.
type UpdateCultivoRequest struct {
	Nombre      *string          `json:"nombre"`
	Sustrato    *string          `json:"sustrato"`
	Area        *decimal.Decimal `json:"area"`
	FechaInicio *time.Time       `json:"fechaInicio"`
	NumPlantas  *int             `json:"numPlantas"`
	Activo      *bool            `json:"activo"`
}

// CultivoResponse salida de un cultivo.
type CultivoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Sustrato    string          `json:"sustrato"`
	Area        decimal.Decimal `json:"area"`
	FechaInicio time.Time       `json:"fechaInicio"`
	NumPlantas  int             `json:"numPlantas"`
	CreadoPor   string          `json:"creadoPor"`
	Activo      bool            `json:"activo"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CultivoListRequest criterios de listado (query params).
type CultivoListRequest struct {
	Q      string `query:"q"`
	Activo *bool  `query:"activo"`
	Sort   string `query:"sort"`
	PageRequest
}

// CultivoListResponse listado paginado de cultivos.
type CultivoListResponse struct {
	Cultivos []CultivoResponse `json:"cultivos"`
	Page     PageResponse      `json:"page"`
}
