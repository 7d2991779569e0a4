package ports

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// ReportePDFGenerator genera el reporte de estado de un cultivo: ficha del
// cultivo más sus tareas y notas visibles para quien lo pide.
type ReportePDFGenerator interface {
	GenerarReporteCultivo(ctx context.Context, c *entity.Cultivo, tareas []*entity.Tarea, notas []*entity.Nota) ([]byte, error)
}
