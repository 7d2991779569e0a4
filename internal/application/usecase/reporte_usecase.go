package usecase

import (
	"context"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

// ReporteUseCase genera el PDF de estado de un cultivo: ficha, tareas del
// cultivo y últimas notas visibles para el solicitante.
type ReporteUseCase struct {
	cultivos repository.CultivoRepository
	tareas   repository.TareaRepository
	notas    repository.NotaRepository
	authz    *authz.Service
	pdf      ports.ReportePDFGenerator
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(
	cultivos repository.CultivoRepository,
	tareas repository.TareaRepository,
	notas repository.NotaRepository,
	az *authz.Service,
	pdf ports.ReportePDFGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{cultivos: cultivos, tareas: tareas, notas: notas, authz: az, pdf: pdf}
}

// GenerarReporteCultivo devuelve los bytes del PDF.
// (nil, nil) si el cultivo no existe; ErrForbidden si no es visible.
func (uc *ReporteUseCase) GenerarReporteCultivo(ctx context.Context, p authz.Principal, cultivoID string) ([]byte, error) {
	c, err := uc.cultivos.GetByID(ctx, cultivoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeAccederARecurso(ctx, p, c.CreadoPor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}

	tenant, err := uc.authz.ConstruirFiltroUsuario(ctx, p)
	if err != nil {
		return nil, err
	}
	tareas, _, err := uc.tareas.List(ctx, tenant, repository.TareaFiltro{
		CultivoID: c.ID,
		Sort:      "fecha:asc",
		Pagina:    repository.Pagina{Limit: 100},
	})
	if err != nil {
		return nil, err
	}
	notas, _, err := uc.notas.List(ctx, tenant, repository.NotaFiltro{
		Sort:   "created_at:desc",
		Pagina: repository.Pagina{Limit: 20},
	})
	if err != nil {
		return nil, err
	}

	return uc.pdf.GenerarReporteCultivo(ctx, c, tareas, notas)
}
