package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
	"github.com/cultivapp/cultivos-api/pkg/normalizar"
)

// CultivoUseCase CRUD de cultivos con visibilidad multi-tenant.
type CultivoUseCase struct {
	repo  repository.CultivoRepository
	authz *authz.Service
}

// NewCultivoUseCase construye el caso de uso.
func NewCultivoUseCase(repo repository.CultivoRepository, az *authz.Service) *CultivoUseCase {
	return &CultivoUseCase{repo: repo, authz: az}
}

// Create crea un cultivo sellando creadoPor con el email del principal.
// El rol admin lo exige la ruta (RequireRole); aquí solo se sella auditoría.
func (uc *CultivoUseCase) Create(ctx context.Context, p authz.Principal, in dto.CreateCultivoRequest) (*dto.CultivoResponse, error) {
	now := time.Now()
	fechaInicio := in.FechaInicio
	if fechaInicio.IsZero() {
		fechaInicio = now
	}
	c := &entity.Cultivo{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		NombreCI:    normalizar.Fold(in.Nombre),
		Sustrato:    in.Sustrato,
		Area:        in.Area,
		FechaInicio: fechaInicio,
		NumPlantas:  in.NumPlantas,
		CreadoPor:   p.Email,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCultivoResponse(c), nil
}

// List lista los cultivos visibles para el principal según el filtro multi-tenant.
func (uc *CultivoUseCase) List(ctx context.Context, p authz.Principal, in dto.CultivoListRequest) (*dto.CultivoListResponse, error) {
	tenant, err := uc.authz.ConstruirFiltroUsuario(ctx, p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.CultivoFiltro{
		Q:      normalizar.Fold(in.Q),
		Activo: in.Activo,
		Sort:   in.Sort,
		Pagina: repository.Pagina{Limit: in.Limit, Offset: in.Offset},
	}
	list, total, err := uc.repo.List(ctx, tenant, f)
	if err != nil {
		return nil, err
	}
	out := &dto.CultivoListResponse{
		Cultivos: make([]dto.CultivoResponse, 0, len(list)),
		Page:     dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, c := range list {
		out.Cultivos = append(out.Cultivos, *toCultivoResponse(c))
	}
	return out, nil
}

// GetByID devuelve un cultivo si el principal puede verlo.
// (nil, nil) cuando no existe; ErrForbidden cuando existe pero no es visible.
func (uc *CultivoUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.CultivoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
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
	return toCultivoResponse(c), nil
}

// Update aplica un PATCH parcial, sujeto a PuedeEditarRecurso.
func (uc *CultivoUseCase) Update(ctx context.Context, p authz.Principal, id string, in dto.UpdateCultivoRequest) (*dto.CultivoResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeEditarRecurso(ctx, p, c.CreadoPor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Nombre != nil {
		c.Nombre = *in.Nombre
		c.NombreCI = normalizar.Fold(*in.Nombre)
	}
	if in.Sustrato != nil {
		c.Sustrato = *in.Sustrato
	}
	if in.Area != nil {
		c.Area = *in.Area
	}
	if in.FechaInicio != nil {
		c.FechaInicio = *in.FechaInicio
	}
	if in.NumPlantas != nil {
		c.NumPlantas = *in.NumPlantas
	}
	if in.Activo != nil {
		c.Activo = *in.Activo
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCultivoResponse(c), nil
}

// Delete elimina un cultivo, sujeto a PuedeEliminarRecurso (solo admins).
// Devuelve ErrNotFound si no existe.
func (uc *CultivoUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.authz.PuedeEliminarRecurso(ctx, p, c.CreadoPor)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func toCultivoResponse(c *entity.Cultivo) *dto.CultivoResponse {
	return &dto.CultivoResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Sustrato:    c.Sustrato,
		Area:        c.Area,
		FechaInicio: c.FechaInicio,
		NumPlantas:  c.NumPlantas,
		CreadoPor:   c.CreadoPor,
		Activo:      c.Activo,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
