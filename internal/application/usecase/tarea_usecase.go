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

// TareaUseCase CRUD de tareas con visibilidad multi-tenant.
// A diferencia de cultivos, crear tareas está abierto a ambos roles.
type TareaUseCase struct {
	repo  repository.TareaRepository
	authz *authz.Service
}

// NewTareaUseCase construye el caso de uso.
func NewTareaUseCase(repo repository.TareaRepository, az *authz.Service) *TareaUseCase {
	return &TareaUseCase{repo: repo, authz: az}
}

// Create crea una tarea sellando creadoPor. Estado por defecto: pendiente.
func (uc *TareaUseCase) Create(ctx context.Context, p authz.Principal, in dto.CreateTareaRequest) (*dto.TareaResponse, error) {
	now := time.Now()
	estado := in.Estado
	if estado == "" {
		estado = entity.TareaPendiente
	}
	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = now
	}
	t := &entity.Tarea{
		ID:         uuid.New().String(),
		Titulo:     in.Titulo,
		TituloCI:   normalizar.Fold(in.Titulo),
		Tipo:       in.Tipo,
		Estado:     estado,
		Fecha:      fecha,
		Hora:       in.Hora,
		Recurrente: in.Recurrente,
		CultivoID:  in.CultivoID,
		CreadoPor:  p.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// List lista las tareas visibles para el principal.
// Desde/Hasta llegan como "YYYY-MM-DD"; un formato inválido es ErrInvalidInput.
func (uc *TareaUseCase) List(ctx context.Context, p authz.Principal, in dto.TareaListRequest) (*dto.TareaListResponse, error) {
	tenant, err := uc.authz.ConstruirFiltroUsuario(ctx, p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.TareaFiltro{
		Q:         normalizar.Fold(in.Q),
		Estado:    in.Estado,
		Tipo:      in.Tipo,
		CultivoID: in.CultivoID,
		Sort:      in.Sort,
		Pagina:    repository.Pagina{Limit: in.Limit, Offset: in.Offset},
	}
	if in.Desde != "" {
		d, err := time.Parse("2006-01-02", in.Desde)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.Desde = &d
	}
	if in.Hasta != "" {
		h, err := time.Parse("2006-01-02", in.Hasta)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo: el rango cubre todo el día "hasta".
		h = h.Add(24*time.Hour - time.Nanosecond)
		f.Hasta = &h
	}
	list, total, err := uc.repo.List(ctx, tenant, f)
	if err != nil {
		return nil, err
	}
	out := &dto.TareaListResponse{
		Tareas: make([]dto.TareaResponse, 0, len(list)),
		Page:   dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, t := range list {
		out.Tareas = append(out.Tareas, *toTareaResponse(t))
	}
	return out, nil
}

// GetByID devuelve una tarea visible. (nil, nil) si no existe.
func (uc *TareaUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.TareaResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeAccederARecurso(ctx, p, t.CreadoPor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return toTareaResponse(t), nil
}

// Update aplica un PATCH parcial y sella editadoPor con el principal.
func (uc *TareaUseCase) Update(ctx context.Context, p authz.Principal, id string, in dto.UpdateTareaRequest) (*dto.TareaResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeEditarRecurso(ctx, p, t.CreadoPor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Titulo != nil {
		t.Titulo = *in.Titulo
		t.TituloCI = normalizar.Fold(*in.Titulo)
	}
	if in.Tipo != nil {
		t.Tipo = *in.Tipo
	}
	if in.Estado != nil {
		t.Estado = *in.Estado
	}
	if in.Fecha != nil {
		t.Fecha = *in.Fecha
	}
	if in.Hora != nil {
		t.Hora = *in.Hora
	}
	if in.Recurrente != nil {
		t.Recurrente = *in.Recurrente
	}
	if in.CultivoID != nil {
		t.CultivoID = *in.CultivoID
	}
	t.EditadoPor = p.Email
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTareaResponse(t), nil
}

// Delete elimina una tarea, solo admins con acceso.
func (uc *TareaUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.authz.PuedeEliminarRecurso(ctx, p, t.CreadoPor)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func toTareaResponse(t *entity.Tarea) *dto.TareaResponse {
	return &dto.TareaResponse{
		ID:         t.ID,
		Titulo:     t.Titulo,
		Tipo:       t.Tipo,
		Estado:     t.Estado,
		Fecha:      t.Fecha,
		Hora:       t.Hora,
		Recurrente: t.Recurrente,
		CultivoID:  t.CultivoID,
		CreadoPor:  t.CreadoPor,
		EditadoPor: t.EditadoPor,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
