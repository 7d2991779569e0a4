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

// NotaUseCase CRUD de notas. El campo autor cumple el rol de creadoPor.
type NotaUseCase struct {
	repo  repository.NotaRepository
	authz *authz.Service
}

// NewNotaUseCase construye el caso de uso.
func NewNotaUseCase(repo repository.NotaRepository, az *authz.Service) *NotaUseCase {
	return &NotaUseCase{repo: repo, authz: az}
}

// Create crea una nota con autor sellado por el servidor. Prioridad por defecto: media.
func (uc *NotaUseCase) Create(ctx context.Context, p authz.Principal, in dto.CreateNotaRequest) (*dto.NotaResponse, error) {
	prioridad := in.Prioridad
	if prioridad == "" {
		prioridad = entity.PrioridadMedia
	}
	if prioridad != entity.PrioridadBaja && prioridad != entity.PrioridadMedia && prioridad != entity.PrioridadAlta {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	n := &entity.Nota{
		ID:          uuid.New().String(),
		Titulo:      in.Titulo,
		TituloCI:    normalizar.Fold(in.Titulo),
		Contenido:   in.Contenido,
		ContenidoCI: normalizar.Fold(in.Contenido),
		Categoria:   in.Categoria,
		Etiquetas:   in.Etiquetas,
		Prioridad:   prioridad,
		Autor:       p.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNotaResponse(n), nil
}

// List lista las notas visibles para el principal.
func (uc *NotaUseCase) List(ctx context.Context, p authz.Principal, in dto.NotaListRequest) (*dto.NotaListResponse, error) {
	tenant, err := uc.authz.ConstruirFiltroUsuario(ctx, p)
	if err != nil {
		return nil, err
	}
	in.DefaultPage()
	f := repository.NotaFiltro{
		Q:         normalizar.Fold(in.Q),
		Categoria: in.Categoria,
		Etiqueta:  in.Etiqueta,
		Prioridad: in.Prioridad,
		Sort:      in.Sort,
		Pagina:    repository.Pagina{Limit: in.Limit, Offset: in.Offset},
	}
	list, total, err := uc.repo.List(ctx, tenant, f)
	if err != nil {
		return nil, err
	}
	out := &dto.NotaListResponse{
		Notas: make([]dto.NotaResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, n := range list {
		out.Notas = append(out.Notas, *toNotaResponse(n))
	}
	return out, nil
}

// GetByID devuelve una nota visible. (nil, nil) si no existe.
func (uc *NotaUseCase) GetByID(ctx context.Context, p authz.Principal, id string) (*dto.NotaResponse, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeAccederARecurso(ctx, p, n.Autor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	return toNotaResponse(n), nil
}

// Update aplica un PATCH parcial, sujeto a PuedeEditarRecurso sobre el autor.
func (uc *NotaUseCase) Update(ctx context.Context, p authz.Principal, id string, in dto.UpdateNotaRequest) (*dto.NotaResponse, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	ok, err := uc.authz.PuedeEditarRecurso(ctx, p, n.Autor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Titulo != nil {
		n.Titulo = *in.Titulo
		n.TituloCI = normalizar.Fold(*in.Titulo)
	}
	if in.Contenido != nil {
		n.Contenido = *in.Contenido
		n.ContenidoCI = normalizar.Fold(*in.Contenido)
	}
	if in.Categoria != nil {
		n.Categoria = *in.Categoria
	}
	if in.Etiquetas != nil {
		n.Etiquetas = *in.Etiquetas
	}
	if in.Prioridad != nil {
		if *in.Prioridad != entity.PrioridadBaja && *in.Prioridad != entity.PrioridadMedia && *in.Prioridad != entity.PrioridadAlta {
			return nil, domain.ErrInvalidInput
		}
		n.Prioridad = *in.Prioridad
	}
	n.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNotaResponse(n), nil
}

// Delete elimina una nota, solo admins con acceso.
func (uc *NotaUseCase) Delete(ctx context.Context, p authz.Principal, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	ok, err := uc.authz.PuedeEliminarRecurso(ctx, p, n.Autor)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func toNotaResponse(n *entity.Nota) *dto.NotaResponse {
	etiquetas := n.Etiquetas
	if etiquetas == nil {
		etiquetas = []string{}
	}
	return &dto.NotaResponse{
		ID:        n.ID,
		Titulo:    n.Titulo,
		Contenido: n.Contenido,
		Categoria: n.Categoria,
		Etiquetas: etiquetas,
		Prioridad: n.Prioridad,
		Autor:     n.Autor,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
