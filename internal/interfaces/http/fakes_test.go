package http_test

import (
	"context"
	"sync"

	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
)

// Repos en memoria para los tests de handlers. Implementan los puertos de
// dominio sin base de datos; la visibilidad multi-tenant se aplica con
// FiltroTenant.Incluye igual que los adaptadores reales.

type usuariosMem struct {
	mu sync.Mutex
	m  map[string]*entity.Usuario
}

func newUsuariosMem(usuarios ...*entity.Usuario) *usuariosMem {
	f := &usuariosMem{m: make(map[string]*entity.Usuario)}
	for _, u := range usuarios {
		f.m[u.Email] = u
	}
	return f
}

func (f *usuariosMem) Create(_ context.Context, u *entity.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[u.Email] = u
	return nil
}

func (f *usuariosMem) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[email], nil
}

func (f *usuariosMem) Update(_ context.Context, u *entity.Usuario) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[u.Email] = u
	return nil
}

func (f *usuariosMem) EmailsCreadosPor(_ context.Context, adminEmail string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, u := range f.m {
		if u.CreadoPor == adminEmail {
			out = append(out, u.Email)
		}
	}
	return out, nil
}

func (f *usuariosMem) ListByCreador(_ context.Context, adminEmail string, limit, offset int) ([]*entity.Usuario, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var todos []*entity.Usuario
	for _, u := range f.m {
		if u.CreadoPor == adminEmail {
			todos = append(todos, u)
		}
	}
	total := len(todos)
	if offset >= total {
		return nil, total, nil
	}
	fin := offset + limit
	if fin > total {
		fin = total
	}
	return todos[offset:fin], total, nil
}

type cultivosMem struct {
	mu sync.Mutex
	m  map[string]*entity.Cultivo
}

func newCultivosMem(cultivos ...*entity.Cultivo) *cultivosMem {
	f := &cultivosMem{m: make(map[string]*entity.Cultivo)}
	for _, c := range cultivos {
		f.m[c.ID] = c
	}
	return f
}

func (f *cultivosMem) Create(_ context.Context, c *entity.Cultivo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[c.ID] = c
	return nil
}

func (f *cultivosMem) GetByID(_ context.Context, id string) (*entity.Cultivo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[id], nil
}

func (f *cultivosMem) Update(_ context.Context, c *entity.Cultivo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[c.ID] = c
	return nil
}

func (f *cultivosMem) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, id)
	return nil
}

func (f *cultivosMem) List(_ context.Context, tenant repository.FiltroTenant, _ repository.CultivoFiltro) ([]*entity.Cultivo, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Cultivo
	for _, c := range f.m {
		if tenant.Incluye(c.CreadoPor) {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

type notasMem struct {
	mu sync.Mutex
	m  map[string]*entity.Nota
}

func newNotasMem(notas ...*entity.Nota) *notasMem {
	f := &notasMem{m: make(map[string]*entity.Nota)}
	for _, n := range notas {
		f.m[n.ID] = n
	}
	return f
}

func (f *notasMem) Create(_ context.Context, n *entity.Nota) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[n.ID] = n
	return nil
}

func (f *notasMem) GetByID(_ context.Context, id string) (*entity.Nota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.m[id], nil
}

func (f *notasMem) Update(_ context.Context, n *entity.Nota) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[n.ID] = n
	return nil
}

func (f *notasMem) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, id)
	return nil
}

func (f *notasMem) List(_ context.Context, tenant repository.FiltroTenant, _ repository.NotaFiltro) ([]*entity.Nota, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Nota
	for _, n := range f.m {
		if tenant.Incluye(n.Autor) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}
