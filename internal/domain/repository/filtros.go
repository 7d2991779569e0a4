package repository

import "time"

// FiltroTenant es el predicado de visibilidad multi-tenant: el conjunto de
// emails creadores cuyos registros puede ver el solicitante. Los adaptadores
// lo traducen a `creado_por = ANY($n)`.
type FiltroTenant struct {
	Emails []string
}

// Incluye indica si un email creador está cubierto por el filtro.
func (f FiltroTenant) Incluye(email string) bool {
	for _, e := range f.Emails {
		if e == email {
			return true
		}
	}
	return false
}

// Pagina paginación común de listados.
type Pagina struct {
	Limit  int
	Offset int
}

// CultivoFiltro criterios de listado de cultivos. Q debe llegar ya plegado
// (pkg/normalizar); se compara contra las columnas *_ci.
type CultivoFiltro struct {
	Q      string
	Activo *bool
	Sort   string // "campo:asc|desc"; campos permitidos en el adaptador
	Pagina
}

// TareaFiltro criterios de listado de tareas.
type TareaFiltro struct {
	Q         string
	Estado    string
	Tipo      string
	CultivoID string
	Desde     *time.Time
	Hasta     *time.Time
	Sort      string
	Pagina
}

// NotaFiltro criterios de listado de notas.
type NotaFiltro struct {
	Q         string
	Categoria string
	Etiqueta  string
	Prioridad string
	Sort      string
	Pagina
}
