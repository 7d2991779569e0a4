// Package pdf genera el reporte de estado de un cultivo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del cultivo  │  Fecha del reporte           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: Sustrato / Área / Plantas / Inicio / Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA TAREAS: Fecha | Título | Tipo | Estado                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS: Título + prioridad + extracto del contenido          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

var _ ports.ReportePDFGenerator = (*MarotoReporteGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReporteGenerator implementa ReportePDFGenerator usando Maroto v2.
type MarotoReporteGenerator struct{}

// NewMarotoReporteGenerator construye el generador.
func NewMarotoReporteGenerator() *MarotoReporteGenerator { return &MarotoReporteGenerator{} }

// GenerarReporteCultivo genera el PDF y devuelve sus bytes.
func (g *MarotoReporteGenerator) GenerarReporteCultivo(
	_ context.Context,
	c *entity.Cultivo,
	tareas []*entity.Tarea,
	notas []*entity.Nota,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de cultivo "+c.Nombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(fichaRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("TAREAS (%d)", len(tareas))))
	if len(tareas) == 0 {
		m.AddRows(emptyRow("Sin tareas registradas."))
	} else {
		m.AddRows(tareasHeaderRow())
		for _, r := range tareasRows(tareas) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow(fmt.Sprintf("NOTAS (%d)", len(notas))))
	if len(notas) == 0 {
		m.AddRows(emptyRow("Sin notas registradas."))
	} else {
		for _, r := range notasRows(notas) {
			m.AddRows(r...)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del cultivo (izq) y fecha del reporte (der).
func headerRow(c *entity.Cultivo) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(c.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de estado del cultivo", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// fichaRow: datos generales del cultivo.
func fichaRow(c *entity.Cultivo) core.Row {
	estado := "Activo"
	if !c.Activo {
		estado = "Finalizado"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FICHA DEL CULTIVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Sustrato: %s   |   Área: %s m²   |   Plantas: %d   |   Inicio: %s   |   Estado: %s",
				nonEmpty(c.Sustrato, "—"),
				c.Area.StringFixed(2),
				c.NumPlantas,
				c.FechaInicio.Format("02/01/2006"),
				estado,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionTitleRow(titulo string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
	))
}

// tareasHeaderRow: cabecera de la tabla de tareas.
func tareasHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1,
		}))
	}
	return row.New(7).Add(
		h("Fecha", 2, align.Left),
		h("Título", 5, align.Left),
		h("Tipo", 2, align.Left),
		h("Estado", 3, align.Left),
	)
}

// tareasRows: una fila por tarea.
func tareasRows(tareas []*entity.Tarea) []core.Row {
	result := make([]core.Row, 0, len(tareas))
	for _, t := range tareas {
		fecha := t.Fecha.Format("02/01/2006")
		if t.Hora != "" {
			fecha += " " + t.Hora
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(fecha, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(t.Titulo, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(t.Tipo, "—"), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(t.Estado, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return result
}

// notasRows: título + prioridad y extracto del contenido por nota.
func notasRows(notas []*entity.Nota) [][]core.Row {
	result := make([][]core.Row, 0, len(notas))
	for _, n := range notas {
		result = append(result, []core.Row{
			row.New(6).Add(col.New(12).Add(
				text.New(fmt.Sprintf("%s  [%s]", n.Titulo, n.Prioridad), props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
				}),
			)),
			row.New(6).Add(col.New(12).Add(
				text.New(truncar(n.Contenido, 180), props.Text{
					Size: 7.5, Top: 0.5, Left: 3, Color: colorGray,
				}),
			)),
		})
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// truncar corta s a max runas añadiendo elipsis.
func truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
