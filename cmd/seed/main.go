// seed genera un script SQL con datos de demostración: un admin raíz, una
// cuenta delegada y un puñado de cultivos, tareas y notas de ejemplo.
//
// Uso: go run ./cmd/seed [email-admin] [password-admin]
// Por defecto crea admin@cultivapp.local / cultivapp123.
// Escribe: migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cultivapp/cultivos-api/pkg/normalizar"
)

func main() {
	adminEmail := "admin@cultivapp.local"
	adminPass := "cultivapp123"
	if len(os.Args) > 1 {
		adminEmail = strings.ToLower(os.Args[1])
	}
	if len(os.Args) > 2 {
		adminPass = os.Args[2]
	}
	userEmail := "demo@cultivapp.local"
	userPass := "demo123"

	adminHash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash admin: %v\n", err)
		os.Exit(1)
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(userPass), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash user: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join("migrations", "002_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Datos de demostración generados el %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(out, "-- Credenciales: %s / %s  y  %s / %s\n\n", adminEmail, adminPass, userEmail, userPass)

	fmt.Fprintf(out, "INSERT INTO usuarios (id, email, password_hash, rol, creado_por, activo, exento_pago)\nVALUES\n")
	fmt.Fprintf(out, "  ('%s', '%s', '%s', 'admin', '', TRUE, TRUE),\n", uuid.New().String(), esc(adminEmail), esc(string(adminHash)))
	fmt.Fprintf(out, "  ('%s', '%s', '%s', 'user', '%s', TRUE, FALSE)\n", uuid.New().String(), esc(userEmail), esc(string(userHash)), esc(adminEmail))
	fmt.Fprint(out, "ON CONFLICT (email) DO NOTHING;\n\n")

	cultivos := []struct {
		nombre, sustrato string
		area             string
		plantas          int
	}{
		{"Tomates cherry", "fibra de coco", "12.50", 24},
		{"Lechugas hidropónicas", "lana de roca", "8.00", 60},
		{"Albahaca genovesa", "turba", "3.25", 18},
	}
	cultivoIDs := make([]string, 0, len(cultivos))
	fmt.Fprint(out, "INSERT INTO cultivos (id, nombre, nombre_ci, sustrato, area, fecha_inicio, num_plantas, creado_por, activo)\nVALUES\n")
	for i, c := range cultivos {
		id := uuid.New().String()
		cultivoIDs = append(cultivoIDs, id)
		sep := ","
		if i == len(cultivos)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %s, now() - interval '%d days', %d, '%s', TRUE)%s\n",
			id, esc(c.nombre), esc(normalizar.Fold(c.nombre)), esc(c.sustrato), c.area, 30*(i+1), c.plantas, esc(adminEmail), sep)
	}
	fmt.Fprint(out, "ON CONFLICT (id) DO NOTHING;\n\n")

	tareas := []struct {
		titulo, tipo, estado, creador string
		cultivoIdx                    int
	}{
		{"Riego por goteo matutino", "riego", "pendiente", adminEmail, 0},
		{"Poda de brotes laterales", "poda", "en_progreso", adminEmail, 0},
		{"Revisar pH de la solución", "fertilización", "pendiente", userEmail, 1},
		{"Cosecha semanal", "cosecha", "completada", userEmail, 2},
	}
	fmt.Fprint(out, "INSERT INTO tareas (id, titulo, titulo_ci, tipo, estado, fecha, recurrente, cultivo_id, creado_por)\nVALUES\n")
	for i, t := range tareas {
		sep := ","
		if i == len(tareas)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', '%s', now() + interval '%d days', %t, '%s', '%s')%s\n",
			uuid.New().String(), esc(t.titulo), esc(normalizar.Fold(t.titulo)), esc(t.tipo), t.estado,
			i, t.tipo == "riego", cultivoIDs[t.cultivoIdx], esc(t.creador), sep)
	}
	fmt.Fprint(out, "ON CONFLICT (id) DO NOTHING;\n\n")

	notas := []struct {
		titulo, contenido, categoria, prioridad, autor string
		etiquetas                                      []string
	}{
		{"Plaga de pulgón detectada", "Aparecieron pulgones en las hojas bajas del sector norte. Aplicar jabón potásico.", "sanidad", "alta", adminEmail, []string{"plagas", "urgente"}},
		{"Ajuste de nutrientes", "Subir EC a 1.8 durante la semana de floración.", "nutrición", "media", userEmail, []string{"hidroponia"}},
	}
	fmt.Fprint(out, "INSERT INTO notas (id, titulo, titulo_ci, contenido, contenido_ci, categoria, etiquetas, prioridad, autor)\nVALUES\n")
	for i, n := range notas {
		sep := ","
		if i == len(notas)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', '%s', '%s', '{%s}', '%s', '%s')%s\n",
			uuid.New().String(), esc(n.titulo), esc(normalizar.Fold(n.titulo)),
			esc(n.contenido), esc(normalizar.Fold(n.contenido)),
			esc(n.categoria), strings.Join(n.etiquetas, ","), n.prioridad, esc(n.autor), sep)
	}
	fmt.Fprint(out, "ON CONFLICT (id) DO NOTHING;\n")

	fmt.Printf("Generado %s: 2 usuarios, %d cultivos, %d tareas, %d notas\n", outPath, len(cultivos), len(tareas), len(notas))
}

func esc(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
