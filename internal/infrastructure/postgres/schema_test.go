package postgres

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Verifica que cada columna que los repositorios leen o escriben exista en el
// DDL de migrations/001_init.sql. Un desfase aquí no se detecta al compilar y
// revienta recién en runtime con "column does not exist".
func TestEsquema_ColumnasDeLosReposExistenEnElDDL(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	tablas := parseTablas(t, string(ddl))

	casos := map[string]string{
		"usuarios": usuarioCols,
		"cultivos": cultivoCols,
		"tareas":   tareaCols,
		"notas":    notaCols,
		"pagos":    "id, usuario_email, mp_payment_id, estado, monto, detalle, created_at",
	}
	for tabla, cols := range casos {
		columnas, ok := tablas[tabla]
		require.True(t, ok, "tabla %s no está en el DDL", tabla)
		for _, col := range strings.Split(cols, ",") {
			col = strings.TrimSpace(col)
			require.Contains(t, columnas, col,
				"columna %q usada por el repo de %s no existe en la tabla", col, tabla)
		}
	}
}

// parseTablas extrae {tabla -> set de columnas} de un script CREATE TABLE.
func parseTablas(t *testing.T, ddl string) map[string]map[string]bool {
	t.Helper()
	tablas := make(map[string]map[string]bool)
	resto := ddl
	for {
		i := strings.Index(resto, "CREATE TABLE IF NOT EXISTS ")
		if i < 0 {
			break
		}
		resto = resto[i+len("CREATE TABLE IF NOT EXISTS "):]
		abre := strings.Index(resto, "(")
		cierra := strings.Index(resto, ");")
		require.True(t, abre >= 0 && cierra > abre, "DDL malformado cerca de %.40q", resto)

		nombre := strings.TrimSpace(resto[:abre])
		columnas := make(map[string]bool)
		for _, linea := range strings.Split(resto[abre+1:cierra], "\n") {
			campos := strings.Fields(linea)
			if len(campos) == 0 {
				continue
			}
			columnas[campos[0]] = true
		}
		tablas[nombre] = columnas
		resto = resto[cierra:]
	}
	return tablas
}
