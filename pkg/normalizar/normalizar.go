// Package normalizar pliega texto para búsqueda: minúsculas y sin diacríticos.
// Las columnas *_ci de la DB guardan la versión plegada y las búsquedas `q`
// se comparan contra ellas, de modo que "Albahaca Genovesa" matchee "genovésa".
package normalizar

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin espacios en los extremos y sin marcas
// diacríticas (NFD -> remover Mn -> NFC). Si la transformación falla, devuelve
// la versión en minúsculas sin plegar.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
