package ports

import "context"

// MediaHost puerto de salida hacia el host externo de imágenes de la galería.
// Subir devuelve la URL pública; placeholder es true cuando no hay
// credenciales configuradas y se devolvió una URL local de relleno.
type MediaHost interface {
	Subir(ctx context.Context, nombre, contentType string, datos []byte) (url string, placeholder bool, err error)
}
