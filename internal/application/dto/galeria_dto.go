package dto

// UploadResponse salida de la subida de una imagen de galería.
// Placeholder es true cuando no hay credenciales del host de imágenes y se
// devolvió una URL local de relleno.
type UploadResponse struct {
	URL         string `json:"url"`
	Placeholder bool   `json:"placeholder,omitempty"`
}
