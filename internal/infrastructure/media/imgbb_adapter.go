// Package media implementa la subida de imágenes de la galería a un host
// externo compatible con la API de imgbb.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cultivapp/cultivos-api/internal/application/ports"
)

var _ ports.MediaHost = (*ImgbbAdapter)(nil)

// ImgbbAdapter implementa MediaHost contra la API de subida de imgbb.
// Sin API key configurada devuelve una URL placeholder en lugar de fallar:
// la galería sigue funcionando en entornos de desarrollo sin credenciales.
type ImgbbAdapter struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
}

// NewImgbbAdapter construye el adaptador.
func NewImgbbAdapter(uploadURL, apiKey string) *ImgbbAdapter {
	return &ImgbbAdapter{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type imgbbResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Subir sube la imagen y devuelve su URL pública. Con placeholder=true la URL
// es local de relleno porque no hay credenciales.
func (a *ImgbbAdapter) Subir(ctx context.Context, nombre, contentType string, datos []byte) (string, bool, error) {
	if a.apiKey == "" {
		return "/placeholder.svg?alt=" + nombre, true, nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("key", a.apiKey); err != nil {
		return "", false, fmt.Errorf("media: escribir form: %w", err)
	}
	if err := w.WriteField("name", nombre); err != nil {
		return "", false, fmt.Errorf("media: escribir form: %w", err)
	}
	// imgbb acepta la imagen como base64 en el campo image.
	if err := w.WriteField("image", base64.StdEncoding.EncodeToString(datos)); err != nil {
		return "", false, fmt.Errorf("media: escribir form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", false, fmt.Errorf("media: cerrar form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.uploadURL, &buf)
	if err != nil {
		return "", false, fmt.Errorf("media: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, fmt.Errorf("media: timeout o cancelación: %w", ctx.Err())
		}
		return "", false, fmt.Errorf("media: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", false, fmt.Errorf("media: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("media: host HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var out imgbbResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return "", false, fmt.Errorf("media: deserializar respuesta: %w", err)
	}
	if !out.Success || out.Data.URL == "" {
		return "", false, fmt.Errorf("media: subida rechazada por el host: %s", string(rawBody))
	}
	return out.Data.URL, false, nil
}
