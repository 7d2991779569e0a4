package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain"
)

// MaxImagenBytes tope de tamaño de imagen de galería (8 MiB).
const MaxImagenBytes = 8 << 20

// GaleriaUseCase subida de imágenes de galería al host externo.
type GaleriaUseCase struct {
	media ports.MediaHost
}

// NewGaleriaUseCase construye el caso de uso.
func NewGaleriaUseCase(media ports.MediaHost) *GaleriaUseCase {
	return &GaleriaUseCase{media: media}
}

// Subir valida tamaño y tipo y delega al host de imágenes.
// ErrPayloadTooLarge sobre 8 MiB; ErrUnsupportedMedia si no es image/*.
func (uc *GaleriaUseCase) Subir(ctx context.Context, nombre, contentType string, datos []byte) (*dto.UploadResponse, error) {
	if len(datos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(datos) > MaxImagenBytes {
		return nil, domain.ErrPayloadTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrUnsupportedMedia
	}

	// Las subidas pueden tardar más que una llamada JSON común.
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	url, placeholder, err := uc.media.Subir(ctx, nombre, contentType, datos)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{URL: url, Placeholder: placeholder}, nil
}
