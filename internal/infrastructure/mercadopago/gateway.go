// Package mercadopago implementa el gateway de pagos contra la API REST de
// MercadoPago: creación de preferencias de checkout y consulta de pagos
// notificados por webhook.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/pkg/config"
)

var _ ports.PagoGateway = (*Gateway)(nil)

// Gateway implementa PagoGateway sobre net/http. BaseURL se sobreescribe en
// tests con un httptest.Server.
type Gateway struct {
	cfg        config.MercadoPagoConfig
	httpClient *http.Client
}

// NewGateway construye el gateway con la configuración de MercadoPago.
func NewGateway(cfg config.MercadoPagoConfig) *Gateway {
	return &Gateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras del protocolo de preferencias ─────────────────────────────────

type preferenceItem struct {
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CurrencyID string          `json:"currency_id"`
}

type preferenceBackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem   `json:"items"`
	Payer             map[string]string  `json:"payer"`
	BackURLs          preferenceBackURLs `json:"back_urls"`
	AutoReturn        string             `json:"auto_return,omitempty"`
	NotificationURL   string             `json:"notification_url,omitempty"`
	ExternalReference string             `json:"external_reference"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                json.Number     `json:"id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	ExternalReference string          `json:"external_reference"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// CrearCheckout crea la preferencia de pago de la suscripción mensual y
// devuelve el link de pago. El email del usuario viaja en external_reference
// para correlacionar el webhook con la cuenta.
func (g *Gateway) CrearCheckout(ctx context.Context, usuarioEmail string) (*ports.Checkout, error) {
	if g.cfg.AccessToken == "" {
		return nil, fmt.Errorf("mercadopago: MP_ACCESS_TOKEN no configurado")
	}

	precio, err := decimal.NewFromString(g.cfg.PrecioMensual)
	if err != nil {
		return nil, fmt.Errorf("mercadopago: precio mensual inválido %q: %w", g.cfg.PrecioMensual, err)
	}

	payload := preferenceRequest{
		Items: []preferenceItem{{
			Title:      "Suscripción mensual CultivApp",
			Quantity:   1,
			UnitPrice:  precio,
			CurrencyID: g.cfg.Moneda,
		}},
		Payer: map[string]string{"email": usuarioEmail},
		BackURLs: preferenceBackURLs{
			Success: g.cfg.SuccessURL,
			Failure: g.cfg.FailureURL,
			Pending: g.cfg.PendingURL,
		},
		NotificationURL:   g.cfg.NotifyURL,
		ExternalReference: usuarioEmail,
	}
	if g.cfg.SuccessURL != "" {
		payload.AutoReturn = "approved"
	}

	var out preferenceResponse
	if err := g.post(ctx, "/checkout/preferences", payload, &out); err != nil {
		return nil, err
	}
	if out.InitPoint == "" {
		return nil, fmt.Errorf("mercadopago: preferencia sin init_point")
	}
	return &ports.Checkout{PreferenceID: out.ID, InitPoint: out.InitPoint}, nil
}

// ObtenerPago consulta un pago por ID tras la notificación del webhook.
func (g *Gateway) ObtenerPago(ctx context.Context, paymentID string) (*ports.PagoExterno, error) {
	if g.cfg.AccessToken == "" {
		return nil, fmt.Errorf("mercadopago: MP_ACCESS_TOKEN no configurado")
	}

	var out paymentResponse
	if err := g.get(ctx, "/v1/payments/"+paymentID, &out); err != nil {
		return nil, err
	}
	return &ports.PagoExterno{
		ID:         out.ID.String(),
		Estado:     out.Status,
		Monto:      out.TransactionAmount,
		PayerEmail: out.Payer.Email,
		Detalle:    out.StatusDetail,
	}, nil
}

// ── HTTP helpers ──────────────────────────────────────────────────────────────

func (g *Gateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mercadopago: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mercadopago: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req, out)
}

func (g *Gateway) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("mercadopago: crear HTTP request: %w", err)
	}
	return g.do(req, out)
}

func (g *Gateway) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+g.cfg.AccessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return fmt.Errorf("mercadopago: timeout o cancelación: %w", req.Context().Err())
		}
		return fmt.Errorf("mercadopago: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("mercadopago: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mercadopago: HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("mercadopago: deserializar respuesta: %w", err)
	}
	return nil
}
