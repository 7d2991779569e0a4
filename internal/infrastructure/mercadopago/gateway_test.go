package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivapp/cultivos-api/pkg/config"
)

func testConfig(baseURL string) config.MercadoPagoConfig {
	return config.MercadoPagoConfig{
		AccessToken:   "test-token",
		BaseURL:       baseURL,
		SuccessURL:    "https://app.cultivapp.local/pago/ok",
		NotifyURL:     "https://api.cultivapp.local/api/webhooks/mercadopago",
		PrecioMensual: "9990",
		Moneda:        "ARS",
	}
}

func TestCrearCheckout_ArmaLaPreferencia(t *testing.T) {
	var pref preferenceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pref))
		_ = json.NewEncoder(w).Encode(preferenceResponse{ID: "pref-9", InitPoint: "https://mp/init/pref-9"})
	}))
	defer srv.Close()

	gw := NewGateway(testConfig(srv.URL))
	out, err := gw.CrearCheckout(context.Background(), "ana@finca.com")
	require.NoError(t, err)

	assert.Equal(t, "pref-9", out.PreferenceID)
	assert.Equal(t, "https://mp/init/pref-9", out.InitPoint)

	require.Len(t, pref.Items, 1)
	assert.Equal(t, "9990", pref.Items[0].UnitPrice.String())
	assert.Equal(t, "ARS", pref.Items[0].CurrencyID)
	assert.Equal(t, "ana@finca.com", pref.ExternalReference,
		"el webhook correlaciona el pago con la cuenta por external_reference")
	assert.Equal(t, "approved", pref.AutoReturn, "auto_return acompaña a success_url")
	assert.Equal(t, "https://api.cultivapp.local/api/webhooks/mercadopago", pref.NotificationURL)
}

func TestCrearCheckout_PrecioInvalidoFallaAntesDeLlamar(t *testing.T) {
	cfg := testConfig("http://no-debe-llamarse")
	cfg.PrecioMensual = "gratis"

	_, err := NewGateway(cfg).CrearCheckout(context.Background(), "ana@finca.com")
	assert.ErrorContains(t, err, "precio mensual inválido")
}

func TestObtenerPago_MapeaLaRespuesta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments/123456789", r.URL.Path)
		// MercadoPago devuelve el id numérico.
		_, _ = w.Write([]byte(`{
			"id": 123456789,
			"status": "approved",
			"status_detail": "accredited",
			"transaction_amount": 9990,
			"payer": {"email": "ana@finca.com"}
		}`))
	}))
	defer srv.Close()

	gw := NewGateway(testConfig(srv.URL))
	pago, err := gw.ObtenerPago(context.Background(), "123456789")
	require.NoError(t, err)

	assert.Equal(t, "123456789", pago.ID)
	assert.Equal(t, "approved", pago.Estado)
	assert.Equal(t, "accredited", pago.Detalle)
	assert.Equal(t, "9990", pago.Monto.String())
	assert.Equal(t, "ana@finca.com", pago.PayerEmail)
}

func TestGateway_ErroresHTTPYTokenFaltante(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := NewGateway(testConfig(srv.URL))
	_, err := gw.ObtenerPago(context.Background(), "1")
	assert.ErrorContains(t, err, "HTTP 401")

	sinToken := NewGateway(config.MercadoPagoConfig{BaseURL: srv.URL})
	_, err = sinToken.CrearCheckout(context.Background(), "ana@finca.com")
	assert.ErrorContains(t, err, "MP_ACCESS_TOKEN")
}
