package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/dto"
	"github.com/cultivapp/cultivos-api/internal/application/ports"
	"github.com/cultivapp/cultivos-api/internal/domain"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
	"github.com/cultivapp/cultivos-api/internal/domain/repository"
	"github.com/cultivapp/cultivos-api/pkg/logger"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type usuariosStub struct {
	mu sync.Mutex
	m  map[string]*entity.Usuario
}

func newUsuariosStub(usuarios ...*entity.Usuario) *usuariosStub {
	s := &usuariosStub{m: make(map[string]*entity.Usuario)}
	for _, u := range usuarios {
		s.m[u.Email] = u
	}
	return s
}

func (s *usuariosStub) Create(_ context.Context, u *entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[u.Email] = u
	return nil
}

func (s *usuariosStub) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[email], nil
}

func (s *usuariosStub) Update(_ context.Context, u *entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[u.Email] = u
	return nil
}

func (s *usuariosStub) EmailsCreadosPor(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *usuariosStub) ListByCreador(_ context.Context, adminEmail string, limit, offset int) ([]*entity.Usuario, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var todos []*entity.Usuario
	for _, u := range s.m {
		if u.CreadoPor == adminEmail {
			todos = append(todos, u)
		}
	}
	total := len(todos)
	if offset >= total {
		return nil, total, nil
	}
	fin := offset + limit
	if fin > total {
		fin = total
	}
	return todos[offset:fin], total, nil
}

type pagosStub struct {
	mu      sync.Mutex
	creados []*entity.Pago
}

func (s *pagosStub) Create(_ context.Context, p *entity.Pago) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creados = append(s.creados, p)
	return nil
}

func (s *pagosStub) ListByUsuario(_ context.Context, _ string, _, _ int) ([]*entity.Pago, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creados, nil
}

// gatewayStub devuelve respuestas fijas del procesador de pagos.
type gatewayStub struct {
	checkout *ports.Checkout
	pago     *ports.PagoExterno
	err      error
}

func (g *gatewayStub) CrearCheckout(_ context.Context, _ string) (*ports.Checkout, error) {
	return g.checkout, g.err
}

func (g *gatewayStub) ObtenerPago(_ context.Context, _ string) (*ports.PagoExterno, error) {
	return g.pago, g.err
}

// txStub ejecuta el callback directo sobre los stubs, sin transacción real.
type txStub struct {
	pagos    *pagosStub
	usuarios *usuariosStub
}

func (t *txStub) RunPago(ctx context.Context, fn func(repository.PagoRepository, repository.UsuarioRepository) error) error {
	return fn(t.pagos, t.usuarios)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ── Checkout ──────────────────────────────────────────────────────────────────

func TestCheckout_GeneraLinkDePago(t *testing.T) {
	usuarios := newUsuariosStub(&entity.Usuario{Email: "ana@finca.com", Activo: true})
	gw := &gatewayStub{checkout: &ports.Checkout{PreferenceID: "pref-1", InitPoint: "https://mp/init"}}
	uc := NewSuscripcionUseCase(usuarios, gw, &txStub{}, testLogger())

	out, err := uc.Checkout(context.Background(), authz.Principal{Email: "ana@finca.com", Rol: entity.RolAdmin})
	require.NoError(t, err)
	assert.Equal(t, "https://mp/init", out.InitPoint)
	assert.Equal(t, "pref-1", out.PreferenceID)
}

func TestCheckout_SuscripcionVigenteRetornaConflict(t *testing.T) {
	hasta := time.Now().AddDate(0, 0, 10)
	usuarios := newUsuariosStub(&entity.Usuario{
		Email:             "ana@finca.com",
		Activo:            true,
		EstadoSuscripcion: entity.SuscripcionActiva,
		SuscripcionHasta:  &hasta,
	})
	uc := NewSuscripcionUseCase(usuarios, &gatewayStub{}, &txStub{}, testLogger())

	_, err := uc.Checkout(context.Background(), authz.Principal{Email: "ana@finca.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCheckout_ExentoDePagoRetornaConflict(t *testing.T) {
	usuarios := newUsuariosStub(&entity.Usuario{Email: "ana@finca.com", Activo: true, ExentoPago: true})
	uc := NewSuscripcionUseCase(usuarios, &gatewayStub{}, &txStub{}, testLogger())

	_, err := uc.Checkout(context.Background(), authz.Principal{Email: "ana@finca.com"})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una cuenta exenta no necesita pagar")
}

// ── ProcesarWebhook ───────────────────────────────────────────────────────────

func notifPago(id string) dto.WebhookMercadoPago {
	n := dto.WebhookMercadoPago{Type: "payment"}
	n.Data.ID = id
	return n
}

func TestWebhook_PagoAprobadoActivaSuscripcion(t *testing.T) {
	usuarios := newUsuariosStub(&entity.Usuario{Email: "ana@finca.com", Activo: true})
	pagos := &pagosStub{}
	gw := &gatewayStub{pago: &ports.PagoExterno{
		ID:         "789",
		Estado:     "approved",
		Monto:      decimal.NewFromInt(9990),
		PayerEmail: "ana@finca.com",
	}}
	uc := NewSuscripcionUseCase(usuarios, gw, &txStub{pagos: pagos, usuarios: usuarios}, testLogger())

	require.NoError(t, uc.ProcesarWebhook(context.Background(), notifPago("789")))

	require.Len(t, pagos.creados, 1, "todo pago notificado queda registrado")
	assert.Equal(t, "789", pagos.creados[0].MPPaymentID)

	u, _ := usuarios.GetByEmail(context.Background(), "ana@finca.com")
	assert.Equal(t, entity.SuscripcionActiva, u.EstadoSuscripcion)
	require.NotNil(t, u.SuscripcionHasta)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, DiasSuscripcion), *u.SuscripcionHasta, time.Minute)
}

func TestWebhook_PagoAnticipadoExtiendeDesdeElVencimiento(t *testing.T) {
	vence := time.Now().AddDate(0, 0, 12)
	usuarios := newUsuariosStub(&entity.Usuario{
		Email:             "ana@finca.com",
		Activo:            true,
		EstadoSuscripcion: entity.SuscripcionActiva,
		SuscripcionHasta:  &vence,
	})
	pagos := &pagosStub{}
	gw := &gatewayStub{pago: &ports.PagoExterno{ID: "790", Estado: "approved", PayerEmail: "ana@finca.com"}}
	uc := NewSuscripcionUseCase(usuarios, gw, &txStub{pagos: pagos, usuarios: usuarios}, testLogger())

	require.NoError(t, uc.ProcesarWebhook(context.Background(), notifPago("790")))

	u, _ := usuarios.GetByEmail(context.Background(), "ana@finca.com")
	require.NotNil(t, u.SuscripcionHasta)
	assert.WithinDuration(t, vence.AddDate(0, 0, DiasSuscripcion), *u.SuscripcionHasta, time.Minute,
		"pagar antes del vencimiento no debe regalar ni quitar días")
}

func TestWebhook_PagoRechazadoSoloRegistra(t *testing.T) {
	usuarios := newUsuariosStub(&entity.Usuario{Email: "ana@finca.com", Activo: true})
	pagos := &pagosStub{}
	gw := &gatewayStub{pago: &ports.PagoExterno{ID: "791", Estado: "rejected", PayerEmail: "ana@finca.com"}}
	uc := NewSuscripcionUseCase(usuarios, gw, &txStub{pagos: pagos, usuarios: usuarios}, testLogger())

	require.NoError(t, uc.ProcesarWebhook(context.Background(), notifPago("791")))

	assert.Len(t, pagos.creados, 1)
	u, _ := usuarios.GetByEmail(context.Background(), "ana@finca.com")
	assert.NotEqual(t, entity.SuscripcionActiva, u.EstadoSuscripcion)
}

func TestWebhook_PagadorDesconocidoRegistraAuditoria(t *testing.T) {
	usuarios := newUsuariosStub()
	pagos := &pagosStub{}
	gw := &gatewayStub{pago: &ports.PagoExterno{ID: "792", Estado: "approved", PayerEmail: "nadie@finca.com"}}
	uc := NewSuscripcionUseCase(usuarios, gw, &txStub{pagos: pagos, usuarios: usuarios}, testLogger())

	require.NoError(t, uc.ProcesarWebhook(context.Background(), notifPago("792")))

	require.Len(t, pagos.creados, 1)
	assert.Contains(t, pagos.creados[0].Detalle, "sin cuenta")
}

func TestWebhook_NotificacionNoDePagoSeIgnora(t *testing.T) {
	pagos := &pagosStub{}
	uc := NewSuscripcionUseCase(newUsuariosStub(), &gatewayStub{}, &txStub{pagos: pagos}, testLogger())

	require.NoError(t, uc.ProcesarWebhook(context.Background(), dto.WebhookMercadoPago{Type: "merchant_order"}))
	assert.Empty(t, pagos.creados)
}
