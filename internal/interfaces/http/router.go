package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivapp/cultivos-api/internal/application/usecase"
	"github.com/cultivapp/cultivos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthHandler        *AuthHandler
	CultivoUC          *usecase.CultivoUseCase
	ReporteUC          *usecase.ReporteUseCase
	TareaUC            *usecase.TareaUseCase
	NotaUC             *usecase.NotaUseCase
	UsuarioUC          *usecase.UsuarioUseCase
	ChatHandler        *ChatHandler
	SuscripcionHandler *SuscripcionHandler
	GaleriaUC          *usecase.GaleriaUseCase
	JWTSecret          string
	Env                string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Públicas
	api.Post("/login", deps.AuthHandler.Login)
	api.Post("/verify-token", deps.AuthHandler.VerifyToken)
	api.Post("/webhooks/mercadopago", deps.SuscripcionHandler.Webhook)

	// Rutas protegidas (Bearer o cookie auth-token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Env))

	// Cultivos: crear y borrar es de admins; ver y editar según visibilidad.
	cultivos := protected.Group("/cultivos")
	cultivoHandler := NewCultivoHandler(deps.CultivoUC, deps.ReporteUC)
	cultivos.Get("/", cultivoHandler.List)
	cultivos.Post("/", RequireRole(entity.RolAdmin), cultivoHandler.Create)
	cultivos.Get("/:id", cultivoHandler.GetByID)
	cultivos.Get("/:id/reporte", cultivoHandler.Reporte)
	cultivos.Patch("/:id", cultivoHandler.Update)
	cultivos.Delete("/:id", cultivoHandler.Delete)

	// Tareas
	tareas := protected.Group("/tareas")
	tareaHandler := NewTareaHandler(deps.TareaUC)
	tareas.Get("/", tareaHandler.List)
	tareas.Post("/", tareaHandler.Create)
	tareas.Get("/:id", tareaHandler.GetByID)
	tareas.Patch("/:id", tareaHandler.Update)
	tareas.Delete("/:id", tareaHandler.Delete)

	// Notas
	notas := protected.Group("/notas")
	notaHandler := NewNotaHandler(deps.NotaUC)
	notas.Get("/", notaHandler.List)
	notas.Post("/", notaHandler.Create)
	notas.Get("/:id", notaHandler.GetByID)
	notas.Patch("/:id", notaHandler.Update)
	notas.Delete("/:id", notaHandler.Delete)

	// Cuentas delegadas (solo admin)
	usuarios := protected.Group("/usuarios", RequireRole(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Patch("/:email", usuarioHandler.Update)

	// Asistente IA
	protected.Post("/chat", deps.ChatHandler.Preguntar)

	// Suscripción
	protected.Post("/subscription/checkout", deps.SuscripcionHandler.Checkout)

	// Galería
	galeriaHandler := NewGaleriaHandler(deps.GaleriaUC)
	protected.Post("/galeria/upload", galeriaHandler.Upload)
}
