package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cultivapp/cultivos-api/internal/application/auth"
	"github.com/cultivapp/cultivos-api/internal/application/authz"
	"github.com/cultivapp/cultivos-api/internal/application/usecase"
	"github.com/cultivapp/cultivos-api/internal/infrastructure/media"
	"github.com/cultivapp/cultivos-api/internal/infrastructure/mercadopago"
	infrapdf "github.com/cultivapp/cultivos-api/internal/infrastructure/pdf"
	"github.com/cultivapp/cultivos-api/internal/infrastructure/postgres"
	"github.com/cultivapp/cultivos-api/internal/infrastructure/workflow"
	httpRouter "github.com/cultivapp/cultivos-api/internal/interfaces/http"
	"github.com/cultivapp/cultivos-api/pkg/config"
	"github.com/cultivapp/cultivos-api/pkg/logger"
)

// swaggerSpecPath documento OpenAPI versionado en el repo, servido por /docs.
const swaggerSpecPath = "./docs/swagger.json"

// montarSwagger registra la UI de swagger en /docs. swagger.New entra en panic
// si el archivo no existe, así que solo se monta cuando está presente.
func montarSwagger(app *fiber.App, log *logger.Logger, specPath string) {
	if _, err := os.Stat(specPath); err != nil {
		log.Warn().Str("path", specPath).Msg("spec de swagger no encontrado, /docs deshabilitado")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: specPath,
		Path:     "docs",
		Title:    "CultivApp API",
	}))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.UsingDevFallback() {
		log.Warn().Msg("JWT_SECRET no definido: usando el secret de desarrollo, no apto para producción")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	cultivoRepo := postgres.NewCultivoRepository(pool)
	tareaRepo := postgres.NewTareaRepository(pool)
	notaRepo := postgres.NewNotaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authzSvc := authz.NewService(usuarioRepo)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		LoginExpHours:  cfg.JWT.LoginExpHours,
		CookieExpHours: cfg.JWT.CookieExpHours,
		Issuer:         cfg.JWT.Issuer,
	})

	cultivoUC := usecase.NewCultivoUseCase(cultivoRepo, authzSvc)
	tareaUC := usecase.NewTareaUseCase(tareaRepo, authzSvc)
	notaUC := usecase.NewNotaUseCase(notaRepo, authzSvc)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)

	pdfGenerator := infrapdf.NewMarotoReporteGenerator()
	reporteUC := usecase.NewReporteUseCase(cultivoRepo, tareaRepo, notaRepo, authzSvc, pdfGenerator)

	chatAdapter := workflow.NewChatAdapter(cfg.Chat.WebhookURL, cfg.Chat.AuthToken)
	chatUC := usecase.NewChatUseCase(chatAdapter)

	pagoGateway := mercadopago.NewGateway(cfg.MercadoPago)
	suscripcionUC := usecase.NewSuscripcionUseCase(usuarioRepo, pagoGateway, txRunner, log)

	mediaHost := media.NewImgbbAdapter(cfg.Media.UploadURL, cfg.Media.APIKey)
	galeriaUC := usecase.NewGaleriaUseCase(mediaHost)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    10 * 1024 * 1024, // margen sobre las imágenes de 8 MiB
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	montarSwagger(app, log, swaggerSpecPath)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	secureCookie := cfg.App.Env != "development"
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthHandler:        httpRouter.NewAuthHandler(authUC, cfg.JWT.CookieExpHours, secureCookie),
		CultivoUC:          cultivoUC,
		ReporteUC:          reporteUC,
		TareaUC:            tareaUC,
		NotaUC:             notaUC,
		UsuarioUC:          usuarioUC,
		ChatHandler:        httpRouter.NewChatHandler(chatUC, log),
		SuscripcionHandler: httpRouter.NewSuscripcionHandler(suscripcionUC, log),
		GaleriaUC:          galeriaUC,
		JWTSecret:          cfg.JWT.Secret,
		Env:                cfg.App.Env,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
