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

	"github.com/sistema-ventas/facturacion-api/internal/application/auth"
	appboleta "github.com/sistema-ventas/facturacion-api/internal/application/boleta"
	"github.com/sistema-ventas/facturacion-api/internal/application/usuario"
	infrapdf "github.com/sistema-ventas/facturacion-api/internal/infrastructure/pdf"
	"github.com/sistema-ventas/facturacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/sistema-ventas/facturacion-api/internal/interfaces/http"
	"github.com/sistema-ventas/facturacion-api/pkg/config"
	"github.com/sistema-ventas/facturacion-api/pkg/logger"
)

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

	if cfg.JWT.Secret == config.DefaultJWTSecret && cfg.App.Env == "production" {
		log.Warn().Msg("JWT_SECRET no configurado: usando el secret por defecto en producción")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	boletaRepo := postgres.NewBoletaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    time.Duration(cfg.JWT.ExpirationHours) * time.Hour,
	}, log)
	usuarioUC := usuario.NewUsuarioUseCase(usuarioRepo)
	boletaUC := appboleta.NewBoletaUseCase(txRunner, boletaRepo, usuarioRepo, appboleta.Config{
		StrictTotal: cfg.Boleta.StrictTotal,
	}, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := appboleta.NewPDFUseCase(boletaRepo, usuarioRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UsuarioUC: usuarioUC,
		BoletaUC:  boletaUC,
		PDFUC:     pdfUC,
		JWTSecret: cfg.JWT.Secret,
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
