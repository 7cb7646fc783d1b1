package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sistema-ventas/facturacion-api/internal/application/auth"
	"github.com/sistema-ventas/facturacion-api/internal/application/boleta"
	"github.com/sistema-ventas/facturacion-api/internal/application/usuario"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UsuarioUC *usuario.UsuarioUseCase
	BoletaUC  *boleta.BoletaUseCase
	PDFUC     *boleta.PDFUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret)

	// Usuarios: registro, login y ciclo de vida del token (público),
	// perfil y consulta por id (protegido).
	usuarios := api.Group("/usuarios")
	authHandler := NewAuthHandler(deps.AuthUC)
	usuarios.Post("/registro", authHandler.Registro)
	usuarios.Post("/login", authHandler.Login)
	usuarios.Post("/verificar-token", authHandler.VerificarToken)
	usuarios.Post("/refrescar-token", authHandler.RefrescarToken)
	usuarios.Get("/verificar-email/:email", authHandler.VerificarEmail)

	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	// /perfil va antes de /:id para que no lo capture el parámetro.
	usuarios.Get("/perfil", authMW, usuarioHandler.Perfil)
	usuarios.Get("/:id", authMW, usuarioHandler.GetByID)

	// Boletas (todo protegido).
	boletas := api.Group("/boletas", authMW)
	boletaHandler := NewBoletaHandler(deps.BoletaUC, deps.PDFUC)
	boletas.Post("/", boletaHandler.Crear)
	boletas.Get("/", boletaHandler.Listar)
	boletas.Get("/ordenadas", boletaHandler.ListarOrdenadas)
	boletas.Get("/:id", boletaHandler.GetByID)
	boletas.Get("/:id/detalles", boletaHandler.GetDetalles)
	boletas.Get("/:id/pdf", boletaHandler.DescargarPDF)
	boletas.Delete("/:id", boletaHandler.Eliminar)
}
