package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sistema-ventas/facturacion-api/internal/application/auth"
	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
)

// AuthHandler handlers de registro, login y ciclo de vida del token.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Registro POST /api/usuarios/registro
func (h *AuthHandler) Registro(c *fiber.Ctx) error {
	var req dto.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}
	if req.Email == "" || req.Password == "" || req.Nombres == "" {
		return badRequest(c, "Email, contraseña y nombres son obligatorios")
	}

	resp, err := h.authUC.RegistrarUsuario(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailYaRegistrado):
			return badRequest(c, "El email ya está registrado")
		case errors.Is(err, domain.ErrDocumentoYaRegistrado):
			return badRequest(c, "El número de documento ya está registrado")
		default:
			return internalError(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login POST /api/usuarios/login
// Email inexistente y contraseña incorrecta responden lo mismo: el endpoint no
// revela qué cuentas existen.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	resp, err := h.authUC.IniciarSesion(req)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) || errors.Is(err, domain.ErrCredencialesInvalidas) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Mensaje: "Credenciales inválidas", Success: false,
			})
		}
		return internalError(c)
	}
	return c.JSON(resp)
}

// VerificarToken POST /api/usuarios/verificar-token
// Toma el token del header Authorization; cualquier fallo responde 401 genérico.
func (h *AuthHandler) VerificarToken(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return unauthorized(c)
	}
	resp, err := h.authUC.VerificarSesion(tokenString)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(resp)
}

// RefrescarToken POST /api/usuarios/refrescar-token
// Emite un token nuevo con expiración posterior a partir de uno aún vigente.
func (h *AuthHandler) RefrescarToken(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return unauthorized(c)
	}
	resp, err := h.authUC.RefrescarToken(tokenString)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(resp)
}

// VerificarEmail GET /api/usuarios/verificar-email/:email
func (h *AuthHandler) VerificarEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	disponible, err := h.authUC.EmailDisponible(email)
	if err != nil {
		return internalError(c)
	}
	if !disponible {
		return c.JSON(dto.MessageResponse{Mensaje: "El email ya está registrado", Success: false})
	}
	return c.JSON(dto.MessageResponse{Mensaje: "El email está disponible", Success: true})
}

// ── Respuestas comunes ────────────────────────────────────────────────────────

func badRequest(c *fiber.Ctx, mensaje string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Mensaje: mensaje, Success: false})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
		Mensaje: "Token inválido o expirado", Success: false,
	})
}

func notFound(c *fiber.Ctx, mensaje string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Mensaje: mensaje, Success: false})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.MessageResponse{
		Mensaje: "Error interno del servidor", Success: false,
	})
}
