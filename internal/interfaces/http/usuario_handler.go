package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sistema-ventas/facturacion-api/internal/application/usuario"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
)

// UsuarioHandler handlers de consulta de usuarios (rutas protegidas).
type UsuarioHandler struct {
	usuarioUC *usuario.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(usuarioUC *usuario.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{usuarioUC: usuarioUC}
}

// Perfil GET /api/usuarios/perfil — datos del usuario autenticado.
func (h *UsuarioHandler) Perfil(c *fiber.Ctx) error {
	return h.responder(c, GetIDUsuario(c))
}

// GetByID GET /api/usuarios/:id
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "Id de usuario inválido")
	}
	return h.responder(c, id)
}

func (h *UsuarioHandler) responder(c *fiber.Ctx, id int64) error {
	resp, err := h.usuarioUC.ObtenerPorID(id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNoEncontrado) {
			return notFound(c, "Usuario no encontrado")
		}
		return internalError(c)
	}
	return c.JSON(resp)
}
