package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sistema-ventas/facturacion-api/internal/application/boleta"
	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
)

// BoletaHandler handlers del checkout y lecturas de boletas. Todas las rutas
// van detrás del middleware de auth: el id del usuario sale del token, nunca
// del cuerpo ni de la URL.
type BoletaHandler struct {
	boletaUC *boleta.BoletaUseCase
	pdfUC    *boleta.PDFUseCase
}

// NewBoletaHandler construye el handler.
func NewBoletaHandler(boletaUC *boleta.BoletaUseCase, pdfUC *boleta.PDFUseCase) *BoletaHandler {
	return &BoletaHandler{boletaUC: boletaUC, pdfUC: pdfUC}
}

// Crear POST /api/boletas — procesa el checkout.
func (h *BoletaHandler) Crear(c *fiber.Ctx) error {
	var req dto.BoletaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la petición inválido")
	}

	resp, err := h.boletaUC.ProcesarBoleta(c.Context(), GetIDUsuario(c), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCarritoVacio):
			return badRequest(c, "El carrito está vacío")
		case errors.Is(err, domain.ErrEntradaInvalida):
			return badRequest(c, err.Error())
		case errors.Is(err, domain.ErrTotalNoCoincide):
			return badRequest(c, "El total enviado no coincide con el calculado")
		default:
			return internalError(c)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Listar GET /api/boletas — boletas del usuario en orden de inserción.
func (h *BoletaHandler) Listar(c *fiber.Ctx) error {
	return h.listar(c, false)
}

// ListarOrdenadas GET /api/boletas/ordenadas — por fecha de creación descendente.
func (h *BoletaHandler) ListarOrdenadas(c *fiber.Ctx) error {
	return h.listar(c, true)
}

func (h *BoletaHandler) listar(c *fiber.Ctx, ordenadas bool) error {
	boletas, err := h.boletaUC.ListarPorUsuario(GetIDUsuario(c), ordenadas)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(boletas)
}

// GetByID GET /api/boletas/:id
// Boleta inexistente y boleta de otro usuario responden el mismo 404.
func (h *BoletaHandler) GetByID(c *fiber.Ctx) error {
	idBoleta, err := parseIDBoleta(c)
	if err != nil {
		return badRequest(c, "Id de boleta inválido")
	}
	resp, err := h.boletaUC.GetBoletaDeUsuario(idBoleta, GetIDUsuario(c))
	if err != nil {
		return h.errorLectura(c, err)
	}
	return c.JSON(resp)
}

// GetDetalles GET /api/boletas/:id/detalles
func (h *BoletaHandler) GetDetalles(c *fiber.Ctx) error {
	idBoleta, err := parseIDBoleta(c)
	if err != nil {
		return badRequest(c, "Id de boleta inválido")
	}
	detalles, err := h.boletaUC.GetDetalles(idBoleta, GetIDUsuario(c))
	if err != nil {
		return h.errorLectura(c, err)
	}
	return c.JSON(detalles)
}

// DescargarPDF GET /api/boletas/:id/pdf — representación imprimible.
func (h *BoletaHandler) DescargarPDF(c *fiber.Ctx) error {
	idBoleta, err := parseIDBoleta(c)
	if err != nil {
		return badRequest(c, "Id de boleta inválido")
	}
	pdfBytes, filename, err := h.pdfUC.DescargarBoletaPDF(c.Context(), idBoleta, GetIDUsuario(c))
	if err != nil {
		return h.errorLectura(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Eliminar DELETE /api/boletas/:id
func (h *BoletaHandler) Eliminar(c *fiber.Ctx) error {
	idBoleta, err := parseIDBoleta(c)
	if err != nil {
		return badRequest(c, "Id de boleta inválido")
	}
	if err := h.boletaUC.EliminarBoleta(c.Context(), idBoleta, GetIDUsuario(c)); err != nil {
		return h.errorLectura(c, err)
	}
	return c.JSON(dto.MessageResponse{Mensaje: "Boleta eliminada exitosamente", Success: true})
}

func (h *BoletaHandler) errorLectura(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrBoletaNoEncontrada) {
		return notFound(c, "Boleta no encontrada")
	}
	return internalError(c)
}

func parseIDBoleta(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
