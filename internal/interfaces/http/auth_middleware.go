package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/pkg/jwt"
)

// Locals keys para los datos del usuario autenticado en Fiber.
const (
	LocalIDUsuario = "id_usuario"
	LocalEmail     = "email"
)

// AuthMiddleware valida el Bearer Token JWT y deja id y email en c.Locals.
// Cualquier token ausente, malformado, con firma inválida o expirado responde
// 401 con el mismo cuerpo: el cliente no necesita distinguir el motivo.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Mensaje: "Token inválido o expirado", Success: false,
			})
		}
		idUsuario, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{
				Mensaje: "Token inválido o expirado", Success: false,
			})
		}
		c.Locals(LocalIDUsuario, idUsuario)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization ("Bearer <token>").
// Devuelve "" si el header falta o no tiene el formato esperado.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIDUsuario devuelve el id del usuario autenticado (después del middleware).
func GetIDUsuario(c *fiber.Ctx) int64 {
	v := c.Locals(LocalIDUsuario)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetEmail devuelve el email del usuario autenticado (después del middleware).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
