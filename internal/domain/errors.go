package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrUsuarioNoEncontrado   = errors.New("el usuario no esta registrado")
	ErrEmailYaRegistrado     = errors.New("el email ya está registrado")
	ErrDocumentoYaRegistrado = errors.New("el número de documento ya está registrado")
	ErrCredencialesInvalidas = errors.New("la contraseña es incorrecta")
	ErrCarritoVacio          = errors.New("el carrito está vacío")
	ErrTotalNoCoincide       = errors.New("el total enviado no coincide con el total calculado")
	ErrEntradaInvalida       = errors.New("entrada inválida")

	// ErrBoletaNoEncontrada cubre tanto id inexistente como boleta ajena:
	// no se distingue propiedad de existencia para no revelar qué boletas hay.
	ErrBoletaNoEncontrada = errors.New("boleta no encontrada")
)
