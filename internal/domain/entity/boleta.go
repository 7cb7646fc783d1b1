package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Boleta representa la cabecera de una venta, desnormalizada con los datos
// de contacto del cliente. El total debe igualar la suma de los subtotales
// de sus detalles al momento de crearla (se valida en la escritura).
type Boleta struct {
	IDBoleta      int64
	IDUsuario     int64 // identidad propietaria (vendedor)
	Total         decimal.Decimal
	FechaCreacion time.Time // asignada por el servidor, inmutable

	// Datos del cliente (desnormalizados)
	NombreCliente    string // obligatorio
	DocumentoCliente string // DNI, RUC, etc. (opcional)
	EmailCliente     string // opcional
}
