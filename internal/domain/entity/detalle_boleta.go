package entity

import "github.com/shopspring/decimal"

// DetalleBoleta representa una línea de una boleta. Pertenece exclusivamente
// a su boleta y se elimina en cascada con ella.
type DetalleBoleta struct {
	IDDetalle      int64
	IDBoleta       int64
	Producto       string
	PrecioUnitario decimal.Decimal
	Cantidad       int // >= 1
	Subtotal       decimal.Decimal
}

// CalcularSubtotal recalcula el subtotal (precio unitario x cantidad).
// Se invoca en cada escritura; el subtotal nunca se acepta del cliente.
func (d *DetalleBoleta) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}
