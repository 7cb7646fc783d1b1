package dto

import "github.com/shopspring/decimal"

// DetalleRequest un item del carrito en el checkout.
type DetalleRequest struct {
	NombreProducto string          `json:"nombreProducto"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Cantidad       int             `json:"cantidad"`
}

// BoletaRequest entrada del checkout. El idUsuario se extrae del token, nunca del cuerpo.
type BoletaRequest struct {
	CartItems        []DetalleRequest `json:"cartItems"`
	Total            decimal.Decimal  `json:"total"`
	NombreCliente    string           `json:"nombreCliente"`
	DocumentoCliente string           `json:"documentoCliente"`
	EmailCliente     string           `json:"emailCliente"`
}

// BoletaResponse respuesta del checkout.
type BoletaResponse struct {
	Success  bool   `json:"success"`
	Mensaje  string `json:"mensaje"`
	BoletaID int64  `json:"boletaId,omitempty"`
}

// DetalleBoletaDTO una línea persistida de la boleta.
// Las claves precio_unitario y subtotal van en snake_case por compatibilidad
// con el frontend existente.
type DetalleBoletaDTO struct {
	IDDetalle      int64           `json:"idDetalle"`
	Producto       string          `json:"producto"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Cantidad       int             `json:"cantidad"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// UsuarioVendedorDTO resumen del vendedor dueño de la boleta.
type UsuarioVendedorDTO struct {
	ID              int64  `json:"id"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	NumeroDocumento string `json:"numero_documento"`
}

// BoletaDetailsResponse salida detallada de una boleta con sus líneas y vendedor.
type BoletaDetailsResponse struct {
	IDBoleta         int64               `json:"idBoleta"`
	IDUsuario        int64               `json:"idUsuario"`
	FechaCreacion    string              `json:"fecha_creacion"`
	Total            decimal.Decimal     `json:"total"`
	NombreCliente    string              `json:"nombreCliente"`
	DocumentoCliente string              `json:"documentoCliente,omitempty"`
	EmailCliente     string              `json:"emailCliente,omitempty"`
	Detalles         []DetalleBoletaDTO  `json:"detalles"`
	UsuarioVendedor  *UsuarioVendedorDTO `json:"usuarioVendedor,omitempty"`
}
