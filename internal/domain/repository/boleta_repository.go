package repository

import "github.com/sistema-ventas/facturacion-api/internal/domain/entity"

// BoletaRepository define el puerto de persistencia para Boleta y sus detalles.
// GetByID devuelve (nil, nil) cuando la boleta no existe.
type BoletaRepository interface {
	// Create persiste la cabecera y asigna IDBoleta; debe ejecutarse antes
	// que cualquier CreateDetalle porque los detalles referencian ese id.
	Create(b *entity.Boleta) error
	CreateDetalle(d *entity.DetalleBoleta) error
	GetByID(id int64) (*entity.Boleta, error)
	ListByUsuario(idUsuario int64) ([]*entity.Boleta, error)
	// ListByUsuarioOrdenadas devuelve las boletas por fecha_creacion descendente;
	// el desempate es el orden de inserción (id ascendente).
	ListByUsuarioOrdenadas(idUsuario int64) ([]*entity.Boleta, error)
	GetDetallesByBoletaID(idBoleta int64) ([]*entity.DetalleBoleta, error)
	// DeleteDetallesByBoletaID y Delete componen el borrado en cascada explícito:
	// primero detalles, luego cabecera, dentro de una misma transacción.
	DeleteDetallesByBoletaID(idBoleta int64) error
	Delete(id int64) error
}
