package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
)

var _ repository.BoletaRepository = (*BoletaRepo)(nil)

// BoletaRepo implementación de BoletaRepository (usable con pool o tx).
type BoletaRepo struct {
	q Querier
}

// NewBoletaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBoletaRepository(q Querier) *BoletaRepo {
	return &BoletaRepo{q: q}
}

// Create persiste la cabecera y asigna el id generado por la base.
func (r *BoletaRepo) Create(b *entity.Boleta) error {
	query := `
		INSERT INTO boletas (id_usuario, total, fecha_creacion, nombre_cliente, documento_cliente, email_cliente)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_boleta`
	err := r.q.QueryRow(context.Background(), query,
		b.IDUsuario, b.Total, b.FechaCreacion,
		b.NombreCliente, nullIfEmpty(b.DocumentoCliente), nullIfEmpty(b.EmailCliente),
	).Scan(&b.IDBoleta)
	if err != nil {
		return fmt.Errorf("insert boleta: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de la boleta y asigna su id.
func (r *BoletaRepo) CreateDetalle(d *entity.DetalleBoleta) error {
	query := `
		INSERT INTO detalle_boleta (id_boleta, producto, precio_unitario, cantidad, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_detalle`
	err := r.q.QueryRow(context.Background(), query,
		d.IDBoleta, d.Producto, d.PrecioUnitario, d.Cantidad, d.Subtotal,
	).Scan(&d.IDDetalle)
	if err != nil {
		return fmt.Errorf("insert detalle: %w", err)
	}
	return nil
}

// GetByID obtiene una boleta por id.
func (r *BoletaRepo) GetByID(id int64) (*entity.Boleta, error) {
	query := `
		SELECT id_boleta, id_usuario, total, fecha_creacion, nombre_cliente, documento_cliente, email_cliente
		FROM boletas WHERE id_boleta = $1`
	var b entity.Boleta
	var documento, email *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.IDBoleta, &b.IDUsuario, &b.Total, &b.FechaCreacion,
		&b.NombreCliente, &documento, &email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get boleta: %w", err)
	}
	b.DocumentoCliente = derefStr(documento)
	b.EmailCliente = derefStr(email)
	return &b, nil
}

// ListByUsuario lista las boletas de un usuario en orden de inserción.
func (r *BoletaRepo) ListByUsuario(idUsuario int64) ([]*entity.Boleta, error) {
	return r.list(idUsuario, `ORDER BY id_boleta`)
}

// ListByUsuarioOrdenadas lista por fecha de creación descendente; el desempate
// por id mantiene el orden de inserción entre boletas con la misma fecha.
func (r *BoletaRepo) ListByUsuarioOrdenadas(idUsuario int64) ([]*entity.Boleta, error) {
	return r.list(idUsuario, `ORDER BY fecha_creacion DESC, id_boleta ASC`)
}

func (r *BoletaRepo) list(idUsuario int64, orderBy string) ([]*entity.Boleta, error) {
	query := `
		SELECT id_boleta, id_usuario, total, fecha_creacion, nombre_cliente, documento_cliente, email_cliente
		FROM boletas WHERE id_usuario = $1 ` + orderBy
	rows, err := r.q.Query(context.Background(), query, idUsuario)
	if err != nil {
		return nil, fmt.Errorf("list boletas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Boleta
	for rows.Next() {
		var b entity.Boleta
		var documento, email *string
		if err := rows.Scan(&b.IDBoleta, &b.IDUsuario, &b.Total, &b.FechaCreacion,
			&b.NombreCliente, &documento, &email); err != nil {
			return nil, fmt.Errorf("scan boleta: %w", err)
		}
		b.DocumentoCliente = derefStr(documento)
		b.EmailCliente = derefStr(email)
		list = append(list, &b)
	}
	return list, rows.Err()
}

// GetDetallesByBoletaID obtiene todas las líneas de una boleta.
func (r *BoletaRepo) GetDetallesByBoletaID(idBoleta int64) ([]*entity.DetalleBoleta, error) {
	query := `
		SELECT id_detalle, id_boleta, producto, precio_unitario, cantidad, subtotal
		FROM detalle_boleta WHERE id_boleta = $1 ORDER BY id_detalle`
	rows, err := r.q.Query(context.Background(), query, idBoleta)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.DetalleBoleta
	for rows.Next() {
		var d entity.DetalleBoleta
		if err := rows.Scan(&d.IDDetalle, &d.IDBoleta, &d.Producto, &d.PrecioUnitario, &d.Cantidad, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteDetallesByBoletaID elimina todas las líneas de una boleta.
func (r *BoletaRepo) DeleteDetallesByBoletaID(idBoleta int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM detalle_boleta WHERE id_boleta = $1`, idBoleta)
	if err != nil {
		return fmt.Errorf("delete detalles: %w", err)
	}
	return nil
}

// Delete elimina la cabecera. Llamar después de DeleteDetallesByBoletaID
// dentro de la misma transacción.
func (r *BoletaRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM boletas WHERE id_boleta = $1`, id)
	if err != nil {
		return fmt.Errorf("delete boleta: %w", err)
	}
	return nil
}
