package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un nuevo usuario y asigna el id generado por la base.
// Las violaciones de unicidad se traducen al error de dominio del campo en
// conflicto (la verificación previa del caso de uso no cubre carreras).
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (email, nombres, apellidos, numero_documento, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_usuario`
	err := r.q.QueryRow(context.Background(), query,
		u.Email, u.Nombres, u.Apellidos, nullIfEmpty(u.NumeroDocumento), u.PasswordHash,
	).Scan(&u.IDUsuario)
	if err != nil {
		if pgErr, ok := uniqueViolation(err); ok {
			if constraintContains(pgErr, "documento") {
				return domain.ErrDocumentoYaRegistrado
			}
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por id.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	query := `
		SELECT id_usuario, email, nombres, apellidos, numero_documento, password
		FROM usuarios WHERE id_usuario = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get usuario by id")
}

// GetByEmail obtiene un usuario por email (comparación exacta, sensible a mayúsculas).
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	query := `
		SELECT id_usuario, email, nombres, apellidos, numero_documento, password
		FROM usuarios WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get usuario by email")
}

// ExistsByEmail verifica si un email ya está registrado.
func (r *UsuarioRepo) ExistsByEmail(email string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE email = $1)`, email,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists usuario by email: %w", err)
	}
	return existe, nil
}

// ExistsByNumeroDocumento verifica si un número de documento ya está registrado.
func (r *UsuarioRepo) ExistsByNumeroDocumento(numero string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM usuarios WHERE numero_documento = $1)`, numero,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("exists usuario by documento: %w", err)
	}
	return existe, nil
}

func (r *UsuarioRepo) scanOne(row pgx.Row, op string) (*entity.Usuario, error) {
	var u entity.Usuario
	var numeroDocumento *string
	err := row.Scan(&u.IDUsuario, &u.Email, &u.Nombres, &u.Apellidos, &numeroDocumento, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.NumeroDocumento = derefStr(numeroDocumento)
	return &u, nil
}
