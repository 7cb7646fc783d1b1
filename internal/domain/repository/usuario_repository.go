package repository

import "github.com/sistema-ventas/facturacion-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type UsuarioRepository interface {
	// Create persiste el usuario y asigna IDUsuario (identidad generada por el store).
	Create(u *entity.Usuario) error
	GetByID(id int64) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	ExistsByEmail(email string) (bool, error)
	ExistsByNumeroDocumento(numero string) (bool, error)
}
