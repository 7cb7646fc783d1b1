package usuario

import (
	"fmt"

	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
)

// UsuarioUseCase consultas de usuarios (perfil y búsqueda por id).
type UsuarioUseCase struct {
	usuarioRepo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(usuarioRepo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{usuarioRepo: usuarioRepo}
}

// ObtenerPorID devuelve el usuario sin datos sensibles.
func (uc *UsuarioUseCase) ObtenerPorID(id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarioRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if u == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	return &dto.UsuarioResponse{
		IDUsuario:       u.IDUsuario,
		Email:           u.Email,
		Nombres:         u.Nombres,
		Apellidos:       u.Apellidos,
		NumeroDocumento: u.NumeroDocumento,
		NombreCompleto:  u.NombreCompleto(),
	}, nil
}
