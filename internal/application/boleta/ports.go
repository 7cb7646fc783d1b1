package boleta

import (
	"context"

	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un BoletaRepository atado a una transacción.
// Si fn retorna error se hace rollback de todo lo escrito dentro.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.BoletaRepository) error) error
}

// BoletaPDFGenerator genera la representación en PDF de una boleta.
type BoletaPDFGenerator interface {
	GenerateBoletaPDF(ctx context.Context, b *entity.Boleta, vendedor *entity.Usuario, detalles []*entity.DetalleBoleta) ([]byte, error)
}
