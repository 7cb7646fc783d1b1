package boleta

import (
	"context"
	"fmt"

	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible (PDF) de una boleta.
type PDFUseCase struct {
	boletaRepo  repository.BoletaRepository
	usuarioRepo repository.UsuarioRepository
	generator   BoletaPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	boletaRepo repository.BoletaRepository,
	usuarioRepo repository.UsuarioRepository,
	generator BoletaPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{boletaRepo: boletaRepo, usuarioRepo: usuarioRepo, generator: generator}
}

// DescargarBoletaPDF verifica propiedad, junta boleta, detalles y vendedor y
// genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)        si todo sale bien.
//   - domain.ErrBoletaNoEncontrada     si la boleta no existe o es ajena.
func (uc *PDFUseCase) DescargarBoletaPDF(ctx context.Context, idBoleta, idUsuario int64) (pdfBytes []byte, filename string, err error) {
	b, err := uc.boletaRepo.GetByID(idBoleta)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener boleta: %w", err)
	}
	if b == nil || b.IDUsuario != idUsuario {
		return nil, "", domain.ErrBoletaNoEncontrada
	}

	detalles, err := uc.boletaRepo.GetDetallesByBoletaID(idBoleta)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}

	// El vendedor puede faltar en registros históricos; el generador acepta nil.
	vendedor, err := uc.usuarioRepo.GetByID(b.IDUsuario)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener vendedor: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateBoletaPDF(ctx, b, vendedor, detalles)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("boleta-%d.pdf", b.IDBoleta), nil
}
