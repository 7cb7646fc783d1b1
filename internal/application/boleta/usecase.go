package boleta

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sistema-ventas/facturacion-api/internal/application/dto"
	"github.com/sistema-ventas/facturacion-api/internal/domain"
	"github.com/sistema-ventas/facturacion-api/internal/domain/entity"
	"github.com/sistema-ventas/facturacion-api/internal/domain/repository"
	"github.com/sistema-ventas/facturacion-api/pkg/logger"
)

// Config opciones del pipeline.
type Config struct {
	// StrictTotal rechaza la boleta cuando el total enviado no coincide con
	// el calculado. Apagado por defecto: el comportamiento histórico es
	// registrar la advertencia y persistir el total enviado.
	StrictTotal bool
}

// BoletaUseCase procesa el checkout y sirve las lecturas de boletas con
// verificación de propiedad.
type BoletaUseCase struct {
	txRunner    TxRunner
	boletaRepo  repository.BoletaRepository
	usuarioRepo repository.UsuarioRepository
	cfg         Config
	log         *logger.Logger
}

// NewBoletaUseCase construye el caso de uso.
func NewBoletaUseCase(
	txRunner TxRunner,
	boletaRepo repository.BoletaRepository,
	usuarioRepo repository.UsuarioRepository,
	cfg Config,
	log *logger.Logger,
) *BoletaUseCase {
	return &BoletaUseCase{
		txRunner:    txRunner,
		boletaRepo:  boletaRepo,
		usuarioRepo: usuarioRepo,
		cfg:         cfg,
		log:         log,
	}
}

// ProcesarBoleta valida el carrito, concilia el total y persiste cabecera y
// detalles en una sola transacción: si falla cualquier detalle, la cabecera
// también se revierte. Los subtotales siempre se recalculan en el servidor.
func (uc *BoletaUseCase) ProcesarBoleta(ctx context.Context, idUsuario int64, in dto.BoletaRequest) (*dto.BoletaResponse, error) {
	uc.log.Info().Int64("id_usuario", idUsuario).Msg("procesando boleta")

	if len(in.CartItems) == 0 {
		return nil, domain.ErrCarritoVacio
	}
	if in.NombreCliente == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrEntradaInvalida)
	}
	for _, item := range in.CartItems {
		if item.NombreProducto == "" {
			return nil, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrEntradaInvalida)
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrEntradaInvalida)
		}
		if item.Cantidad < 1 {
			return nil, fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrEntradaInvalida)
		}
	}

	// Conciliación del total: el total calculado se compara con el enviado.
	// Histórico: la discrepancia se registra pero se persiste el total enviado
	// (los clientes existentes dependen de ese valor). Con StrictTotal se rechaza.
	totalCalculado := calcularTotal(in.CartItems)
	if !totalCalculado.Equal(in.Total) {
		if uc.cfg.StrictTotal {
			return nil, fmt.Errorf("%w: enviado %s, calculado %s",
				domain.ErrTotalNoCoincide, in.Total.StringFixed(2), totalCalculado.StringFixed(2))
		}
		uc.log.Warn().
			Str("total_enviado", in.Total.StringFixed(2)).
			Str("total_calculado", totalCalculado.StringFixed(2)).
			Msg("total enviado no coincide con total calculado")
	}

	b := &entity.Boleta{
		IDUsuario:        idUsuario,
		Total:            in.Total,
		FechaCreacion:    time.Now(),
		NombreCliente:    in.NombreCliente,
		DocumentoCliente: in.DocumentoCliente,
		EmailCliente:     in.EmailCliente,
	}

	err := uc.txRunner.Run(ctx, func(repo repository.BoletaRepository) error {
		// La cabecera va primero: los detalles necesitan el id asignado.
		if err := repo.Create(b); err != nil {
			return fmt.Errorf("insertar boleta: %w", err)
		}
		for _, item := range in.CartItems {
			detalle := &entity.DetalleBoleta{
				IDBoleta:       b.IDBoleta,
				Producto:       item.NombreProducto,
				PrecioUnitario: item.PrecioUnitario,
				Cantidad:       item.Cantidad,
			}
			detalle.CalcularSubtotal()
			if err := repo.CreateDetalle(detalle); err != nil {
				return fmt.Errorf("insertar detalle: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("id_boleta", b.IDBoleta).Int("items", len(in.CartItems)).Msg("boleta procesada")

	return &dto.BoletaResponse{
		Success:  true,
		Mensaje:  "Boleta creada exitosamente",
		BoletaID: b.IDBoleta,
	}, nil
}

// GetBoletaDeUsuario obtiene una boleta verificando que pertenezca al usuario.
// Tanto id inexistente como boleta ajena devuelven ErrBoletaNoEncontrada.
func (uc *BoletaUseCase) GetBoletaDeUsuario(idBoleta, idUsuario int64) (*dto.BoletaDetailsResponse, error) {
	b, err := uc.autorizarBoleta(idBoleta, idUsuario)
	if err != nil {
		return nil, err
	}
	return uc.armarDetailsResponse(b)
}

// ListarPorUsuario devuelve todas las boletas del usuario con sus detalles.
// Con ordenadas=true van por fecha de creación descendente.
func (uc *BoletaUseCase) ListarPorUsuario(idUsuario int64, ordenadas bool) ([]dto.BoletaDetailsResponse, error) {
	var (
		boletas []*entity.Boleta
		err     error
	)
	if ordenadas {
		boletas, err = uc.boletaRepo.ListByUsuarioOrdenadas(idUsuario)
	} else {
		boletas, err = uc.boletaRepo.ListByUsuario(idUsuario)
	}
	if err != nil {
		return nil, fmt.Errorf("listar boletas: %w", err)
	}

	out := make([]dto.BoletaDetailsResponse, 0, len(boletas))
	for _, b := range boletas {
		resp, err := uc.armarDetailsResponse(b)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// GetDetalles devuelve las líneas de una boleta del usuario.
// La autorización de la boleta padre es obligatoria en toda lectura.
func (uc *BoletaUseCase) GetDetalles(idBoleta, idUsuario int64) ([]dto.DetalleBoletaDTO, error) {
	if _, err := uc.autorizarBoleta(idBoleta, idUsuario); err != nil {
		return nil, err
	}
	detalles, err := uc.boletaRepo.GetDetallesByBoletaID(idBoleta)
	if err != nil {
		return nil, fmt.Errorf("listar detalles: %w", err)
	}
	return convertirDetalles(detalles), nil
}

// EliminarBoleta borra la boleta del usuario con cascada explícita:
// primero los detalles, luego la cabecera, en una sola transacción para no
// dejar líneas huérfanas ni cabeceras sin líneas, ni siquiera transitoriamente.
func (uc *BoletaUseCase) EliminarBoleta(ctx context.Context, idBoleta, idUsuario int64) error {
	if _, err := uc.autorizarBoleta(idBoleta, idUsuario); err != nil {
		return err
	}
	err := uc.txRunner.Run(ctx, func(repo repository.BoletaRepository) error {
		if err := repo.DeleteDetallesByBoletaID(idBoleta); err != nil {
			return fmt.Errorf("eliminar detalles: %w", err)
		}
		if err := repo.Delete(idBoleta); err != nil {
			return fmt.Errorf("eliminar boleta: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("id_boleta", idBoleta).Msg("boleta eliminada")
	return nil
}

// autorizarBoleta carga la boleta y verifica propiedad.
func (uc *BoletaUseCase) autorizarBoleta(idBoleta, idUsuario int64) (*entity.Boleta, error) {
	b, err := uc.boletaRepo.GetByID(idBoleta)
	if err != nil {
		return nil, fmt.Errorf("buscar boleta: %w", err)
	}
	if b == nil || b.IDUsuario != idUsuario {
		return nil, domain.ErrBoletaNoEncontrada
	}
	return b, nil
}

// armarDetailsResponse completa la respuesta con detalles y datos del vendedor.
func (uc *BoletaUseCase) armarDetailsResponse(b *entity.Boleta) (*dto.BoletaDetailsResponse, error) {
	detalles, err := uc.boletaRepo.GetDetallesByBoletaID(b.IDBoleta)
	if err != nil {
		return nil, fmt.Errorf("listar detalles: %w", err)
	}
	return &dto.BoletaDetailsResponse{
		IDBoleta:         b.IDBoleta,
		IDUsuario:        b.IDUsuario,
		FechaCreacion:    b.FechaCreacion.Format(time.RFC3339),
		Total:            b.Total,
		NombreCliente:    b.NombreCliente,
		DocumentoCliente: b.DocumentoCliente,
		EmailCliente:     b.EmailCliente,
		Detalles:         convertirDetalles(detalles),
		UsuarioVendedor:  uc.vendedorDTO(b.IDUsuario),
	}, nil
}

// vendedorDTO resume el vendedor de la boleta. Si el usuario ya no existe
// (registro histórico), devuelve un valor centinela en lugar de fallar.
func (uc *BoletaUseCase) vendedorDTO(idUsuario int64) *dto.UsuarioVendedorDTO {
	u, err := uc.usuarioRepo.GetByID(idUsuario)
	if err != nil || u == nil {
		return &dto.UsuarioVendedorDTO{
			ID:              idUsuario,
			Nombres:         "Vendedor Desconocido",
			Apellidos:       "",
			NumeroDocumento: "N/A",
		}
	}
	return &dto.UsuarioVendedorDTO{
		ID:              u.IDUsuario,
		Nombres:         u.Nombres,
		Apellidos:       u.Apellidos,
		NumeroDocumento: u.NumeroDocumento,
	}
}

func convertirDetalles(detalles []*entity.DetalleBoleta) []dto.DetalleBoletaDTO {
	out := make([]dto.DetalleBoletaDTO, 0, len(detalles))
	for _, d := range detalles {
		out = append(out, dto.DetalleBoletaDTO{
			IDDetalle:      d.IDDetalle,
			Producto:       d.Producto,
			PrecioUnitario: d.PrecioUnitario,
			Cantidad:       d.Cantidad,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}

// calcularTotal suma precio x cantidad de todos los items.
func calcularTotal(items []dto.DetalleRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))))
	}
	return total
}
