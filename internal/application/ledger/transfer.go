package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/document"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

// TransferUseCase envío y avance de traslados internos entre ubicaciones.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.TransferRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// Submit valida y persiste un traslado en estado draft.
// from == to se rechaza antes de cualquier persistencia.
func (uc *TransferUseCase) Submit(ctx context.Context, actor string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, fmt.Errorf("%w: from_location_id y to_location_id son requeridos", domain.ErrInvalidInput)
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, fmt.Errorf("%w: la ubicación origen y destino no pueden ser la misma", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es requerido", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id es requerido", domain.ErrInvalidInput, i)
		}
		if !item.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser mayor que cero", domain.ErrInvalidInput, i)
		}
	}
	if err := validateLocation(uc.locationRepo, in.FromLocationID, "from_location_id"); err != nil {
		return nil, err
	}
	if err := validateLocation(uc.locationRepo, in.ToLocationID, "to_location_id"); err != nil {
		return nil, err
	}
	if err := validateLineRefs(uc.productRepo, uc.locationRepo, transferLineRefs(in.Items)); err != nil {
		return nil, err
	}

	transfer := &entity.Transfer{
		ID:             uuid.New().String(),
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Status:         document.Initial(document.KindTransfer),
		TotalItems:     len(in.Items),
		Notes:          in.Notes,
		CreatedBy:      actor,
		CreatedAt:      time.Now(),
	}
	for _, item := range in.Items {
		transfer.Items = append(transfer.Items, entity.TransferItem{
			ID:         uuid.New().String(),
			TransferID: transfer.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Notes:      item.Notes,
		})
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		seq, err := r.Transfers.NextNumber()
		if err != nil {
			return err
		}
		transfer.TransferNumber = document.FormatNumber(document.KindTransfer, seq)
		return r.Transfers.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// AdvanceStatus avanza el traslado un paso. Al pasar a completed resta en la
// ubicación origen y suma en la destino la cantidad de cada línea, con bloqueo
// de fila en origen para verificar disponibilidad (stock menos reservas).
func (uc *TransferUseCase) AdvanceStatus(ctx context.Context, id, target string) (*dto.TransferResponse, error) {
	var transfer *entity.Transfer
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		transfer, err = r.Transfers.GetByID(id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
		}
		if err := document.ValidateAdvance(document.KindTransfer, transfer.Status, target); err != nil {
			return err
		}
		if target == entity.TransferStatusCompleted {
			for _, item := range transfer.Items {
				origin, err := r.Stock.GetForUpdate(item.ProductID, transfer.FromLocationID)
				if err != nil {
					return err
				}
				// Lo reservado por entregas en picking no puede salir en un traslado.
				if origin.Available().LessThan(item.Quantity) {
					return fmt.Errorf("%w: producto %s en ubicación %s", domain.ErrInsufficientStock, item.ProductID, transfer.FromLocationID)
				}
				if err := r.Stock.ApplyDelta(item.ProductID, transfer.FromLocationID, item.Quantity.Neg(), zero); err != nil {
					return err
				}
				if err := r.Stock.ApplyDelta(item.ProductID, transfer.ToLocationID, item.Quantity, zero); err != nil {
					return err
				}
			}
		}
		if err := r.Transfers.UpdateStatus(id, target); err != nil {
			return err
		}
		transfer.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(transfer), nil
}

// GetByID devuelve el traslado con sus líneas, o nil si no existe.
func (uc *TransferUseCase) GetByID(id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, nil
	}
	return toTransferResponse(transfer), nil
}

// List lista traslados con filtro opcional de estado.
func (uc *TransferUseCase) List(status string) ([]dto.DocumentListItemResponse, error) {
	rows, err := uc.transferRepo.List(status)
	if err != nil {
		return nil, err
	}
	return toListResponse(rows), nil
}

func transferLineRefs(items []dto.TransferItemRequest) []lineRef {
	refs := make([]lineRef, 0, len(items))
	for i, item := range items {
		refs = append(refs, lineRef{Index: i, ProductID: item.ProductID})
	}
	return refs
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	out := &dto.TransferResponse{
		ID:             t.ID,
		TransferNumber: t.TransferNumber,
		FromLocationID: t.FromLocationID,
		ToLocationID:   t.ToLocationID,
		Status:         t.Status,
		TotalItems:     t.TotalItems,
		Notes:          t.Notes,
		CreatedBy:      t.CreatedBy,
		CreatedAt:      t.CreatedAt,
	}
	for _, item := range t.Items {
		out.Items = append(out.Items, dto.TransferItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	return out
}
