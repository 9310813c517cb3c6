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

// ReceiptUseCase envío y avance de recepciones de mercancía.
// Submit persiste cabecera + líneas en una transacción; el stock solo se toca
// en la transición a completed (modelo aplicado, no en draft).
type ReceiptUseCase struct {
	txRunner     TxRunner
	receiptRepo  repository.ReceiptRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner TxRunner,
	receiptRepo repository.ReceiptRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:     txRunner,
		receiptRepo:  receiptRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// Submit valida y persiste una recepción en estado draft.
// Las líneas incompletas se rechazan con diagnóstico preciso, no se descartan
// en silencio: total_items siempre coincide con lo que el cliente envió.
func (uc *ReceiptUseCase) Submit(ctx context.Context, actor string, in dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es requerido", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id es requerido", domain.ErrInvalidInput, i)
		}
		if item.LocationID == "" {
			return nil, fmt.Errorf("%w: items[%d].location_id es requerido", domain.ErrInvalidInput, i)
		}
		if !item.QuantityExpected.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity_expected debe ser mayor que cero", domain.ErrInvalidInput, i)
		}
	}

	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}
	}
	if err := validateLineRefs(uc.productRepo, uc.locationRepo, receiptLineRefs(in.Items)); err != nil {
		return nil, err
	}

	now := time.Now()
	receipt := &entity.Receipt{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Status:     document.Initial(document.KindReceipt),
		TotalItems: len(in.Items),
		Notes:      in.Notes,
		CreatedBy:  actor,
		CreatedAt:  now,
	}
	for _, item := range in.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			ID:               uuid.New().String(),
			ReceiptID:        receipt.ID,
			ProductID:        item.ProductID,
			LocationID:       item.LocationID,
			QuantityExpected: item.QuantityExpected,
		})
	}

	// Número de secuencia y escritura cabecera+líneas en la misma transacción.
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		seq, err := r.Receipts.NextNumber()
		if err != nil {
			return err
		}
		receipt.ReceiptNumber = document.FormatNumber(document.KindReceipt, seq)
		return r.Receipts.Create(receipt)
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// AdvanceStatus avanza la recepción exactamente un paso en su ciclo de vida.
// En la transición a completed suma quantity_expected al stock de la ubicación
// de cada línea, dentro de la misma transacción del cambio de estado.
func (uc *ReceiptUseCase) AdvanceStatus(ctx context.Context, id, target string) (*dto.ReceiptResponse, error) {
	var receipt *entity.Receipt
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		receipt, err = r.Receipts.GetByID(id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		if err := document.ValidateAdvance(document.KindReceipt, receipt.Status, target); err != nil {
			return err
		}
		if target == entity.ReceiptStatusCompleted {
			for _, item := range receipt.Items {
				if err := r.Stock.ApplyDelta(item.ProductID, item.LocationID, item.QuantityExpected, zero); err != nil {
					return err
				}
			}
		}
		if err := r.Receipts.UpdateStatus(id, target); err != nil {
			return err
		}
		receipt.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReceiptResponse(receipt), nil
}

// GetByID devuelve la recepción con sus líneas, o nil si no existe.
func (uc *ReceiptUseCase) GetByID(id string) (*dto.ReceiptResponse, error) {
	receipt, err := uc.receiptRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, nil
	}
	return toReceiptResponse(receipt), nil
}

// List lista recepciones con filtros opcionales de estado y proveedor.
func (uc *ReceiptUseCase) List(status, supplierID string) ([]dto.DocumentListItemResponse, error) {
	rows, err := uc.receiptRepo.List(status, supplierID)
	if err != nil {
		return nil, err
	}
	return toListResponse(rows), nil
}

func receiptLineRefs(items []dto.ReceiptItemRequest) []lineRef {
	refs := make([]lineRef, 0, len(items))
	for i, item := range items {
		refs = append(refs, lineRef{Index: i, ProductID: item.ProductID, LocationID: item.LocationID})
	}
	return refs
}

func toReceiptResponse(r *entity.Receipt) *dto.ReceiptResponse {
	out := &dto.ReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		SupplierID:    r.SupplierID,
		Status:        r.Status,
		TotalItems:    r.TotalItems,
		Notes:         r.Notes,
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
	}
	for _, item := range r.Items {
		out.Items = append(out.Items, dto.ReceiptItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			LocationID:       item.LocationID,
			QuantityExpected: item.QuantityExpected,
		})
	}
	return out
}
