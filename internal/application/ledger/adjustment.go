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

// AdjustmentUseCase envío y avance de ajustes de inventario.
// La diferencia (counted - recorded) se calcula en el servidor y se aplica
// como delta sobre el stock al aprobar, no como valor absoluto: si hubo otros
// movimientos entre el conteo y la aprobación no se pisan.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	productRepo    repository.ProductRepository
	locationRepo   repository.LocationRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
	}
}

// Submit valida y persiste un ajuste en estado draft.
// reason debe pertenecer al vocabulario fijo de motivos.
func (uc *AdjustmentUseCase) Submit(ctx context.Context, actor string, in dto.CreateAdjustmentRequest) (*dto.AdjustmentResponse, error) {
	if in.LocationID == "" {
		return nil, fmt.Errorf("%w: location_id es requerido", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason es requerido", domain.ErrInvalidInput)
	}
	if !entity.IsValidAdjustmentReason(in.Reason) {
		return nil, fmt.Errorf("%w: reason %q no es un motivo válido", domain.ErrInvalidInput, in.Reason)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es requerido", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id es requerido", domain.ErrInvalidInput, i)
		}
		if item.RecordedQuantity.IsNegative() || item.CountedQuantity.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d]: las cantidades no pueden ser negativas", domain.ErrInvalidInput, i)
		}
	}
	if err := validateLocation(uc.locationRepo, in.LocationID, "location_id"); err != nil {
		return nil, err
	}
	if err := validateLineRefs(uc.productRepo, uc.locationRepo, adjustmentLineRefs(in.Items)); err != nil {
		return nil, err
	}

	adjustment := &entity.Adjustment{
		ID:         uuid.New().String(),
		LocationID: in.LocationID,
		Reason:     in.Reason,
		Status:     document.Initial(document.KindAdjustment),
		TotalItems: len(in.Items),
		Notes:      in.Notes,
		CreatedBy:  actor,
		CreatedAt:  time.Now(),
	}
	for _, item := range in.Items {
		adjustment.Items = append(adjustment.Items, entity.AdjustmentItem{
			ID:               uuid.New().String(),
			AdjustmentID:     adjustment.ID,
			ProductID:        item.ProductID,
			RecordedQuantity: item.RecordedQuantity,
			CountedQuantity:  item.CountedQuantity,
			Difference:       item.CountedQuantity.Sub(item.RecordedQuantity),
			Notes:            item.Notes,
		})
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		seq, err := r.Adjustments.NextNumber()
		if err != nil {
			return err
		}
		adjustment.AdjustmentNumber = document.FormatNumber(document.KindAdjustment, seq)
		return r.Adjustments.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// AdvanceStatus avanza el ajuste un paso. Al aprobar aplica la diferencia
// firmada de cada línea sobre el stock de la ubicación del documento.
func (uc *AdjustmentUseCase) AdvanceStatus(ctx context.Context, id, target string) (*dto.AdjustmentResponse, error) {
	var adjustment *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		adjustment, err = r.Adjustments.GetByID(id)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return fmt.Errorf("%w: ajuste %s", domain.ErrNotFound, id)
		}
		if err := document.ValidateAdvance(document.KindAdjustment, adjustment.Status, target); err != nil {
			return err
		}
		if target == entity.AdjustmentStatusApproved {
			for _, item := range adjustment.Items {
				if item.Difference.IsZero() {
					continue
				}
				if err := r.Stock.ApplyDelta(item.ProductID, adjustment.LocationID, item.Difference, zero); err != nil {
					return err
				}
			}
		}
		if err := r.Adjustments.UpdateStatus(id, target); err != nil {
			return err
		}
		adjustment.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// GetByID devuelve el ajuste con sus líneas, o nil si no existe.
func (uc *AdjustmentUseCase) GetByID(id string) (*dto.AdjustmentResponse, error) {
	adjustment, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adjustment == nil {
		return nil, nil
	}
	return toAdjustmentResponse(adjustment), nil
}

// List lista ajustes con filtros opcionales de estado y ubicación.
func (uc *AdjustmentUseCase) List(status, locationID string) ([]dto.DocumentListItemResponse, error) {
	rows, err := uc.adjustmentRepo.List(status, locationID)
	if err != nil {
		return nil, err
	}
	return toListResponse(rows), nil
}

func adjustmentLineRefs(items []dto.AdjustmentItemRequest) []lineRef {
	refs := make([]lineRef, 0, len(items))
	for i, item := range items {
		refs = append(refs, lineRef{Index: i, ProductID: item.ProductID})
	}
	return refs
}

func toAdjustmentResponse(a *entity.Adjustment) *dto.AdjustmentResponse {
	out := &dto.AdjustmentResponse{
		ID:               a.ID,
		AdjustmentNumber: a.AdjustmentNumber,
		LocationID:       a.LocationID,
		Reason:           a.Reason,
		Status:           a.Status,
		TotalItems:       a.TotalItems,
		Notes:            a.Notes,
		CreatedBy:        a.CreatedBy,
		CreatedAt:        a.CreatedAt,
	}
	for _, item := range a.Items {
		out.Items = append(out.Items, dto.AdjustmentItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			RecordedQuantity: item.RecordedQuantity,
			CountedQuantity:  item.CountedQuantity,
			Difference:       item.Difference,
			Notes:            item.Notes,
		})
	}
	return out
}
